package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tidesYAML = `version: v1
id: tides
title: Tides and the Moon
article: ocean-101
questions:
  - id: q1
    prompt: What mainly causes tides?
    options: [Wind, The Moon, Earthquakes]
    correct: 1
  - prompt: How many high tides per day?
    options: [One, Two]
    answer: Two
    explanation: Most coasts see two high tides a day.
`

func TestParseSet_YAML(t *testing.T) {
	set, err := ParseSet([]byte(tidesYAML))
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	if set.ID != "tides" || set.Title != "Tides and the Moon" || set.ArticleID != "ocean-101" {
		t.Errorf("unexpected header: %+v", set)
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set.Questions[1].ID != "q2" {
		t.Errorf("generated id = %q, want q2", set.Questions[1].ID)
	}
	if set.Questions[1].CorrectIndex != 1 {
		t.Errorf("resolved correct index = %d, want 1", set.Questions[1].CorrectIndex)
	}
	if set.Questions[1].Explanation == "" {
		t.Error("expected explanation to be kept")
	}
}

func TestParseSet_JSON(t *testing.T) {
	doc := `{"title": "Bees", "questions": [{"id": "a", "prompt": "Do bees sleep?", "options": ["Yes", "No"], "answer": "A"}]}`
	set, err := ParseSet([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	if set.Questions[0].CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d, want 0", set.Questions[0].CorrectIndex)
	}
}

func TestParseSet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{"unknown field", "title: x\ncolour: red\nquestions: []\n", "colour"},
		{"multiple documents", "title: x\n---\ntitle: y\n", "multiple YAML documents"},
		{"bad version", "version: one\ntitle: x\n", "not a valid version"},
		{"newer major", "version: v2\ntitle: x\n", "not supported"},
		{"newer minor", "version: v1.9\ntitle: x\n", "not supported"},
		{"no questions", "title: x\nquestions: []\n", "no questions"},
		{"unresolvable answer", "questions:\n  - prompt: p\n    options: [a, b]\n    answer: zebra\n", "matches no option"},
		{"missing answer", "questions:\n  - prompt: p\n    options: [a, b]\n", "neither correct nor answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSet([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseSet_InvalidSetWrapsSentinel(t *testing.T) {
	doc := "questions:\n  - id: a\n    prompt: p\n    options: [x, y]\n    correct: 5\n"
	_, err := ParseSet([]byte(doc))
	if !errors.Is(err, ErrInvalidQuestionSet) {
		t.Errorf("err = %v, want ErrInvalidQuestionSet", err)
	}
}

func TestMarshalSet_ReadBack(t *testing.T) {
	orig, err := ParseSet([]byte(tidesYAML))
	if err != nil {
		t.Fatalf("ParseSet: %v", err)
	}
	data, err := MarshalSet(orig)
	if err != nil {
		t.Fatalf("MarshalSet: %v", err)
	}
	if !strings.HasPrefix(string(data), "version: "+FormatVersion) {
		t.Errorf("expected version header, got:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "tides.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSetFile(path)
	if err != nil {
		t.Fatalf("ReadSetFile: %v", err)
	}
	for i := range orig.Questions {
		if got.Questions[i].CorrectIndex != orig.Questions[i].CorrectIndex {
			t.Errorf("question %d correct = %d, want %d", i, got.Questions[i].CorrectIndex, orig.Questions[i].CorrectIndex)
		}
	}
}

func TestReadSetFile_Missing(t *testing.T) {
	_, err := ReadSetFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read question set") {
		t.Errorf("err = %v, want read error", err)
	}
}
