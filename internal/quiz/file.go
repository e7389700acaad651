package quiz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the question-set file format written by this build.
// Files with the same major version and an equal or older minor are accepted.
const FormatVersion = "v1.1"

// setFile is the on-disk shape of a question set. JSON files parse too,
// since JSON is a subset of YAML.
type setFile struct {
	Version   string         `yaml:"version"`
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Article   string         `yaml:"article,omitempty"`
	Questions []fileQuestion `yaml:"questions"`
}

type fileQuestion struct {
	ID          string   `yaml:"id"`
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Correct     *int     `yaml:"correct,omitempty"`
	Answer      string   `yaml:"answer,omitempty"`
	Explanation string   `yaml:"explanation,omitempty"`
}

// ParseSet decodes and validates a question set document.
func ParseSet(data []byte) (*QuestionSet, error) {
	var f setFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse question set: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse question set: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse question set: %w", err)
	}

	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}

	set := &QuestionSet{
		ID:        f.ID,
		Title:     f.Title,
		ArticleID: f.Article,
		Questions: make([]Question, 0, len(f.Questions)),
	}
	for i, fq := range f.Questions {
		id := fq.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i+1)
		}
		q := Question{
			ID:          id,
			Prompt:      fq.Prompt,
			Options:     fq.Options,
			Explanation: fq.Explanation,
		}
		switch {
		case fq.Correct != nil:
			q.CorrectIndex = *fq.Correct
		case fq.Answer != "":
			idx, ok := ResolveAnswer(fq.Options, fq.Answer)
			if !ok {
				return nil, fmt.Errorf("%w: question %q answer %q matches no option",
					ErrInvalidQuestionSet, id, fq.Answer)
			}
			q.CorrectIndex = idx
		default:
			return nil, fmt.Errorf("%w: question %q has neither correct nor answer",
				ErrInvalidQuestionSet, id)
		}
		set.Questions = append(set.Questions, q)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// ReadSetFile reads and parses a question set file.
func ReadSetFile(path string) (*QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	return ParseSet(data)
}

// MarshalSet encodes a set in the current file format.
func MarshalSet(set *QuestionSet) ([]byte, error) {
	f := setFile{
		Version:   FormatVersion,
		ID:        set.ID,
		Title:     set.Title,
		Article:   set.ArticleID,
		Questions: make([]fileQuestion, len(set.Questions)),
	}
	for i, q := range set.Questions {
		correct := q.CorrectIndex
		f.Questions[i] = fileQuestion{
			ID:          q.ID,
			Prompt:      q.Prompt,
			Options:     q.Options,
			Correct:     &correct,
			Explanation: q.Explanation,
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode question set: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode question set: %w", err)
	}
	return buf.Bytes(), nil
}

// checkVersion accepts an empty version (treated as current) or any
// version sharing FormatVersion's major and not newer than it.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("question set version %q is not a valid version (want e.g. %s)", v, FormatVersion)
	}
	if semver.Major(v) != semver.Major(FormatVersion) || semver.Compare(v, FormatVersion) > 0 {
		return fmt.Errorf("question set version %s is not supported (this build reads up to %s)", v, FormatVersion)
	}
	return nil
}
