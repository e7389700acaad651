package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	draft       = MockResponse{Content: json.RawMessage(validDraft)}
	down        = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
	throttled   = MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}
	offSchema   = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"title":"Bees"}`), Err: errors.New("missing questions")}}
	cutOff      = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"title":"Be`)}}
	badKey      = MockResponse{Err: &ErrUnauthorized{Err: errors.New("401")}}
	unknownFail = MockResponse{Err: errors.New("connection reset by peer")}
)

func TestRetryProvider(t *testing.T) {
	tests := []struct {
		name      string
		attempts  int
		responses []MockResponse
		wantCalls int
		wantErr   any
	}{
		{"first try", 3, []MockResponse{draft}, 1, nil},
		{"provider recovers", 3, []MockResponse{down, draft}, 2, nil},
		{"rate limit then draft", 3, []MockResponse{throttled, draft}, 2, nil},
		{"transport error is transient", 3, []MockResponse{unknownFail, draft}, 2, nil},
		{"gives up after max attempts", 3, []MockResponse{down, down, down, draft}, 3, new(*ErrProviderUnavailable)},
		{"truncation is final", 3, []MockResponse{cutOff, draft}, 1, new(*ErrMaxTokensExceeded)},
		{"bad key is final", 3, []MockResponse{badKey, draft}, 1, new(*ErrUnauthorized)},
		{"schema mismatch retried once", 3, []MockResponse{offSchema, draft}, 2, nil},
		{"second schema mismatch is final", 4, []MockResponse{offSchema, offSchema, draft}, 2, new(*ErrInvalidResponse)},
		{"schema retry survives other failures", 4, []MockResponse{offSchema, down, offSchema, draft}, 3, new(*ErrInvalidResponse)},
		{"zero attempts still calls once", 0, []MockResponse{down, draft}, 1, new(*ErrProviderUnavailable)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry(tt.attempts)).Generate(context.Background(), quizRequest())

			if got := mock.CallCount(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != validDraft {
					t.Errorf("Content = %s, want the draft", resp.Content)
				}
				return
			}
			if !errors.As(err, tt.wantErr) {
				t.Fatalf("error = %T (%v), want %T", err, err, tt.wantErr)
			}
		})
	}
}

func TestRetryProvider_Cancelled(t *testing.T) {
	mock := NewMockProvider(down, down, draft)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(3)).Generate(ctx, quizRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetryProvider_WaitOutlivesDeadline(t *testing.T) {
	slowDown := MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour, Err: errors.New("429")}}
	mock := NewMockProvider(slowDown, draft)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, fastRetry(3)).Generate(ctx, quizRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("error = %v, want the provider's rate limit", err)
	}
	if RetryAfter(err) != time.Hour {
		t.Errorf("RetryAfter = %v, want 1h for the API to pass on", RetryAfter(err))
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("slept despite the deadline")
	}
}

func TestRetryProvider_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}}
	plain := errors.New("503")

	tests := []struct {
		attempt int
		center  time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{6, time.Second},
	}
	for _, tt := range tests {
		for range 20 {
			got := r.backoff(tt.attempt, plain)
			lo, hi := tt.center*8/10, tt.center*12/10
			if got < lo || got > hi {
				t.Fatalf("backoff(%d) = %v, want within [%v, %v]", tt.attempt, got, lo, hi)
			}
		}
	}

	limited := &ErrRateLimit{RetryAfter: 7 * time.Second}
	if got := r.backoff(0, limited); got != 7*time.Second {
		t.Errorf("backoff with Retry-After = %v, want 7s", got)
	}
}

func TestRetryProvider_ModelID(t *testing.T) {
	if got := WithRetry(NewMockProvider(), fastRetry(1)).ModelID(); got != "mock" {
		t.Errorf("ModelID() = %q, want mock", got)
	}
}
