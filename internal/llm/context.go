package llm

import "context"

// CallInfo labels a provider call in the event log.
type CallInfo struct {
	// Purpose names the feature making the call, e.g. "quiz-gen".
	Purpose string

	// ArticleID is the article a quiz is being generated for, if known.
	ArticleID string

	// Attempt counts requests for the same article, starting at 1. Later
	// attempts carry validator feedback from the previous draft.
	Attempt int
}

type callInfoKey struct{}

// WithCall attaches info to ctx for LoggingProvider.
func WithCall(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey{}, info)
}

// CallFrom returns the CallInfo attached to ctx. Unlabelled calls get the
// purpose "unknown".
func CallFrom(ctx context.Context) CallInfo {
	info, _ := ctx.Value(callInfoKey{}).(CallInfo)
	if info.Purpose == "" {
		info.Purpose = "unknown"
	}
	return info
}
