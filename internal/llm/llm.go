package llm

import (
	"context"
	"errors"
)

// AudioInput carries an in-memory recording to the transcription call. The
// file name matters: providers sniff the container format from its extension.
type AudioInput struct {
	FileName string
	Data     []byte
}

// Client abstracts the speech/LLM provider behind the two-stage pipeline:
// transcribe the recording, then analyze the transcript. The two calls are
// independent round-trips; neither leaves persisted partial state behind.
type Client interface {
	Transcribe(ctx context.Context, input AudioInput) (string, error)
	Analyze(ctx context.Context, transcript string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub used when no provider credentials are present.
type PlaceholderClient struct{}

// Transcribe returns ErrNotConfigured.
func (PlaceholderClient) Transcribe(ctx context.Context, input AudioInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}

// Analyze returns ErrNotConfigured.
func (PlaceholderClient) Analyze(ctx context.Context, transcript string) (string, error) {
	_ = ctx
	_ = transcript
	return "", ErrNotConfigured
}
