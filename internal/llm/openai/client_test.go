package openai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agentiq-backend/internal/llm"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientDefaultsChatModel(t *testing.T) {
	c, err := NewClient("sk-test", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.chatModel != defaultChatModel {
		t.Errorf("chatModel = %q, want %q", c.chatModel, defaultChatModel)
	}
	if c.whisperModel != defaultWhisperModel {
		t.Errorf("whisperModel = %q, want %q", c.whisperModel, defaultWhisperModel)
	}
}

func TestTranscribeRejectsEmptyPayload(t *testing.T) {
	c, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Transcribe(context.Background(), llm.AudioInput{FileName: "call.mp3"}); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestAnalyzeRejectsEmptyTranscript(t *testing.T) {
	c, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Analyze(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestWrapTimeout(t *testing.T) {
	err := wrapTimeout("transcription", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("wrapped error lost its cause: %v", err)
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("timeout not surfaced in message: %v", err)
	}

	err = wrapTimeout("analysis", errors.New("boom"))
	if strings.Contains(err.Error(), "timeout") {
		t.Errorf("non-timeout error mislabeled: %v", err)
	}
}
