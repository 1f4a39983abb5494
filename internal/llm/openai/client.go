package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"agentiq-backend/internal/llm"
)

const (
	defaultChatModel    = "gpt-4o-mini"
	defaultWhisperModel = goopenai.Whisper1

	analysisTemperature = 0.7
	analysisMaxTokens   = 1500
)

// Client implements llm.Client against the OpenAI API: Whisper for the
// transcription stage, a chat model for the analysis stage.
type Client struct {
	api          *goopenai.Client
	chatModel    string
	whisperModel string
}

// NewClient constructs an OpenAI-backed client. The HTTP client carries an
// explicit timeout because both calls can run for minutes on large payloads
// (OPENAI_TIMEOUT_SECONDS overrides the 120s default).
func NewClient(apiKey, chatModel string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(chatModel) == "" {
		chatModel = defaultChatModel
	}

	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:          goopenai.NewClientWithConfig(cfg),
		chatModel:    chatModel,
		whisperModel: defaultWhisperModel,
	}, nil
}

// Transcribe sends the recording to Whisper and returns the transcript text.
func (c *Client) Transcribe(ctx context.Context, input llm.AudioInput) (string, error) {
	if len(input.Data) == 0 {
		return "", fmt.Errorf("transcribe: empty audio payload")
	}

	resp, err := c.api.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: input.FileName,
		Reader:   bytes.NewReader(input.Data),
		Prompt:   llm.TranscriptionPrompt,
	})
	if err != nil {
		return "", wrapTimeout("transcription", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("transcription: empty response")
	}
	return text, nil
}

// Analyze sends the transcript with the fixed analysis instruction and
// returns the raw free-text analysis.
func (c *Client) Analyze(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("analyze: empty transcript")
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: llm.AudioAnalysisPrompt,
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: "Here is the transcription of a customer service call:\n\n" + transcript + "\n\nPlease analyze it according to the instructions.",
			},
		},
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return "", wrapTimeout("analysis", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("analysis: response missing choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("analysis: empty response content")
	}
	return content, nil
}

func wrapTimeout(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return fmt.Errorf("openai %s timeout: %w", stage, err)
	}
	return fmt.Errorf("openai %s: %w", stage, err)
}
