package calls

import "time"

// Result carries the structured outcome of one analysis pipeline run.
type Result struct {
	Transcript      string   `json:"transcription"`
	Analysis        string   `json:"analysis"`
	Sentiment       string   `json:"sentiment"`
	Score           string   `json:"score"`
	Topics          []string `json:"topics"`
	Recommendations string   `json:"recommendations"`
	Duration        string   `json:"duration"`
}

// CallAnalysis is the persisted record of one analyzed recording.
type CallAnalysis struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	FileName        string    `json:"fileName"`
	StorageKey      string    `json:"storageKey,omitempty"`
	DurationSeconds float64   `json:"durationSeconds"`
	Result          Result    `json:"result"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Preview length for list responses.
const previewChars = 150

// Preview truncates s for the recent-calls listing. Cuts on rune boundaries
// so multi-byte text stays valid.
func Preview(s string) string {
	if runes := []rune(s); len(runes) > previewChars {
		return string(runes[:previewChars]) + "..."
	}
	return s
}
