package cert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
)

const csvTranscriptMax = 1000

// RenderCSV flattens a result into a two-column Category/Content export.
func RenderCSV(result AnalysisResult) ([]byte, error) {
	m := ExtractMetrics(result)

	transcript := strings.TrimSpace(result.Transcript)
	if runes := []rune(transcript); len(runes) > csvTranscriptMax {
		transcript = string(runes[:csvTranscriptMax]) + "..."
	}

	rows := [][]string{
		{"Category", "Content"},
		{"Transcription", transcript},
		{"Analysis", flatten(result.Analysis)},
		{"Recommendations", flatten(result.Recommendations)},
		{"Sentiment Score", m.SentimentScore},
		{"Quality Score", m.QualityScore},
		{"Call Duration", m.CallDuration},
		{"Key Topics", strings.Join(m.KeyTopics, "; ")},
		{"Document ID", m.DocumentID},
		{"Date Generated", time.Now().Format(time.RFC3339)},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
