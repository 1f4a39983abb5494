// Package cert renders a completed call analysis as a downloadable
// certification document. Extraction is pure and total: every metric has a
// default, so any AnalysisResult produces a printable certificate.
package cert

import (
	"crypto/rand"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"agentiq-backend/internal/extract"
)

const (
	defaultAgentName = "AgentIQ Representative"
	defaultAgentRole = "Customer Service Representative"
	defaultDuration  = "6:01"
	defaultSummary   = "This call has been analyzed using AI technology to evaluate the quality of the conversation."

	// Presentation caps so the certificate fits a single page.
	summaryMaxChars = 120
	maxTopics       = 3
	maxBullets      = 2
)

// AnalysisResult is the read-only input to the formatter.
type AnalysisResult struct {
	Transcript      string
	Analysis        string
	Recommendations string
	Agent           string
	Duration        string
	Topics          []string
	Score           string
	Date            string
}

// Metrics is the display projection of one AnalysisResult. It is computed on
// demand at export time and never persisted.
type Metrics struct {
	AgentName        string
	AgentRole        string
	CallDate         string
	CallDuration     string
	SentimentScore   string
	QualityScore     string
	KeyTopics        []string
	DetailedAnalysis []string
	Recommendations  []string
	AnalysisSummary  string
	DocumentID       string
}

var (
	quotedPointPattern = regexp.MustCompile(`"([^"]+)"\s*\n[^"\n]+`)
	tonePointPattern   = regexp.MustCompile(`(?i)[^\n]+tone[^\n]+`)
	boldRecPattern     = regexp.MustCompile(`\*\*[^*]+\n[^*]+`)
)

// ExtractMetrics computes the certificate metrics for a result. It always
// produces a value; missing fields fall back to extraction from the raw
// analysis text and finally to fixed defaults.
func ExtractMetrics(result AnalysisResult) Metrics {
	now := time.Now()

	score := result.Score
	if strings.TrimSpace(score) == "" {
		score = extract.Score(result.Analysis)
	}

	topics := result.Topics
	if len(topics) == 0 {
		topics = extract.Topics(result.Analysis)
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}

	return Metrics{
		AgentName:        orDefault(result.Agent, defaultAgentName),
		AgentRole:        defaultAgentRole,
		CallDate:         orDefault(result.Date, now.Format("January 2, 2006")),
		CallDuration:     orDefault(result.Duration, defaultDuration),
		SentimentScore:   extract.Sentiment(result.Analysis),
		QualityScore:     FormatPercent(score),
		KeyTopics:        topics,
		DetailedAnalysis: analysisPoints(result.Analysis),
		Recommendations:  recommendationPoints(result.Recommendations),
		AnalysisSummary:  summarize(result.Analysis),
		DocumentID:       newDocumentID(now),
	}
}

// FormatPercent normalizes a raw score into a percentage string. Values at or
// below 1 are treated as fractions and scaled; larger values are assumed to
// already be percentages.
func FormatPercent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = extract.DefaultScore
	}
	if strings.HasSuffix(trimmed, "%") {
		return trimmed
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return extract.DefaultScore + "%"
	}
	if value <= 1 {
		value *= 100
	}
	return fmt.Sprintf("%d%%", int(math.Round(value)))
}

func analysisPoints(analysis string) []string {
	if points := quotedPointPattern.FindAllString(analysis, maxBullets); len(points) > 0 {
		return trimAll(points)
	}
	if points := tonePointPattern.FindAllString(analysis, maxBullets); len(points) > 0 {
		return trimAll(points)
	}
	paragraphs := splitParagraphs(analysis)
	if len(paragraphs) > 1 {
		end := len(paragraphs)
		if end > 1+maxBullets {
			end = 1 + maxBullets
		}
		return paragraphs[1:end]
	}
	return nil
}

func recommendationPoints(recommendations string) []string {
	if points := boldRecPattern.FindAllString(recommendations, maxBullets); len(points) > 0 {
		return trimAll(points)
	}
	paragraphs := splitParagraphs(recommendations)
	if len(paragraphs) > maxBullets {
		paragraphs = paragraphs[:maxBullets]
	}
	return paragraphs
}

func summarize(analysis string) string {
	summary := defaultSummary
	if paragraphs := splitParagraphs(analysis); len(paragraphs) > 0 {
		summary = paragraphs[0]
	}
	if runes := []rune(summary); len(runes) > summaryMaxChars {
		summary = string(runes[:summaryMaxChars]) + "..."
	}
	return summary
}

// newDocumentID generates a random token scoped to the current year.
// Uniqueness is probabilistic, not guaranteed.
func newDocumentID(now time.Time) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("AGQ-%08X-%d", now.UnixNano()&0xFFFFFFFF, now.Year())
	}
	token := make([]byte, len(b))
	for i, c := range b {
		token[i] = alphabet[int(c)%len(alphabet)]
	}
	return fmt.Sprintf("AGQ-%s-%d", token, now.Year())
}

func splitParagraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimAll(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
