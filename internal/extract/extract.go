// Package extract parses the free-text output of the analysis model into
// structured fields. Every extractor is total: when no pattern matches it
// yields a documented default instead of an error, so a malformed model
// response degrades field by field rather than failing the whole analysis.
package extract

import (
	"regexp"
	"strings"
)

// Defaults applied when a field cannot be located in the analysis text.
const (
	DefaultSentiment       = "Neutral"
	DefaultScore           = "85"
	DefaultRecommendations = "No specific recommendations provided."
)

// DefaultTopics returns the generic topic triple used when no topics section
// is present.
func DefaultTopics() []string {
	return []string{"General inquiry", "Customer service", "Problem resolution"}
}

const maxTopics = 3

// Fields holds the structured values extracted from one analysis text.
type Fields struct {
	Sentiment       string
	Score           string
	Topics          []string
	Recommendations string
}

var (
	// Labeled sections as requested by the analysis prompt.
	sentimentLabeled = regexp.MustCompile(`(?i)\*\*OVERALL SENTIMENT:\*\*\s*(positive|negative|neutral|mixed)`)
	scoreLabeled     = regexp.MustCompile(`(?i)\*\*QUALITY SCORE:\*\*\s*(\d+)`)
	topicsLabeled    = regexp.MustCompile(`(?is)\*\*KEY TOPICS:\*\*\s*(.*?)(?:\*\*|$)`)
	recsLabeled      = regexp.MustCompile(`(?is)\*\*RECOMMENDATIONS:\*\*\s*(.*?)(?:\n\n|$)`)

	// Looser fallbacks for models that drop the markdown labels.
	sentimentLoose = regexp.MustCompile(`(?i)sentiment:?\s*(positive|negative|neutral|mixed)`)
	scoreLoose     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)quality score:?\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)quality:?\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)overall score:?\s*(\d+(?:\.\d+)?)`),
	}
	topicsLoose = []*regexp.Regexp{
		regexp.MustCompile(`(?is)key topics:?\s*(.*?)(?:\n\n|$)`),
		regexp.MustCompile(`(?is)main topics:?\s*(.*?)(?:\n\n|$)`),
	}
	recsLoose = regexp.MustCompile(`(?is)recommendations?:?\s*(.*?)(?:\n\n|$)`)

	topicSeparator = regexp.MustCompile(`\n-|\n•|\n\*`)
)

// Parse extracts all structured fields from the raw analysis text.
func Parse(analysis string) Fields {
	return Fields{
		Sentiment:       Sentiment(analysis),
		Score:           Score(analysis),
		Topics:          Topics(analysis),
		Recommendations: Recommendations(analysis),
	}
}

// Sentiment returns the overall sentiment, capitalized, or DefaultSentiment.
func Sentiment(analysis string) string {
	if m := sentimentLabeled.FindStringSubmatch(analysis); m != nil {
		return capitalize(m[1])
	}
	if m := sentimentLoose.FindStringSubmatch(analysis); m != nil {
		return capitalize(m[1])
	}
	return DefaultSentiment
}

// Score returns the quality score as the numeric string the model produced,
// or DefaultScore.
func Score(analysis string) string {
	if m := scoreLabeled.FindStringSubmatch(analysis); m != nil {
		return m[1]
	}
	for _, re := range scoreLoose {
		if m := re.FindStringSubmatch(analysis); m != nil {
			return m[1]
		}
	}
	return DefaultScore
}

// Topics returns up to three topics from the key-topics section, or the
// generic defaults when the section is absent or empty.
func Topics(analysis string) []string {
	if m := topicsLabeled.FindStringSubmatch(analysis); m != nil {
		if topics := splitTopics(m[1]); len(topics) > 0 {
			return topics
		}
	}
	for _, re := range topicsLoose {
		if m := re.FindStringSubmatch(analysis); m != nil {
			if topics := splitTopics(m[1]); len(topics) > 0 {
				return topics
			}
		}
	}
	return DefaultTopics()
}

// Recommendations returns the recommendations section, or
// DefaultRecommendations when none is found.
func Recommendations(analysis string) string {
	if m := recsLabeled.FindStringSubmatch(analysis); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	if m := recsLoose.FindStringSubmatch(analysis); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	return DefaultRecommendations
}

func splitTopics(section string) []string {
	parts := topicSeparator.Split(section, -1)
	topics := make([]string, 0, maxTopics)
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" || strings.HasPrefix(t, "**") {
			continue
		}
		t = strings.TrimSpace(strings.TrimLeft(t, "-•"))
		if t == "" {
			continue
		}
		topics = append(topics, t)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
