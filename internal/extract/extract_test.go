package extract

import (
	"reflect"
	"testing"
)

const sampleAnalysis = `1. **Transcription:** Hello, thank you for calling support today.

2. **OVERALL SENTIMENT:** Positive

3. **QUALITY SCORE:** 92

4. **KEY TOPICS:**
- Billing dispute
- Refund request
- Account verification

**RECOMMENDATIONS:**
Keep acknowledging the customer's frustration before offering solutions.
Slow down when reading account numbers back.

`

func TestParseLabeledSections(t *testing.T) {
	got := Parse(sampleAnalysis)

	if got.Sentiment != "Positive" {
		t.Errorf("Sentiment = %q, want Positive", got.Sentiment)
	}
	if got.Score != "92" {
		t.Errorf("Score = %q, want 92", got.Score)
	}
	wantTopics := []string{"Billing dispute", "Refund request", "Account verification"}
	if !reflect.DeepEqual(got.Topics, wantTopics) {
		t.Errorf("Topics = %v, want %v", got.Topics, wantTopics)
	}
	if got.Recommendations == DefaultRecommendations {
		t.Errorf("Recommendations fell back to default: %q", got.Recommendations)
	}
}

func TestParseEmptyInputUsesDefaults(t *testing.T) {
	for _, input := range []string{"", "   ", "complete garbage with no labels at all"} {
		got := Parse(input)
		if got.Sentiment != DefaultSentiment {
			t.Errorf("Parse(%q).Sentiment = %q, want %q", input, got.Sentiment, DefaultSentiment)
		}
		if got.Score != DefaultScore {
			t.Errorf("Parse(%q).Score = %q, want %q", input, got.Score, DefaultScore)
		}
		if !reflect.DeepEqual(got.Topics, DefaultTopics()) {
			t.Errorf("Parse(%q).Topics = %v, want defaults", input, got.Topics)
		}
		if got.Recommendations != DefaultRecommendations {
			t.Errorf("Parse(%q).Recommendations = %q, want default", input, got.Recommendations)
		}
	}
}

func TestSentimentFallbackPattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**OVERALL SENTIMENT:** Positive", "Positive"},
		{"**OVERALL SENTIMENT:** mixed", "Mixed"},
		{"The sentiment: negative overall.", "Negative"},
		{"Sentiment NEUTRAL here", "Neutral"},
		{"no sentiment keyword either way", DefaultSentiment},
	}
	for _, tt := range tests {
		if got := Sentiment(tt.input); got != tt.want {
			t.Errorf("Sentiment(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScoreFallbackPatterns(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**QUALITY SCORE:** 77", "77"},
		{"quality score: 88.5 out of 100", "88.5"},
		{"Overall score: 64", "64"},
		{"no numbers here", DefaultScore},
	}
	for _, tt := range tests {
		if got := Score(tt.input); got != tt.want {
			t.Errorf("Score(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTopicsCappedAtThree(t *testing.T) {
	input := "**KEY TOPICS:**\n- One\n- Two\n- Three\n- Four\n- Five\n\n**RECOMMENDATIONS:**\nNone."
	got := Topics(input)
	want := []string{"One", "Two", "Three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Topics = %v, want %v", got, want)
	}
}

func TestTopicsLooseSection(t *testing.T) {
	input := "Summary first.\n\nMain topics:\n- Shipping delay\n- Apology handling\n\nOther text."
	got := Topics(input)
	want := []string{"Shipping delay", "Apology handling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Topics = %v, want %v", got, want)
	}
}

func TestRecommendationsNeverEmpty(t *testing.T) {
	if got := Recommendations("**RECOMMENDATIONS:**\n\n"); got != DefaultRecommendations {
		t.Errorf("empty section should fall back, got %q", got)
	}
	if got := Recommendations("Recommendation: speak slower."); got != "speak slower." {
		t.Errorf("loose pattern failed, got %q", got)
	}
}
