package cert

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleAnalysis = `The call went smoothly overall and the customer left satisfied with the resolution.

**OVERALL SENTIMENT:** Positive
**QUALITY SCORE:** 92
**KEY TOPICS:**
- Billing
- Refund

"I really appreciate your patience"
The agent acknowledged the customer's frustration early.

The agent maintained a calm tone throughout the call.`

func TestExtractMetricsDefaults(t *testing.T) {
	m := ExtractMetrics(AnalysisResult{})

	if m.AgentName != defaultAgentName {
		t.Errorf("AgentName = %q, want %q", m.AgentName, defaultAgentName)
	}
	if m.AgentRole != defaultAgentRole {
		t.Errorf("AgentRole = %q, want %q", m.AgentRole, defaultAgentRole)
	}
	if m.CallDuration != defaultDuration {
		t.Errorf("CallDuration = %q, want %q", m.CallDuration, defaultDuration)
	}
	if m.QualityScore != "85%" {
		t.Errorf("QualityScore = %q, want 85%%", m.QualityScore)
	}
	if m.SentimentScore != "Neutral" {
		t.Errorf("SentimentScore = %q, want Neutral", m.SentimentScore)
	}
	if m.AnalysisSummary == "" {
		t.Error("AnalysisSummary must never be empty")
	}
}

func TestExtractMetricsPrefersResultFields(t *testing.T) {
	m := ExtractMetrics(AnalysisResult{
		Analysis: sampleAnalysis,
		Agent:    "Dana",
		Duration: "3:45",
		Score:    "77",
		Topics:   []string{"Billing", "Refund"},
		Date:     "August 1, 2026",
	})

	if m.AgentName != "Dana" {
		t.Errorf("AgentName = %q", m.AgentName)
	}
	if m.CallDuration != "3:45" {
		t.Errorf("CallDuration = %q", m.CallDuration)
	}
	if m.QualityScore != "77%" {
		t.Errorf("QualityScore = %q, want 77%%", m.QualityScore)
	}
	if m.CallDate != "August 1, 2026" {
		t.Errorf("CallDate = %q", m.CallDate)
	}
	if len(m.KeyTopics) != 2 || m.KeyTopics[0] != "Billing" || m.KeyTopics[1] != "Refund" {
		t.Errorf("KeyTopics = %v", m.KeyTopics)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"85", "85%"},
		{"0.85", "85%"},
		{"0.854", "85%"},
		{"1", "100%"},
		{"92.4", "92%"},
		{"70%", "70%"},
		{"", "85%"},
		{"excellent", "85%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractMetricsCapsBullets(t *testing.T) {
	recs := "**Slow down.\nPausing gives the customer room.\n**Confirm next steps.\nRestate the resolution.\n**Smile more.\nTone carries over the phone."
	m := ExtractMetrics(AnalysisResult{Analysis: sampleAnalysis, Recommendations: recs})

	if len(m.Recommendations) > maxBullets {
		t.Errorf("Recommendations = %d entries, cap is %d", len(m.Recommendations), maxBullets)
	}
	if len(m.DetailedAnalysis) > maxBullets {
		t.Errorf("DetailedAnalysis = %d entries, cap is %d", len(m.DetailedAnalysis), maxBullets)
	}
	if len(m.KeyTopics) > maxTopics {
		t.Errorf("KeyTopics = %d entries, cap is %d", len(m.KeyTopics), maxTopics)
	}
}

func TestSummaryTruncation(t *testing.T) {
	long := strings.Repeat("a", 500)
	m := ExtractMetrics(AnalysisResult{Analysis: long})
	if len(m.AnalysisSummary) != summaryMaxChars+3 {
		t.Errorf("summary length = %d, want %d", len(m.AnalysisSummary), summaryMaxChars+3)
	}
	if !strings.HasSuffix(m.AnalysisSummary, "...") {
		t.Errorf("truncated summary missing ellipsis: %q", m.AnalysisSummary)
	}
}

func TestSummaryTruncationKeepsMultibyteRunes(t *testing.T) {
	long := strings.Repeat("ü", 500)
	m := ExtractMetrics(AnalysisResult{Analysis: long})

	if !utf8.ValidString(m.AnalysisSummary) {
		t.Fatalf("summary is not valid UTF-8: %q", m.AnalysisSummary[:12])
	}
	if n := utf8.RuneCountInString(m.AnalysisSummary); n != summaryMaxChars+3 {
		t.Errorf("summary rune count = %d, want %d", n, summaryMaxChars+3)
	}
}

func TestInitialOfMultibyteName(t *testing.T) {
	if got := initialOf("Åsa"); got != "Å" {
		t.Errorf("initialOf = %q, want Å", got)
	}
	if got := initialOf("  dana  "); got != "D" {
		t.Errorf("initialOf = %q, want D", got)
	}
	if got := initialOf(""); got != "A" {
		t.Errorf("initialOf = %q, want default A", got)
	}
}

func TestDocumentIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^AGQ-[A-Z0-9]{8}-\d{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		m := ExtractMetrics(AnalysisResult{})
		if !pattern.MatchString(m.DocumentID) {
			t.Fatalf("DocumentID %q does not match expected format", m.DocumentID)
		}
		seen[m.DocumentID] = true
	}
	if len(seen) < 2 {
		t.Error("document ids are not random")
	}
}

func TestRenderHTMLContainsTopicsVerbatim(t *testing.T) {
	out, err := RenderHTML(AnalysisResult{
		Analysis: sampleAnalysis,
		Topics:   []string{"Billing", "Refund"},
	})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	doc := string(out)

	for _, topic := range []string{"Billing", "Refund"} {
		if !strings.Contains(doc, "<li>"+topic+"</li>") {
			t.Errorf("topic %q missing from document", topic)
		}
	}
	if got := strings.Count(doc, "<li>Billing</li>") + strings.Count(doc, "<li>Refund</li>"); got != 2 {
		t.Errorf("topic entries = %d, want exactly 2", got)
	}
	if !strings.Contains(doc, "Call Analysis Certification") {
		t.Error("document title missing")
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	out, err := RenderHTML(AnalysisResult{
		Agent:  `<script>alert("x")</script>`,
		Topics: []string{"Billing"},
	})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Error("agent name was not escaped")
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := RenderCSV(AnalysisResult{
		Transcript: "Hello, thanks for calling.",
		Analysis:   sampleAnalysis,
		Score:      "90",
		Topics:     []string{"Billing", "Refund"},
	})
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	doc := string(out)

	if !strings.HasPrefix(doc, "Category,Content") {
		t.Errorf("missing header row: %q", doc[:40])
	}
	if !strings.Contains(doc, "Quality Score,90%") {
		t.Error("quality score row missing")
	}
	if !strings.Contains(doc, "Billing; Refund") {
		t.Error("joined topics missing")
	}
}

func TestRenderCSVTruncatesTranscript(t *testing.T) {
	out, err := RenderCSV(AnalysisResult{Transcript: strings.Repeat("x", 2000)})
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	if !strings.Contains(string(out), strings.Repeat("x", csvTranscriptMax)+"...") {
		t.Error("transcript was not truncated")
	}
	if strings.Contains(string(out), strings.Repeat("x", csvTranscriptMax+1)) {
		t.Error("transcript exceeds truncation limit")
	}
}

func TestFileName(t *testing.T) {
	name := FileName("html")
	if !regexp.MustCompile(`^call-analysis-certification-\d{4}-\d{2}-\d{2}\.html$`).MatchString(name) {
		t.Errorf("unexpected file name %q", name)
	}
}
