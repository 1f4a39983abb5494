package cert

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"
)

// RenderHTML produces the self-contained certification document. All styling
// is inline so the file prints and archives without external assets.
func RenderHTML(result AnalysisResult) ([]byte, error) {
	m := ExtractMetrics(result)

	data := certPage{
		Metrics:      m,
		AgentInitial: initialOf(m.AgentName),
		GeneratedAt:  time.Now().Format("January 2, 2006 at 3:04 PM"),
	}

	var buf bytes.Buffer
	if err := certTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the suggested download name for an export.
func FileName(ext string) string {
	return fmt.Sprintf("call-analysis-certification-%s.%s", time.Now().Format("2006-01-02"), ext)
}

type certPage struct {
	Metrics      Metrics
	AgentInitial string
	GeneratedAt  string
}

func initialOf(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "A"
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return strings.ToUpper(string(first))
}

var certTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Call Analysis Certification</title>
</head>
<body style="margin:0;padding:40px;background:#f3f4f6;font-family:Georgia,'Times New Roman',serif;color:#1f2937;">
<div style="max-width:800px;margin:0 auto;background:#ffffff;border:4px double #1e3a8a;padding:48px;">
  <div style="text-align:center;border-bottom:2px solid #1e3a8a;padding-bottom:24px;">
    <div style="font-size:14px;letter-spacing:4px;color:#1e3a8a;text-transform:uppercase;">AgentIQ Quality Assurance</div>
    <h1 style="margin:12px 0 4px;font-size:32px;color:#111827;">Call Analysis Certification</h1>
    <div style="font-size:13px;color:#6b7280;">Document ID: {{.Metrics.DocumentID}}</div>
  </div>

  <div style="display:flex;align-items:center;margin:32px 0;">
    <div style="width:64px;height:64px;border-radius:50%;background:#1e3a8a;color:#ffffff;font-size:28px;line-height:64px;text-align:center;">{{.AgentInitial}}</div>
    <div style="margin-left:20px;">
      <div style="font-size:20px;font-weight:bold;">{{.Metrics.AgentName}}</div>
      <div style="font-size:14px;color:#6b7280;">{{.Metrics.AgentRole}}</div>
    </div>
  </div>

  <table style="width:100%;border-collapse:collapse;margin-bottom:32px;">
    <tr>
      <td style="padding:12px;border:1px solid #e5e7eb;background:#f9fafb;width:25%;text-align:center;">
        <div style="font-size:12px;color:#6b7280;text-transform:uppercase;">Call Date</div>
        <div style="font-size:16px;font-weight:bold;">{{.Metrics.CallDate}}</div>
      </td>
      <td style="padding:12px;border:1px solid #e5e7eb;background:#f9fafb;width:25%;text-align:center;">
        <div style="font-size:12px;color:#6b7280;text-transform:uppercase;">Duration</div>
        <div style="font-size:16px;font-weight:bold;">{{.Metrics.CallDuration}}</div>
      </td>
      <td style="padding:12px;border:1px solid #e5e7eb;background:#f9fafb;width:25%;text-align:center;">
        <div style="font-size:12px;color:#6b7280;text-transform:uppercase;">Sentiment</div>
        <div style="font-size:16px;font-weight:bold;">{{.Metrics.SentimentScore}}</div>
      </td>
      <td style="padding:12px;border:1px solid #e5e7eb;background:#f9fafb;width:25%;text-align:center;">
        <div style="font-size:12px;color:#6b7280;text-transform:uppercase;">Quality Score</div>
        <div style="font-size:16px;font-weight:bold;color:#1e3a8a;">{{.Metrics.QualityScore}}</div>
      </td>
    </tr>
  </table>

  <div style="margin-bottom:28px;">
    <h2 style="font-size:16px;color:#1e3a8a;border-bottom:1px solid #e5e7eb;padding-bottom:6px;">Summary</h2>
    <p style="font-size:14px;line-height:1.6;">{{.Metrics.AnalysisSummary}}</p>
  </div>

  <div style="margin-bottom:28px;">
    <h2 style="font-size:16px;color:#1e3a8a;border-bottom:1px solid #e5e7eb;padding-bottom:6px;">Key Topics</h2>
    <ul style="font-size:14px;line-height:1.8;padding-left:20px;">
      {{range .Metrics.KeyTopics}}<li>{{.}}</li>
      {{end}}
    </ul>
  </div>

  {{if .Metrics.DetailedAnalysis}}
  <div style="margin-bottom:28px;">
    <h2 style="font-size:16px;color:#1e3a8a;border-bottom:1px solid #e5e7eb;padding-bottom:6px;">Detailed Analysis</h2>
    <ul style="font-size:14px;line-height:1.8;padding-left:20px;">
      {{range .Metrics.DetailedAnalysis}}<li>{{.}}</li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .Metrics.Recommendations}}
  <div style="margin-bottom:28px;">
    <h2 style="font-size:16px;color:#1e3a8a;border-bottom:1px solid #e5e7eb;padding-bottom:6px;">Recommendations</h2>
    <ul style="font-size:14px;line-height:1.8;padding-left:20px;">
      {{range .Metrics.Recommendations}}<li>{{.}}</li>
      {{end}}
    </ul>
  </div>
  {{end}}

  <div style="display:flex;justify-content:space-between;align-items:flex-end;margin-top:48px;border-top:2px solid #1e3a8a;padding-top:16px;">
    <div style="font-size:12px;color:#6b7280;">
      Generated on {{.GeneratedAt}}<br>
      Certified by AgentIQ automated quality analysis
    </div>
    <div style="width:96px;height:96px;border-radius:50%;border:3px solid #1e3a8a;color:#1e3a8a;text-align:center;font-size:11px;letter-spacing:1px;text-transform:uppercase;display:flex;align-items:center;justify-content:center;">Certified<br>Analysis</div>
  </div>
</div>
</body>
</html>
`))
