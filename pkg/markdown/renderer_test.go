package markdown

import (
	"strings"
	"testing"
)

func TestRenderSummary_SummaryVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "headings",
			input:    "# Results\n## Coverage",
			contains: []string{"<h1", "Results", "<h2", "Coverage"},
		},
		{
			name:     "table",
			input:    "| tool | version |\n| --- | --- |\n| go | 1.25 |",
			contains: []string{"<table>", "<th>tool</th>", "<td>go</td>", "</table>"},
		},
		{
			name:     "fenced code block",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre>", "<code", "func main"},
		},
		{
			name:     "details fold survives sanitization",
			input:    "<details><summary>logs</summary>\n\nbody text\n\n</details>",
			contains: []string{"<details>", "<summary>logs</summary>", "body text", "</details>"},
		},
		{
			name:     "list",
			input:    "- passed: 12\n- failed: 0",
			contains: []string{"<ul>", "<li>passed: 12</li>", "<li>failed: 0</li>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSummary(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderSummary(%q) = %q, missing %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestRenderSummary_StripsScripts(t *testing.T) {
	got := RenderSummary("hello <script>alert('x')</script> world")
	if strings.Contains(got, "<script") {
		t.Errorf("script element survived sanitization: %q", got)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestRenderSummary_StripsEventHandlers(t *testing.T) {
	got := RenderSummary(`<a href="https://example.com" onclick="steal()">link</a>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("event handler survived sanitization: %q", got)
	}
}
