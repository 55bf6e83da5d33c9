// Package markdown renders job-summary markdown to sanitized HTML for local
// preview, approximating how the runner's UI will present it.
package markdown

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// RenderSummary converts job-summary markdown to sanitized HTML.
// blackfriday handles the markdown (tables and fenced code blocks are part
// of a job summary's vocabulary), bluemonday strips anything a summary is
// not allowed to smuggle in.
func RenderSummary(md string) string {
	unsafeHTML := blackfriday.Run(
		[]byte(md),
		blackfriday.WithExtensions(
			blackfriday.CommonExtensions|
				blackfriday.AutoHeadingIDs,
		),
	)

	policy := bluemonday.UGCPolicy()

	// Summaries use collapsible regions; UGCPolicy drops them by default.
	policy.AllowElements("details", "summary")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return string(policy.SanitizeBytes(unsafeHTML))
}
