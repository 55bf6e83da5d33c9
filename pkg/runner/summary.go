package runner

import (
	"bytes"
	"fmt"
	"strings"
)

// Summary builds markdown for the step's job summary. Content accumulates
// in memory until Write appends it to the runner-provided summary file.
// Methods chain: s.Summary().AddHeading("Results", 2).AddTable(rows, true).
//
// A Summary belongs to its Session and is not safe for concurrent use.
type Summary struct {
	session *Session
	buf     bytes.Buffer
}

// Summary returns the session's job-summary builder, creating it on first
// use.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		s.summary = &Summary{session: s}
	}
	return s.summary
}

// AddRaw appends text verbatim.
func (sum *Summary) AddRaw(text string) *Summary {
	sum.buf.WriteString(text)
	return sum
}

// AddEOL appends a newline.
func (sum *Summary) AddEOL() *Summary {
	sum.buf.WriteByte('\n')
	return sum
}

// AddHeading appends a heading. Levels outside 1..6 are clamped.
func (sum *Summary) AddHeading(text string, level int) *Summary {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(&sum.buf, "%s %s\n\n", strings.Repeat("#", level), text)
	return sum
}

// AddCodeBlock appends a fenced code block, optionally language-tagged.
func (sum *Summary) AddCodeBlock(code, lang string) *Summary {
	fmt.Fprintf(&sum.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
	return sum
}

// AddList appends a bullet or numbered list.
func (sum *Summary) AddList(items []string, ordered bool) *Summary {
	for i, item := range items {
		if ordered {
			fmt.Fprintf(&sum.buf, "%d. %s\n", i+1, item)
		} else {
			fmt.Fprintf(&sum.buf, "- %s\n", item)
		}
	}
	sum.buf.WriteByte('\n')
	return sum
}

// AddTable appends a markdown table. With headerRow the first row becomes
// the header; otherwise an empty header is emitted so the table still
// renders. Cell text has `|` and newlines made safe.
func (sum *Summary) AddTable(rows [][]string, headerRow bool) *Summary {
	if len(rows) == 0 {
		return sum
	}
	width := len(rows[0])

	writeRow := func(cells []string) {
		sum.buf.WriteByte('|')
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			cell = strings.ReplaceAll(cell, "|", "\\|")
			cell = strings.ReplaceAll(cell, "\r\n", " ")
			cell = strings.ReplaceAll(cell, "\n", " ")
			sum.buf.WriteString(" " + cell + " |")
		}
		sum.buf.WriteByte('\n')
	}

	body := rows
	if headerRow {
		writeRow(rows[0])
		body = rows[1:]
	} else {
		writeRow(make([]string, width))
	}
	sum.buf.WriteByte('|')
	for i := 0; i < width; i++ {
		sum.buf.WriteString(" --- |")
	}
	sum.buf.WriteByte('\n')
	for _, row := range body {
		writeRow(row)
	}
	sum.buf.WriteByte('\n')
	return sum
}

// AddDetails appends a collapsible details block.
func (sum *Summary) AddDetails(label, content string) *Summary {
	fmt.Fprintf(&sum.buf, "<details><summary>%s</summary>\n\n%s\n\n</details>\n\n", label, content)
	return sum
}

// AddLink appends an inline link.
func (sum *Summary) AddLink(text, href string) *Summary {
	fmt.Fprintf(&sum.buf, "[%s](%s)", text, href)
	return sum
}

// AddImage appends an image reference.
func (sum *Summary) AddImage(src, alt string) *Summary {
	fmt.Fprintf(&sum.buf, "![%s](%s)", alt, src)
	return sum
}

// AddQuote appends a block quote.
func (sum *Summary) AddQuote(text string) *Summary {
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(&sum.buf, "> %s\n", line)
	}
	sum.buf.WriteByte('\n')
	return sum
}

// AddSeparator appends a thematic break.
func (sum *Summary) AddSeparator() *Summary {
	sum.buf.WriteString("\n---\n\n")
	return sum
}

// Stringify returns the buffered markdown without clearing it.
func (sum *Summary) Stringify() string {
	return sum.buf.String()
}

// Clear discards the buffered markdown.
func (sum *Summary) Clear() {
	sum.buf.Reset()
}

// Write appends the buffered markdown to the runner's summary file and
// clears the buffer. It fails when the runner did not provide a summary
// file.
func (sum *Summary) Write() error {
	path := sum.session.getenv(envFileSummary)
	if path == "" {
		return fmt.Errorf("%s is not set; job summaries are unavailable", envFileSummary)
	}
	if err := appendFile(path, sum.buf.String()); err != nil {
		return err
	}
	sum.buf.Reset()
	return nil
}
