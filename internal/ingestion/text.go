package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineSpace = regexp.MustCompile(`\s+`)
	blankRuns   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets, and paragraph breaks. At most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ToValidUTF8(content, "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of whitespace inside a line. Leading indentation
// is kept for bullets and plain lines; headings are flushed left.
func cleanLine(line string) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimRight(trimmed, " \t")
	}

	indent := len(line) - len(trimmed)
	body := inlineSpace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + body
	}
	return body
}
