package llm

import "strings"

// CleanJSONBlock strips markdown fences, conversational preamble, and trailing
// chatter from a model response, returning the first JSON value found.
// Text without any JSON value is returned trimmed so the caller's decoder
// reports the error.
func CleanJSONBlock(text string) string {
	text = stripFences(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var value string
	if text[start] == '{' {
		value = extractJSONObject(text[start:])
	} else {
		value = extractJSONArray(text[start:])
	}
	if value == "" {
		// Unbalanced; hand back from the opening delimiter onward.
		return strings.TrimSpace(text[start:])
	}
	return value
}

// stripFences removes a surrounding ``` or ```lang fence.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractJSONObject returns the balanced {...} prefix of s, or "".
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of s, or "".
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, close byte) string {
	if s == "" || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
