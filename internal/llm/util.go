package llm

import "strings"

// CleanJSONBlock extracts the JSON payload from a model response. Gemini
// wraps JSON in markdown fences or conversational prose even when the
// prompt forbids it, so fences are stripped first and then the first
// complete JSON object or array is carved out of whatever text remains.
func CleanJSONBlock(text string) string {
	text = stripCodeFences(strings.TrimSpace(text))
	if payload := firstJSONValue(text); payload != "" {
		return payload
	}
	return strings.TrimSpace(text)
}

// stripCodeFences removes a surrounding ``` or ```json block, tolerating a
// language identifier on the opening fence.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// firstJSONValue returns the first balanced JSON object or array in text,
// or "" when none completes. Delimiters inside string literals are ignored.
func firstJSONValue(text string) string {
	start := strings.IndexByte(text, '{')
	open, close := byte('{'), byte('}')
	if arr := strings.IndexByte(text, '['); arr >= 0 && (start < 0 || arr < start) {
		start = arr
		open, close = '[', ']'
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
