package narrative

import (
	"encoding/json"
	"strings"
)

// Parse extracts commentary lines from model output.
// Code fences are stripped; a JSON array of strings is preferred, otherwise
// every non-empty line becomes a commentary line.
func Parse(content string) ([]string, error) {
	text := strings.ReplaceAll(content, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyCommentary
	}

	var lines []string
	if err := json.Unmarshal([]byte(text), &lines); err == nil {
		return nonEmpty(lines)
	}

	return nonEmpty(strings.Split(text, "\n"))
}

func nonEmpty(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyCommentary
	}
	return out, nil
}
