package feed

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	summaryMaxRunes = 300
	contentMaxRunes = 5000
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// extractSummary reduces a feed entry description to the first sentence of
// its plain text, truncated with an ellipsis when it runs long.
func extractSummary(description string) string {
	text := stripHTML(description)
	if text == "" {
		return ""
	}

	text = firstSentence(text)
	return truncateRunes(text, summaryMaxRunes)
}

// extractContent strips markup from the full entry content and caps its
// length so downstream prompts stay bounded.
func extractContent(content string) string {
	text := stripHTML(content)
	runes := []rune(text)
	if len(runes) > contentMaxRunes {
		return string(runes[:contentMaxRunes])
	}
	return text
}

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// firstSentence cuts the text after the first terminal punctuation mark
// that is followed by whitespace. Text without such a boundary is returned
// whole.
func firstSentence(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if unicode.IsSpace(runes[i+1]) {
				return string(runes[:i+1])
			}
		}
	}
	return s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
