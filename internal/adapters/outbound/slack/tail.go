package slack

import (
	"strings"
	"unicode/utf8"
)

const (
	// logSummaryLines is the number of log lines shown in the message.
	logSummaryLines = 20

	// sectionTextLimit is Slack's limit for the text of a section block.
	sectionTextLimit = 3000

	// logSummaryChars leaves room for the header and the code fence.
	logSummaryChars = sectionTextLimit - 200
)

// Suffix returns the last n runes of text.
func Suffix(text string, n int) string {
	if n <= 0 {
		return ""
	}

	skip := utf8.RuneCountInString(text) - n
	if skip <= 0 {
		return text
	}

	for i := range text {
		if skip == 0 {
			return text[i:]
		}

		skip--
	}

	return ""
}

// summarizeLogs returns the shorter of the last logSummaryLines lines and
// the last logSummaryChars characters of text.
func summarizeLogs(text string) string {
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	if len(lines) > logSummaryLines {
		lines = lines[len(lines)-logSummaryLines:]
	}

	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	return Suffix(strings.Join(lines, "\n"), logSummaryChars)
}
