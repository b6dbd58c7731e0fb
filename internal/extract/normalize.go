package extract

import (
	"strings"
	"unicode/utf8"
)

// Normalize splits raw OCR text into cleaned lines in original reading
// order. Lines shorter than 3 characters after trimming are discarded as
// noise; characters outside the allow-list are stripped from survivors.
// Empty input yields an empty sequence.
func Normalize(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < 3 {
			continue
		}
		lines = append(lines, disallowedChars.ReplaceAllString(line, ""))
	}
	return lines
}
