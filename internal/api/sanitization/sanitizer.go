package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// SanitizeString removes control characters and collapses whitespace into single spaces
func SanitizeString(input string) string {
	safe := stripControl(input, false)
	safe = strings.Join(strings.Fields(safe), " ")
	return safe
}

// SanitizeEmail lowercases and trims an email address
func SanitizeEmail(input string) string {
	email := strings.ToLower(input)
	email = strings.TrimSpace(email)
	return stripControl(email, false)
}

// SanitizeName keeps letters, digits, spaces and the punctuation found in
// real names (hyphens, apostrophes, periods)
func SanitizeName(input string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		case r == '-' || r == '\'' || r == '.' || r == '_':
			return r
		}
		return -1
	}, input)

	return strings.Join(strings.Fields(safe), " ")
}

// SanitizeMessage keeps line breaks but normalizes them, strips control
// characters and trims surrounding whitespace. HTML escaping is left to the
// place the message is rendered.
func SanitizeMessage(input string) string {
	safe := strings.ReplaceAll(input, "\r\n", "\n")
	safe = strings.ReplaceAll(safe, "\r", "\n")
	safe = stripControl(safe, true)
	safe = spaceRun.ReplaceAllString(safe, " ")
	safe = blankLineRun.ReplaceAllString(safe, "\n\n")
	return strings.TrimSpace(safe)
}

func stripControl(s string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' && keepNewlines {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
