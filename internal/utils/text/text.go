// Package text provides small text processing helpers shared by the
// classifier prompt builder and the notification payload builders.
package text

// CountRunes counts the number of Unicode characters (runes) in the given
// text. Crypto news items regularly contain non-ASCII symbols and emoji, so
// counting runes instead of bytes keeps limits consistent.
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes truncates text to at most max runes. When the text is
// truncated the suffix is appended, counted against the limit.
func TruncateRunes(text string, max int, suffix string) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := max - len([]rune(suffix))
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + suffix
}
