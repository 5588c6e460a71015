package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinTokenRunes is the shortest token kept; shorter words are dropped
const MinTokenRunes = 3

// Tokenize normalises text to NFC, strips punctuation (letters, digits and
// whitespace survive, accented letters included), lower-cases and splits on
// whitespace. Tokens shorter than MinTokenRunes are discarded.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, norm.NFC.String(text))

	// a Caser is stateful, so each call gets its own
	fields := strings.Fields(cases.Lower(language.Und).String(cleaned))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenRunes {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NGrams returns the set of contiguous n-token windows of tokens
func NGrams(tokens []string, n int) map[string]struct{} {
	grams := make(map[string]struct{})
	if n <= 0 {
		return grams
	}
	for i := 0; i+n <= len(tokens); i++ {
		grams[strings.Join(tokens[i:i+n], " ")] = struct{}{}
	}
	return grams
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for g := range small {
		if _, ok := large[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
