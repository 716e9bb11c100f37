package collection

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upperCaser = cases.Upper(language.English)
	lowerCaser = cases.Lower(language.English)
)

// applyModifier transforms generated text. Unknown names pass the text
// through untouched; the parser rejects them up front, and the
// fallthrough keeps generation total for trees built by other means.
func applyModifier(text, modifier string) string {
	switch modifier {
	case "capitalize":
		return capitalize(text)
	case "uppercase":
		return upperCaser.String(text)
	case "lowercase":
		return lowerCaser.String(text)
	case "indefinite":
		return indefinite(text)
	case "definite":
		return "the " + text
	default:
		return text
	}
}

// capitalize uppercases the first rune only, leaving the rest of the
// text untouched.
func capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

// indefinite prepends "a " or, when the text starts with a vowel,
// "an ".
func indefinite(text string) string {
	r, _ := utf8.DecodeRuneInString(text)
	if isVowel(unicode.ToLower(r)) {
		return "an " + text
	}
	return "a " + text
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
