package morph

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// tashkeel covers the Arabic short-vowel and gemination marks (fathatan..sukun).
var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x064B, Hi: 0x0652, Stride: 1}},
}

var stripTashkeel = runes.Remove(runes.In(tashkeel))

// Letter bounds accepted in a root token (hamza..yeh).
const (
	letterLo = 0x0621
	letterHi = 0x064A
)

// Normalize removes diacritic marks from text. Everything else is kept as is.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(stripTashkeel, text)
	if err != nil {
		return text
	}
	return out
}

// IsValidRootToken reports whether text, once normalized, is exactly three
// Arabic letters.
func IsValidRootToken(text string) bool {
	s := Normalize(text)
	if utf8.RuneCountInString(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < letterLo || r > letterHi {
			return false
		}
	}
	return true
}

// IsValidSchemeName reports whether text, once normalized, is a non-empty run
// of Arabic letters. The placeholders ف ع ل are letters too.
func IsValidSchemeName(text string) bool {
	s := Normalize(text)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < letterLo || r > letterHi {
			return false
		}
	}
	return true
}
