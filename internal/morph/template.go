package morph

import "strings"

// Placeholders marking the first, second and third root letter in a scheme.
const (
	SlotFa  = 'ف'
	SlotAyn = 'ع'
	SlotLam = 'ل'
)

func slotOf(r rune) int {
	switch r {
	case SlotFa:
		return 0
	case SlotAyn:
		return 1
	case SlotLam:
		return 2
	}
	return -1
}

// Apply substitutes the three letters of root into the placeholders of
// scheme. It reports false when the normalized root is not three runes long.
func Apply(root, scheme string) (string, bool) {
	letters := []rune(Normalize(root))
	if len(letters) != 3 {
		return "", false
	}
	var b strings.Builder
	for _, r := range Normalize(scheme) {
		if i := slotOf(r); i >= 0 {
			b.WriteRune(letters[i])
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

// Invert aligns word against scheme and recovers the root letters sitting
// under the placeholders. Word and scheme must have the same normalized
// length, every literal scheme rune must match the word, and all three slots
// must be filled. A repeated placeholder keeps the last letter seen.
func Invert(word, scheme string) ([3]rune, bool) {
	var slots [3]rune
	w := []rune(Normalize(word))
	s := []rune(Normalize(scheme))
	if len(w) != len(s) {
		return slots, false
	}
	var seen [3]bool
	for i, sc := range s {
		if k := slotOf(sc); k >= 0 {
			slots[k] = w[i]
			seen[k] = true
			continue
		}
		if w[i] != sc {
			return [3]rune{}, false
		}
	}
	if !seen[0] || !seen[1] || !seen[2] {
		return [3]rune{}, false
	}
	return slots, true
}

// Length returns the normalized rune length of text.
func Length(text string) int {
	return len([]rune(Normalize(text)))
}
