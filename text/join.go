package text

// ShouldInsertSpace reports whether a space belongs between prev and next
// when concatenating two word fragments. A space is inserted only when the
// boundary characters are both ASCII letters: "Hello" + "World" (after a
// raw-stream split) need a separating space, but a CJK run or a word
// glued to trailing punctuation does not.
func ShouldInsertSpace(prev, next string) bool {
	if prev == "" || next == "" {
		return false
	}
	last := lastRune(prev)
	first := firstRune(next)
	return isASCIILetter(last) && isASCIILetter(first)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
