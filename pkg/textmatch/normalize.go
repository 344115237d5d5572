package textmatch

import "strings"

// Normalize lowercases text, expands "&" to "and", replaces every
// non-alphanumeric rune with a space and collapses whitespace.
// Queries arrive in English/Hindi/Hinglish with arbitrary punctuation,
// so everything downstream compares normalized forms only.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Singularize applies suffix-stripping heuristics to a single word.
// This is intentionally not a lemmatizer; it only needs to make
// "dresses"/"dress" and "handbags"/"handbag" comparable.
func Singularize(word string) string {
	switch {
	case len(word) > 3 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && strings.HasSuffix(word, "ses"):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "es"):
		return word[:len(word)-2]
	case len(word) > 2 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	}
	return word
}

// SingularizePhrase singularizes every word of an already normalized phrase.
func SingularizePhrase(phrase string) string {
	if phrase == "" {
		return ""
	}
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = Singularize(w)
	}
	return strings.Join(words, " ")
}
