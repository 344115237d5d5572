package textmatch

import (
	"math"
	"strings"
)

// containmentScore is returned when one string contains the other.
// Kept just below 1.0 so exact matches always rank first.
const containmentScore = 0.95

// EditDistance computes the Levenshtein distance between two strings
// with the classic dynamic program over the full strings.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

// CalculateSimilarity is an order-ignoring character overlap score.
// Containment either way short-circuits to a fixed high constant;
// otherwise it is the count of distinct shared characters over the
// longer string's length.
func CalculateSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return containmentScore
	}

	setA := make(map[rune]struct{})
	for _, r := range a {
		setA[r] = struct{}{}
	}
	setB := make(map[rune]struct{})
	for _, r := range b {
		setB[r] = struct{}{}
	}

	shared := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			shared++
		}
	}

	longer := len([]rune(a))
	if lb := len([]rune(b)); lb > longer {
		longer = lb
	}

	return float64(shared) / float64(longer)
}

// SmartSimilarity is the primary fuzzy score used by every matcher.
// Both inputs are normalized and singularized before comparison.
// Exact match scores 1.0, containment 0.95, otherwise the maximum of
// the edit-distance ratio and the character-overlap score. The dual
// metric tolerates both transpositions ("kurta"/"kurti") and word
// compounding ("sweat shirt"/"sweatshirt"); anagram false positives
// are absorbed by the high thresholds applied downstream.
func SmartSimilarity(a, b string) float64 {
	na := SingularizePhrase(Normalize(a))
	nb := SingularizePhrase(Normalize(b))

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return containmentScore
	}

	la := len([]rune(na))
	lb := len([]rune(nb))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	dist := EditDistance(na, nb)
	levScore := 1.0 - float64(dist)/float64(maxLen)

	return math.Max(levScore, CalculateSimilarity(na, nb))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
