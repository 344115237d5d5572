package textmatch

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Hello,   World!  ", "hello world"},
		{"Jewellery & Accessories", "jewellery and accessories"},
		{"T-Shirts (Men's)", "t shirts men s"},
		{"कुर्ता kurta", "kurta"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dresses", "dress"},
		{"accessories", "accessory"},
		{"glasses", "glass"},
		{"shoes", "sho"},
		{"bags", "bag"},
		{"is", "is"},
		{"as", "as"},
		{"kurta", "kurta"},
	}

	for _, tt := range tests {
		if got := Singularize(tt.in); got != tt.want {
			t.Errorf("Singularize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSingularizeIdempotent(t *testing.T) {
	words := []string{"dresses", "accessories", "glasses", "bags", "kurta", "jeans", "shoes"}
	for _, w := range words {
		once := Singularize(w)
		twice := Singularize(once)
		if once != twice {
			t.Errorf("Singularize not idempotent for %q: %q -> %q", w, once, twice)
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"kurta", "kurti", 1},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSmartSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"kurta", "blue denim jeans", "Nike Store", "dresses"} {
		if got := SmartSimilarity(s, s); got != 1.0 {
			t.Errorf("SmartSimilarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSmartSimilaritySymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kurta", "kurti"},
		{"sweat shirt", "sweatshirt"},
		{"nike", "nike store"},
		{"lamp", "vase"},
	}
	for _, p := range pairs {
		ab := SmartSimilarity(p[0], p[1])
		ba := SmartSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("SmartSimilarity not symmetric for (%q, %q): %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSmartSimilarityContainment(t *testing.T) {
	if got := SmartSimilarity("nike", "Nike Store"); got != 0.95 {
		t.Errorf("containment score = %v, want 0.95", got)
	}
	// Singular/plural collapse to an exact match.
	if got := SmartSimilarity("dresses", "dress"); got != 1.0 {
		t.Errorf("plural/singular score = %v, want 1.0", got)
	}
}

func TestSmartSimilarityCompounding(t *testing.T) {
	// Character overlap must rescue compounded words that edit distance
	// alone would punish.
	got := SmartSimilarity("sweat shirt", "sweatshirt")
	if got < 0.9 {
		t.Errorf("SmartSimilarity(sweat shirt, sweatshirt) = %v, want >= 0.9", got)
	}
}

func TestSmartSimilarityUnrelated(t *testing.T) {
	got := SmartSimilarity("kurta", "lampshade")
	if got >= 0.7 {
		t.Errorf("SmartSimilarity(kurta, lampshade) = %v, want < 0.7", got)
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if got := CalculateSimilarity("", "abc"); got != 0 {
		t.Errorf("empty input score = %v, want 0", got)
	}
	if got := CalculateSimilarity("abc", "xabcx"); got != 0.95 {
		t.Errorf("containment score = %v, want 0.95", got)
	}
	// "abc" vs "cba": 3 shared distinct chars over length 3.
	if got := CalculateSimilarity("abc", "cba"); got != 1.0 {
		t.Errorf("anagram score = %v, want 1.0", got)
	}
}

func TestExpandVariants(t *testing.T) {
	variants := ExpandVariants("Dresses, Handbags, Jewellery & Accessories")

	want := []string{"dress", "handbag", "jewellery", "accessory", "dresses", "handbags"}
	got := make(map[string]bool, len(variants))
	for _, v := range variants {
		got[v] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("ExpandVariants missing %q, got %v", w, variants)
		}
	}

	if ExpandVariants("") != nil {
		t.Error("ExpandVariants of empty string should be nil")
	}
	if ExpandVariants("!!") != nil {
		t.Error("ExpandVariants of punctuation should be nil")
	}
}
