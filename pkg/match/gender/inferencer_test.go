package gender

import (
	"testing"

	"bazaarchat-be/pkg/store"
)

func match(type2, catname string) store.CategoryMatch {
	return store.CategoryMatch{
		Record: &store.CategoryRecord{Type2: type2, CatName: catname},
	}
}

func TestInferMajority(t *testing.T) {
	matches := []store.CategoryMatch{
		match("Women Ethnic Wear", "kurti, saree"),
		match("Ladies Footwear", "heels"),
		match("Men Shirts", "formal shirts"),
	}

	if got := Infer(matches); got != Women {
		t.Fatalf("expected women, got %q", got)
	}
}

func TestInferTieReturnsEmpty(t *testing.T) {
	matches := []store.CategoryMatch{
		match("Women Ethnic Wear", ""),
		match("Men Shirts", ""),
	}

	if got := Infer(matches); got != "" {
		t.Fatalf("expected empty on tie, got %q", got)
	}
}

func TestInferEmpty(t *testing.T) {
	if got := Infer(nil); got != "" {
		t.Fatalf("expected empty for no matches, got %q", got)
	}
}

func TestDetectWordBoundaries(t *testing.T) {
	tests := []struct {
		text  string
		men   bool
		women bool
		kids  bool
	}{
		{"women ethnic wear", false, true, false},
		{"mens formal shoes", true, false, false},
		{"toys for kids", false, false, true},
		{"mention of something", false, false, false},
		{"ladies handbags", false, true, false},
	}

	for _, tt := range tests {
		got := Detect(tt.text)
		if got[Men] != tt.men || got[Women] != tt.women || got[Kids] != tt.kids {
			t.Errorf("Detect(%q) = %v, want men=%v women=%v kids=%v",
				tt.text, got, tt.men, tt.women, tt.kids)
		}
	}
}
