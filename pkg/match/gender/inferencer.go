package gender

import (
	"regexp"
	"strings"

	"bazaarchat-be/pkg/store"
)

// Gender values returned by Infer. Empty string means no inference,
// which callers treat as "no gender filter".
const (
	Men   = "men"
	Women = "women"
	Kids  = "kids"
)

// Word-boundary families keep "men" from firing inside "women".
var (
	menRe   = regexp.MustCompile(`\b(men|man|mens)\b`)
	womenRe = regexp.MustCompile(`\b(women|woman|womens|ladies)\b`)
	kidsRe  = regexp.MustCompile(`\b(kid|kids|child|children)\b`)
)

// Infer scans matched category records for gender signals and returns
// the single winner. A record may count toward several genders; the
// result is the strict maximum tally. A zero maximum or a tie returns
// the empty string.
func Infer(matches []store.CategoryMatch) string {
	var men, women, kids int

	for _, m := range matches {
		if m.Record == nil {
			continue
		}
		blob := recordBlob(m.Record)
		if menRe.MatchString(blob) {
			men++
		}
		if womenRe.MatchString(blob) {
			women++
		}
		if kidsRe.MatchString(blob) {
			kids++
		}
	}

	max := men
	winner := Men
	ties := 1
	for _, c := range []struct {
		n int
		g string
	}{{women, Women}, {kids, Kids}} {
		if c.n > max {
			max = c.n
			winner = c.g
			ties = 1
		} else if c.n == max {
			ties++
		}
	}

	if max == 0 || ties > 1 {
		return ""
	}
	return winner
}

// Detect reports every gender a single free-text blob asserts. Used by
// the seller matcher to exclude sellers tagged with a different gender.
func Detect(text string) map[string]bool {
	blob := strings.ToLower(text)
	asserted := make(map[string]bool)
	if menRe.MatchString(blob) {
		asserted[Men] = true
	}
	if womenRe.MatchString(blob) {
		asserted[Women] = true
	}
	if kidsRe.MatchString(blob) {
		asserted[Kids] = true
	}
	return asserted
}

func recordBlob(rec *store.CategoryRecord) string {
	parts := []string{
		rec.CatID, rec.Cat1, rec.CatName, rec.Cat1Name, rec.Type2, rec.Name,
	}
	parts = append(parts, rec.CatNameArray...)
	parts = append(parts, rec.Cat1NameArray...)
	return strings.ToLower(strings.Join(parts, " "))
}
