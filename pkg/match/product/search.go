package product

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"bazaarchat-be/pkg/store"
	"bazaarchat-be/pkg/textmatch"
)

const (
	maxResults      = 5
	minResults      = 3
	acceptScore     = 0.5
	simpleThreshold = 0.4

	verbatimNameBonus = 2.0
	tokenFuzzyBonus   = 0.5
	variantSubBonus   = 0.7
	tagVerbatimBonus  = 2.0
	tagVerbatimCap    = 5.0
	tagVariantBonus   = 1.0
	tagFuzzyBonus     = 0.5
	priceBonus        = 0.5

	tokenFuzzyThreshold = 0.85
	tagFuzzyThreshold   = 0.80
	fallbackThreshold   = 0.70
	priceTolerance      = 0.20
)

// synonymTable widens recall for the handful of category words users
// actually type. Both directions apply: a key expands to its values
// and a value back to its key.
var synonymTable = map[string][]string{
	"tshirt":    {"t-shirt", "tee"},
	"jeans":     {"pant", "trouser"},
	"top":       {"shirt", "blouse"},
	"dress":     {"gown", "frock"},
	"shoes":     {"footwear", "sneakers"},
	"bag":       {"purse", "handbag"},
	"watch":     {"wristwatch", "timepiece"},
	"furniture": {"furnishing", "home decor"},
	"decor":     {"decoration", "home decor"},
}

var priceWords = []string{"rs", "₹", "rupee", "price", "cost", "under", "above", "discount"}

var amountRe = regexp.MustCompile(`\d+`)

// Search scores every product in the snapshot against the query and
// returns the top five. When fewer than three survive the strict pass,
// a looser fallback pass runs instead so thin catalogs still answer.
func Search(query string, products []store.ProductRecord) []store.ProductMatch {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return nil
	}

	tokens := queryTokens(q)
	variants := expandQueryVariants(tokens)
	amount, hasPriceLanguage := priceSignal(q)

	var matches []store.ProductMatch
	for i := range products {
		rec := &products[i]
		score := scoreProduct(rec, q, tokens, variants, amount, hasPriceLanguage)
		if score > acceptScore {
			matches = append(matches, store.ProductMatch{Record: rec, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) < minResults {
		if loose := fallbackSearch(q, products); len(loose) > 0 {
			matches = loose
		}
	}

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// SearchSimple is the single-strategy variant: name similarity only,
// threshold 0.4. Kept for callers that do not run the full pipeline.
func SearchSimple(query string, products []store.ProductRecord) []store.ProductMatch {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return nil
	}

	var matches []store.ProductMatch
	for i := range products {
		rec := &products[i]
		name := strings.ToLower(rec.Name)
		score := textmatch.SmartSimilarity(name, q)
		if strings.Contains(name, q) && score < 0.95 {
			score = 0.95
		}
		if score >= simpleThreshold {
			matches = append(matches, store.ProductMatch{Record: rec, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

func scoreProduct(
	rec *store.ProductRecord,
	q string,
	tokens []string,
	variants []string,
	amount float64,
	hasPriceLanguage bool,
) float64 {
	name := strings.ToLower(rec.Name)
	nameTokens := strings.Fields(textmatch.Normalize(name))

	score := 0.0

	if strings.Contains(name, q) {
		score += verbatimNameBonus
	}

	for _, tok := range tokens {
		for _, nt := range nameTokens {
			if textmatch.SmartSimilarity(tok, nt) > tokenFuzzyThreshold {
				score += tokenFuzzyBonus
				break
			}
		}
	}

	for _, v := range variants {
		if strings.Contains(name, v) {
			score += variantSubBonus
		}
	}

	score += scoreTags(rec.TagTokens, q, tokens, variants)

	if hasPriceLanguage && amount > 0 && rec.Price != nil {
		if math.Abs(amount-*rec.Price) <= priceTolerance**rec.Price {
			score += priceBonus
		}
	}

	return score
}

func scoreTags(tags []string, q string, tokens, variants []string) float64 {
	if len(tags) == 0 {
		return 0
	}

	verbatim := 0.0
	rest := 0.0

	for _, tag := range tags {
		if strings.Contains(q, tag) {
			verbatim += tagVerbatimBonus
		}
		for _, v := range variants {
			if strings.Contains(tag, v) {
				rest += tagVariantBonus
				break
			}
		}
		for _, tok := range tokens {
			if textmatch.SmartSimilarity(tok, tag) > tagFuzzyThreshold {
				rest += tagFuzzyBonus
				break
			}
		}
	}

	if verbatim > tagVerbatimCap {
		verbatim = tagVerbatimCap
	}
	return verbatim + rest
}

// fallbackSearch is the looser pass used when the strict scorer leaves
// fewer than three results: name substring or similarity above 0.7, or
// a tag containing the query.
func fallbackSearch(q string, products []store.ProductRecord) []store.ProductMatch {
	var matches []store.ProductMatch
	for i := range products {
		rec := &products[i]
		name := strings.ToLower(rec.Name)

		score := 0.0
		if strings.Contains(name, q) {
			score = 0.95
		} else if s := textmatch.SmartSimilarity(name, q); s > fallbackThreshold {
			score = s
		} else {
			for _, tag := range rec.TagTokens {
				if strings.Contains(tag, q) || strings.Contains(q, tag) {
					score = 0.75
					break
				}
			}
		}

		if score > 0 {
			matches = append(matches, store.ProductMatch{Record: rec, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

func queryTokens(q string) []string {
	var tokens []string
	for _, tok := range strings.Fields(textmatch.Normalize(q)) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// expandQueryVariants produces per-token variants: the token itself,
// its singular form, a trailing-s strip, ie<->y substitutions and the
// fixed synonym table in both directions.
func expandQueryVariants(tokens []string) []string {
	set := make(map[string]struct{})
	add := func(v string) {
		if len(v) > 1 {
			set[v] = struct{}{}
		}
	}

	for _, tok := range tokens {
		add(tok)
		add(textmatch.Singularize(tok))
		add(strings.TrimSuffix(tok, "s"))

		if strings.HasSuffix(tok, "ie") {
			add(tok[:len(tok)-2] + "y")
		}
		if strings.HasSuffix(tok, "y") {
			add(tok[:len(tok)-1] + "ie")
		}

		if syns, ok := synonymTable[tok]; ok {
			for _, s := range syns {
				add(s)
			}
		}
		for key, syns := range synonymTable {
			for _, s := range syns {
				if s == tok {
					add(key)
				}
			}
		}
	}

	variants := make([]string, 0, len(set))
	for v := range set {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}

func priceSignal(q string) (float64, bool) {
	hasLanguage := false
	for _, w := range priceWords {
		if strings.Contains(q, w) {
			hasLanguage = true
			break
		}
	}
	if !hasLanguage {
		return 0, false
	}
	m := amountRe.FindString(q)
	if m == "" {
		return 0, true
	}
	var amount float64
	for _, r := range m {
		amount = amount*10 + float64(r-'0')
	}
	return amount, true
}
