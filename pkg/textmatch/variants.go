package textmatch

import (
	"sort"
	"strings"
)

// ExpandVariants expands a raw category label into the set of
// normalized forms it should be compared under. Labels are frequently
// composite ("Dresses, Handbags, Jewellery & Accessories") and must be
// matchable against single-word user queries, so the whole string,
// every comma part, every "and" sub-part and the singular form of each
// are all produced. Trivial fragments (length <= 1) are dropped.
func ExpandVariants(category string) []string {
	whole := Normalize(category)
	if whole == "" {
		return nil
	}

	set := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if len(v) > 1 {
			set[v] = struct{}{}
		}
	}

	add(whole)
	for _, part := range strings.Split(category, ",") {
		p := Normalize(part)
		add(p)
		for _, sub := range splitOnAnd(p) {
			add(sub)
		}
	}

	// Union with singular forms of everything collected so far.
	collected := make([]string, 0, len(set))
	for v := range set {
		collected = append(collected, v)
	}
	for _, v := range collected {
		add(SingularizePhrase(v))
	}

	variants := make([]string, 0, len(set))
	for v := range set {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}

// splitOnAnd splits a normalized phrase on the standalone word "and".
// Normalize has already rewritten "&" to "and", so both spellings of a
// composite label end up here.
func splitOnAnd(phrase string) []string {
	if !strings.Contains(phrase, "and") {
		return nil
	}

	var parts []string
	var current []string
	for _, w := range strings.Fields(phrase) {
		if w == "and" {
			if len(current) > 0 {
				parts = append(parts, strings.Join(current, " "))
				current = current[:0]
			}
			continue
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		parts = append(parts, strings.Join(current, " "))
	}

	if len(parts) <= 1 {
		return nil
	}
	return parts
}
