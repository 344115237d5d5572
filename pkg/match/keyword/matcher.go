package keyword

import (
	"sort"
	"strings"

	"bazaarchat-be/pkg/store"
	"bazaarchat-be/pkg/textmatch"
)

// Field names reported in match provenance.
const (
	FieldType2    = "type2"
	FieldName     = "name"
	FieldCatName  = "catname"
	FieldCat1Name = "cat1name"
	FieldCat1     = "cat1"
)

// Per-field acceptance thresholds for the single-best-field matcher.
// type2/name are curated labels, so a looser bar recovers more; the
// comma-separated category labels are noisy and need a tighter one.
const (
	curatedThreshold = 0.82
	looseThreshold   = 0.90
)

// Aggregate matcher tuning.
const (
	aggregateCuratedHit = 0.80
	aggregateArrayHit   = 0.85
	aggregateAccept     = 0.70
	aggregateMinToken   = 3
)

const maxMatches = 10

// stopwords never contribute as search terms.
var stopwords = map[string]bool{
	"and": true, "the": true, "for": true, "a": true, "an": true,
	"of": true, "in": true, "on": true, "to": true, "with": true,
	"from": true, "shop": true, "buy": true, "category": true,
	"categories": true,
}

// clothingGeneric keywords are too generic to discriminate between
// categories; variants containing them are skipped entirely to avoid
// false positives across unrelated records.
var clothingGeneric = []string{
	"clothing", "apparel", "wear", "shirt", "pant", "dress",
	"top", "bottom", "jacket", "sweater",
}

// SearchTerms tokenizes a user message into normalized, singularized
// search terms with stopwords and single-character tokens removed.
func SearchTerms(message string) []string {
	s := strings.ReplaceAll(strings.ToLower(message), "&", " and ")

	var terms []string
	for _, tok := range strings.Fields(s) {
		tok = textmatch.Normalize(tok)
		if len(tok) <= 1 || stopwords[tok] {
			continue
		}
		terms = append(terms, textmatch.Singularize(tok))
	}
	return terms
}

type fieldValue struct {
	field string
	value string
}

func recordFields(rec *store.CategoryRecord) []fieldValue {
	fields := make([]fieldValue, 0, 8)
	if rec.Type2 != "" {
		fields = append(fields, fieldValue{FieldType2, rec.Type2})
	}
	if rec.Name != "" {
		fields = append(fields, fieldValue{FieldName, rec.Name})
	}
	for _, part := range strings.Split(rec.CatName, ",") {
		if p := strings.TrimSpace(part); p != "" {
			fields = append(fields, fieldValue{FieldCatName, p})
		}
	}
	for _, part := range strings.Split(rec.Cat1Name, ",") {
		if p := strings.TrimSpace(part); p != "" {
			fields = append(fields, fieldValue{FieldCat1Name, p})
		}
	}
	if rec.Cat1 != "" {
		fields = append(fields, fieldValue{FieldCat1, rec.Cat1})
	}
	return fields
}

func isClothingGeneric(variant string) bool {
	for _, kw := range clothingGeneric {
		if strings.Contains(variant, kw) {
			return true
		}
	}
	return false
}

func thresholdFor(field string) float64 {
	if field == FieldType2 || field == FieldName {
		return curatedThreshold
	}
	return looseThreshold
}

// FindMatches is the per-field-threshold matcher: for every record it
// tracks the single best (term x field-variant) similarity and accepts
// the record when that best score clears the matched field's
// threshold. A record's score never decreases once a higher match has
// been seen. Results are deduplicated by id, sorted descending and
// capped at 10.
func FindMatches(message string, records []store.CategoryRecord) []store.CategoryMatch {
	terms := SearchTerms(message)
	if len(terms) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var matches []store.CategoryMatch

	for i := range records {
		rec := &records[i]

		var best store.CategoryMatch
		for _, fv := range recordFields(rec) {
			for _, variant := range textmatch.ExpandVariants(fv.value) {
				if isClothingGeneric(variant) {
					continue
				}
				for _, term := range terms {
					score := textmatch.SmartSimilarity(variant, term)
					if score > best.Score {
						best = store.CategoryMatch{
							Record:       rec,
							Score:        score,
							MatchedField: fv.field,
							MatchedTerm:  term,
						}
					}
				}
			}
		}

		if best.Record == nil || best.Score < thresholdFor(best.MatchedField) {
			continue
		}
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		matches = append(matches, best)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}

// MatchAllFields is the broader aggregate matcher: each query token is
// scored against every field of a record, the best per-token hit above
// the field threshold contributes to a sum, and the record is accepted
// when the term-count average exceeds 0.7. Records matching on several
// independent fields sort ahead of single-field hits of equal score.
//
// The orchestrator tries this one first and falls back to FindMatches;
// the two have deliberately different precision/recall tradeoffs and
// are kept separate.
func MatchAllFields(message string, records []store.CategoryRecord) []store.CategoryMatch {
	s := strings.ReplaceAll(strings.ToLower(message), "&", " and ")
	var terms []string
	for _, tok := range strings.Fields(s) {
		tok = textmatch.Normalize(tok)
		if len(tok) < aggregateMinToken || stopwords[tok] {
			continue
		}
		terms = append(terms, textmatch.Singularize(tok))
	}
	if len(terms) == 0 {
		return nil
	}

	var matches []store.CategoryMatch
	for i := range records {
		rec := &records[i]
		fields := recordFields(rec)

		total := 0.0
		matchedFields := make(map[string]bool)

		for _, term := range terms {
			bestScore := 0.0
			bestField := ""
			for _, fv := range fields {
				hit := aggregateArrayHit
				if fv.field == FieldType2 || fv.field == FieldName {
					hit = aggregateCuratedHit
				}
				for _, variant := range textmatch.ExpandVariants(fv.value) {
					if isClothingGeneric(variant) {
						continue
					}
					score := textmatch.SmartSimilarity(variant, term)
					if score >= hit && score > bestScore {
						bestScore = score
						bestField = fv.field
					}
				}
			}
			if bestField != "" {
				total += bestScore
				matchedFields[bestField] = true
			}
		}

		avg := total / float64(len(terms))
		if avg <= aggregateAccept {
			continue
		}

		fieldList := make([]string, 0, len(matchedFields))
		for f := range matchedFields {
			fieldList = append(fieldList, f)
		}
		sort.Strings(fieldList)

		matches = append(matches, store.CategoryMatch{
			Record:        rec,
			Score:         avg,
			MatchedFields: fieldList,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return len(matches[i].MatchedFields) > len(matches[j].MatchedFields)
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches
}
