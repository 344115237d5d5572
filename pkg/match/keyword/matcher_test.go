package keyword

import (
	"testing"

	"bazaarchat-be/pkg/store"
)

func record(id, name, type2, catname, cat1name string) store.CategoryRecord {
	return store.CategoryRecord{
		ID:            id,
		Name:          name,
		Type2:         type2,
		CatName:       catname,
		Cat1Name:      cat1name,
		CatNameArray:  store.DeriveTokens(catname),
		Cat1NameArray: store.DeriveTokens(cat1name),
	}
}

func TestSearchTermsDropsStopwords(t *testing.T) {
	terms := SearchTerms("shoes for the women")
	for _, term := range terms {
		if term == "for" || term == "the" {
			t.Fatalf("stopword leaked into terms: %v", terms)
		}
	}
}

func TestFindMatchesStoreNameAsCuratedField(t *testing.T) {
	// Only type2 carries the brand, so the hit must come from there.
	records := []store.CategoryRecord{
		record("1", "Footwear", "Nike Store", "sneakers, laces", "sports"),
		record("2", "Kitchen", "Home Mart", "utensils", "home"),
	}

	matches := FindMatches("nike shoes", records)
	if len(matches) == 0 {
		t.Fatal("expected a match for nike shoes")
	}
	if matches[0].Record.ID != "1" {
		t.Fatalf("expected record 1 first, got %s", matches[0].Record.ID)
	}
	if matches[0].MatchedField != FieldType2 {
		t.Fatalf("expected type2 provenance, got %q", matches[0].MatchedField)
	}
	if matches[0].Score < 0.82 {
		t.Fatalf("curated field match below threshold: %f", matches[0].Score)
	}
}

func TestFindMatchesNoFalsePositive(t *testing.T) {
	records := []store.CategoryRecord{
		record("1", "Footwear", "Nike Store", "shoes", "sports"),
	}

	matches := FindMatches("wooden table lamp", records)
	if len(matches) != 0 {
		t.Fatalf("expected no matches for unrelated query, got %d", len(matches))
	}
}

func TestFindMatchesCapsResults(t *testing.T) {
	var records []store.CategoryRecord
	for i := 0; i < 25; i++ {
		records = append(records, record(string(rune('a'+i)), "Shoes", "Shoe World", "shoes", "footwear"))
	}

	matches := FindMatches("shoes", records)
	if len(matches) > 10 {
		t.Fatalf("expected at most 10 matches, got %d", len(matches))
	}
}

func TestMatchAllFieldsAggregates(t *testing.T) {
	records := []store.CategoryRecord{
		record("1", "Ethnic Wear", "Kurta House", "kurta, kurti", "women clothing"),
		record("2", "Electronics", "Gadget Hub", "phones", "electronics"),
	}

	matches := MatchAllFields("women kurta", records)
	if len(matches) == 0 {
		t.Fatal("expected aggregate match for women kurta")
	}
	if matches[0].Record.ID != "1" {
		t.Fatalf("expected record 1, got %s", matches[0].Record.ID)
	}
	if len(matches[0].MatchedFields) == 0 {
		t.Fatal("aggregate match should report which fields hit")
	}
}

func TestMatchAllFieldsRejectsLowAverage(t *testing.T) {
	records := []store.CategoryRecord{
		record("1", "Ethnic Wear", "Kurta House", "kurta", "clothing"),
	}

	// Only one of three meaningful terms can hit; the average stays low.
	matches := MatchAllFields("kurta refrigerator telescope", records)
	if len(matches) != 0 {
		t.Fatalf("expected no matches when average similarity is low, got %d", len(matches))
	}
}
