package store

import (
	"strconv"
	"strings"
	"time"
)

// CategoryRecord is a gallery/category entry loaded from a snapshot.
// Immutable once loaded; a refresh replaces the whole snapshot.
type CategoryRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type2 string `json:"type2"` // free-text display label, often doubling as a store-name hint
	Cat1  string `json:"cat1"`
	CatID string `json:"cat_id"`

	CatName  string `json:"catname"`  // comma-separated human labels
	Cat1Name string `json:"cat1name"` // comma-separated human labels
	Image    string `json:"image"`

	// Derived at load time: lowercase, trimmed, empty-filtered.
	CatNameArray  []string `json:"catname_array"`
	Cat1NameArray []string `json:"cat1name_array"`
}

// SellerRecord is a seller/store entry loaded from a snapshot.
type SellerRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"` // used to build outward links
	StoreName string `json:"store_name"`
	Image     string `json:"image"`

	Categories     string   `json:"categories"` // raw category-id string
	CategoryTokens []string `json:"category_tokens"`
}

// ProductRecord is a product entry loaded from a snapshot.
type ProductRecord struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"` // nil when the source value does not parse
	Image string   `json:"image"`

	Tags      string   `json:"tags"`
	TagTokens []string `json:"tag_tokens"`
}

// Snapshot is one immutable view of the full catalog. Refreshes build a
// new Snapshot and swap the pointer; nothing mutates a live one.
type Snapshot struct {
	Categories []CategoryRecord
	Sellers    []SellerRecord
	Products   []ProductRecord
	LoadedAt   time.Time
}

// CategoryMatch wraps a category record with its match score and
// provenance. Transient: built per query, discarded after assembly.
type CategoryMatch struct {
	Record        *CategoryRecord
	Score         float64
	MatchedField  string
	MatchedTerm   string
	MatchedFields []string // set by the all-fields aggregate matcher
	Reason        string   // set by LLM-suggested matches
}

// SellerMatch wraps a seller record with a score and the strategy that
// produced it.
type SellerMatch struct {
	Record   *SellerRecord
	Score    float64
	Strategy string
	Reason   string
}

// ProductMatch wraps a product record with its search score.
type ProductMatch struct {
	Record *ProductRecord
	Score  float64
}

// Seller match strategies.
const (
	StrategyStoreName = "store_name"
	StrategyCategory  = "category"
	StrategyRelevance = "llm_relevance"
)

// DeriveTokens lowercases and splits a raw comma/whitespace separated
// value into trimmed non-empty tokens. Every derived array on the
// records above goes through here.
func DeriveTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ParsePrice parses a numeric price. Currency symbols, commas and
// stray whitespace are stripped first; anything unparseable yields nil
// rather than an error, downstream renders nil as "price on request".
func ParsePrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.NewReplacer("₹", "", "rs.", "", "rs", "", ",", "", " ", "").Replace(strings.ToLower(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
