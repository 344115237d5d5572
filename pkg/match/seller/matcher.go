package seller

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bazaarchat-be/pkg/match/gender"
	"bazaarchat-be/pkg/store"
	"bazaarchat-be/pkg/textmatch"
)

const (
	storeNameThreshold = 0.82
	relevanceThreshold = 0.70
	homeScoreThreshold = 0.60

	maxPerStrategy = 10
	maxLLMPool     = 20

	defaultCallTimeout = 8 * time.Second
)

// genderPrefixes pollute store-name comparison when they lead a
// category's type2 label ("Women Kurta" vs store "Ethnic House").
var genderPrefixes = map[string]bool{
	"men": true, "mens": true, "man": true,
	"women": true, "womens": true, "woman": true, "ladies": true,
	"kid": true, "kids": true, "child": true, "children": true,
}

// homeDecorSynonyms narrow candidates when the home-decor gate fires.
// Category taxonomies for home goods are noisy, so the set is broad.
var homeDecorSynonyms = []string{
	"home", "decor", "furniture", "furnishing", "lamp", "vase",
	"clock", "cushion", "showpiece", "curtain", "candle", "planter",
	"frame", "wall",
}

// RelevanceScorer is the external LLM collaborator that estimates how
// likely a seller carries what the user wants.
type RelevanceScorer interface {
	ScoreSellerRelevance(ctx context.Context, query string, rec *store.SellerRecord) (score float64, reason string, err error)
}

// HomeClassifier is the external LLM collaborator gating the home
// filtering behavior.
type HomeClassifier interface {
	ClassifyHomeDecor(ctx context.Context, query string) (score float64, reasoning string, err error)
}

// HomeClassification is carried on the result for downstream display
// and debugging.
type HomeClassification struct {
	IsHome    bool    `json:"is_home"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Result bundles the three strategy outputs. Deduplication across the
// lists happens at response-assembly time, not here.
type Result struct {
	ByStoreName []store.SellerMatch
	ByCategory  []store.SellerMatch
	ByRelevance []store.SellerMatch
	Home        HomeClassification
}

// Matcher runs the three seller strategies against one snapshot.
type Matcher struct {
	scorer      RelevanceScorer
	homeGate    HomeClassifier
	callTimeout time.Duration
}

func NewMatcher(scorer RelevanceScorer, homeGate HomeClassifier) *Matcher {
	return &Matcher{
		scorer:      scorer,
		homeGate:    homeGate,
		callTimeout: defaultCallTimeout,
	}
}

// Match runs the full seller pipeline: home-decor gate, the two
// deterministic strategies, then LLM relevance scoring over a bounded
// candidate pool.
func (m *Matcher) Match(
	ctx context.Context,
	message string,
	categories []store.CategoryMatch,
	sellers []store.SellerRecord,
	genderFilter string,
) Result {
	res := Result{}

	if m.homeGate != nil {
		score, reasoning, err := m.homeGate.ClassifyHomeDecor(ctx, message)
		if err == nil {
			res.Home = HomeClassification{
				IsHome:    score >= homeScoreThreshold,
				Score:     score,
				Reasoning: reasoning,
			}
		}
	}

	pool := sellers
	if res.Home.IsHome {
		pool = filterHomeDecor(sellers)
	}

	res.ByStoreName = MatchByStoreName(categories, pool, genderFilter)
	res.ByCategory = MatchByCategoryTokens(message, pool, genderFilter)

	llmPool := unionRecords(res.ByStoreName, res.ByCategory)
	if len(llmPool) == 0 {
		fallback := pool
		if len(fallback) > maxLLMPool {
			fallback = fallback[:maxLLMPool]
		}
		for i := range fallback {
			llmPool = append(llmPool, &fallback[i])
		}
	}
	if len(llmPool) > maxLLMPool {
		llmPool = llmPool[:maxLLMPool]
	}
	res.ByRelevance = m.scoreRelevance(ctx, message, llmPool)

	return res
}

// MatchByStoreName compares seller store names against the matched
// categories' type2 labels with the leading gender tokens stripped.
// Sellers asserting a different gender than the active filter are
// excluded; sellers with no gender tag never are.
func MatchByStoreName(categories []store.CategoryMatch, sellers []store.SellerRecord, genderFilter string) []store.SellerMatch {
	best := make(map[string]store.SellerMatch)

	for _, cat := range categories {
		if cat.Record == nil || cat.Record.Type2 == "" {
			continue
		}
		stripped := StripGenderPrefix(cat.Record.Type2)
		if stripped == "" {
			continue
		}

		for i := range sellers {
			rec := &sellers[i]
			if excludedByGender(rec, genderFilter) {
				continue
			}
			score := textmatch.SmartSimilarity(rec.StoreName, stripped)
			if score < storeNameThreshold {
				continue
			}
			if prev, ok := best[rec.ID]; !ok || score > prev.Score {
				best[rec.ID] = store.SellerMatch{
					Record:   rec,
					Score:    score,
					Strategy: store.StrategyStoreName,
				}
			}
		}
	}

	return topMatches(best, maxPerStrategy)
}

// MatchByCategoryTokens keeps a seller when any of its category-id
// tokens substring-matches (either direction) any message token.
func MatchByCategoryTokens(message string, sellers []store.SellerRecord, genderFilter string) []store.SellerMatch {
	msgTokens := messageTokens(message)
	if len(msgTokens) == 0 {
		return nil
	}

	best := make(map[string]store.SellerMatch)
	for i := range sellers {
		rec := &sellers[i]
		if excludedByGender(rec, genderFilter) {
			continue
		}

		for _, ct := range rec.CategoryTokens {
			matched := false
			score := 0.0
			for _, mt := range msgTokens {
				switch {
				case ct == mt:
					matched, score = true, 1.0
				case strings.Contains(ct, mt) || strings.Contains(mt, ct):
					matched = true
					if score < 0.9 {
						score = 0.9
					}
				}
			}
			if matched {
				if prev, ok := best[rec.ID]; !ok || score > prev.Score {
					best[rec.ID] = store.SellerMatch{
						Record:   rec,
						Score:    score,
						Strategy: store.StrategyCategory,
					}
				}
			}
		}
	}

	return topMatches(best, maxPerStrategy)
}

// scoreRelevance fans out one LLM scoring call per candidate with a
// bounded per-call timeout, waits for all of them and keeps candidates
// above the relevance threshold. A failed or timed-out call yields a
// zero score for that candidate and never aborts the batch.
func (m *Matcher) scoreRelevance(ctx context.Context, query string, pool []*store.SellerRecord) []store.SellerMatch {
	if m.scorer == nil || len(pool) == 0 {
		return nil
	}

	type scored struct {
		rec    *store.SellerRecord
		score  float64
		reason string
	}

	results := make([]scored, len(pool))
	var wg sync.WaitGroup
	for i, rec := range pool {
		wg.Add(1)
		go func(i int, rec *store.SellerRecord) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
			defer cancel()
			score, reason, err := m.scorer.ScoreSellerRelevance(callCtx, query, rec)
			if err != nil {
				results[i] = scored{rec: rec}
				return
			}
			results[i] = scored{rec: rec, score: score, reason: reason}
		}(i, rec)
	}
	wg.Wait()

	var matches []store.SellerMatch
	for _, r := range results {
		if r.score > relevanceThreshold {
			matches = append(matches, store.SellerMatch{
				Record:   r.rec,
				Score:    r.score,
				Strategy: store.StrategyRelevance,
				Reason:   r.reason,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// StripGenderPrefix drops leading gender tokens from a normalized
// label. "Women Kurta" becomes "kurta"; a label that is nothing but
// gender tokens collapses to the empty string.
func StripGenderPrefix(label string) string {
	words := strings.Fields(textmatch.Normalize(label))
	i := 0
	for i < len(words) && genderPrefixes[words[i]] {
		i++
	}
	return strings.Join(words[i:], " ")
}

func excludedByGender(rec *store.SellerRecord, genderFilter string) bool {
	if genderFilter == "" {
		return false
	}
	asserted := gender.Detect(rec.Categories + " " + strings.Join(rec.CategoryTokens, " "))
	if len(asserted) == 0 {
		return false
	}
	return !asserted[genderFilter]
}

func filterHomeDecor(sellers []store.SellerRecord) []store.SellerRecord {
	var filtered []store.SellerRecord
	for _, rec := range sellers {
		blob := strings.ToLower(rec.Categories + " " + rec.StoreName)
		for _, syn := range homeDecorSynonyms {
			if strings.Contains(blob, syn) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}

func unionRecords(lists ...[]store.SellerMatch) []*store.SellerRecord {
	seen := make(map[string]bool)
	var out []*store.SellerRecord
	for _, list := range lists {
		for _, m := range list {
			if m.Record == nil || seen[m.Record.ID] {
				continue
			}
			seen[m.Record.ID] = true
			out = append(out, m.Record)
		}
	}
	return out
}

func topMatches(best map[string]store.SellerMatch, limit int) []store.SellerMatch {
	matches := make([]store.SellerMatch, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func messageTokens(message string) []string {
	s := strings.ReplaceAll(strings.ToLower(message), "&", " ")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	var tokens []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
