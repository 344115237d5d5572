// Package assistant holds the top-level conversation pipeline: intent
// classification, the deterministic matching chain, LLM fallbacks and
// response assembly.
package assistant

import (
	"context"
	"strconv"
	"strings"

	"bazaarchat-be/internal/constant"
	"bazaarchat-be/pkg/classifier"
	"bazaarchat-be/pkg/llm"
	"bazaarchat-be/pkg/match/gender"
	"bazaarchat-be/pkg/match/keyword"
	"bazaarchat-be/pkg/match/product"
	"bazaarchat-be/pkg/match/seller"
	"bazaarchat-be/pkg/store"
)

const (
	maxListedResults = 5

	// Messages at or below these sizes are treated as likely
	// follow-ups that need conversation context to resolve.
	shortMessageTokens = 3
	shortMessageRunes  = 12
)

// IntentClassifier is the slice of the classifier the orchestrator
// calls directly. The seller matcher owns the other two collaborators.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, message string, catalog []store.CategoryRecord) classifier.IntentResult
	MatchCategoriesWithHistory(ctx context.Context, query string, history []store.ChatTurn, catalog []store.CategoryRecord) classifier.FallbackResult
}

// SellerMatcher runs the three seller strategies.
type SellerMatcher interface {
	Match(ctx context.Context, message string, categories []store.CategoryMatch, sellers []store.SellerRecord, genderFilter string) seller.Result
}

// ILogger is the subset of the app logger used here.
type ILogger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

// ProductView is a product entry in the assembled response.
type ProductView struct {
	Id    string   `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"` // nil renders as "price on request"
	Link  string   `json:"link"`
	Image string   `json:"image"`
	Score float64  `json:"score"`
}

// GalleryView is a category entry in the assembled response.
type GalleryView struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Link          string   `json:"link"`
	Image         string   `json:"image"`
	Score         float64  `json:"score"`
	MatchedField  string   `json:"matched_field,omitempty"`
	MatchedTerm   string   `json:"matched_term,omitempty"`
	MatchedFields []string `json:"matched_fields,omitempty"`
	Reason        string   `json:"reason,omitempty"`
}

// SellerView is a seller entry in the assembled response.
type SellerView struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	Image    string  `json:"image"`
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy"`
	Reason   string  `json:"reason,omitempty"`
}

// Response is the structured answer returned to the caller.
type Response struct {
	Query             string                     `json:"query"`
	Intent            string                     `json:"intent"`
	Confidence        float64                    `json:"confidence"`
	Summary           string                     `json:"summary"`
	NeedsVerification bool                       `json:"needs_verification,omitempty"`
	Gender            string                     `json:"gender,omitempty"`
	Products          []ProductView              `json:"products"`
	Galleries         []GalleryView              `json:"galleries"`
	Sellers           []SellerView               `json:"sellers"`
	HomeDecor         *seller.HomeClassification `json:"home_decor,omitempty"`
}

// Orchestrator chains the classification and matching stages for one
// message. It reads the session but never mutates it; history updates
// belong to the owning service.
type Orchestrator struct {
	cls      IntentClassifier
	sellers  SellerMatcher
	provider llm.LLMProvider
	logger   ILogger
	baseURL  string
}

func NewOrchestrator(
	cls IntentClassifier,
	sellers SellerMatcher,
	provider llm.LLMProvider,
	logger ILogger,
	baseURL string,
) *Orchestrator {
	return &Orchestrator{
		cls:      cls,
		sellers:  sellers,
		provider: provider,
		logger:   logger,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Handle runs the full pipeline for one user message against the
// current catalog snapshot.
func (o *Orchestrator) Handle(ctx context.Context, sess *store.Session, message string, snap *store.Snapshot) *Response {
	res := o.cls.ClassifyIntent(ctx, message, snap.Categories)

	resp := &Response{
		Query:      message,
		Intent:     res.Intent,
		Confidence: res.Confidence,
		Products:   []ProductView{},
		Galleries:  []GalleryView{},
		Sellers:    []SellerView{},
	}

	switch res.Intent {
	case classifier.IntentProduct:
		o.handleProduct(ctx, sess, message, snap, res, resp)
	case classifier.IntentCompany:
		resp.Summary = o.companyAnswer(ctx, message)
	default:
		if !sess.Authenticated {
			resp.NeedsVerification = true
			resp.Summary = constant.VerificationPrompt
			return resp
		}
		resp.Summary = fixedReply(res.Intent)
	}

	return resp
}

func (o *Orchestrator) handleProduct(
	ctx context.Context,
	sess *store.Session,
	message string,
	snap *store.Snapshot,
	res classifier.IntentResult,
	resp *Response,
) {
	// Aggregate matcher first; per-field-threshold matcher as the
	// deterministic fallback. The two have different precision/recall
	// tradeoffs and this ordering is deliberate.
	cats := keyword.MatchAllFields(message, snap.Categories)
	if len(cats) == 0 {
		cats = keyword.FindMatches(message, snap.Categories)
	}

	// Explicit LLM-suggested matches take precedence over both
	// heuristic matchers.
	if len(res.Matches) > 0 {
		if resolved := resolveHints(res.Matches, snap.Categories); len(resolved) > 0 {
			cats = resolved
		}
	}

	// Short or unresolved messages lean on conversation context.
	if len(cats) == 0 || isShortMessage(message) {
		fb := o.cls.MatchCategoriesWithHistory(ctx, message, sess.History, snap.Categories)
		if resolved := resolveHints(fb.Matches, snap.Categories); len(resolved) > 0 {
			cats = resolved
		}
	}

	genderFilter := gender.Infer(cats)
	sellerRes := o.sellers.Match(ctx, message, cats, snap.Sellers, genderFilter)
	prods := product.Search(message, snap.Products)

	resp.Gender = genderFilter
	resp.Galleries = o.galleryViews(cats)
	resp.Sellers = o.sellerViews(sellerRes)
	resp.Products = o.productViews(prods)
	if sellerRes.Home.Score > 0 {
		home := sellerRes.Home
		resp.HomeDecor = &home
	}
	resp.Summary = buildSummary(message, resp)

	if o.logger != nil {
		o.logger.Info("orchestrator", "product pipeline complete", map[string]interface{}{
			"query":      message,
			"gender":     genderFilter,
			"categories": len(resp.Galleries),
			"sellers":    len(resp.Sellers),
			"products":   len(resp.Products),
		})
	}
}

func (o *Orchestrator) companyAnswer(ctx context.Context, message string) string {
	answer, err := o.provider.Generate(ctx, constant.CompanyPromptV1+message, llm.WithTemperature(0.4))
	if err != nil || strings.TrimSpace(answer) == "" {
		if o.logger != nil && err != nil {
			o.logger.Warn("orchestrator", "company answer failed", map[string]interface{}{"error": err.Error()})
		}
		return constant.CompanyFallbackReply
	}
	return strings.TrimSpace(answer)
}

func fixedReply(intent string) string {
	switch intent {
	case classifier.IntentSeller:
		return constant.SellerIntentReply
	case classifier.IntentInvestors:
		return constant.InvestorsIntentReply
	case classifier.IntentAgent:
		return constant.AgentIntentReply
	case classifier.IntentVoiceAI:
		return constant.VoiceAIIntentReply
	}
	return constant.CompanyFallbackReply
}

// resolveHints maps LLM category hints back onto snapshot records, by
// id first and case-insensitive type2 second. Hints that resolve to
// nothing are dropped.
func resolveHints(hints []classifier.CategoryHint, catalog []store.CategoryRecord) []store.CategoryMatch {
	var matches []store.CategoryMatch
	seen := make(map[string]bool)

	for _, hint := range hints {
		var rec *store.CategoryRecord
		for i := range catalog {
			if hint.ID != "" && catalog[i].ID == hint.ID {
				rec = &catalog[i]
				break
			}
			if hint.Type2 != "" && strings.EqualFold(catalog[i].Type2, hint.Type2) {
				rec = &catalog[i]
				break
			}
		}
		if rec == nil || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true

		score := hint.Score
		if score <= 0 {
			score = 0.9
		}
		matches = append(matches, store.CategoryMatch{
			Record: rec,
			Score:  score,
			Reason: hint.Reason,
		})
	}
	return matches
}

func isShortMessage(message string) bool {
	trimmed := strings.TrimSpace(message)
	if len([]rune(trimmed)) <= shortMessageRunes {
		return true
	}
	return len(strings.Fields(trimmed)) <= shortMessageTokens
}

func (o *Orchestrator) galleryViews(cats []store.CategoryMatch) []GalleryView {
	views := make([]GalleryView, 0, len(cats))
	seen := make(map[string]bool)
	for _, m := range cats {
		if m.Record == nil || seen[m.Record.ID] {
			continue
		}
		seen[m.Record.ID] = true

		name := m.Record.Name
		if name == "" {
			name = m.Record.Type2
		}
		views = append(views, GalleryView{
			Id:            m.Record.ID,
			Name:          name,
			Link:          o.baseURL + "/category/" + m.Record.ID,
			Image:         o.imageURL(m.Record.Image),
			Score:         m.Score,
			MatchedField:  m.MatchedField,
			MatchedTerm:   m.MatchedTerm,
			MatchedFields: m.MatchedFields,
			Reason:        m.Reason,
		})
		if len(views) == maxListedResults {
			break
		}
	}
	return views
}

func (o *Orchestrator) sellerViews(res seller.Result) []SellerView {
	views := make([]SellerView, 0, maxListedResults)
	seen := make(map[string]bool)

	// Relevance-scored results carry an LLM reason; list them first.
	for _, list := range [][]store.SellerMatch{res.ByRelevance, res.ByStoreName, res.ByCategory} {
		for _, m := range list {
			if m.Record == nil || seen[m.Record.ID] {
				continue
			}
			seen[m.Record.ID] = true
			views = append(views, SellerView{
				Id:       m.Record.ID,
				Name:     m.Record.StoreName,
				Link:     o.baseURL + "/store/" + m.Record.UserID,
				Image:    o.imageURL(m.Record.Image),
				Score:    m.Score,
				Strategy: m.Strategy,
				Reason:   m.Reason,
			})
			if len(views) == maxListedResults {
				return views
			}
		}
	}
	return views
}

func (o *Orchestrator) productViews(prods []store.ProductMatch) []ProductView {
	views := make([]ProductView, 0, len(prods))
	seen := make(map[string]bool)
	for _, m := range prods {
		if m.Record == nil || seen[m.Record.ID] {
			continue
		}
		seen[m.Record.ID] = true
		views = append(views, ProductView{
			Id:    m.Record.ID,
			Name:  m.Record.Name,
			Price: m.Record.Price,
			Link:  o.baseURL + "/product/" + m.Record.ID,
			Image: o.imageURL(m.Record.Image),
			Score: m.Score,
		})
		if len(views) == maxListedResults {
			break
		}
	}
	return views
}

func (o *Orchestrator) imageURL(image string) string {
	if strings.TrimSpace(image) == "" {
		return o.baseURL + constant.PlaceholderImagePath
	}
	return image
}

func buildSummary(message string, resp *Response) string {
	if len(resp.Products) == 0 && len(resp.Galleries) == 0 && len(resp.Sellers) == 0 {
		return "Sorry, I couldn't find anything matching \"" + message + "\". Try a different word or a nearby category?"
	}

	var parts []string
	if n := len(resp.Products); n > 0 {
		parts = append(parts, plural(n, "product"))
	}
	if n := len(resp.Galleries); n > 0 {
		parts = append(parts, plural(n, "category"))
	}
	if n := len(resp.Sellers); n > 0 {
		parts = append(parts, plural(n, "store"))
	}
	return "Found " + strings.Join(parts, ", ") + " for \"" + message + "\"."
}

func plural(n int, noun string) string {
	s := noun
	if n != 1 {
		if noun == "category" {
			s = "categories"
		} else {
			s = noun + "s"
		}
	}
	return strconv.Itoa(n) + " " + s
}
