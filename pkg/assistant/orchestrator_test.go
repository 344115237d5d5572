package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bazaarchat-be/internal/constant"
	"bazaarchat-be/pkg/classifier"
	"bazaarchat-be/pkg/llm"
	"bazaarchat-be/pkg/match/seller"
	"bazaarchat-be/pkg/store"
)

type fakeClassifier struct {
	intent   classifier.IntentResult
	fallback classifier.FallbackResult
}

func (f *fakeClassifier) ClassifyIntent(ctx context.Context, message string, catalog []store.CategoryRecord) classifier.IntentResult {
	return f.intent
}

func (f *fakeClassifier) MatchCategoriesWithHistory(ctx context.Context, query string, history []store.ChatTurn, catalog []store.CategoryRecord) classifier.FallbackResult {
	return f.fallback
}

type fakeSellerMatcher struct {
	result seller.Result
}

func (f *fakeSellerMatcher) Match(ctx context.Context, message string, categories []store.CategoryMatch, sellers []store.SellerRecord, genderFilter string) seller.Result {
	return f.result
}

type fakeProvider struct {
	response string
	err      error
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func snapshot() *store.Snapshot {
	price := 799.0
	return &store.Snapshot{
		Categories: []store.CategoryRecord{
			{ID: "c1", Type2: "Women Ethnic Wear", Name: "Ethnic", CatName: "kurta, kurti",
				CatNameArray: []string{"kurta", "kurti"}},
		},
		Sellers: []store.SellerRecord{
			{ID: "s1", StoreName: "Ethnic Wear", Categories: "kurta,kurti",
				CategoryTokens: []string{"kurta", "kurti"}},
		},
		Products: []store.ProductRecord{
			{ID: "p1", Name: "Red Cotton Kurta", Price: &price, Tags: "kurta,red",
				TagTokens: []string{"kurta", "red"}},
		},
	}
}

func productIntent() classifier.IntentResult {
	return classifier.IntentResult{
		Intent:     classifier.IntentProduct,
		Confidence: 0.92,
		Matches:    []classifier.CategoryHint{{ID: "c1", Score: 0.9, Reason: "ethnic wear"}},
	}
}

func sellerResult() seller.Result {
	rec := &store.SellerRecord{ID: "s1", StoreName: "Ethnic Wear"}
	return seller.Result{
		ByRelevance: []store.SellerMatch{{Record: rec, Score: 0.9, Strategy: store.StrategyRelevance}},
	}
}

func TestHandleProductPipeline(t *testing.T) {
	o := NewOrchestrator(
		&fakeClassifier{intent: productIntent()},
		&fakeSellerMatcher{result: sellerResult()},
		&fakeProvider{response: "ok"},
		nil,
		"https://shop.example.com",
	)

	sess := &store.Session{ID: "guest-1"}
	resp := o.Handle(context.Background(), sess, "red kurta for women", snapshot())

	if resp.Intent != classifier.IntentProduct {
		t.Fatalf("expected product intent, got %q", resp.Intent)
	}
	if resp.Gender != "women" {
		t.Fatalf("expected women gender filter, got %q", resp.Gender)
	}
	if len(resp.Galleries) != 1 || resp.Galleries[0].Id != "c1" {
		t.Fatalf("expected gallery c1, got %+v", resp.Galleries)
	}
	if len(resp.Sellers) != 1 || resp.Sellers[0].Id != "s1" {
		t.Fatalf("expected seller s1, got %+v", resp.Sellers)
	}
	if len(resp.Products) == 0 || resp.Products[0].Id != "p1" {
		t.Fatalf("expected product p1, got %+v", resp.Products)
	}
	if resp.Summary == "" {
		t.Fatal("expected a non-empty summary")
	}
}

func TestHandleCompanyIntentUsesLLM(t *testing.T) {
	o := NewOrchestrator(
		&fakeClassifier{intent: classifier.IntentResult{Intent: classifier.IntentCompany}},
		&fakeSellerMatcher{},
		&fakeProvider{response: "We connect you with nearby stores."},
		nil,
		"",
	)

	resp := o.Handle(context.Background(), &store.Session{ID: "guest-1"}, "what is this app", &store.Snapshot{})
	if resp.Summary != "We connect you with nearby stores." {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}
}

func TestHandleCompanyIntentFallsBack(t *testing.T) {
	o := NewOrchestrator(
		&fakeClassifier{intent: classifier.IntentResult{Intent: classifier.IntentCompany}},
		&fakeSellerMatcher{},
		&fakeProvider{err: errors.New("down")},
		nil,
		"",
	)

	resp := o.Handle(context.Background(), &store.Session{ID: "guest-1"}, "what is this app", &store.Snapshot{})
	if resp.Summary != constant.CompanyFallbackReply {
		t.Fatalf("expected canned fallback, got %q", resp.Summary)
	}
}

func TestHandleGatedIntentRequiresVerification(t *testing.T) {
	o := NewOrchestrator(
		&fakeClassifier{intent: classifier.IntentResult{Intent: classifier.IntentSeller}},
		&fakeSellerMatcher{},
		&fakeProvider{},
		nil,
		"",
	)

	resp := o.Handle(context.Background(), &store.Session{ID: "guest-1"}, "i want to sell", &store.Snapshot{})
	if !resp.NeedsVerification {
		t.Fatal("unverified session must be asked to verify")
	}
	if resp.Summary != constant.VerificationPrompt {
		t.Fatalf("expected verification prompt, got %q", resp.Summary)
	}

	verified := &store.Session{ID: "guest-1", Authenticated: true}
	resp = o.Handle(context.Background(), verified, "i want to sell", &store.Snapshot{})
	if resp.NeedsVerification {
		t.Fatal("verified session should pass the gate")
	}
	if resp.Summary != constant.SellerIntentReply {
		t.Fatalf("expected seller reply, got %q", resp.Summary)
	}
}

func TestProductViewsUsePlaceholderImage(t *testing.T) {
	o := NewOrchestrator(
		&fakeClassifier{intent: productIntent()},
		&fakeSellerMatcher{},
		&fakeProvider{},
		nil,
		"https://shop.example.com",
	)

	resp := o.Handle(context.Background(), &store.Session{ID: "guest-1"}, "red kurta", snapshot())
	if len(resp.Products) == 0 {
		t.Fatal("expected products")
	}
	if !strings.Contains(resp.Products[0].Image, constant.PlaceholderImagePath) {
		t.Fatalf("records without images should use the placeholder, got %q", resp.Products[0].Image)
	}
}
