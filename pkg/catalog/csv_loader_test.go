package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCategoriesFromFile(t *testing.T) {
	path := writeFeed(t, "galleries.csv",
		"Gallery_ID,type2,cat_name,ignored_column\n"+
			"c1,Women Ethnic Wear,\"kurta, saree\",junk\n"+
			",Orphan Row,foo,junk\n"+
			"c2,Home Decor,lamps,junk\n")

	loader := NewCSVLoader()
	records, err := loader.LoadCategories(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows without an id must be skipped, got %d records", len(records))
	}
	if records[0].ID != "c1" || records[0].Type2 != "Women Ethnic Wear" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if len(records[0].CatNameArray) != 2 {
		t.Fatalf("catname should be tokenized, got %v", records[0].CatNameArray)
	}
}

func TestLoadProductsPriceFallsBackToNil(t *testing.T) {
	path := writeFeed(t, "products.csv",
		"product_id,product_name,MRP,tags\n"+
			"p1,Red Kurta,₹1299,\"kurta,red\"\n"+
			"p2,Blue Kurta,contact seller,kurta\n")

	loader := NewCSVLoader()
	records, err := loader.LoadProducts(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 products, got %d", len(records))
	}
	if records[0].Price == nil || *records[0].Price != 1299 {
		t.Fatalf("expected 1299, got %v", records[0].Price)
	}
	if records[1].Price != nil {
		t.Fatalf("unparseable price must load as nil, got %v", records[1].Price)
	}
}

func TestLoadSellersOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("seller_id,user_id,shop_name,categories\n" +
			"s1,u1,Style Studio,\"kurti,saree\"\n"))
	}))
	defer srv.Close()

	loader := NewCSVLoader()
	records, err := loader.LoadSellers(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].StoreName != "Style Studio" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if len(records[0].CategoryTokens) != 2 {
		t.Fatalf("categories should be tokenized, got %v", records[0].CategoryTokens)
	}
}

func TestLoadFeedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := NewCSVLoader()
	if _, err := loader.LoadCategories(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on non-200 feed")
	}
	if _, err := loader.LoadCategories(context.Background(), "/nonexistent/feed.csv"); err == nil {
		t.Fatal("expected error on missing file")
	}
}

func TestLoadShortRowsSkipped(t *testing.T) {
	path := writeFeed(t, "galleries.csv",
		"id,type2,catname\n"+
			"c1,Women Ethnic Wear\n"+
			"c2,Home Decor,lamps\n")

	loader := NewCSVLoader()
	records, err := loader.LoadCategories(context.Background(), path)
	if err != nil {
		t.Fatalf("short rows must not be fatal: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both rows, got %d", len(records))
	}
	if records[0].CatName != "" {
		t.Fatalf("missing trailing column should stay empty, got %q", records[0].CatName)
	}
}
