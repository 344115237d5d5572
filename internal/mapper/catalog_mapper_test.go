package mapper

import (
	"testing"

	"bazaarchat-be/internal/model"
)

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"id", "id"},
		{"Gallery_ID", "id"},
		{"  store_name ", "store_name"},
		{"shop_name", "store_name"},
		{"MRP", "price"},
		{"keywords", "tags"},
		{"imageurl", "image"},
		{"unknown_column", ""},
	}

	for _, tt := range tests {
		if got := ResolveColumn(tt.header); got != tt.want {
			t.Errorf("ResolveColumn(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestCategoryFromFieldsDerivesTokens(t *testing.T) {
	rec := CategoryFromFields(map[string]string{
		"id":      "c1",
		"type2":   "Women Ethnic Wear",
		"catname": "kurta, saree",
	})

	if rec.ID != "c1" || rec.Type2 != "Women Ethnic Wear" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.CatNameArray) != 2 || rec.CatNameArray[0] != "kurta" || rec.CatNameArray[1] != "saree" {
		t.Fatalf("catname should be tokenized, got %v", rec.CatNameArray)
	}
}

func TestProductFromFieldsPriceHandling(t *testing.T) {
	withPrice := ProductFromFields(map[string]string{"id": "p1", "name": "Kurta", "price": "₹1,299"})
	if withPrice.Price == nil || *withPrice.Price != 1299 {
		t.Fatalf("expected 1299, got %v", withPrice.Price)
	}

	noPrice := ProductFromFields(map[string]string{"id": "p2", "name": "Kurta", "price": "call us"})
	if noPrice.Price != nil {
		t.Fatalf("unparseable price must map to nil, got %v", noPrice.Price)
	}
}

func TestToSellerRecord(t *testing.T) {
	rec := ToSellerRecord(&model.Seller{
		Id:         "s1",
		UserId:     "u1",
		StoreName:  "Style Studio",
		Categories: "kurti,saree",
	})

	if rec.ID != "s1" || rec.UserID != "u1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.CategoryTokens) != 2 {
		t.Fatalf("categories should be tokenized, got %v", rec.CategoryTokens)
	}
}

func TestToProductRecordNilPrice(t *testing.T) {
	rec := ToProductRecord(&model.Product{Id: "p1", Name: "Vase", Price: "n/a"})
	if rec.Price != nil {
		t.Fatalf("expected nil price, got %v", rec.Price)
	}
}
