// Package mapper shapes raw catalog rows (gorm models or CSV field
// maps) into the in-memory records the matching core consumes. Column
// name variance in the feeds is resolved once here through a
// declarative alias table instead of ad hoc per-field lookups.
package mapper

import (
	"strings"

	"bazaarchat-be/internal/model"
	"bazaarchat-be/pkg/store"
)

// ColumnAliases maps a canonical column name to every header spelling
// seen across the CSV feeds. Consulted once per load.
var ColumnAliases = map[string][]string{
	"id":         {"id", "ID", "Id", "gallery_id", "seller_id", "product_id"},
	"name":       {"name", "Name", "title", "product_name"},
	"type2":      {"type2", "Type2", "type_2"},
	"cat1":       {"cat1", "Cat1", "cat_1"},
	"cat_id":     {"cat_id", "catid", "catId", "CatID"},
	"catname":    {"catname", "cat_name", "CatName"},
	"cat1name":   {"cat1name", "cat1_name", "Cat1Name"},
	"image":      {"image", "Image", "img", "image_url", "imageurl"},
	"user_id":    {"user_id", "userid", "userId", "uid"},
	"store_name": {"store_name", "storename", "storeName", "shop_name", "store"},
	"categories": {"categories", "category", "cat_ids", "category_ids"},
	"price":      {"price", "Price", "mrp", "amount"},
	"tags":       {"tags", "Tags", "tag", "keywords"},
}

// ResolveColumn finds the canonical name for a raw CSV header, or ""
// when the header is unknown.
func ResolveColumn(header string) string {
	h := strings.TrimSpace(header)
	for canonical, aliases := range ColumnAliases {
		for _, a := range aliases {
			if strings.EqualFold(a, h) {
				return canonical
			}
		}
	}
	return ""
}

// CategoryFromFields builds a CategoryRecord from canonical fields.
func CategoryFromFields(fields map[string]string) store.CategoryRecord {
	return store.CategoryRecord{
		ID:            fields["id"],
		Name:          fields["name"],
		Type2:         fields["type2"],
		Cat1:          fields["cat1"],
		CatID:         fields["cat_id"],
		CatName:       fields["catname"],
		Cat1Name:      fields["cat1name"],
		Image:         fields["image"],
		CatNameArray:  store.DeriveTokens(fields["catname"]),
		Cat1NameArray: store.DeriveTokens(fields["cat1name"]),
	}
}

// SellerFromFields builds a SellerRecord from canonical fields.
func SellerFromFields(fields map[string]string) store.SellerRecord {
	return store.SellerRecord{
		ID:             fields["id"],
		UserID:         fields["user_id"],
		StoreName:      fields["store_name"],
		Image:          fields["image"],
		Categories:     fields["categories"],
		CategoryTokens: store.DeriveTokens(fields["categories"]),
	}
}

// ProductFromFields builds a ProductRecord from canonical fields.
// Unparseable prices become nil, never an error.
func ProductFromFields(fields map[string]string) store.ProductRecord {
	return store.ProductRecord{
		ID:        fields["id"],
		Name:      fields["name"],
		Price:     store.ParsePrice(fields["price"]),
		Image:     fields["image"],
		Tags:      fields["tags"],
		TagTokens: store.DeriveTokens(fields["tags"]),
	}
}

// ToCategoryRecord maps a gallery row.
func ToCategoryRecord(m *model.Gallery) store.CategoryRecord {
	return store.CategoryRecord{
		ID:            m.Id,
		Name:          m.Name,
		Type2:         m.Type2,
		Cat1:          m.Cat1,
		CatID:         m.CatId,
		CatName:       m.CatName,
		Cat1Name:      m.Cat1Name,
		Image:         m.Image,
		CatNameArray:  store.DeriveTokens(m.CatName),
		Cat1NameArray: store.DeriveTokens(m.Cat1Name),
	}
}

// ToSellerRecord maps a seller row.
func ToSellerRecord(m *model.Seller) store.SellerRecord {
	return store.SellerRecord{
		ID:             m.Id,
		UserID:         m.UserId,
		StoreName:      m.StoreName,
		Image:          m.Image,
		Categories:     m.Categories,
		CategoryTokens: store.DeriveTokens(m.Categories),
	}
}

// ToProductRecord maps a product row.
func ToProductRecord(m *model.Product) store.ProductRecord {
	return store.ProductRecord{
		ID:        m.Id,
		Name:      m.Name,
		Price:     store.ParsePrice(m.Price),
		Image:     m.Image,
		Tags:      m.Tags,
		TagTokens: store.DeriveTokens(m.Tags),
	}
}
