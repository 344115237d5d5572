package contract

import (
	"context"

	"bazaarchat-be/internal/model"
)

type GalleryRepository interface {
	Upsert(ctx context.Context, gallery *model.Gallery) error
	Delete(ctx context.Context, id string) error
	FindById(ctx context.Context, id string) (*model.Gallery, error)
	FindAll(ctx context.Context) ([]*model.Gallery, error)
}

type SellerRepository interface {
	Upsert(ctx context.Context, seller *model.Seller) error
	Delete(ctx context.Context, id string) error
	FindById(ctx context.Context, id string) (*model.Seller, error)
	FindAll(ctx context.Context) ([]*model.Seller, error)
}

type ProductRepository interface {
	Upsert(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	FindById(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context) ([]*model.Product, error)
}
