package implementation

import (
	"context"
	"errors"

	"bazaarchat-be/internal/model"
	"bazaarchat-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GalleryRepositoryImpl struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) contract.GalleryRepository {
	return &GalleryRepositoryImpl{db: db}
}

func (r *GalleryRepositoryImpl) Upsert(ctx context.Context, gallery *model.Gallery) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(gallery).Error
}

func (r *GalleryRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Gallery{}, "id = ?", id).Error
}

func (r *GalleryRepositoryImpl) FindById(ctx context.Context, id string) (*model.Gallery, error) {
	var m model.Gallery
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *GalleryRepositoryImpl) FindAll(ctx context.Context) ([]*model.Gallery, error) {
	var models []*model.Gallery
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

type SellerRepositoryImpl struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) contract.SellerRepository {
	return &SellerRepositoryImpl{db: db}
}

func (r *SellerRepositoryImpl) Upsert(ctx context.Context, seller *model.Seller) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(seller).Error
}

func (r *SellerRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Seller{}, "id = ?", id).Error
}

func (r *SellerRepositoryImpl) FindById(ctx context.Context, id string) (*model.Seller, error) {
	var m model.Seller
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *SellerRepositoryImpl) FindAll(ctx context.Context) ([]*model.Seller, error) {
	var models []*model.Seller
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) Upsert(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(product).Error
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *ProductRepositoryImpl) FindById(ctx context.Context, id string) (*model.Product, error) {
	var m model.Product
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var models []*model.Product
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}
