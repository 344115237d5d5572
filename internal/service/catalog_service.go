package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"bazaarchat-be/internal/dto"
	"bazaarchat-be/internal/mapper"
	"bazaarchat-be/internal/model"
	"bazaarchat-be/internal/pkg/logger"
	"bazaarchat-be/internal/pkg/serverutils"
	"bazaarchat-be/internal/repository/contract"
	pkgcatalog "bazaarchat-be/pkg/catalog"
	"bazaarchat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const (
	TableGalleries = "galleries"
	TableSellers   = "sellers"
	TableProducts  = "products"

	tableCacheTTL   = 5 * time.Minute
	tableCacheSweep = 10 * time.Minute
)

// CatalogSources points at the CSV feeds used to build a snapshot when
// the database is empty (cold start / seed).
type CatalogSources struct {
	GalleriesURL string
	SellersURL   string
	ProductsURL  string
}

type ICatalogService interface {
	Refresh(ctx context.Context) error
	Snapshot() *store.Snapshot
	Stats() *dto.CatalogStatsResponse

	ListTable(ctx context.Context, table string) (interface{}, error)
	GetRecord(ctx context.Context, table, id string) (interface{}, error)
	UpsertGallery(ctx context.Context, req *dto.UpsertGalleryRequest) error
	UpsertSeller(ctx context.Context, req *dto.UpsertSellerRequest) error
	UpsertProduct(ctx context.Context, req *dto.UpsertProductRequest) error
	DeleteRecord(ctx context.Context, table, id string) error
}

type catalogService struct {
	galleries contract.GalleryRepository
	sellers   contract.SellerRepository
	products  contract.ProductRepository
	loader    *pkgcatalog.CSVLoader
	sources   CatalogSources
	logger    logger.ILogger

	// Matching reads go through this pointer; Refresh swaps it whole so
	// readers never see a half-built catalog.
	snapshot   atomic.Pointer[store.Snapshot]
	tableCache *cache.Cache
}

func NewCatalogService(
	galleries contract.GalleryRepository,
	sellers contract.SellerRepository,
	products contract.ProductRepository,
	loader *pkgcatalog.CSVLoader,
	sources CatalogSources,
	log logger.ILogger,
) ICatalogService {
	s := &catalogService{
		galleries:  galleries,
		sellers:    sellers,
		products:   products,
		loader:     loader,
		sources:    sources,
		logger:     log,
		tableCache: cache.New(tableCacheTTL, tableCacheSweep),
	}
	s.snapshot.Store(&store.Snapshot{})
	return s
}

// Snapshot returns the current immutable catalog view. Never nil.
func (s *catalogService) Snapshot() *store.Snapshot {
	return s.snapshot.Load()
}

func (s *catalogService) Stats() *dto.CatalogStatsResponse {
	snap := s.Snapshot()
	return &dto.CatalogStatsResponse{
		Galleries:   len(snap.Categories),
		Sellers:     len(snap.Sellers),
		Products:    len(snap.Products),
		RefreshedAt: snap.LoadedAt.Format(time.RFC3339),
	}
}

// Refresh rebuilds the snapshot from the database, falling back to the
// CSV feeds for any table that is empty. Idempotent: two refreshes over
// the same data produce equivalent snapshots.
func (s *catalogService) Refresh(ctx context.Context) error {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return fmt.Errorf("refresh galleries: %w", err)
	}
	sellerRecs, err := s.loadSellers(ctx)
	if err != nil {
		return fmt.Errorf("refresh sellers: %w", err)
	}
	productRecs, err := s.loadProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh products: %w", err)
	}

	snap := &store.Snapshot{
		Categories: categories,
		Sellers:    sellerRecs,
		Products:   productRecs,
		LoadedAt:   time.Now(),
	}
	s.snapshot.Store(snap)
	s.tableCache.Flush()

	s.logger.Info("catalog", "snapshot refreshed", map[string]interface{}{
		"galleries": len(categories),
		"sellers":   len(sellerRecs),
		"products":  len(productRecs),
	})
	return nil
}

func (s *catalogService) loadCategories(ctx context.Context) ([]store.CategoryRecord, error) {
	models, err := s.galleries.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 && s.sources.GalleriesURL != "" {
		return s.loader.LoadCategories(ctx, s.sources.GalleriesURL)
	}
	records := make([]store.CategoryRecord, 0, len(models))
	for _, m := range models {
		records = append(records, mapper.ToCategoryRecord(m))
	}
	return records, nil
}

func (s *catalogService) loadSellers(ctx context.Context) ([]store.SellerRecord, error) {
	models, err := s.sellers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 && s.sources.SellersURL != "" {
		return s.loader.LoadSellers(ctx, s.sources.SellersURL)
	}
	records := make([]store.SellerRecord, 0, len(models))
	for _, m := range models {
		records = append(records, mapper.ToSellerRecord(m))
	}
	return records, nil
}

func (s *catalogService) loadProducts(ctx context.Context) ([]store.ProductRecord, error) {
	models, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 && s.sources.ProductsURL != "" {
		return s.loader.LoadProducts(ctx, s.sources.ProductsURL)
	}
	records := make([]store.ProductRecord, 0, len(models))
	for _, m := range models {
		records = append(records, mapper.ToProductRecord(m))
	}
	return records, nil
}

// ListTable serves table reads through a short-lived cache so admin
// polling does not hammer the database.
func (s *catalogService) ListTable(ctx context.Context, table string) (interface{}, error) {
	if cached, found := s.tableCache.Get("list:" + table); found {
		return cached, nil
	}

	var result interface{}
	var err error
	switch table {
	case TableGalleries:
		result, err = s.galleries.FindAll(ctx)
	case TableSellers:
		result, err = s.sellers.FindAll(ctx)
	case TableProducts:
		result, err = s.products.FindAll(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", serverutils.ErrUnknownTable, table)
	}
	if err != nil {
		return nil, err
	}
	s.tableCache.Set("list:"+table, result, cache.DefaultExpiration)
	return result, nil
}

func (s *catalogService) GetRecord(ctx context.Context, table, id string) (interface{}, error) {
	switch table {
	case TableGalleries:
		m, err := s.galleries.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, serverutils.ErrNotFound
		}
		return m, nil
	case TableSellers:
		m, err := s.sellers.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, serverutils.ErrNotFound
		}
		return m, nil
	case TableProducts:
		m, err := s.products.FindById(ctx, id)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, serverutils.ErrNotFound
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", serverutils.ErrUnknownTable, table)
	}
}

func (s *catalogService) UpsertGallery(ctx context.Context, req *dto.UpsertGalleryRequest) error {
	m := &model.Gallery{
		Id:       req.Id,
		Name:     req.Name,
		Type2:    req.Type2,
		Cat1:     req.Cat1,
		CatId:    req.CatId,
		CatName:  req.CatName,
		Cat1Name: req.Cat1Name,
		Image:    req.Image,
	}
	if err := s.galleries.Upsert(ctx, m); err != nil {
		return err
	}
	s.tableCache.Delete("list:" + TableGalleries)
	return nil
}

func (s *catalogService) UpsertSeller(ctx context.Context, req *dto.UpsertSellerRequest) error {
	m := &model.Seller{
		Id:         req.Id,
		UserId:     req.UserId,
		StoreName:  req.StoreName,
		Categories: req.Categories,
		Image:      req.Image,
	}
	if err := s.sellers.Upsert(ctx, m); err != nil {
		return err
	}
	s.tableCache.Delete("list:" + TableSellers)
	return nil
}

func (s *catalogService) UpsertProduct(ctx context.Context, req *dto.UpsertProductRequest) error {
	m := &model.Product{
		Id:    req.Id,
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		Tags:  req.Tags,
	}
	if err := s.products.Upsert(ctx, m); err != nil {
		return err
	}
	s.tableCache.Delete("list:" + TableProducts)
	return nil
}

func (s *catalogService) DeleteRecord(ctx context.Context, table, id string) error {
	var err error
	switch table {
	case TableGalleries:
		err = s.galleries.Delete(ctx, id)
	case TableSellers:
		err = s.sellers.Delete(ctx, id)
	case TableProducts:
		err = s.products.Delete(ctx, id)
	default:
		return fmt.Errorf("%w: %s", serverutils.ErrUnknownTable, table)
	}
	if err != nil {
		return err
	}
	s.tableCache.Delete("list:" + table)
	return nil
}
