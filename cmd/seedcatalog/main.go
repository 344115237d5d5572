package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"bazaarchat-be/internal/model"
	pkgcatalog "bazaarchat-be/pkg/catalog"
	"bazaarchat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the catalog tables from CSV feeds (local files or URLs).
// Usage: seedcatalog <galleries.csv> <sellers.csv> <products.csv>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	if len(os.Args) != 4 {
		color.Red("Usage: seedcatalog <galleries.csv> <sellers.csv> <products.csv>")
		os.Exit(1)
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	loader := pkgcatalog.NewCSVLoader()

	color.Cyan("Seeding galleries from %s ...", os.Args[1])
	categories, err := loader.LoadCategories(ctx, os.Args[1])
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	for _, rec := range categories {
		m := &model.Gallery{
			Id:       rec.ID,
			Name:     rec.Name,
			Type2:    rec.Type2,
			Cat1:     rec.Cat1,
			CatId:    rec.CatID,
			CatName:  rec.CatName,
			Cat1Name: rec.Cat1Name,
			Image:    rec.Image,
		}
		upsert(db, m)
	}
	color.Green("✓ %d galleries", len(categories))

	color.Cyan("Seeding sellers from %s ...", os.Args[2])
	sellers, err := loader.LoadSellers(ctx, os.Args[2])
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	for _, rec := range sellers {
		m := &model.Seller{
			Id:         rec.ID,
			UserId:     rec.UserID,
			StoreName:  rec.StoreName,
			Categories: rec.Categories,
			Image:      rec.Image,
		}
		upsert(db, m)
	}
	color.Green("✓ %d sellers", len(sellers))

	color.Cyan("Seeding products from %s ...", os.Args[3])
	products, err := loader.LoadProducts(ctx, os.Args[3])
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	for _, rec := range products {
		m := &model.Product{
			Id:    rec.ID,
			Name:  rec.Name,
			Image: rec.Image,
			Tags:  rec.Tags,
		}
		if rec.Price != nil {
			m.Price = strconv.FormatFloat(*rec.Price, 'f', -1, 64)
		}
		upsert(db, m)
	}
	color.Green("✓ %d products", len(products))

	color.Green("Done.")
}

func upsert(db *gorm.DB, value interface{}) {
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(value).Error; err != nil {
		color.Yellow("Warn: upsert failed: %v", err)
	}
}
