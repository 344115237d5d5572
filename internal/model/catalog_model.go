package model

import (
	"time"
)

// Gallery is the category/gallery table. Columns mirror the CSV
// snapshot feed, so everything is text and shaping happens in the
// mapper.
type Gallery struct {
	Id       string `gorm:"type:text;primaryKey"`
	Name     string `gorm:"type:text"`
	Type2    string `gorm:"type:text"`
	Cat1     string `gorm:"type:text"`
	CatId    string `gorm:"type:text"`
	CatName  string `gorm:"type:text"`
	Cat1Name string `gorm:"type:text"`
	Image    string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Gallery) TableName() string {
	return "galleries"
}

type Seller struct {
	Id         string `gorm:"type:text;primaryKey"`
	UserId     string `gorm:"type:text;index"`
	StoreName  string `gorm:"type:text"`
	Categories string `gorm:"type:text"`
	Image      string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Seller) TableName() string {
	return "sellers"
}

type Product struct {
	Id    string `gorm:"type:text;primaryKey"`
	Name  string `gorm:"type:text"`
	Price string `gorm:"type:text"` // raw; parse failures must yield null downstream, never error
	Image string `gorm:"type:text"`
	Tags  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
