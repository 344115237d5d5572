package dto

type UpsertGalleryRequest struct {
	Id       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Type2    string `json:"type2"`
	Cat1     string `json:"cat1"`
	CatId    string `json:"cat_id"`
	CatName  string `json:"catname"`
	Cat1Name string `json:"cat1name"`
	Image    string `json:"image"`
}

type UpsertSellerRequest struct {
	Id         string `json:"id" validate:"required"`
	UserId     string `json:"user_id"`
	StoreName  string `json:"store_name" validate:"required"`
	Categories string `json:"categories"`
	Image      string `json:"image"`
}

type UpsertProductRequest struct {
	Id    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
	Image string `json:"image"`
	Tags  string `json:"tags"`
}

type CatalogStatsResponse struct {
	Galleries   int    `json:"galleries"`
	Sellers     int    `json:"sellers"`
	Products    int    `json:"products"`
	RefreshedAt string `json:"refreshed_at"`
}
