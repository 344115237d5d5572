package dto

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

type ProductDTO struct {
	Id    string   `json:"id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"` // null when the feed price was unparseable
	Image string   `json:"image"`
}

type GalleryDTO struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type SellerDTO struct {
	Id        string `json:"id"`
	StoreName string `json:"store_name"`
	Image     string `json:"image"`
	Strategy  string `json:"strategy,omitempty"`
}

type ChatResponse struct {
	SessionId         string       `json:"session_id"`
	Intent            string       `json:"intent"`
	Reply             string       `json:"reply"`
	NeedsVerification bool         `json:"needs_verification"`
	Gender            string       `json:"gender,omitempty"`
	HomeDecor         bool         `json:"home_decor,omitempty"`
	Products          []ProductDTO `json:"products,omitempty"`
	Galleries         []GalleryDTO `json:"galleries,omitempty"`
	Sellers           []SellerDTO  `json:"sellers,omitempty"`
}

type SessionHistoryResponse struct {
	SessionId string        `json:"session_id"`
	Turns     []ChatTurnDTO `json:"turns"`
}

type ChatTurnDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
