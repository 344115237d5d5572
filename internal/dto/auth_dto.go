package dto

type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

type VerifyOTPRequest struct {
	Phone     string `json:"phone" validate:"required,len=10,numeric"`
	Code      string `json:"code" validate:"required,len=6,numeric"`
	SessionId string `json:"session_id" validate:"required"`
}

type VerifyOTPResponse struct {
	AccessToken string `json:"access_token"`
	SessionId   string `json:"session_id"`
}
