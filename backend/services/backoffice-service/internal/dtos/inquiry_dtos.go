package dtos

type CreateInquiryRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=7"`
	Message     string `json:"message" validate:"required,min=1"`
}
