package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a get-in-touch request submitted from the public site.
type Inquiry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
