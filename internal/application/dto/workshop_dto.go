package dto

import "time"

// WorkshopRequest body de PUT /api/workshop.
type WorkshopRequest struct {
	Name        string `json:"name" validate:"max=200"`
	SIRET       string `json:"siret,omitempty" validate:"max=20"`
	VATID       string `json:"vat_id,omitempty" validate:"max=20"`
	Address     string `json:"address,omitempty" validate:"max=300"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty" validate:"max=32"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	IBAN        string `json:"iban,omitempty" validate:"max=42"`
	BIC         string `json:"bic,omitempty" validate:"omitempty,alphanum,min=8,max=11"`
}

// WorkshopResponse perfil del taller emisor.
type WorkshopResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SIRET       string    `json:"siret,omitempty"`
	VATID       string    `json:"vat_id,omitempty"`
	Address     string    `json:"address,omitempty"`
	CountryCode string    `json:"country_code"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	IBAN        string    `json:"iban,omitempty"`
	BIC         string    `json:"bic,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
