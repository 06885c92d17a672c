package model

import "time"

// Listing is a marketplace listing offering tokens of a tokenized asset.
type Listing struct {
	ID              int64     `json:"id"`
	AssetID         int64     `json:"asset_id"`
	SellerClientID  int64     `json:"seller_client_id"`
	Title           string    `json:"title"`
	TokenPrice      float64   `json:"token_price"`
	TokensAvailable int64     `json:"tokens_available"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateListingRequest is the payload for listing tokens on the marketplace.
type CreateListingRequest struct {
	AssetID         int64   `json:"asset_id"`
	Title           string  `json:"title"`
	TokenPrice      float64 `json:"token_price"`
	TokensAvailable int64   `json:"tokens_available"`
}

// Validate checks required listing fields.
func (r *CreateListingRequest) Validate() *APIError {
	var details []FieldError
	if r.AssetID <= 0 {
		details = append(details, FieldError{Field: "asset_id", Message: "asset_id is required"})
	}
	if r.Title == "" {
		details = append(details, FieldError{Field: "title", Message: "title is required"})
	}
	if r.TokenPrice <= 0 {
		details = append(details, FieldError{Field: "token_price", Message: "token_price must be positive"})
	}
	if r.TokensAvailable <= 0 {
		details = append(details, FieldError{Field: "tokens_available", Message: "tokens_available must be positive"})
	}
	if len(details) > 0 {
		return NewValidationError("invalid listing request", details...)
	}
	return nil
}
