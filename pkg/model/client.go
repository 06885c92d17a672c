package model

import "time"

// Client is a business client entity as returned by the platform API.
// Distinct from a client-role login account: one client entity may be
// served by several accounts.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OnboardClientRequest is the payload for client onboarding.
type OnboardClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// Validate checks required onboarding fields.
func (r *OnboardClientRequest) Validate() *APIError {
	var details []FieldError
	if r.Name == "" {
		details = append(details, FieldError{Field: "name", Message: "name is required"})
	}
	if r.Email == "" {
		details = append(details, FieldError{Field: "email", Message: "email is required"})
	}
	if len(details) > 0 {
		return NewValidationError("invalid onboarding request", details...)
	}
	return nil
}
