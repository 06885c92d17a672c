package model

import "time"

// Project is a consulting engagement tracked by the platform API.
type Project struct {
	ID        int64      `json:"id"`
	ClientID  int64      `json:"client_id"`
	ManagerID int64      `json:"manager_id,omitempty"`
	Name      string     `json:"name"`
	Summary   string     `json:"summary,omitempty"`
	Status    string     `json:"status"`
	Budget    float64    `json:"budget,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateProjectRequest is the payload for project creation.
type CreateProjectRequest struct {
	ClientID int64   `json:"client_id"`
	Name     string  `json:"name"`
	Summary  string  `json:"summary,omitempty"`
	Budget   float64 `json:"budget,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// Validate checks required project fields.
func (r *CreateProjectRequest) Validate() *APIError {
	var details []FieldError
	if r.ClientID <= 0 {
		details = append(details, FieldError{Field: "client_id", Message: "client_id is required"})
	}
	if r.Name == "" {
		details = append(details, FieldError{Field: "name", Message: "name is required"})
	}
	if len(details) > 0 {
		return NewValidationError("invalid project request", details...)
	}
	return nil
}
