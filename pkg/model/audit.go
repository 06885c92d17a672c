package model

import "time"

// LoginEvent is an audit record of a login attempt, shown on the admin
// dashboard.
type LoginEvent struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	Role      Role      `json:"role,omitempty"` // set on success
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
