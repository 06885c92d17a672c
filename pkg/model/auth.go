package model

// LoginRequest is the credential payload sent to the platform API.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the platform API's successful login response. Role is the
// platform's external vocabulary; it is mapped to an internal Role before
// a session is built.
type AuthResult struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
	ClientID int64  `json:"client_id,omitempty"`
}
