package model

import "time"

// PaymentMethod identifies the external payment processor.
type PaymentMethod string

const (
	// MethodStripe initiates a card payment via Stripe.
	MethodStripe PaymentMethod = "stripe"
	// MethodMpesa initiates an M-Pesa STK push.
	MethodMpesa PaymentMethod = "mpesa"
)

// Payment is a payment record held by the platform API. Processing
// happens entirely on the platform side; Baraza only initiates and lists.
type Payment struct {
	ID        int64         `json:"id"`
	ClientID  int64         `json:"client_id"`
	ProjectID int64         `json:"project_id,omitempty"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Method    PaymentMethod `json:"method"`
	Status    string        `json:"status"`
	Reference string        `json:"reference,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// InitiatePaymentRequest is the payload for starting a payment.
type InitiatePaymentRequest struct {
	ProjectID int64         `json:"project_id,omitempty"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Method    PaymentMethod `json:"method"`
	Phone     string        `json:"phone,omitempty"` // required for mpesa
}

// Validate checks required payment fields.
func (r *InitiatePaymentRequest) Validate() *APIError {
	var details []FieldError
	if r.Amount <= 0 {
		details = append(details, FieldError{Field: "amount", Message: "amount must be positive"})
	}
	if r.Currency == "" {
		details = append(details, FieldError{Field: "currency", Message: "currency is required"})
	}
	switch r.Method {
	case MethodStripe:
	case MethodMpesa:
		if r.Phone == "" {
			details = append(details, FieldError{Field: "phone", Message: "phone is required for mpesa"})
		}
	default:
		details = append(details, FieldError{Field: "method", Message: "method must be stripe or mpesa"})
	}
	if len(details) > 0 {
		return NewValidationError("invalid payment request", details...)
	}
	return nil
}
