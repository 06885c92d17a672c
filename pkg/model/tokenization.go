package model

import "time"

// TokenizationRequest asks the platform's valuation engine to tokenize a
// digital asset. Valuation itself (NPV, EVM, Monte-Carlo simulation) runs
// remotely; Baraza consumes the results as opaque figures.
type TokenizationRequest struct {
	AssetName   string  `json:"asset_name"`
	AssetType   string  `json:"asset_type"`
	Description string  `json:"description,omitempty"`
	CashFlow    float64 `json:"cash_flow,omitempty"`
	TokenSupply int64   `json:"token_supply"`
}

// Validate checks required tokenization fields.
func (r *TokenizationRequest) Validate() *APIError {
	var details []FieldError
	if r.AssetName == "" {
		details = append(details, FieldError{Field: "asset_name", Message: "asset_name is required"})
	}
	if r.TokenSupply <= 0 {
		details = append(details, FieldError{Field: "token_supply", Message: "token_supply must be positive"})
	}
	if len(details) > 0 {
		return NewValidationError("invalid tokenization request", details...)
	}
	return nil
}

// TokenizationResult carries the platform's processed valuation output
// for one asset.
type TokenizationResult struct {
	AssetID        int64     `json:"asset_id"`
	AssetName      string    `json:"asset_name"`
	Status         string    `json:"status"`
	NPV            float64   `json:"npv"`
	EarnedValue    float64   `json:"earned_value"`
	PlannedValue   float64   `json:"planned_value"`
	ActualCost     float64   `json:"actual_cost"`
	IntrinsicScore float64   `json:"intrinsic_score"`
	SimulationRuns int       `json:"simulation_runs"`
	ValueLow       float64   `json:"value_low"`
	ValueMid       float64   `json:"value_mid"`
	ValueHigh      float64   `json:"value_high"`
	TokenSupply    int64     `json:"token_supply"`
	TokenPrice     float64   `json:"token_price"`
	ProcessedAt    time.Time `json:"processed_at"`
}
