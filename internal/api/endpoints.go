package api

import (
	"context"
	"fmt"

	"github.com/me/baraza/pkg/model"
)

// Login authenticates credentials against the platform and returns the
// auth result. A 401 surfaces as an UNAUTHORIZED *model.APIError with the
// platform's message; transport failures are returned wrapped.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	var result model.AuthResult
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListClients lists business clients. Admin and sales only; the platform
// enforces this from the bearer token, Baraza gates the route as well.
func (c *Client) ListClients(ctx context.Context, opts model.ListOptions) ([]model.Client, error) {
	opts.Clamp()
	var clients []model.Client
	path := fmt.Sprintf("/clients?limit=%d&offset=%d", opts.Limit, opts.Offset)
	if err := c.get(ctx, path, &clients); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// OnboardClient registers a new business client.
func (c *Client) OnboardClient(ctx context.Context, req model.OnboardClientRequest) (*model.Client, error) {
	var client model.Client
	if err := c.post(ctx, "/clients", req, &client); err != nil {
		return nil, fmt.Errorf("onboard client: %w", err)
	}
	return &client, nil
}

// ListProjects lists projects scoped to a client entity.
func (c *Client) ListProjects(ctx context.Context, scopeID int64, opts model.ListOptions) ([]model.Project, error) {
	opts.Clamp()
	var projects []model.Project
	path := fmt.Sprintf("/projects?client_id=%d&limit=%d&offset=%d", scopeID, opts.Limit, opts.Offset)
	if err := c.get(ctx, path, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject creates a project for a client.
func (c *Client) CreateProject(ctx context.Context, req model.CreateProjectRequest) (*model.Project, error) {
	var project model.Project
	if err := c.post(ctx, "/projects", req, &project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// ListDocuments lists documents scoped to a client entity.
func (c *Client) ListDocuments(ctx context.Context, scopeID int64) ([]model.Document, error) {
	var docs []model.Document
	path := fmt.Sprintf("/documents?client_id=%d", scopeID)
	if err := c.get(ctx, path, &docs); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// RegisterDocument records an uploaded object with the platform.
func (c *Client) RegisterDocument(ctx context.Context, req model.RegisterDocumentRequest) (*model.Document, error) {
	var doc model.Document
	if err := c.post(ctx, "/documents", req, &doc); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}
	return &doc, nil
}

// ListPayments lists payments scoped to a client entity.
func (c *Client) ListPayments(ctx context.Context, scopeID int64) ([]model.Payment, error) {
	var payments []model.Payment
	path := fmt.Sprintf("/payments?client_id=%d", scopeID)
	if err := c.get(ctx, path, &payments); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// InitiatePayment starts a Stripe or M-Pesa payment for a client.
// Processing and webhooks stay on the platform side.
func (c *Client) InitiatePayment(ctx context.Context, scopeID int64, req model.InitiatePaymentRequest) (*model.Payment, error) {
	var payment model.Payment
	path := fmt.Sprintf("/payments?client_id=%d", scopeID)
	if err := c.post(ctx, path, req, &payment); err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}
	return &payment, nil
}

// TokenizationResults fetches the processed valuation output for a
// client's assets. The numbers are computed remotely and consumed opaque.
func (c *Client) TokenizationResults(ctx context.Context, scopeID int64) ([]model.TokenizationResult, error) {
	var results []model.TokenizationResult
	path := fmt.Sprintf("/tokenization/results?client_id=%d", scopeID)
	if err := c.get(ctx, path, &results); err != nil {
		return nil, fmt.Errorf("tokenization results: %w", err)
	}
	return results, nil
}

// RequestTokenization submits an asset to the platform's valuation engine.
func (c *Client) RequestTokenization(ctx context.Context, scopeID int64, req model.TokenizationRequest) (*model.TokenizationResult, error) {
	var result model.TokenizationResult
	path := fmt.Sprintf("/tokenization/requests?client_id=%d", scopeID)
	if err := c.post(ctx, path, req, &result); err != nil {
		return nil, fmt.Errorf("request tokenization: %w", err)
	}
	return &result, nil
}

// ListListings lists marketplace listings.
func (c *Client) ListListings(ctx context.Context, opts model.ListOptions) ([]model.Listing, error) {
	opts.Clamp()
	var listings []model.Listing
	path := fmt.Sprintf("/marketplace/listings?limit=%d&offset=%d", opts.Limit, opts.Offset)
	if err := c.get(ctx, path, &listings); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// CreateListing puts tokens of a client's asset on the marketplace.
func (c *Client) CreateListing(ctx context.Context, scopeID int64, req model.CreateListingRequest) (*model.Listing, error) {
	var listing model.Listing
	path := fmt.Sprintf("/marketplace/listings?client_id=%d", scopeID)
	if err := c.post(ctx, path, req, &listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &listing, nil
}
