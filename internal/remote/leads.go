package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ListLeads fetches the full lead collection.
func (c *Client) ListLeads(ctx context.Context) ([]model.Lead, error) {
	var leads []model.Lead
	if err := c.do(ctx, http.MethodGet, "/leads", nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead fetches one lead by identifier.
func (c *Client) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	if err := c.do(ctx, http.MethodGet, "/leads/"+url.PathEscape(id), nil, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// CreateLead posts a new lead. The backend assigns the identifier.
func (c *Client) CreateLead(ctx context.Context, d model.LeadDraft) (*model.Lead, error) {
	var lead model.Lead
	if err := c.do(ctx, http.MethodPost, "/leads", d, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead sends a partial update for the given lead.
func (c *Client) UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error) {
	var lead model.Lead
	if err := c.do(ctx, http.MethodPatch, "/leads/"+url.PathEscape(id), p, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// DeleteLead removes a lead.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leads/"+url.PathEscape(id), nil, nil)
}
