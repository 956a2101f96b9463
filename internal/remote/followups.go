package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ListFollowUps fetches the follow-ups of one lead in insertion order. An
// empty leadID fetches every follow-up.
func (c *Client) ListFollowUps(ctx context.Context, leadID string) ([]model.FollowUp, error) {
	path := "/followups"
	if leadID != "" {
		path += "?leadId=" + url.QueryEscape(leadID)
	}
	var followUps []model.FollowUp
	if err := c.do(ctx, http.MethodGet, path, nil, &followUps); err != nil {
		return nil, err
	}
	return followUps, nil
}

// CreateFollowUp schedules a follow-up.
func (c *Client) CreateFollowUp(ctx context.Context, d model.FollowUpDraft) (*model.FollowUp, error) {
	var f model.FollowUp
	if err := c.do(ctx, http.MethodPost, "/followups", d, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SetFollowUpStatus sends a partial update of the follow-up status.
func (c *Client) SetFollowUpStatus(ctx context.Context, id, status string) (*model.FollowUp, error) {
	body := map[string]string{"status": status}
	var f model.FollowUp
	if err := c.do(ctx, http.MethodPatch, "/followups/"+url.PathEscape(id), body, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
