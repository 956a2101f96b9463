package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ListNotes fetches the notes of one lead, oldest first. An empty leadID
// fetches every note.
func (c *Client) ListNotes(ctx context.Context, leadID string) ([]model.Note, error) {
	path := "/notes"
	if leadID != "" {
		path += "?leadId=" + url.QueryEscape(leadID)
	}
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote appends a note.
func (c *Client) CreateNote(ctx context.Context, d model.NoteDraft) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, "/notes", d, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
