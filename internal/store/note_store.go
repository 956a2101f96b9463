package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ListNotes returns notes oldest first. A non-empty leadID restricts the
// result to that lead.
func (s *SQLiteStore) ListNotes(ctx context.Context, leadID string) ([]model.Note, error) {
	query := "SELECT id, lead_id, content, created_by, created_at FROM notes"
	var args []interface{}
	if leadID != "" {
		query += " WHERE lead_id = ?"
		args = append(args, leadID)
	}
	query += " ORDER BY rowid"

	notes := []model.Note{}
	if err := s.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return notes, nil
}

// CreateNote appends a note to an existing lead.
func (s *SQLiteStore) CreateNote(ctx context.Context, d model.NoteDraft) (*model.Note, error) {
	ok, err := s.leadExists(ctx, d.LeadID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("lead %s: %w", d.LeadID, model.ErrNotFound)
	}

	note := model.Note{
		ID:        uuid.New().String(),
		LeadID:    d.LeadID,
		Content:   d.Content,
		CreatedBy: d.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO notes (id, lead_id, content, created_by, created_at)
		VALUES (:id, :lead_id, :content, :created_by, :created_at)`, note)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return &note, nil
}
