package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vinayk98/mini-crm/internal/model"
)

// ListFollowUps returns follow-ups in insertion order. A non-empty leadID
// restricts the result to that lead.
func (s *SQLiteStore) ListFollowUps(ctx context.Context, leadID string) ([]model.FollowUp, error) {
	query := "SELECT id, lead_id, date, status FROM followups"
	var args []interface{}
	if leadID != "" {
		query += " WHERE lead_id = ?"
		args = append(args, leadID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying followups: %w", err)
	}
	defer rows.Close()

	followUps := []model.FollowUp{}
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

// CreateFollowUp schedules a follow-up for an existing lead. A blank status
// defaults to pending.
func (s *SQLiteStore) CreateFollowUp(ctx context.Context, d model.FollowUpDraft) (*model.FollowUp, error) {
	ok, err := s.leadExists(ctx, d.LeadID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("lead %s: %w", d.LeadID, model.ErrNotFound)
	}

	f := model.FollowUp{
		ID:     uuid.New().String(),
		LeadID: d.LeadID,
		Date:   d.Date,
		Status: d.Status,
	}
	if f.Status == "" {
		f.Status = model.FollowUpPending
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO followups (id, lead_id, date, status) VALUES (?, ?, ?, ?)",
		f.ID, f.LeadID, f.Date.String(), f.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating followup: %w", err)
	}
	return &f, nil
}

// SetFollowUpStatus moves a follow-up to the given status. Setting the
// status it already has is a no-op; completed follow-ups cannot be
// reopened.
func (s *SQLiteStore) SetFollowUpStatus(ctx context.Context, id, status string) (*model.FollowUp, error) {
	if status != model.FollowUpPending && status != model.FollowUpCompleted {
		return nil, model.NewValidationError("status", fmt.Sprintf("unknown follow-up status %q", status))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowxContext(ctx,
		"SELECT id, lead_id, date, status FROM followups WHERE id = ?", id)
	f, err := scanFollowUpRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("followup %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if f.Status == status {
		return &f, nil
	}
	if f.Status == model.FollowUpCompleted {
		return nil, model.NewValidationError("status", "completed follow-ups cannot be reopened")
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE followups SET status = ? WHERE id = ?", status, id,
	); err != nil {
		return nil, fmt.Errorf("updating followup %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing followup %s: %w", id, err)
	}

	f.Status = status
	return &f, nil
}

// scanFollowUp scans a follow-up row from a sqlx.Rows result set.
func scanFollowUp(rows *sqlx.Rows) (model.FollowUp, error) {
	var (
		f    model.FollowUp
		date string
	)
	if err := rows.Scan(&f.ID, &f.LeadID, &date, &f.Status); err != nil {
		return model.FollowUp{}, fmt.Errorf("scanning followup row: %w", err)
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return model.FollowUp{}, fmt.Errorf("followup %s: %w", f.ID, err)
	}
	f.Date = d
	return f, nil
}

// scanFollowUpRow scans a single follow-up row from a sqlx.Row.
func scanFollowUpRow(row *sqlx.Row) (model.FollowUp, error) {
	var (
		f    model.FollowUp
		date string
	)
	if err := row.Scan(&f.ID, &f.LeadID, &date, &f.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FollowUp{}, err
		}
		return model.FollowUp{}, fmt.Errorf("scanning followup row: %w", err)
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return model.FollowUp{}, fmt.Errorf("followup %s: %w", f.ID, err)
	}
	f.Date = d
	return f, nil
}
