package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vinayk98/mini-crm/internal/model"
)

const leadColumns = `id, name, email, phone, status, source, company, assigned_to, created_at`

// ListLeads returns every lead in insertion order.
func (s *SQLiteStore) ListLeads(ctx context.Context) ([]model.Lead, error) {
	leads := []model.Lead{}
	err := s.db.SelectContext(ctx, &leads,
		"SELECT "+leadColumns+" FROM leads ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	return leads, nil
}

// GetLead retrieves a single lead by ID.
func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	err := s.db.GetContext(ctx, &lead,
		"SELECT "+leadColumns+" FROM leads WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting lead %s: %w", id, err)
	}
	return &lead, nil
}

// CreateLead inserts a new lead, assigning its ID and creation time.
func (s *SQLiteStore) CreateLead(ctx context.Context, d model.LeadDraft) (*model.Lead, error) {
	lead := model.Lead{
		ID:         uuid.New().String(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Status:     d.Status,
		Source:     d.Source,
		Company:    d.Company,
		AssignedTo: d.AssignedTo,
		CreatedAt:  time.Now().UTC(),
	}
	if lead.Status == "" {
		lead.Status = model.StatusNew
	}
	if lead.Source == "" {
		lead.Source = model.SourceWebsite
	}

	if err := s.insertLead(ctx, s.db, lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLead applies a partial update inside a transaction and returns the
// stored result.
func (s *SQLiteStore) UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing model.Lead
	err = tx.GetContext(ctx, &existing,
		"SELECT "+leadColumns+" FROM leads WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting lead %s: %w", id, err)
	}

	updated := p.Apply(existing)
	_, err = tx.NamedExecContext(ctx, `
		UPDATE leads SET
			name = :name, email = :email, phone = :phone,
			status = :status, source = :source, company = :company,
			assigned_to = :assigned_to
		WHERE id = :id`, updated)
	if err != nil {
		return nil, fmt.Errorf("updating lead %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing lead %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteLead removes a lead by ID. Cascades to notes and follow-ups.
func (s *SQLiteStore) DeleteLead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting lead %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// InsertLeads stores a batch of fully-formed leads in one transaction.
// Leads without an ID get a fresh UUID.
func (s *SQLiteStore) InsertLeads(ctx context.Context, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, l := range leads {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if err := s.insertLead(ctx, tx, l); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountLeads returns the number of stored leads.
func (s *SQLiteStore) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM leads"); err != nil {
		return 0, fmt.Errorf("counting leads: %w", err)
	}
	return n, nil
}

// namedExecer is satisfied by both *sqlx.DB and *sqlx.Tx.
type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

func (s *SQLiteStore) insertLead(ctx context.Context, ex namedExecer, l model.Lead) error {
	l.CreatedAt = l.CreatedAt.UTC()
	_, err := ex.NamedExecContext(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES (
			:id, :name, :email, :phone, :status, :source,
			:company, :assigned_to, :created_at
		)`, l)
	if err != nil {
		return fmt.Errorf("inserting lead %s: %w", l.ID, err)
	}
	return nil
}

// leadExists reports whether a lead with the given ID is stored.
func (s *SQLiteStore) leadExists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM leads WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("checking lead %s: %w", id, err)
	}
	return n > 0, nil
}
