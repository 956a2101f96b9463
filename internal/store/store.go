package store

import (
	"context"

	"github.com/vinayk98/mini-crm/internal/model"
)

// Store defines the persistence interface backing the lead, note,
// follow-up and user collections served by the HTTP API.
type Store interface {
	// === Leads ===

	ListLeads(ctx context.Context) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	CreateLead(ctx context.Context, d model.LeadDraft) (*model.Lead, error)
	UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	InsertLeads(ctx context.Context, leads []model.Lead) error
	CountLeads(ctx context.Context) (int, error)

	// === Notes (append-only) ===

	ListNotes(ctx context.Context, leadID string) ([]model.Note, error)
	CreateNote(ctx context.Context, d model.NoteDraft) (*model.Note, error)

	// === Follow-ups ===

	ListFollowUps(ctx context.Context, leadID string) ([]model.FollowUp, error)
	CreateFollowUp(ctx context.Context, d model.FollowUpDraft) (*model.FollowUp, error)
	SetFollowUpStatus(ctx context.Context, id, status string) (*model.FollowUp, error)

	// === Users ===

	CreateUser(ctx context.Context, u model.User, password string) (*model.User, error)
	FindUser(ctx context.Context, email, password string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)

	Close() error
}
