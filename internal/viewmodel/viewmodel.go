// Package viewmodel holds the UI-facing caches for leads and for the lead
// currently on screen. Every mutation goes to the remote collection first
// and is followed by a full refetch; nothing is merged locally.
package viewmodel

import (
	"context"
	"log/slog"
	"time"

	"github.com/vinayk98/mini-crm/internal/model"
)

// LeadCollection is the remote lead resource.
type LeadCollection interface {
	ListLeads(ctx context.Context) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	CreateLead(ctx context.Context, d model.LeadDraft) (*model.Lead, error)
	UpdateLead(ctx context.Context, id string, p model.LeadPatch) (*model.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

// LeadGetter fetches a single lead.
type LeadGetter interface {
	GetLead(ctx context.Context, id string) (*model.Lead, error)
}

// NoteCollection is the remote note resource.
type NoteCollection interface {
	ListNotes(ctx context.Context, leadID string) ([]model.Note, error)
	CreateNote(ctx context.Context, d model.NoteDraft) (*model.Note, error)
}

// FollowUpCollection is the remote follow-up resource.
type FollowUpCollection interface {
	ListFollowUps(ctx context.Context, leadID string) ([]model.FollowUp, error)
	CreateFollowUp(ctx context.Context, d model.FollowUpDraft) (*model.FollowUp, error)
	SetFollowUpStatus(ctx context.Context, id, status string) (*model.FollowUp, error)
}

// State is the load state of a collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// DefaultTimeout bounds a single remote call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// options are shared by both view-models.
type options struct {
	logger   *slog.Logger
	timeout  time.Duration
	pageSize int
	now      func() time.Time
}

// Option configures a view-model.
type Option func(*options)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTimeout bounds every remote call. Zero or negative disables the
// bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithPageSize sets the list page size.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithClock replaces time.Now when deciding what "today" is.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// bound derives a context for one remote call.
func (o options) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}
