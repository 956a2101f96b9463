package viewmodel

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/validate"
)

// DetailState is the load state of the lead on screen.
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailReady
	DetailNotFound
	DetailError
)

func (s DetailState) String() string {
	switch s {
	case DetailIdle:
		return "idle"
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailNotFound:
		return "not found"
	case DetailError:
		return "error"
	default:
		return "unknown"
	}
}

// Human-readable failure messages stored in Detail.Err.
const (
	msgFetchLead      = "Failed to fetch lead"
	msgFetchNotes     = "Failed to fetch notes"
	msgAddNote        = "Failed to add note"
	msgFetchFollowUps = "Failed to fetch followups"
	msgCreateFollowUp = "Failed to create followup"
	msgUpdateFollowUp = "Failed to update followup"
)

// Detail aggregates one lead with its notes and follow-ups. Results that
// arrive for a lead other than the one currently selected are dropped.
type Detail struct {
	leads     LeadGetter
	notes     NoteCollection
	followUps FollowUpCollection
	opts      options

	mu               sync.Mutex
	leadID           string
	lead             *model.Lead
	state            DetailState
	noteList         []model.Note
	followUpList     []model.FollowUp
	notesLoading     bool
	followUpsLoading bool
	err              string
}

// NewDetail creates an empty aggregator.
func NewDetail(leads LeadGetter, notes NoteCollection, followUps FollowUpCollection, opts ...Option) *Detail {
	return &Detail{
		leads:     leads,
		notes:     notes,
		followUps: followUps,
		opts:      buildOptions(opts),
	}
}

// Load fetches the lead and, when it exists, its notes and follow-ups
// concurrently.
func (d *Detail) Load(ctx context.Context, id string) error {
	if err := d.LoadLead(ctx, id); err != nil {
		return err
	}
	if d.State() != DetailReady {
		return nil
	}

	// Each fetch records its own error; one failing must not cancel the other.
	var g errgroup.Group
	g.Go(func() error { return d.LoadNotes(ctx, id) })
	g.Go(func() error { return d.LoadFollowUps(ctx, id) })
	return g.Wait()
}

// LoadLead selects id and fetches it. A missing lead moves the aggregator
// to DetailNotFound and is not reported as an error.
func (d *Detail) LoadLead(ctx context.Context, id string) error {
	d.mu.Lock()
	if d.leadID != id {
		d.noteList = nil
		d.followUpList = nil
	}
	d.leadID = id
	d.lead = nil
	d.state = DetailLoading
	d.err = ""
	d.mu.Unlock()

	callCtx, cancel := d.opts.bound(ctx)
	lead, err := d.leads.GetLead(callCtx, id)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.leadID != id {
		return nil
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		d.state = DetailNotFound
		return nil
	case err != nil:
		d.state = DetailError
		d.err = msgFetchLead
		d.opts.logger.Error("fetching lead failed", "op", "fetch_lead", "lead_id", id, "error", err)
		return err
	}
	d.lead = lead
	d.state = DetailReady
	return nil
}

// LoadNotes fetches the notes for leadID, oldest first.
func (d *Detail) LoadNotes(ctx context.Context, leadID string) error {
	d.mu.Lock()
	d.notesLoading = true
	d.mu.Unlock()

	callCtx, cancel := d.opts.bound(ctx)
	notes, err := d.notes.ListNotes(callCtx, leadID)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.notesLoading = false
	if d.leadID != leadID {
		return nil
	}
	if err != nil {
		d.err = msgFetchNotes
		d.opts.logger.Error("fetching notes failed", "op", "fetch_notes", "lead_id", leadID, "error", err)
		return err
	}
	d.noteList = filterByLead(notes, leadID, func(n model.Note) string { return n.LeadID })
	return nil
}

// LoadFollowUps fetches the follow-ups for leadID in insertion order.
func (d *Detail) LoadFollowUps(ctx context.Context, leadID string) error {
	d.mu.Lock()
	d.followUpsLoading = true
	d.mu.Unlock()

	callCtx, cancel := d.opts.bound(ctx)
	followUps, err := d.followUps.ListFollowUps(callCtx, leadID)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.followUpsLoading = false
	if d.leadID != leadID {
		return nil
	}
	if err != nil {
		d.err = msgFetchFollowUps
		d.opts.logger.Error("fetching followups failed", "op", "fetch_followups", "lead_id", leadID, "error", err)
		return err
	}
	d.followUpList = filterByLead(followUps, leadID, func(f model.FollowUp) string { return f.LeadID })
	return nil
}

// AddNote appends a note to leadID and refetches its notes. Blank content
// is rejected before any network call.
func (d *Detail) AddNote(ctx context.Context, leadID, content string, createdBy int) error {
	if err := validate.NoteContent(content); err != nil {
		return err
	}

	callCtx, cancel := d.opts.bound(ctx)
	_, err := d.notes.CreateNote(callCtx, model.NoteDraft{
		LeadID:    leadID,
		Content:   strings.TrimSpace(content),
		CreatedBy: createdBy,
	})
	cancel()
	if err != nil {
		d.fail(msgAddNote, "add_note", leadID, err)
		return err
	}
	return d.LoadNotes(ctx, leadID)
}

// ScheduleFollowUp creates a pending follow-up on the given YYYY-MM-DD
// date and refetches the lead's follow-ups. Dates before today are
// rejected; today itself is accepted.
func (d *Detail) ScheduleFollowUp(ctx context.Context, leadID, date string) error {
	day, err := validate.FollowUpDate(date, d.opts.now())
	if err != nil {
		return err
	}

	callCtx, cancel := d.opts.bound(ctx)
	_, err = d.followUps.CreateFollowUp(callCtx, model.FollowUpDraft{
		LeadID: leadID,
		Date:   day,
		Status: model.FollowUpPending,
	})
	cancel()
	if err != nil {
		d.fail(msgCreateFollowUp, "schedule_followup", leadID, err)
		return err
	}
	return d.LoadFollowUps(ctx, leadID)
}

// MarkFollowUpDone completes a follow-up and refetches the lead's
// follow-ups. Completing an already completed follow-up is a no-op.
func (d *Detail) MarkFollowUpDone(ctx context.Context, followUpID, leadID string) error {
	callCtx, cancel := d.opts.bound(ctx)
	_, err := d.followUps.SetFollowUpStatus(callCtx, followUpID, model.FollowUpCompleted)
	cancel()
	if err != nil {
		d.fail(msgUpdateFollowUp, "mark_followup_done", leadID, err)
		return err
	}
	return d.LoadFollowUps(ctx, leadID)
}

func (d *Detail) fail(msg, op, leadID string, err error) {
	d.mu.Lock()
	d.err = msg
	d.mu.Unlock()
	d.opts.logger.Error("lead detail update failed", "op", op, "lead_id", leadID, "error", err)
}

// Clear forgets the selected lead and everything loaded for it.
func (d *Detail) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.leadID = ""
	d.lead = nil
	d.state = DetailIdle
	d.noteList = nil
	d.followUpList = nil
	d.notesLoading = false
	d.followUpsLoading = false
	d.err = ""
}

// LeadID returns the selected lead identifier.
func (d *Detail) LeadID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leadID
}

// Lead returns a copy of the loaded lead.
func (d *Detail) Lead() (model.Lead, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lead == nil {
		return model.Lead{}, false
	}
	return *d.lead, true
}

// Notes returns a copy of the loaded notes.
func (d *Detail) Notes() []model.Note {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.noteList)
}

// FollowUps returns a copy of the loaded follow-ups.
func (d *Detail) FollowUps() []model.FollowUp {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.followUpList)
}

// State returns the lead load state.
func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Loading reports whether notes or follow-ups are being fetched.
func (d *Detail) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notesLoading || d.followUpsLoading
}

// Err returns the last recorded failure message, or "".
func (d *Detail) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// filterByLead keeps the records whose lead reference equals leadID,
// preserving order.
func filterByLead[T any](items []T, leadID string, ref func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(ref(it)) == leadID {
			out = append(out, it)
		}
	}
	return out
}
