package viewmodel

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vinayk98/mini-crm/internal/model"
)

// fakeBackend is an in-memory stand-in for the remote collections.
type fakeBackend struct {
	mu        sync.Mutex
	seq       int
	leads     []model.Lead
	notes     []model.Note
	followUps []model.FollowUp
	calls     map[string]int
	fail      map[string]error

	// ignoreFilter returns every record regardless of leadId, like a
	// backend that does not support the query parameter.
	ignoreFilter bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls: make(map[string]int),
		fail:  make(map[string]error),
	}
}

func (f *fakeBackend) record(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeBackend) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeBackend) nextID() string {
	f.seq++
	return fmt.Sprintf("id-%d", f.seq)
}

func (f *fakeBackend) ListLeads(_ context.Context) ([]model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListLeads"); err != nil {
		return nil, err
	}
	return slices.Clone(f.leads), nil
}

func (f *fakeBackend) GetLead(_ context.Context, id string) (*model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetLead"); err != nil {
		return nil, err
	}
	for _, l := range f.leads {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, fmt.Errorf("lead %s: %w", id, model.ErrNotFound)
}

func (f *fakeBackend) CreateLead(_ context.Context, d model.LeadDraft) (*model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateLead"); err != nil {
		return nil, err
	}
	l := model.Lead{
		ID: f.nextID(), Name: d.Name, Email: d.Email, Phone: d.Phone,
		Status: d.Status, Source: d.Source, Company: d.Company,
		AssignedTo: d.AssignedTo, CreatedAt: time.Now(),
	}
	f.leads = append(f.leads, l)
	return &l, nil
}

func (f *fakeBackend) UpdateLead(_ context.Context, id string, p model.LeadPatch) (*model.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateLead"); err != nil {
		return nil, err
	}
	for i, l := range f.leads {
		if l.ID == id {
			f.leads[i] = p.Apply(l)
			updated := f.leads[i]
			return &updated, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeBackend) DeleteLead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteLead"); err != nil {
		return err
	}
	for i, l := range f.leads {
		if l.ID == id {
			f.leads = slices.Delete(f.leads, i, i+1)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeBackend) ListNotes(_ context.Context, leadID string) ([]model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListNotes"); err != nil {
		return nil, err
	}
	var out []model.Note
	for _, n := range f.notes {
		if f.ignoreFilter || leadID == "" || n.LeadID == leadID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateNote(_ context.Context, d model.NoteDraft) (*model.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateNote"); err != nil {
		return nil, err
	}
	n := model.Note{ID: f.nextID(), LeadID: d.LeadID, Content: d.Content, CreatedBy: d.CreatedBy, CreatedAt: time.Now()}
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeBackend) ListFollowUps(_ context.Context, leadID string) ([]model.FollowUp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListFollowUps"); err != nil {
		return nil, err
	}
	var out []model.FollowUp
	for _, fu := range f.followUps {
		if f.ignoreFilter || leadID == "" || fu.LeadID == leadID {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateFollowUp(_ context.Context, d model.FollowUpDraft) (*model.FollowUp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateFollowUp"); err != nil {
		return nil, err
	}
	fu := model.FollowUp{ID: f.nextID(), LeadID: d.LeadID, Date: d.Date, Status: d.Status}
	f.followUps = append(f.followUps, fu)
	return &fu, nil
}

func (f *fakeBackend) SetFollowUpStatus(_ context.Context, id, status string) (*model.FollowUp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetFollowUpStatus"); err != nil {
		return nil, err
	}
	for i, fu := range f.followUps {
		if fu.ID == id {
			f.followUps[i].Status = status
			updated := f.followUps[i]
			return &updated, nil
		}
	}
	return nil, model.ErrNotFound
}

// blockingLeads never answers until its context ends.
type blockingLeads struct {
	*fakeBackend
}

func (b blockingLeads) ListLeads(ctx context.Context) ([]model.Lead, error) {
	<-ctx.Done()
	return nil, &model.NetworkError{Op: "GET /leads", Err: ctx.Err()}
}
