package viewmodel

import (
	"context"
	"slices"
	"sync"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/query"
	"github.com/vinayk98/mini-crm/internal/validate"
)

// Human-readable failure messages stored in Leads.Err.
const (
	msgFetchLeads = "Failed to fetch leads"
	msgAddLead    = "Failed to add lead"
	msgUpdateLead = "Failed to update lead"
	msgDeleteLead = "Failed to delete lead"
)

// Leads is the authoritative in-memory copy of the lead collection.
// It is safe for concurrent use; remote calls run outside the lock.
type Leads struct {
	coll LeadCollection
	opts options

	mu    sync.Mutex
	leads []model.Lead
	state State
	err   string
}

// NewLeads creates an idle view-model over coll.
func NewLeads(coll LeadCollection, opts ...Option) *Leads {
	o := buildOptions(opts)
	if o.pageSize <= 0 {
		o.pageSize = query.DefaultPageSize
	}
	return &Leads{coll: coll, opts: o}
}

// FetchAll replaces the local copy with the remote collection. On failure
// the previous data is kept and the state moves to StateError.
func (vm *Leads) FetchAll(ctx context.Context) error {
	vm.mu.Lock()
	vm.state = StateLoading
	vm.mu.Unlock()

	ctx, cancel := vm.opts.bound(ctx)
	defer cancel()

	leads, err := vm.coll.ListLeads(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		vm.state = StateError
		vm.err = msgFetchLeads
		vm.opts.logger.Error("fetching leads failed", "op", "fetch_leads", "error", err)
		return err
	}
	vm.leads = leads
	vm.state = StateReady
	vm.err = ""
	return nil
}

// Create validates d, sends it to the remote collection and refetches.
// A validation failure returns *model.ValidationError without any
// network call.
func (vm *Leads) Create(ctx context.Context, d model.LeadDraft) error {
	if err := validate.Lead(d); err != nil {
		return err
	}

	callCtx, cancel := vm.opts.bound(ctx)
	_, err := vm.coll.CreateLead(callCtx, d)
	cancel()
	if err != nil {
		vm.fail(msgAddLead, "create_lead", "", err)
		return err
	}
	return vm.FetchAll(ctx)
}

// Update validates the fields set in p, sends the partial update and
// refetches.
func (vm *Leads) Update(ctx context.Context, id string, p model.LeadPatch) error {
	if err := validate.LeadPatch(p); err != nil {
		return err
	}

	callCtx, cancel := vm.opts.bound(ctx)
	_, err := vm.coll.UpdateLead(callCtx, id, p)
	cancel()
	if err != nil {
		vm.fail(msgUpdateLead, "update_lead", id, err)
		return err
	}
	return vm.FetchAll(ctx)
}

// Delete removes a lead remotely and refetches. On failure the record
// stays in the local copy.
func (vm *Leads) Delete(ctx context.Context, id string) error {
	callCtx, cancel := vm.opts.bound(ctx)
	err := vm.coll.DeleteLead(callCtx, id)
	cancel()
	if err != nil {
		vm.fail(msgDeleteLead, "delete_lead", id, err)
		return err
	}
	return vm.FetchAll(ctx)
}

// fail records a mutation failure. The state is left alone so existing
// data stays visible.
func (vm *Leads) fail(msg, op, leadID string, err error) {
	vm.mu.Lock()
	vm.err = msg
	vm.mu.Unlock()
	vm.opts.logger.Error("lead mutation failed", "op", op, "lead_id", leadID, "error", err)
}

// Page runs the list query pipeline over the current snapshot.
func (vm *Leads) Page(p query.Params, page int) query.Result {
	vm.mu.Lock()
	leads := vm.leads
	vm.mu.Unlock()
	return query.Run(leads, p, page, vm.opts.pageSize)
}

// PageSize returns the configured page size.
func (vm *Leads) PageSize() int {
	return vm.opts.pageSize
}

// Leads returns a copy of the local collection.
func (vm *Leads) Leads() []model.Lead {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.leads)
}

// Find returns the cached lead with the given ID.
func (vm *Leads) Find(id string) (model.Lead, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, l := range vm.leads {
		if l.ID == id {
			return l, true
		}
	}
	return model.Lead{}, false
}

// State returns the current load state.
func (vm *Leads) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Err returns the last recorded failure message, or "".
func (vm *Leads) Err() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// ClearErr drops the recorded failure message.
func (vm *Leads) ClearErr() {
	vm.mu.Lock()
	vm.err = ""
	vm.mu.Unlock()
}
