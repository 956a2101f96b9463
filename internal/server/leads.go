package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/validate"
)

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListLeads(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.store.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var d model.LeadDraft
	if err := decodeJSON(r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	if d.Status == "" {
		d.Status = model.StatusNew
	}
	if d.Source == "" {
		d.Source = model.SourceWebsite
	}
	canonicalizeDraft(&d)
	if err := validate.Lead(d); err != nil {
		s.writeError(w, r, err)
		return
	}

	lead, err := s.store.CreateLead(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("lead", "create")
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handlePatchLead(w http.ResponseWriter, r *http.Request) {
	var p model.LeadPatch
	if err := decodeJSON(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	canonicalizePatch(&p)
	if err := validate.LeadPatch(p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.updateLead(w, r, p)
}

// handleReplaceLead overwrites every mutable field. Identifier and
// creation time in the body are ignored.
func (s *Server) handleReplaceLead(w http.ResponseWriter, r *http.Request) {
	var d model.LeadDraft
	if err := decodeJSON(r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	canonicalizeDraft(&d)
	if err := validate.Lead(d); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.updateLead(w, r, model.PatchFromDraft(d))
}

func (s *Server) updateLead(w http.ResponseWriter, r *http.Request, p model.LeadPatch) {
	lead, err := s.store.UpdateLead(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("lead", "update")
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("lead", "delete")
	writeJSON(w, http.StatusOK, map[string]string{})
}

// canonicalizeDraft rewrites recognised status and source values in
// display case. Unrecognised values are left for validation to reject.
func canonicalizeDraft(d *model.LeadDraft) {
	if st, err := model.ParseLeadStatus(string(d.Status)); err == nil {
		d.Status = st
	}
	if src, err := model.ParseLeadSource(string(d.Source)); err == nil {
		d.Source = src
	}
}

func canonicalizePatch(p *model.LeadPatch) {
	if p.Status != nil {
		if st, err := model.ParseLeadStatus(string(*p.Status)); err == nil {
			p.Status = &st
		}
	}
	if p.Source != nil {
		if src, err := model.ParseLeadSource(string(*p.Source)); err == nil {
			p.Source = &src
		}
	}
}
