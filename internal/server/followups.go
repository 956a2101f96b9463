package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/validate"
)

func (s *Server) handleListFollowUps(w http.ResponseWriter, r *http.Request) {
	followUps, err := s.store.ListFollowUps(r.Context(), r.URL.Query().Get("leadId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, followUps)
}

func (s *Server) handleCreateFollowUp(w http.ResponseWriter, r *http.Request) {
	var d model.FollowUpDraft
	if err := decodeJSON(r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	if d.LeadID == "" {
		s.writeError(w, r, model.NewValidationError("leadId", "Lead is required."))
		return
	}
	if d.Date.IsZero() {
		s.writeError(w, r, model.NewValidationError(validate.FieldDate, "Date is required."))
		return
	}
	switch d.Status {
	case "":
		d.Status = model.FollowUpPending
	case model.FollowUpPending:
	default:
		// Completion is a PATCH on an existing follow-up.
		s.writeError(w, r, model.NewValidationError("status", "New follow-ups must be pending."))
		return
	}

	f, err := s.store.CreateFollowUp(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("followup", "create")
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handlePatchFollowUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := s.store.SetFollowUpStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("followup", "update")
	writeJSON(w, http.StatusOK, f)
}
