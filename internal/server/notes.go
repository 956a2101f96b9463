package server

import (
	"net/http"
	"strings"

	"github.com/vinayk98/mini-crm/internal/model"
	"github.com/vinayk98/mini-crm/internal/validate"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListNotes(r.Context(), r.URL.Query().Get("leadId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var d model.NoteDraft
	if err := decodeJSON(r, &d); err != nil {
		s.writeError(w, r, err)
		return
	}
	d.Content = strings.TrimSpace(d.Content)
	if err := validate.NoteContent(d.Content); err != nil {
		s.writeError(w, r, err)
		return
	}
	if d.LeadID == "" {
		s.writeError(w, r, model.NewValidationError("leadId", "Lead is required."))
		return
	}

	note, err := s.store.CreateNote(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Mutation("note", "create")
	writeJSON(w, http.StatusCreated, note)
}
