package server

import (
	"errors"
	"net/http"

	"github.com/vinayk98/mini-crm/internal/model"
)

// handleFindUsers answers GET /users?email=&password= with the matching
// account, or an empty list when the credentials do not match.
func (s *Server) handleFindUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email, password := q.Get("email"), q.Get("password")

	users := []model.User{}
	if email != "" && password != "" {
		u, err := s.store.FindUser(r.Context(), email, password)
		switch {
		case err == nil:
			users = append(users, *u)
		case errors.Is(err, model.ErrNotFound):
			s.logger.InfoContext(r.Context(), "login rejected",
				"request_id", RequestIDFrom(r.Context()))
		default:
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, users)
}
