package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vinayk98/mini-crm/internal/model"
)

// Error codes carried in the error envelope. They match the codes the
// remote client decodes.
const (
	codeNotFound   = "not_found"
	codeValidation = "validation_failed"
	codeBadRequest = "bad_request"
	codeInternal   = "internal_error"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding failure cannot change the status.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the model error taxonomy onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:  verr.Error(),
			Code:   codeValidation,
			Fields: verr.Fields,
		})
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{
			Error: "not found",
			Code:  codeNotFound,
		})
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error: err.Error(),
			Code:  codeBadRequest,
		})
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: "internal server error",
			Code:  codeInternal,
		})
	}
}

var errBadRequest = errors.New("bad request")

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
