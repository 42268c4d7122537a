package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/optitask/optitask/internal/apperr"
)

// errorBody is the caller-visible error representation.
type errorBody struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// statusBody is the success representation for operations with no entity
// to return, such as deletes.
type statusBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, statusBody{Status: "success", Message: message})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindBadRequest, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// renderError maps a classified failure to its status family. Client-side
// failures surface their specific message; server-side detail stays in the
// logs and the caller gets a generic line.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	status := statusOf(e.Kind)

	message := e.Message
	if e.ServerSide() {
		message = "an internal server error occurred, please try again later"
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", e.Kind.String(),
			"error", e.Error(),
		)
	} else {
		s.logger.Warn("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", e.Kind.String(),
			"message", e.Message,
		)
	}

	s.writeJSON(w, status, errorBody{
		Status:     "error",
		StatusCode: status,
		Message:    message,
	})
}
