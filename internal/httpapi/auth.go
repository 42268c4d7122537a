package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/optitask/optitask/internal/apperr"
)

// IdentityHeader carries the caller's opaque identifier. Token validation
// happens upstream; this service only consumes the extracted id.
const IdentityHeader = "X-User-Id"

// identityFrom extracts the caller identity from the request. A missing
// header is Unauthorized; a present-but-unusable one is BadRequest.
func identityFrom(r *http.Request) (uuid.UUID, error) {
	values, present := r.Header[http.CanonicalHeaderKey(IdentityHeader)]
	if !present || len(values) == 0 {
		return uuid.Nil, apperr.Unauthorized("missing %s header, authentication required", IdentityHeader)
	}
	raw := values[0]
	if raw == "" {
		return uuid.Nil, apperr.BadRequest("%s header cannot be empty", IdentityHeader)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.BadRequest("invalid %s header format (not a valid UUID)", IdentityHeader)
	}
	return id, nil
}

// handlerFunc is an identity-scoped handler that reports failures as
// errors for central rendering.
type handlerFunc func(w http.ResponseWriter, r *http.Request, owner uuid.UUID) error

// authed wraps a handler with identity extraction and the per-request
// timeout that bounds pool acquisition.
func (s *Server) authed(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := identityFrom(r)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
		defer cancel()

		if err := h(w, r.WithContext(ctx), owner); err != nil {
			s.renderError(w, r, err)
		}
	})
}
