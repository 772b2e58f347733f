package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/tashanwin/club-settle-go/internal/games"
	"github.com/tashanwin/club-settle-go/internal/settle"
	"github.com/tashanwin/club-settle-go/internal/store"
	"github.com/tashanwin/club-settle-go/internal/wallet"
)

// classify maps domain errors to HTTP status and error type. Anything
// unrecognized is an internal error.
func classify(err error) (int, string) {
	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrTypeValidation
	case errors.Is(err, settle.ErrInvalidBet):
		return http.StatusUnprocessableEntity, ErrTypeInvalidBet
	case errors.Is(err, games.ErrUnknownSelection):
		return http.StatusUnprocessableEntity, ErrTypeUnknownSelection
	case errors.Is(err, games.ErrInvalidParameters):
		return http.StatusBadRequest, ErrTypeInvalidParams
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrTypeInsufficientFunds
	case errors.Is(err, wallet.ErrInvalidAmount):
		return http.StatusBadRequest, ErrTypeInvalidBet
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrTypeRoundNotFound
	default:
		return http.StatusInternalServerError, ErrTypeInternal
	}
}

// handleError classifies err and writes the structured envelope.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status, errType := classify(err)
	s.writeError(w, r, status, errType, err.Error())
}

// writeError writes the structured error envelope with request metadata.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "type", errType, "err", message)
	} else {
		s.log.Debug("request rejected", "path", r.URL.Path, "type", errType, "err", message)
	}
	s.writeJSON(w, status, APIError{
		Type:      errType,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
