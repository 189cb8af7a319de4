package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/repository"
	"github.com/atik94/mobile-resale-market-server/internal/service"
	"github.com/atik94/mobile-resale-market-server/internal/service/stripe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// decodeJSON reads the request body into v and, for tagged request types,
// validates it.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// respondError maps a service or store failure to an HTTP status. 5xx
// responses are logged with the request id.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"

	var apiErr *stripe.ErrorResponse
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrBookingNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidPrice):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &apiErr):
		status, msg = http.StatusBadGateway, apiErr.Err.Message
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"err", err,
			"status", status,
			"req_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
	}
	writeMessage(w, status, msg)
}
