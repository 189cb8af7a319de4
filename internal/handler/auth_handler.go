package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/service"
)

type TokenService interface {
	IssueToken(ctx context.Context, email string) (string, error)
}

type AuthHandler struct {
	svc TokenService
	log *slog.Logger
}

func NewAuthHandler(svc TokenService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// IssueToken serves GET /jwt?email=. Unknown emails get 403 and an empty token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.svc.IssueToken(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			writeJSON(w, http.StatusForbidden, tokenResponse{AccessToken: ""})
			return
		}
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token})
}
