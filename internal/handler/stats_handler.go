package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/atik94/mobile-resale-market-server/internal/model"
)

type StatsService interface {
	Stats(ctx context.Context) (model.Stats, error)
}

type StatsHandler struct {
	svc StatsService
	log *slog.Logger
}

func NewStatsHandler(svc StatsService, log *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
