package handlers

import (
	"log"
	"net/http"

	"github.com/thearchitech/waitlist-api/internal/entity"
)

type StatsHandler struct {
	Repo entity.WaitlistRepository
}

func NewStatsHandler(repo entity.WaitlistRepository) *StatsHandler {
	return &StatsHandler{Repo: repo}
}

// Handle implements GET /api/stats. No use case in between, the
// aggregate query is the whole operation.
func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		log.Printf("[STATS] aggregate query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    stats,
	})
}
