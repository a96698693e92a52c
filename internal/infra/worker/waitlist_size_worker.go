package worker

import (
	"context"
	"log"
	"time"

	"github.com/thearchitech/waitlist-api/internal/entity"
	"github.com/thearchitech/waitlist-api/internal/infra/http/middleware"
)

// WaitlistSizeWorker keeps the waitlist_size gauge fresh so dashboards
// do not have to poll /api/stats.
type WaitlistSizeWorker struct {
	repo         entity.WaitlistRepository
	tickInterval time.Duration
}

func NewWaitlistSizeWorker(repo entity.WaitlistRepository) *WaitlistSizeWorker {
	return &WaitlistSizeWorker{
		repo:         repo,
		tickInterval: 1 * time.Minute,
	}
}

func (w *WaitlistSizeWorker) Start(ctx context.Context) {
	log.Println("[GAUGE] waitlist size worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[GAUGE] waitlist size worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *WaitlistSizeWorker) refresh(ctx context.Context) {
	stats, err := w.repo.Stats(ctx)
	if err != nil {
		log.Printf("[GAUGE] failed to refresh waitlist size: %v", err)
		return
	}

	middleware.SetWaitlistSize(stats.TotalSignups)
}
