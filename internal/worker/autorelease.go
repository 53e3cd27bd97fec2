// internal/worker/autorelease.go
package worker

import (
	"context"
	"time"

	"cprice-service/internal/service/inquiry"

	"go.uber.org/zap"
)

// AutoReleaser periodically sweeps assigned inquiries past their holding
// deadline back to the pending pool. The sweep is one set-based update, so
// running it alongside the manual endpoint is safe.
type AutoReleaser struct {
	service  *inquiry.InquiryService
	interval time.Duration
	logger   *zap.Logger
}

func NewAutoReleaser(service *inquiry.InquiryService, interval time.Duration, logger *zap.Logger) *AutoReleaser {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AutoReleaser{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a fixed ticker until ctx is cancelled. Call in a goroutine.
func (w *AutoReleaser) Run(ctx context.Context) {
	w.logger.Info("auto-release worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("auto-release worker stopped")
			return
		case <-ticker.C:
			if _, err := w.service.AutoReleaseExpired(ctx); err != nil {
				w.logger.Error("auto-release sweep failed", zap.Error(err))
			}
		}
	}
}
