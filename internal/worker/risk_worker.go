// Package worker holds the background loops the server runs next to the
// HTTP handlers.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/metrics"
	"github.com/smartattend/backend/internal/report"
	"github.com/smartattend/backend/internal/repository"
)

// RiskWorker keeps the cached risk-alert snapshot fresh. It rescans the
// ledger whenever a submission event arrives and on a periodic ticker, so
// the dashboard reads a precomputed result instead of scanning per
// request.
type RiskWorker struct {
	attendance *repository.AttendanceRepository
	rdb        *redis.Client
	cfg        *config.Config
	log        zerolog.Logger
}

// NewRiskWorker creates a new RiskWorker.
func NewRiskWorker(attendance *repository.AttendanceRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *RiskWorker {
	return &RiskWorker{
		attendance: attendance,
		rdb:        rdb,
		cfg:        cfg,
		log:        log.With().Str("component", "risk_worker").Logger(),
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *RiskWorker) Start(ctx context.Context) {
	w.log.Info().
		Dur("scan_interval", w.cfg.RiskScanInterval).
		Msg("RiskWorker started")

	// Prime the cache so the first dashboard hit is already warm.
	w.scan(ctx, "startup")

	sub := w.rdb.Subscribe(ctx, config.CacheKey.SubmissionChannel())
	defer sub.Close()
	events := sub.Channel()

	ticker := time.NewTicker(w.cfg.RiskScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		case msg, ok := <-events:
			if !ok {
				// Subscription dropped; the ticker still bounds staleness.
				events = nil
				w.log.Warn().Msg("Submission subscription closed")
				continue
			}
			w.log.Debug().Str("payload", msg.Payload).Msg("Submission event")
			w.scan(ctx, "submission")

		case <-ticker.C:
			w.scan(ctx, "interval")
		}
	}
}

// scan recomputes the alerts and rewrites the cache entry.
func (w *RiskWorker) scan(ctx context.Context, trigger string) {
	started := time.Now()

	snap, err := w.attendance.LoadSnapshot(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Snapshot load failed")
		return
	}
	alerts := report.DetectPatterns(snap)

	payload, err := json.Marshal(alerts)
	if err != nil {
		w.log.Error().Err(err).Msg("Marshal alerts failed")
		return
	}
	if err := w.rdb.Set(ctx, config.CacheKey.RiskAlertsKey(), payload, w.cfg.RiskCacheTTL).Err(); err != nil {
		w.log.Error().Err(err).Msg("Cache write failed")
		return
	}

	metrics.RiskScansTotal.WithLabelValues(trigger).Inc()
	w.log.Info().
		Str("trigger", trigger).
		Int("alerts", len(alerts)).
		Dur("took", time.Since(started)).
		Msg("Risk scan complete")
}
