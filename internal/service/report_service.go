package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/metrics"
	"github.com/smartattend/backend/internal/report"
	"github.com/smartattend/backend/internal/repository"
)

// ReportService serves the read-side views: per-student reports, faculty
// history, the institution overview, and risk patterns. Every view is a
// pure computation over one ledger snapshot.
type ReportService struct {
	attendance *repository.AttendanceRepository
	rdb        *redis.Client
	cfg        *config.Config
	logger     zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(attendance *repository.AttendanceRepository, rdb *redis.Client, cfg *config.Config) *ReportService {
	return &ReportService{
		attendance: attendance,
		rdb:        rdb,
		cfg:        cfg,
		logger:     log.With().Str("component", "report_service").Logger(),
	}
}

// StudentReport returns a student's per-subject attendance, worst first.
func (s *ReportService) StudentReport(ctx context.Context, studentID int) ([]report.SubjectReport, error) {
	snap, err := s.attendance.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.StudentSubjects(snap, studentID), nil
}

// FacultyHistoryLimit caps the faculty submission history view.
const FacultyHistoryLimit = 50

// FacultyHistory returns a faculty's submitted sessions, most recent first.
func (s *ReportService) FacultyHistory(ctx context.Context, facultyID int) ([]report.SessionSummary, error) {
	snap, err := s.attendance.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.FacultyHistory(snap, facultyID, FacultyHistoryLimit), nil
}

// Overview returns the institution-wide rollup.
func (s *ReportService) Overview(ctx context.Context) (*report.Overview, error) {
	snap, err := s.attendance.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	ov := report.BuildOverview(snap)
	return &ov, nil
}

// Patterns returns the current risk alerts. The cached snapshot written by
// the risk worker is preferred; on a cache miss the ledger is scanned
// directly and the result cached for the next caller.
func (s *ReportService) Patterns(ctx context.Context) ([]report.RiskAlert, error) {
	cached, err := s.rdb.Get(ctx, config.CacheKey.RiskAlertsKey()).Result()
	if err == nil {
		var alerts []report.RiskAlert
		if jsonErr := json.Unmarshal([]byte(cached), &alerts); jsonErr == nil {
			return alerts, nil
		}
		// Corrupt cache entry: fall through to a direct scan.
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("Risk cache unavailable, scanning directly")
	}

	snap, err := s.attendance.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	alerts := report.DetectPatterns(snap)
	metrics.RiskScansTotal.WithLabelValues("on_demand").Inc()

	if payload, err := json.Marshal(alerts); err == nil {
		if err := s.rdb.Set(ctx, config.CacheKey.RiskAlertsKey(), payload, s.cfg.RiskCacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache risk alerts")
		}
	}
	return alerts, nil
}
