package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/metrics"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/repository"
)

// ErrUnknownSlot signals a submission or roster request for a slot that
// does not exist.
var ErrUnknownSlot = errors.New("class slot not found")

// SubmissionEvent is published to Redis after each successful submission
// so the risk worker rescans promptly.
type SubmissionEvent struct {
	SessionID int    `json:"session_id"`
	SlotID    int    `json:"slot_id"`
	SubjectID int    `json:"subject_id"`
	Date      string `json:"date"`
}

// AttendanceService orchestrates taking attendance: resolving the slot,
// tallying the payload, building absence warnings, and writing everything
// atomically through the ledger.
type AttendanceService struct {
	attendance  *repository.AttendanceRepository
	slots       *repository.SlotRepository
	subjects    *repository.SubjectRepository
	enrollments *repository.EnrollmentRepository
	users       *repository.UserRepository
	rdb         *redis.Client
	logger      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	attendance *repository.AttendanceRepository,
	slots *repository.SlotRepository,
	subjects *repository.SubjectRepository,
	enrollments *repository.EnrollmentRepository,
	users *repository.UserRepository,
	rdb *redis.Client,
) *AttendanceService {
	return &AttendanceService{
		attendance:  attendance,
		slots:       slots,
		subjects:    subjects,
		enrollments: enrollments,
		users:       users,
		rdb:         rdb,
		logger:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// tallyRecords splits a submission payload into present/absent counts and
// the IDs of the absentees.
func tallyRecords(records []model.RecordInput) (present, absent int, absenteeIDs []int) {
	for _, r := range records {
		if r.Status == model.StatusPresent {
			present++
		} else {
			absent++
			absenteeIDs = append(absenteeIDs, r.StudentID)
		}
	}
	return present, absent, absenteeIDs
}

// Submit records one attendance session. Duplicate (slot, date)
// submissions surface repository.ErrDuplicateSession; nothing is written
// in that case, including notifications.
func (s *AttendanceService) Submit(ctx context.Context, req *model.SubmitAttendanceRequest) (*model.SubmitResult, error) {
	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownSlot
		}
		return nil, err
	}

	subjectName := ""
	if subject, err := s.subjects.GetByID(ctx, slot.SubjectID); err == nil {
		subjectName = subject.Name
	}

	present, absent, absenteeIDs := tallyRecords(req.Records)

	absenteeUsers, err := s.users.GetByIDs(ctx, absenteeIDs)
	if err != nil {
		return nil, err
	}
	absentees := make([]model.User, 0, len(absenteeIDs))
	for _, id := range absenteeIDs {
		if u, ok := absenteeUsers[id]; ok {
			absentees = append(absentees, u)
		}
	}
	alerts := AbsenceAlerts(subjectName, req.Date, absentees)

	sess := &model.AttendanceSession{
		SubjectID:    slot.SubjectID,
		SlotID:       slot.ID,
		FacultyID:    req.FacultyID,
		Date:         req.Date,
		TotalPresent: present,
		TotalAbsent:  absent,
	}
	if err := s.attendance.SubmitSession(ctx, sess, req.Records, alerts); err != nil {
		if errors.Is(err, repository.ErrDuplicateSession) {
			metrics.DuplicateSubmissionsTotal.Inc()
		}
		return nil, err
	}

	metrics.SubmissionsTotal.Inc()
	metrics.AbsenceNotificationsTotal.Add(float64(len(alerts)))
	s.logger.Info().
		Int("session_id", sess.ID).
		Int("slot_id", slot.ID).
		Str("date", req.Date).
		Int("present", present).
		Int("absent", absent).
		Int("alerts", len(alerts)).
		Msg("Attendance submitted")

	s.publishSubmission(ctx, SubmissionEvent{
		SessionID: sess.ID,
		SlotID:    slot.ID,
		SubjectID: slot.SubjectID,
		Date:      req.Date,
	})
	s.publishAlerts(ctx, alerts)

	return submitResult(present, absent, absentees), nil
}

// submitResult builds the submission response. AlertsSent counts the
// absent students that were alerted, not the notifications fanned out
// for them (each absentee produces two).
func submitResult(present, absent int, absentees []model.User) *model.SubmitResult {
	return &model.SubmitResult{Present: present, Absent: absent, AlertsSent: len(absentees)}
}

// publishSubmission is best effort: a dropped event only delays the risk
// worker until its next periodic scan.
func (s *AttendanceService) publishSubmission(ctx context.Context, ev SubmissionEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.SubmissionChannel(), payload).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to publish submission event")
	}
}

// publishAlerts pushes the freshly written warnings to the live
// notification stream. Best effort as well: they are already persisted.
func (s *AttendanceService) publishAlerts(ctx context.Context, alerts []model.Notification) {
	for _, n := range alerts {
		payload, err := json.Marshal(n)
		if err != nil {
			continue
		}
		if err := s.rdb.Publish(ctx, config.CacheKey.NotificationChannel(), payload).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to publish notification event")
			return
		}
	}
}

// Roster returns the enrolled students of a slot's subject for one date,
// with per-student statuses filled in when attendance was already taken.
func (s *AttendanceService) Roster(ctx context.Context, slotID int, date string) (*model.Roster, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownSlot
		}
		return nil, err
	}

	students, err := s.enrollments.ListStudentsBySubject(ctx, slot.SubjectID)
	if err != nil {
		return nil, err
	}

	roster := &model.Roster{Students: make([]model.RosterStudent, 0, len(students))}

	sess, err := s.attendance.SessionFor(ctx, slotID, date)
	if err != nil {
		return nil, err
	}
	statuses := map[int]model.Status{}
	if sess != nil {
		records, err := s.attendance.RecordsForSession(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			statuses[r.StudentID] = r.Status
		}
		roster.AlreadySubmitted = true
		roster.TotalPresent = sess.TotalPresent
		roster.TotalAbsent = sess.TotalAbsent
	}

	for _, st := range students {
		rs := model.RosterStudent{
			StudentID:   st.ID,
			Name:        st.Name,
			StudentNo:   st.StudentNo,
			AvatarColor: st.AvatarColor,
		}
		if status, ok := statuses[st.ID]; ok {
			rs.Status = &status
		}
		roster.Students = append(roster.Students, rs)
	}
	return roster, nil
}
