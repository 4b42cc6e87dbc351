package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartattend/backend/internal/model"
	"github.com/smartattend/backend/internal/report"
)

// ErrDuplicateSession signals that a session already exists for the
// (slot, date) pair. Surfaced from the unique constraint, never from a
// read-then-write check, so concurrent submitters race safely.
var ErrDuplicateSession = errors.New("attendance already submitted for this session")

// AttendanceRepository is the attendance ledger: sessions, per-student
// records, and the notifications written alongside a submission.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// SubmitSession writes one session, its records, and the absence
// notifications in a single transaction. Either everything lands or
// nothing does. The session's ID and SubmittedAt are filled in on success.
func (r *AttendanceRepository) SubmitSession(
	ctx context.Context,
	sess *model.AttendanceSession,
	records []model.RecordInput,
	notifications []model.Notification,
) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO attendance_sessions (subject_id, slot_id, faculty_id, date, total_present, total_absent)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, submitted_at`,
		sess.SubjectID, sess.SlotID, sess.FacultyID, sess.Date, sess.TotalPresent, sess.TotalAbsent,
	).Scan(&sess.ID, &sess.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSession
		}
		return err
	}

	studentIDs := make([]int, len(records))
	statuses := make([]string, len(records))
	for i, rec := range records {
		studentIDs[i] = rec.StudentID
		statuses[i] = string(rec.Status)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO attendance_records (session_id, student_id, status)
		 SELECT $1, s, st FROM UNNEST($2::int[], $3::text[]) AS t(s, st)`,
		sess.ID, studentIDs, statuses)
	if err != nil {
		return err
	}

	for _, n := range notifications {
		_, err = tx.Exec(ctx,
			`INSERT INTO notifications (user_id, role_target, title, message, type)
			 VALUES ($1, $2, $3, $4, $5)`,
			n.UserID, n.RoleTarget, n.Title, n.Message, n.Type)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SessionFor returns the session for a (slot, date) pair, or nil when no
// attendance has been taken yet.
func (r *AttendanceRepository) SessionFor(ctx context.Context, slotID int, date string) (*model.AttendanceSession, error) {
	s := &model.AttendanceSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, COALESCE(subject_id, 0), slot_id, COALESCE(faculty_id, 0),
		        date, total_present, total_absent, submitted_at
		 FROM attendance_sessions WHERE slot_id = $1 AND date = $2`,
		slotID, date,
	).Scan(&s.ID, &s.SubjectID, &s.SlotID, &s.FacultyID,
		&s.Date, &s.TotalPresent, &s.TotalAbsent, &s.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RecordsForSession returns the per-student records of one session.
func (r *AttendanceRepository) RecordsForSession(ctx context.Context, sessionID int) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, student_id, status
		 FROM attendance_records WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.StudentID, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountSessions returns the total number of submitted sessions.
func (r *AttendanceRepository) CountSessions(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_sessions`).Scan(&n)
	return n, err
}

// CountRecords returns the total number of per-student attendance records.
func (r *AttendanceRepository) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records`).Scan(&n)
	return n, err
}

// CountSessionsByFaculty returns how many sessions one faculty submitted.
func (r *AttendanceRepository) CountSessionsByFaculty(ctx context.Context, facultyID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_sessions WHERE faculty_id = $1`, facultyID).Scan(&n)
	return n, err
}

// StudentTotals returns a student's overall (total, present) record counts.
func (r *AttendanceRepository) StudentTotals(ctx context.Context, studentID int) (total, present int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'present')
		 FROM attendance_records WHERE student_id = $1`, studentID,
	).Scan(&total, &present)
	return total, present, err
}

// LoadSnapshot reads the whole ledger plus the roster dimensions in six
// fixed queries, regardless of data volume. The result feeds the report
// package.
func (r *AttendanceRepository) LoadSnapshot(ctx context.Context) (*report.Snapshot, error) {
	snap := &report.Snapshot{
		Students: map[int]report.Student{},
		Subjects: map[int]report.Subject{},
		Slots:    map[int]report.Slot{},
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, COALESCE(subject_id, 0), slot_id, COALESCE(faculty_id, 0),
		        date, total_present, total_absent, submitted_at
		 FROM attendance_sessions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s report.Session
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.SlotID, &s.FacultyID,
			&s.Date, &s.TotalPresent, &s.TotalAbsent, &s.SubmittedAt); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Sessions = append(snap.Sessions, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, session_id, student_id, status FROM attendance_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var rec report.Record
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.StudentID, &rec.Status); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Records = append(snap.Records, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT student_id, subject_id FROM enrollments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var e report.Enrollment
		if err := rows.Scan(&e.StudentID, &e.SubjectID); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Enrollments = append(snap.Enrollments, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, name, COALESCE(student_no, ''), avatar_color
		 FROM users WHERE role = 'student'`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var st report.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.StudentNo, &st.AvatarColor); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Students[st.ID] = st
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT s.id, s.name, s.code, COALESCE(f.name, '')
		 FROM subjects s LEFT JOIN users f ON f.id = s.faculty_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sub report.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Code, &sub.FacultyName); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Subjects[sub.ID] = sub
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, day_of_week, start_time, end_time, room FROM class_slots`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var sl report.Slot
		if err := rows.Scan(&sl.ID, &sl.Day, &sl.StartTime, &sl.EndTime, &sl.Room); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Slots[sl.ID] = sl
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}
