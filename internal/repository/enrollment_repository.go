package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartattend/backend/internal/model"
)

// EnrollmentRepository handles student-subject enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// ListStudentsBySubject returns the enrolled students of one subject,
// ordered by name for stable rosters.
func (r *EnrollmentRepository) ListStudentsBySubject(ctx context.Context, subjectID int) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.role, u.department,
		       COALESCE(u.student_no, ''), u.avatar_color, u.created_at
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.subject_id = $1
		ORDER BY u.name`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *u)
	}
	return students, rows.Err()
}

// Create enrolls a student in a subject. The unique pair constraint makes
// re-enrolling a no-op at the database level.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, subjectID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO enrollments (student_id, subject_id) VALUES ($1, $2)
		 ON CONFLICT (student_id, subject_id) DO NOTHING`,
		studentID, subjectID)
	return err
}
