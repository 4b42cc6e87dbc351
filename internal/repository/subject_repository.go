package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartattend/backend/internal/model"
)

const subjectViewQuery = `
	SELECT s.id, s.name, s.code, s.section, s.semester,
	       COALESCE(s.faculty_id, 0),
	       COALESCE(f.name, ''), COALESCE(f.department, '')
	FROM subjects s
	LEFT JOIN users f ON f.id = s.faculty_id`

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) queryViews(ctx context.Context, query string, args ...interface{}) ([]model.SubjectView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []model.SubjectView
	for rows.Next() {
		var s model.SubjectView
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Section, &s.Semester,
			&s.FacultyID, &s.FacultyName, &s.FacultyDept); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// ListAll returns every subject with faculty fields denormalized.
func (r *SubjectRepository) ListAll(ctx context.Context) ([]model.SubjectView, error) {
	return r.queryViews(ctx, subjectViewQuery+` ORDER BY s.id`)
}

// ListByFaculty returns subjects owned by one faculty user.
func (r *SubjectRepository) ListByFaculty(ctx context.Context, facultyID int) ([]model.SubjectView, error) {
	return r.queryViews(ctx, subjectViewQuery+` WHERE s.faculty_id = $1 ORDER BY s.id`, facultyID)
}

// ListByStudent returns subjects a student is enrolled in.
func (r *SubjectRepository) ListByStudent(ctx context.Context, studentID int) ([]model.SubjectView, error) {
	return r.queryViews(ctx, subjectViewQuery+`
		JOIN enrollments e ON e.subject_id = s.id
		WHERE e.student_id = $1 ORDER BY s.id`, studentID)
}

// GetByID retrieves one subject with faculty fields denormalized.
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.SubjectView, error) {
	subjects, err := r.queryViews(ctx, subjectViewQuery+` WHERE s.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &subjects[0], nil
}

// Count returns the total number of subjects.
func (r *SubjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&n)
	return n, err
}

// CountByFaculty returns how many subjects one faculty user owns.
func (r *SubjectRepository) CountByFaculty(ctx context.Context, facultyID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subjects WHERE faculty_id = $1`, facultyID).Scan(&n)
	return n, err
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, code, faculty_id, section, semester)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		s.Name, s.Code, s.FacultyID, s.Section, s.Semester,
	).Scan(&s.ID, &s.CreatedAt)
}
