package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartattend/backend/internal/model"
)

// SlotRepository handles class slot data access.
type SlotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository creates a new SlotRepository.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// SlotFilter narrows ListViews. Nil fields are ignored.
type SlotFilter struct {
	FacultyID *int
	StudentID *int
	Day       *string
}

// ListViews returns slots joined with their subject and faculty, optionally
// filtered. Ordering by day-of-week and start time is done by the caller
// since the canonical week order is not the lexical one.
func (r *SlotRepository) ListViews(ctx context.Context, filter SlotFilter) ([]model.SlotView, error) {
	query := `
		SELECT cs.id, cs.subject_id, s.name, s.code,
		       COALESCE(s.faculty_id, 0), COALESCE(f.name, ''),
		       cs.day_of_week, cs.start_time, cs.end_time, cs.room
		FROM class_slots cs
		JOIN subjects s ON s.id = cs.subject_id
		LEFT JOIN users f ON f.id = s.faculty_id`

	var args []interface{}
	var conds []string
	if filter.FacultyID != nil {
		args = append(args, *filter.FacultyID)
		conds = append(conds, fmt.Sprintf("s.faculty_id = $%d", len(args)))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM enrollments e WHERE e.subject_id = s.id AND e.student_id = $%d)", len(args)))
	}
	if filter.Day != nil {
		args = append(args, *filter.Day)
		conds = append(conds, fmt.Sprintf("cs.day_of_week = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.SlotView
	for rows.Next() {
		var v model.SlotView
		if err := rows.Scan(&v.ID, &v.SubjectID, &v.SubjectName, &v.SubjectCode,
			&v.FacultyID, &v.FacultyName, &v.DayOfWeek, &v.StartTime, &v.EndTime, &v.Room); err != nil {
			return nil, err
		}
		slots = append(slots, v)
	}
	return slots, rows.Err()
}

// GetByID retrieves a class slot by ID.
func (r *SlotRepository) GetByID(ctx context.Context, id int) (*model.ClassSlot, error) {
	s := &model.ClassSlot{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, day_of_week, start_time, end_time, room
		 FROM class_slots WHERE id = $1`, id,
	).Scan(&s.ID, &s.SubjectID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Room)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new class slot.
func (r *SlotRepository) Create(ctx context.Context, s *model.ClassSlot) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_slots (subject_id, day_of_week, start_time, end_time, room)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.SubjectID, s.DayOfWeek, s.StartTime, s.EndTime, s.Room,
	).Scan(&s.ID)
}
