// Package report holds the pure attendance aggregation core: percentage and
// health classification, per-student and institution-wide rollups, faculty
// session history, and consecutive-absence risk detection.
//
// Every function here is a pure function of a Snapshot, so the whole package
// is unit-testable without a database. The repository layer loads a Snapshot
// in a fixed number of queries (no per-row follow-up lookups).
package report

import (
	"time"

	"github.com/smartattend/backend/internal/model"
)

// Snapshot is a consistent read of the attendance ledger and the roster
// dimensions the views need. Readers never mutate it.
type Snapshot struct {
	Sessions    []Session
	Records     []Record
	Enrollments []Enrollment
	Students    map[int]Student
	Subjects    map[int]Subject
	Slots       map[int]Slot
}

// Session is one submitted attendance session.
type Session struct {
	ID           int
	SubjectID    int
	SlotID       int
	FacultyID    int
	Date         string // YYYY-MM-DD
	TotalPresent int
	TotalAbsent  int
	SubmittedAt  time.Time
}

// Record is one student's status within one session.
type Record struct {
	ID        int
	SessionID int
	StudentID int
	Status    model.Status
}

// Enrollment links a student to a subject.
type Enrollment struct {
	StudentID int
	SubjectID int
}

// Student carries the display fields views denormalize.
type Student struct {
	ID          int
	Name        string
	StudentNo   string
	AvatarColor string
}

// Subject carries the display fields views denormalize.
type Subject struct {
	ID          int
	Name        string
	Code        string
	FacultyName string
}

// Slot carries the display fields views denormalize.
type Slot struct {
	ID        int
	Day       string
	StartTime string
	EndTime   string
	Room      string
}

// sessionIndex builds a session lookup by ID.
func (s *Snapshot) sessionIndex() map[int]Session {
	idx := make(map[int]Session, len(s.Sessions))
	for _, sess := range s.Sessions {
		idx[sess.ID] = sess
	}
	return idx
}
