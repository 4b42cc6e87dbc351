package model

import "time"

// Status is a student's per-session attendance status.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// AttendanceSession is one concrete occurrence of a class slot on one
// calendar date. At most one session exists per (slot_id, date); the
// database enforces this with a unique constraint, which is the
// idempotency boundary for submissions.
type AttendanceSession struct {
	ID           int       `json:"id"`
	SubjectID    int       `json:"subject_id"`
	SlotID       int       `json:"slot_id"`
	FacultyID    int       `json:"faculty_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	TotalPresent int       `json:"total_present"`
	TotalAbsent  int       `json:"total_absent"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// AttendanceRecord is one student's status within one session.
type AttendanceRecord struct {
	ID        int    `json:"id"`
	SessionID int    `json:"session_id"`
	StudentID int    `json:"student_id"`
	Status    Status `json:"status"`
}

// RecordInput is one entry of a submission payload.
type RecordInput struct {
	StudentID int    `json:"student_id" binding:"required"`
	Status    Status `json:"status" binding:"required,oneof=present absent"`
}

// SubmitAttendanceRequest is the payload for taking attendance.
type SubmitAttendanceRequest struct {
	SlotID    int           `json:"slot_id" binding:"required"`
	FacultyID int           `json:"faculty_id" binding:"required"`
	Date      string        `json:"date" binding:"required,datetime=2006-01-02"`
	Records   []RecordInput `json:"records" binding:"required,min=1,dive"`
}

// SubmitResult summarizes a successful submission.
type SubmitResult struct {
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	AlertsSent int `json:"alerts_sent"`
}

// RosterStudent is one enrolled student in the pre-submission roster view.
// Status is nil until a session has been submitted for the slot and date.
type RosterStudent struct {
	StudentID   int     `json:"student_id"`
	Name        string  `json:"name"`
	StudentNo   string  `json:"student_no"`
	AvatarColor string  `json:"avatar_color"`
	Status      *Status `json:"status"`
}

// Roster is the read side of the idempotency boundary: it distinguishes
// "not yet submitted" from "submitted with these statuses" without error.
type Roster struct {
	Students         []RosterStudent `json:"students"`
	AlreadySubmitted bool            `json:"already_submitted"`
	TotalPresent     int             `json:"total_present"`
	TotalAbsent      int             `json:"total_absent"`
}
