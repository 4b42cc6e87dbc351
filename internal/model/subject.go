package model

import "time"

// Subject represents a taught course owned by one faculty user.
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	FacultyID int       `json:"faculty_id"`
	Section   string    `json:"section"`
	Semester  string    `json:"semester"`
	CreatedAt time.Time `json:"created_at"`
}

// SubjectView is a subject with its faculty's display fields denormalized
// for listings. Faculty fields are empty strings when the owner is missing.
type SubjectView struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Section     string `json:"section"`
	Semester    string `json:"semester"`
	FacultyID   int    `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	FacultyDept string `json:"faculty_dept"`
}
