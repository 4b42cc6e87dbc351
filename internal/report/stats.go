package report

import (
	"math"
	"sort"

	"github.com/smartattend/backend/internal/model"
)

// Color is the three-band health classification of an attendance percentage.
type Color string

const (
	ColorGreen Color = "green"
	ColorAmber Color = "amber"
	ColorRed   Color = "red"
)

// Health thresholds. A percentage at or above HealthyPercent is green,
// at or above WatchPercent is amber, anything lower is red.
const (
	HealthyPercent = 75
	WatchPercent   = 60
)

// DefaultAvatarColor substitutes for students missing from the roster
// dimension; aggregation never fails on one bad reference.
const DefaultAvatarColor = "#3b82f6"

// Percentage computes round-half-up attendance percentage. By contract it
// is 0 when total is 0: "no data yet" and "0% attendance" share the numeric
// value and callers distinguish them via the total.
func Percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// Health classifies a percentage into its color band.
func Health(pct int) Color {
	switch {
	case pct >= HealthyPercent:
		return ColorGreen
	case pct >= WatchPercent:
		return ColorAmber
	default:
		return ColorRed
	}
}

// HistoryEntry is one dated status in a student's per-subject history.
type HistoryEntry struct {
	Date   string       `json:"date"`
	Status model.Status `json:"status"`
	Day    string       `json:"day"`
}

// SubjectReport is a student's attendance standing in one subject.
type SubjectReport struct {
	SubjectID  int            `json:"subject_id"`
	Subject    string         `json:"subject"`
	Code       string         `json:"code"`
	Faculty    string         `json:"faculty"`
	Total      int            `json:"total"`
	Present    int            `json:"present"`
	Absent     int            `json:"absent"`
	Percentage int            `json:"percentage"`
	Color      Color          `json:"color"`
	History    []HistoryEntry `json:"history"`
}

// StudentSubjects builds the per-subject report for one student across all
// subjects they are enrolled in. History is ascending by date (dates are
// fixed-width ISO, so lexicographic order is chronological); the outer list
// is ascending by percentage so the worst attendance surfaces first.
func StudentSubjects(snap *Snapshot, studentID int) []SubjectReport {
	sessionsBySubject := make(map[int][]Session)
	for _, sess := range snap.Sessions {
		sessionsBySubject[sess.SubjectID] = append(sessionsBySubject[sess.SubjectID], sess)
	}

	// The student's own statuses, keyed by session.
	statusBySession := make(map[int]model.Status)
	for _, r := range snap.Records {
		if r.StudentID == studentID {
			statusBySession[r.SessionID] = r.Status
		}
	}

	reports := make([]SubjectReport, 0)
	for _, e := range snap.Enrollments {
		if e.StudentID != studentID {
			continue
		}
		subj := snap.Subjects[e.SubjectID]

		var total, present, absent int
		history := make([]HistoryEntry, 0)
		for _, sess := range sessionsBySubject[e.SubjectID] {
			status, ok := statusBySession[sess.ID]
			if !ok {
				// No record means the student was not part of the
				// submission: no data, not an absence.
				continue
			}
			total++
			if status == model.StatusPresent {
				present++
			} else {
				absent++
			}
			day := ""
			if slot, ok := snap.Slots[sess.SlotID]; ok {
				day = slot.Day
			}
			history = append(history, HistoryEntry{Date: sess.Date, Status: status, Day: day})
		}
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Date < history[j].Date
		})

		pct := Percentage(present, total)
		reports = append(reports, SubjectReport{
			SubjectID:  e.SubjectID,
			Subject:    subj.Name,
			Code:       subj.Code,
			Faculty:    subj.FacultyName,
			Total:      total,
			Present:    present,
			Absent:     absent,
			Percentage: pct,
			Color:      Health(pct),
			History:    history,
		})
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Percentage < reports[j].Percentage
	})
	return reports
}

// SessionSummary is one row of a faculty member's submission history.
type SessionSummary struct {
	SessionID    int    `json:"session_id"`
	Subject      string `json:"subject"`
	Code         string `json:"code"`
	Date         string `json:"date"`
	Day          string `json:"day"`
	Room         string `json:"room"`
	Time         string `json:"time"`
	TotalPresent int    `json:"total_present"`
	TotalAbsent  int    `json:"total_absent"`
	Total        int    `json:"total"`
	Percentage   int    `json:"percentage"`
	SubmittedAt  string `json:"submitted_at"`
}

// FacultyHistory lists a faculty member's submitted sessions, most recent
// first, capped at limit. Missing subject or slot references degrade to
// empty display fields.
func FacultyHistory(snap *Snapshot, facultyID, limit int) []SessionSummary {
	sessions := make([]Session, 0)
	for _, sess := range snap.Sessions {
		if sess.FacultyID == facultyID {
			sessions = append(sessions, sess)
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].SubmittedAt.Equal(sessions[j].SubmittedAt) {
			return sessions[i].SubmittedAt.After(sessions[j].SubmittedAt)
		}
		return sessions[i].ID > sessions[j].ID
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	rows := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		subj := snap.Subjects[sess.SubjectID]
		slot := snap.Slots[sess.SlotID]
		total := sess.TotalPresent + sess.TotalAbsent
		rows = append(rows, SessionSummary{
			SessionID:    sess.ID,
			Subject:      subj.Name,
			Code:         subj.Code,
			Date:         sess.Date,
			Day:          slot.Day,
			Room:         slot.Room,
			Time:         slot.StartTime,
			TotalPresent: sess.TotalPresent,
			TotalAbsent:  sess.TotalAbsent,
			Total:        total,
			Percentage:   Percentage(sess.TotalPresent, total),
			SubmittedAt:  sess.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return rows
}

// StudentTotals is one student's row in the institution overview.
type StudentTotals struct {
	StudentID   int    `json:"student_id"`
	Name        string `json:"name"`
	StudentNo   string `json:"student_no"`
	AvatarColor string `json:"avatar_color"`
	Total       int    `json:"total"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	Percentage  int    `json:"percentage"`
	Color       Color  `json:"color"`
}

// SubjectTotals is one subject's row in the institution overview,
// grouped by subject name.
type SubjectTotals struct {
	Subject    string `json:"subject"`
	Code       string `json:"code"`
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Percentage int    `json:"percentage"`
	Color      Color  `json:"color"`
}

// Overview is the institution-wide rollup.
type Overview struct {
	TotalSessions     int             `json:"total_sessions"`
	TotalRecords      int             `json:"total_records"`
	TotalPresent      int             `json:"total_present"`
	TotalAbsent       int             `json:"total_absent"`
	OverallPercentage int             `json:"overall_percentage"`
	Students          []StudentTotals `json:"students"`
	Subjects          []SubjectTotals `json:"subjects"`
}

// BuildOverview computes grand totals plus per-student and per-subject
// groupings in one pass over the records. All three views count records
// (not distinct sessions) and share the same rounding and classification.
// Both grouped lists are ascending by percentage.
func BuildOverview(snap *Snapshot) Overview {
	sessions := snap.sessionIndex()

	var totalPresent, totalAbsent int

	studentAgg := make(map[int]*StudentTotals)
	studentOrder := make([]int, 0)
	subjectAgg := make(map[string]*SubjectTotals)
	subjectOrder := make([]string, 0)

	for _, r := range snap.Records {
		if r.Status == model.StatusPresent {
			totalPresent++
		} else {
			totalAbsent++
		}

		st, ok := studentAgg[r.StudentID]
		if !ok {
			info, known := snap.Students[r.StudentID]
			if !known {
				info = Student{ID: r.StudentID, AvatarColor: DefaultAvatarColor}
			}
			st = &StudentTotals{
				StudentID:   r.StudentID,
				Name:        info.Name,
				StudentNo:   info.StudentNo,
				AvatarColor: info.AvatarColor,
			}
			studentAgg[r.StudentID] = st
			studentOrder = append(studentOrder, r.StudentID)
		}
		st.Total++
		if r.Status == model.StatusPresent {
			st.Present++
		} else {
			st.Absent++
		}

		sess, ok := sessions[r.SessionID]
		if !ok {
			continue
		}
		subj, ok := snap.Subjects[sess.SubjectID]
		if !ok {
			continue
		}
		sb, ok := subjectAgg[subj.Name]
		if !ok {
			sb = &SubjectTotals{Subject: subj.Name, Code: subj.Code}
			subjectAgg[subj.Name] = sb
			subjectOrder = append(subjectOrder, subj.Name)
		}
		sb.Total++
		if r.Status == model.StatusPresent {
			sb.Present++
		} else {
			sb.Absent++
		}
	}

	students := make([]StudentTotals, 0, len(studentOrder))
	for _, id := range studentOrder {
		st := studentAgg[id]
		st.Percentage = Percentage(st.Present, st.Total)
		st.Color = Health(st.Percentage)
		students = append(students, *st)
	}
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].Percentage < students[j].Percentage
	})

	subjects := make([]SubjectTotals, 0, len(subjectOrder))
	for _, name := range subjectOrder {
		sb := subjectAgg[name]
		sb.Percentage = Percentage(sb.Present, sb.Total)
		sb.Color = Health(sb.Percentage)
		subjects = append(subjects, *sb)
	}
	sort.SliceStable(subjects, func(i, j int) bool {
		return subjects[i].Percentage < subjects[j].Percentage
	})

	return Overview{
		TotalSessions:     len(snap.Sessions),
		TotalRecords:      len(snap.Records),
		TotalPresent:      totalPresent,
		TotalAbsent:       totalAbsent,
		OverallPercentage: Percentage(totalPresent, len(snap.Records)),
		Students:          students,
		Subjects:          subjects,
	}
}
