package report

import (
	"sort"

	"github.com/smartattend/backend/internal/model"
)

// RiskLevel is the binary severity of a risk alert.
type RiskLevel string

const (
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Streak thresholds: an alert is emitted at AlertStreak consecutive
// absences, and escalates to High at HighRiskStreak.
const (
	AlertStreak    = 3
	HighRiskStreak = 5
)

// RiskAlert flags one (student, subject) pair whose chronological
// attendance contains a long consecutive-absence run. The percentage and
// color are computed over the same attendance sequence as the streak.
type RiskAlert struct {
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	StudentNo   string    `json:"student_no"`
	AvatarColor string    `json:"avatar_color"`
	Subject     string    `json:"subject"`
	Code        string    `json:"code"`
	MaxStreak   int       `json:"max_streak"`
	Total       int       `json:"total"`
	Present     int       `json:"present"`
	Absent      int       `json:"absent"`
	Percentage  int       `json:"percentage"`
	Color       Color     `json:"color"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

type streakEntry struct {
	date      string
	sessionID int
	status    model.Status
}

// DetectPatterns scans every enrollment for consecutive-absence runs and
// returns alerts for pairs reaching AlertStreak, most at-risk first (ties
// keep enrollment scan order). A student can appear once per subject.
// Pairs with no attendance entries are skipped, so a subject with no
// sessions never alerts.
func DetectPatterns(snap *Snapshot) []RiskAlert {
	sessions := snap.sessionIndex()

	// One pass over the records builds the per-(student, subject)
	// chronological inputs, replacing the nested re-query loops the views
	// would otherwise need.
	entries := make(map[[2]int][]streakEntry)
	for _, r := range snap.Records {
		sess, ok := sessions[r.SessionID]
		if !ok {
			continue
		}
		key := [2]int{r.StudentID, sess.SubjectID}
		entries[key] = append(entries[key], streakEntry{
			date:      sess.Date,
			sessionID: sess.ID,
			status:    r.Status,
		})
	}

	alerts := make([]RiskAlert, 0)
	for _, e := range snap.Enrollments {
		student, ok := snap.Students[e.StudentID]
		if !ok {
			continue
		}
		subject, ok := snap.Subjects[e.SubjectID]
		if !ok {
			continue
		}

		seq := entries[[2]int{e.StudentID, e.SubjectID}]
		if len(seq) == 0 {
			continue
		}
		// Chronological; same-date ties break by session ID for determinism.
		sort.Slice(seq, func(i, j int) bool {
			if seq[i].date != seq[j].date {
				return seq[i].date < seq[j].date
			}
			return seq[i].sessionID < seq[j].sessionID
		})

		var maxStreak, streak, present int
		for _, en := range seq {
			if en.status == model.StatusAbsent {
				streak++
				if streak > maxStreak {
					maxStreak = streak
				}
			} else {
				streak = 0
				present++
			}
		}
		if maxStreak < AlertStreak {
			continue
		}

		total := len(seq)
		pct := Percentage(present, total)
		level := RiskMedium
		if maxStreak >= HighRiskStreak {
			level = RiskHigh
		}
		alerts = append(alerts, RiskAlert{
			StudentID:   student.ID,
			StudentName: student.Name,
			StudentNo:   student.StudentNo,
			AvatarColor: student.AvatarColor,
			Subject:     subject.Name,
			Code:        subject.Code,
			MaxStreak:   maxStreak,
			Total:       total,
			Present:     present,
			Absent:      total - present,
			Percentage:  pct,
			Color:       Health(pct),
			RiskLevel:   level,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].MaxStreak > alerts[j].MaxStreak
	})
	return alerts
}
