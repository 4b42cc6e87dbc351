package report

import (
	"fmt"
	"testing"

	"github.com/smartattend/backend/internal/model"
)

// sequenceSnapshot builds a single-student, single-subject snapshot whose
// sessions are dated in the order of statuses.
func sequenceSnapshot(statuses []model.Status) *Snapshot {
	snap := &Snapshot{
		Enrollments: []Enrollment{{StudentID: 1, SubjectID: 10}},
		Students: map[int]Student{
			1: {ID: 1, Name: "Asha Rao", StudentNo: "S-1001", AvatarColor: "#ef4444"},
		},
		Subjects: map[int]Subject{
			10: {ID: 10, Name: "Data Structures", Code: "CS201"},
		},
		Slots: map[int]Slot{},
	}
	for i, st := range statuses {
		id := i + 1
		snap.Sessions = append(snap.Sessions, Session{
			ID: id, SubjectID: 10, SlotID: 100,
			Date: fmt.Sprintf("2024-03-%02d", id),
		})
		snap.Records = append(snap.Records, Record{
			ID: id, SessionID: id, StudentID: 1, Status: st,
		})
	}
	return snap
}

const (
	p = model.StatusPresent
	a = model.StatusAbsent
)

func TestDetectPatterns_StreakSequences(t *testing.T) {
	cases := []struct {
		name       string
		statuses   []model.Status
		wantAlert  bool
		wantStreak int
		wantLevel  RiskLevel
	}{
		{"three-run mid sequence", []model.Status{p, a, a, a, p, a, a}, true, 3, RiskMedium},
		{"five straight absences", []model.Status{a, a, a, a, a}, true, 5, RiskHigh},
		{"all present", []model.Status{p, p, p}, false, 0, ""},
		{"two absences below threshold", []model.Status{a, a, p, a, a}, false, 0, ""},
		{"four absences is still medium", []model.Status{a, a, a, a}, true, 4, RiskMedium},
		{"streak broken by presence does not merge", []model.Status{a, a, p, a, a, p, a, a}, false, 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := DetectPatterns(sequenceSnapshot(tc.statuses))
			if !tc.wantAlert {
				if len(alerts) != 0 {
					t.Fatalf("expected no alert, got %+v", alerts)
				}
				return
			}
			if len(alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(alerts))
			}
			al := alerts[0]
			if al.MaxStreak != tc.wantStreak {
				t.Errorf("max streak = %d, want %d", al.MaxStreak, tc.wantStreak)
			}
			if al.RiskLevel != tc.wantLevel {
				t.Errorf("risk level = %q, want %q", al.RiskLevel, tc.wantLevel)
			}
		})
	}
}

func TestDetectPatterns_AlertCarriesClassification(t *testing.T) {
	// [P,A,A,A,P,A,A]: 2 present of 7 → 29% → red.
	alerts := DetectPatterns(sequenceSnapshot([]model.Status{p, a, a, a, p, a, a}))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	al := alerts[0]
	if al.Total != 7 || al.Present != 2 || al.Absent != 5 {
		t.Errorf("counts = (%d,%d,%d), want (7,2,5)", al.Total, al.Present, al.Absent)
	}
	if al.Percentage != 29 || al.Color != ColorRed {
		t.Errorf("classification = %d%%/%s, want 29%%/red", al.Percentage, al.Color)
	}
	if al.StudentName != "Asha Rao" || al.StudentNo != "S-1001" || al.Subject != "Data Structures" {
		t.Errorf("alert display fields not populated: %+v", al)
	}
}

func TestDetectPatterns_ChronologicalNotInsertionOrder(t *testing.T) {
	// Records inserted newest-first; the scan must still see the dates in
	// ascending order, where the absences are consecutive.
	snap := sequenceSnapshot([]model.Status{a, a, a})
	for i, j := 0, len(snap.Records)-1; i < j; i, j = i+1, j-1 {
		snap.Records[i], snap.Records[j] = snap.Records[j], snap.Records[i]
		snap.Sessions[i], snap.Sessions[j] = snap.Sessions[j], snap.Sessions[i]
	}

	alerts := DetectPatterns(snap)
	if len(alerts) != 1 || alerts[0].MaxStreak != 3 {
		t.Fatalf("expected streak 3 regardless of record order, got %+v", alerts)
	}
}

func TestDetectPatterns_SortedByStreakDescending(t *testing.T) {
	snap := sequenceSnapshot([]model.Status{a, a, a}) // student 1: streak 3

	// Student 2 in subject 20 with streak 5.
	snap.Students[2] = Student{ID: 2, Name: "Vikram Nair", StudentNo: "S-1002"}
	snap.Subjects[20] = Subject{ID: 20, Name: "Databases", Code: "CS305"}
	snap.Enrollments = append(snap.Enrollments, Enrollment{StudentID: 2, SubjectID: 20})
	for i := 0; i < 5; i++ {
		id := 100 + i
		snap.Sessions = append(snap.Sessions, Session{
			ID: id, SubjectID: 20, Date: fmt.Sprintf("2024-04-%02d", i+1),
		})
		snap.Records = append(snap.Records, Record{
			ID: id, SessionID: id, StudentID: 2, Status: a,
		})
	}

	alerts := DetectPatterns(snap)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].StudentID != 2 || alerts[0].RiskLevel != RiskHigh {
		t.Errorf("highest streak must come first, got %+v", alerts[0])
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].MaxStreak > alerts[i-1].MaxStreak {
			t.Errorf("alerts must be non-increasing in max streak")
		}
	}
}

func TestDetectPatterns_StudentAlertedPerSubject(t *testing.T) {
	snap := sequenceSnapshot([]model.Status{a, a, a})
	snap.Subjects[20] = Subject{ID: 20, Name: "Databases", Code: "CS305"}
	snap.Enrollments = append(snap.Enrollments, Enrollment{StudentID: 1, SubjectID: 20})
	for i := 0; i < 3; i++ {
		id := 200 + i
		snap.Sessions = append(snap.Sessions, Session{
			ID: id, SubjectID: 20, Date: fmt.Sprintf("2024-04-%02d", i+1),
		})
		snap.Records = append(snap.Records, Record{
			ID: id, SessionID: id, StudentID: 1, Status: a,
		})
	}

	alerts := DetectPatterns(snap)
	if len(alerts) != 2 {
		t.Fatalf("one alert per qualifying subject: got %d", len(alerts))
	}
}

func TestDetectPatterns_SkipsPairsWithoutEntries(t *testing.T) {
	snap := sequenceSnapshot([]model.Status{a, a, a})
	// Enrolled but no records at all: must be skipped silently.
	snap.Students[3] = Student{ID: 3, Name: "Meera Pillai"}
	snap.Enrollments = append(snap.Enrollments, Enrollment{StudentID: 3, SubjectID: 10})

	alerts := DetectPatterns(snap)
	if len(alerts) != 1 {
		t.Fatalf("expected only the recorded student to alert, got %d", len(alerts))
	}
}

func TestDetectPatterns_EmptySnapshot(t *testing.T) {
	alerts := DetectPatterns(&Snapshot{
		Students: map[int]Student{},
		Subjects: map[int]Subject{},
		Slots:    map[int]Slot{},
	})
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts from empty snapshot, got %d", len(alerts))
	}
}
