package report

import (
	"testing"
	"time"

	"github.com/smartattend/backend/internal/model"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		name           string
		present, total int
		want           int
	}{
		{"zero total is zero, not an error", 0, 0, 0},
		{"zero present", 0, 5, 0},
		{"all present", 5, 5, 100},
		{"one third rounds down", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"exact half", 1, 2, 50},
		{"half rounds up", 5, 8, 63},
		{"other half rounds up", 3, 8, 38},
		{"scenario: one of three", 1, 3, 33},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentage(tc.present, tc.total)
			if got != tc.want {
				t.Errorf("Percentage(%d, %d) = %d, want %d", tc.present, tc.total, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("Percentage(%d, %d) = %d, out of [0,100]", tc.present, tc.total, got)
			}
		})
	}
}

func TestHealth_BandBoundaries(t *testing.T) {
	cases := []struct {
		pct  int
		want Color
	}{
		{100, ColorGreen},
		{75, ColorGreen},
		{74, ColorAmber},
		{60, ColorAmber},
		{59, ColorRed},
		{0, ColorRed},
	}
	for _, tc := range cases {
		if got := Health(tc.pct); got != tc.want {
			t.Errorf("Health(%d) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

// twoSubjectSnapshot enrolls student 1 in subjects 10 (1/3 present) and
// 20 (2/2 present).
func twoSubjectSnapshot() *Snapshot {
	return &Snapshot{
		Sessions: []Session{
			{ID: 1, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-03-04"},
			{ID: 2, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-03-11"},
			{ID: 3, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-02-26"},
			{ID: 4, SubjectID: 20, SlotID: 200, FacultyID: 6, Date: "2024-03-05"},
			{ID: 5, SubjectID: 20, SlotID: 200, FacultyID: 6, Date: "2024-03-12"},
		},
		Records: []Record{
			{ID: 1, SessionID: 1, StudentID: 1, Status: model.StatusAbsent},
			{ID: 2, SessionID: 2, StudentID: 1, Status: model.StatusPresent},
			{ID: 3, SessionID: 3, StudentID: 1, Status: model.StatusAbsent},
			{ID: 4, SessionID: 4, StudentID: 1, Status: model.StatusPresent},
			{ID: 5, SessionID: 5, StudentID: 1, Status: model.StatusPresent},
		},
		Enrollments: []Enrollment{
			{StudentID: 1, SubjectID: 10},
			{StudentID: 1, SubjectID: 20},
		},
		Students: map[int]Student{
			1: {ID: 1, Name: "Asha Rao", StudentNo: "S-1001", AvatarColor: "#ef4444"},
		},
		Subjects: map[int]Subject{
			10: {ID: 10, Name: "Data Structures", Code: "CS201", FacultyName: "Dr. Iyer"},
			20: {ID: 20, Name: "Databases", Code: "CS305", FacultyName: "Dr. Mehta"},
		},
		Slots: map[int]Slot{
			100: {ID: 100, Day: "Monday", StartTime: "09:00", EndTime: "10:00", Room: "A-101"},
			200: {ID: 200, Day: "Tuesday", StartTime: "11:00", EndTime: "12:00", Room: "B-204"},
		},
	}
}

func TestStudentSubjects_WorstAttendanceFirst(t *testing.T) {
	reports := StudentSubjects(twoSubjectSnapshot(), 1)

	if len(reports) != 2 {
		t.Fatalf("expected 2 subject reports, got %d", len(reports))
	}
	if reports[0].Code != "CS201" {
		t.Errorf("worst subject must come first, got %q", reports[0].Code)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i].Percentage < reports[i-1].Percentage {
			t.Errorf("report list must be non-decreasing in percentage: %d before %d",
				reports[i-1].Percentage, reports[i].Percentage)
		}
	}

	ds := reports[0]
	if ds.Total != 3 || ds.Present != 1 || ds.Absent != 2 {
		t.Errorf("CS201 counts = (%d,%d,%d), want (3,1,2)", ds.Total, ds.Present, ds.Absent)
	}
	if ds.Percentage != 33 || ds.Color != ColorRed {
		t.Errorf("CS201 classified %d%%/%s, want 33%%/red", ds.Percentage, ds.Color)
	}

	db := reports[1]
	if db.Percentage != 100 || db.Color != ColorGreen {
		t.Errorf("CS305 classified %d%%/%s, want 100%%/green", db.Percentage, db.Color)
	}
}

func TestStudentSubjects_HistoryAscendingByDate(t *testing.T) {
	reports := StudentSubjects(twoSubjectSnapshot(), 1)

	hist := reports[0].History // CS201
	if len(hist) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(hist))
	}
	wantDates := []string{"2024-02-26", "2024-03-04", "2024-03-11"}
	for i, want := range wantDates {
		if hist[i].Date != want {
			t.Errorf("history[%d].Date = %q, want %q", i, hist[i].Date, want)
		}
	}
	if hist[0].Day != "Monday" {
		t.Errorf("history day = %q, want Monday", hist[0].Day)
	}
}

func TestStudentSubjects_OmittedStudentHasNoData(t *testing.T) {
	snap := twoSubjectSnapshot()
	// Session 6 exists but student 1 was not part of the submission.
	snap.Sessions = append(snap.Sessions, Session{ID: 6, SubjectID: 20, SlotID: 200, Date: "2024-03-19"})

	reports := StudentSubjects(snap, 1)
	for _, r := range reports {
		if r.Code == "CS305" && r.Total != 2 {
			t.Errorf("missing record must not count either way: total = %d, want 2", r.Total)
		}
	}
}

func TestStudentSubjects_SubjectWithoutSessions(t *testing.T) {
	snap := twoSubjectSnapshot()
	snap.Subjects[30] = Subject{ID: 30, Name: "Ethics", Code: "HU101"}
	snap.Enrollments = append(snap.Enrollments, Enrollment{StudentID: 1, SubjectID: 30})

	reports := StudentSubjects(snap, 1)
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	// total=0 sorts to the front with percentage 0.
	empty := reports[0]
	if empty.Code != "HU101" || empty.Total != 0 || empty.Percentage != 0 {
		t.Errorf("empty subject report = %+v, want HU101 with total 0, percentage 0", empty)
	}
}

func TestFacultyHistory_MostRecentFirst(t *testing.T) {
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Sessions: []Session{
			{ID: 1, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-03-04",
				TotalPresent: 2, TotalAbsent: 2, SubmittedAt: base},
			{ID: 2, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-03-11",
				TotalPresent: 3, TotalAbsent: 1, SubmittedAt: base.Add(7 * 24 * time.Hour)},
			{ID: 3, SubjectID: 10, SlotID: 100, FacultyID: 9, Date: "2024-03-11",
				TotalPresent: 1, TotalAbsent: 0, SubmittedAt: base.Add(24 * time.Hour)},
		},
		Subjects: map[int]Subject{10: {ID: 10, Name: "Data Structures", Code: "CS201"}},
		Slots:    map[int]Slot{100: {ID: 100, Day: "Monday", StartTime: "09:00", Room: "A-101"}},
	}

	rows := FacultyHistory(snap, 5, 50)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for faculty 5, got %d", len(rows))
	}
	if rows[0].SessionID != 2 || rows[1].SessionID != 1 {
		t.Errorf("history must be most recent first, got ids %d, %d", rows[0].SessionID, rows[1].SessionID)
	}
	if rows[0].Percentage != 75 || rows[1].Percentage != 50 {
		t.Errorf("percentages = %d, %d, want 75, 50", rows[0].Percentage, rows[1].Percentage)
	}
	if rows[0].Day != "Monday" || rows[0].Room != "A-101" || rows[0].Time != "09:00" {
		t.Errorf("slot fields not denormalized: %+v", rows[0])
	}
}

func TestFacultyHistory_AppliesLimit(t *testing.T) {
	snap := &Snapshot{
		Subjects: map[int]Subject{},
		Slots:    map[int]Slot{},
	}
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		snap.Sessions = append(snap.Sessions, Session{
			ID: i + 1, FacultyID: 5, Date: "2024-01-01",
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	rows := FacultyHistory(snap, 5, 50)
	if len(rows) != 50 {
		t.Fatalf("expected 50 rows, got %d", len(rows))
	}
	if rows[0].SessionID != 60 {
		t.Errorf("newest session must be first, got id %d", rows[0].SessionID)
	}
}

// overviewSnapshot: subject CS201 with one session on 2024-03-04 and
// three enrolled students submitted as [present, absent, absent].
func overviewSnapshot() *Snapshot {
	return &Snapshot{
		Sessions: []Session{
			{ID: 1, SubjectID: 10, SlotID: 100, FacultyID: 5, Date: "2024-03-04",
				TotalPresent: 1, TotalAbsent: 2},
		},
		Records: []Record{
			{ID: 1, SessionID: 1, StudentID: 1, Status: model.StatusPresent},
			{ID: 2, SessionID: 1, StudentID: 2, Status: model.StatusAbsent},
			{ID: 3, SessionID: 1, StudentID: 3, Status: model.StatusAbsent},
		},
		Enrollments: []Enrollment{
			{StudentID: 1, SubjectID: 10},
			{StudentID: 2, SubjectID: 10},
			{StudentID: 3, SubjectID: 10},
		},
		Students: map[int]Student{
			1: {ID: 1, Name: "Asha Rao", StudentNo: "S-1001", AvatarColor: "#ef4444"},
			2: {ID: 2, Name: "Vikram Nair", StudentNo: "S-1002", AvatarColor: "#22c55e"},
			3: {ID: 3, Name: "Meera Pillai", StudentNo: "S-1003", AvatarColor: "#3b82f6"},
		},
		Subjects: map[int]Subject{
			10: {ID: 10, Name: "Data Structures", Code: "CS201", FacultyName: "Dr. Iyer"},
		},
		Slots: map[int]Slot{
			100: {ID: 100, Day: "Monday", StartTime: "09:00", Room: "A-101"},
		},
	}
}

func TestBuildOverview_SingleSessionScenario(t *testing.T) {
	ov := BuildOverview(overviewSnapshot())

	if ov.TotalSessions != 1 || ov.TotalRecords != 3 {
		t.Errorf("totals = (%d sessions, %d records), want (1, 3)", ov.TotalSessions, ov.TotalRecords)
	}
	if ov.TotalPresent != 1 || ov.TotalAbsent != 2 {
		t.Errorf("present/absent = (%d, %d), want (1, 2)", ov.TotalPresent, ov.TotalAbsent)
	}
	if ov.OverallPercentage != 33 {
		t.Errorf("overall percentage = %d, want 33", ov.OverallPercentage)
	}

	if len(ov.Students) != 3 {
		t.Fatalf("expected 3 student rows, got %d", len(ov.Students))
	}
	// Absent students (0%) sort before the present one (100%).
	if ov.Students[2].StudentID != 1 || ov.Students[2].Percentage != 100 {
		t.Errorf("present student must sort last: %+v", ov.Students[2])
	}
	for _, st := range ov.Students {
		if st.Present+st.Absent != st.Total {
			t.Errorf("count consistency violated for student %d: %d+%d != %d",
				st.StudentID, st.Present, st.Absent, st.Total)
		}
	}

	if len(ov.Subjects) != 1 {
		t.Fatalf("expected 1 subject row, got %d", len(ov.Subjects))
	}
	sb := ov.Subjects[0]
	if sb.Subject != "Data Structures" || sb.Total != 3 || sb.Present != 1 || sb.Percentage != 33 || sb.Color != ColorRed {
		t.Errorf("subject rollup = %+v, want Data Structures 1/3 = 33%% red", sb)
	}

	// Same snapshot must yield no risk alerts: each absent student has a
	// streak of 1, below the threshold of 3.
	if alerts := DetectPatterns(overviewSnapshot()); len(alerts) != 0 {
		t.Errorf("expected no alerts from a single session, got %d", len(alerts))
	}
}

func TestBuildOverview_UnknownStudentDegradesGracefully(t *testing.T) {
	snap := overviewSnapshot()
	delete(snap.Students, 3)

	ov := BuildOverview(snap)
	if len(ov.Students) != 3 {
		t.Fatalf("unknown student must still aggregate, got %d rows", len(ov.Students))
	}
	for _, st := range ov.Students {
		if st.StudentID == 3 {
			if st.Name != "" || st.AvatarColor != DefaultAvatarColor {
				t.Errorf("unknown student display fields = (%q, %q), want empty name and default color",
					st.Name, st.AvatarColor)
			}
		}
	}
}

func TestBuildOverview_EmptyLedger(t *testing.T) {
	ov := BuildOverview(&Snapshot{
		Students: map[int]Student{},
		Subjects: map[int]Subject{},
		Slots:    map[int]Slot{},
	})
	if ov.OverallPercentage != 0 || ov.TotalRecords != 0 {
		t.Errorf("empty ledger overview = %+v, want zeroes", ov)
	}
	if len(ov.Students) != 0 || len(ov.Subjects) != 0 {
		t.Errorf("empty ledger must produce empty groupings")
	}
}
