package service

import (
	"testing"

	"github.com/smartattend/backend/internal/model"
)

func TestTallyRecords(t *testing.T) {
	cases := []struct {
		name         string
		records      []model.RecordInput
		wantPresent  int
		wantAbsent   int
		wantAbsentee []int
	}{
		{
			"mixed statuses",
			[]model.RecordInput{
				{StudentID: 1, Status: model.StatusPresent},
				{StudentID: 2, Status: model.StatusAbsent},
				{StudentID: 3, Status: model.StatusPresent},
				{StudentID: 4, Status: model.StatusAbsent},
			},
			2, 2, []int{2, 4},
		},
		{
			"all present",
			[]model.RecordInput{
				{StudentID: 1, Status: model.StatusPresent},
				{StudentID: 2, Status: model.StatusPresent},
			},
			2, 0, nil,
		},
		{
			"all absent",
			[]model.RecordInput{
				{StudentID: 1, Status: model.StatusAbsent},
			},
			0, 1, []int{1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			present, absent, absentees := tallyRecords(tc.records)
			if present != tc.wantPresent || absent != tc.wantAbsent {
				t.Errorf("counts = (%d,%d), want (%d,%d)", present, absent, tc.wantPresent, tc.wantAbsent)
			}
			if len(absentees) != len(tc.wantAbsentee) {
				t.Fatalf("absentees = %v, want %v", absentees, tc.wantAbsentee)
			}
			for i, id := range tc.wantAbsentee {
				if absentees[i] != id {
					t.Errorf("absentees[%d] = %d, want %d", i, absentees[i], id)
				}
			}
		})
	}
}

func TestSubmitResult_AlertsSentCountsStudents(t *testing.T) {
	absentees := []model.User{
		{ID: 4, Name: "Rohan Verma"},
		{ID: 5, Name: "Fatima Sheikh"},
	}
	alerts := AbsenceAlerts("CS201", "2024-03-04", absentees)
	if len(alerts) != 4 {
		t.Fatalf("notifications = %d, want 4 (two per absentee)", len(alerts))
	}

	res := submitResult(3, 2, absentees)
	if res.AlertsSent != 2 {
		t.Errorf("alerts_sent = %d, want 2 (one per absent student)", res.AlertsSent)
	}
	if res.Present != 3 || res.Absent != 2 {
		t.Errorf("counts = (%d,%d), want (3,2)", res.Present, res.Absent)
	}
}
