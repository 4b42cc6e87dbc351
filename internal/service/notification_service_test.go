package service

import (
	"strings"
	"testing"

	"github.com/smartattend/backend/internal/model"
)

func TestAbsenceAlerts_TwoPerAbsentee(t *testing.T) {
	absentees := []model.User{
		{ID: 5, Name: "Rohan Verma", StudentNo: "2024-CS-005"},
		{ID: 6, Name: "Fatima Malik", StudentNo: "2024-CS-006"},
	}

	alerts := AbsenceAlerts("Data Structures", "2024-03-04", absentees)
	if len(alerts) != 4 {
		t.Fatalf("expected 4 notifications for 2 absentees, got %d", len(alerts))
	}

	for _, n := range alerts {
		if n.Type != model.NotificationWarning {
			t.Errorf("notification type = %q, want warning", n.Type)
		}
	}
}

func TestAbsenceAlerts_StudentWarning(t *testing.T) {
	alerts := AbsenceAlerts("Data Structures", "2024-03-04", []model.User{
		{ID: 5, Name: "Rohan Verma", StudentNo: "2024-CS-005"},
	})
	if len(alerts) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(alerts))
	}

	student := alerts[0]
	if student.UserID == nil || *student.UserID != 5 {
		t.Fatalf("first notification must address the student, got %+v", student)
	}
	if student.RoleTarget != nil {
		t.Error("student notification must not carry a role target")
	}
	if student.Title != "Absent: Data Structures" {
		t.Errorf("title = %q", student.Title)
	}
	if !strings.Contains(student.Message, "2024-03-04") ||
		!strings.Contains(student.Message, "75%") {
		t.Errorf("message = %q", student.Message)
	}
}

func TestAbsenceAlerts_AdminBroadcast(t *testing.T) {
	alerts := AbsenceAlerts("Data Structures", "2024-03-04", []model.User{
		{ID: 5, Name: "Rohan Verma", StudentNo: "2024-CS-005"},
	})

	parent := alerts[1]
	if parent.UserID != nil {
		t.Error("parent alert must be a broadcast, not addressed")
	}
	if parent.RoleTarget == nil || *parent.RoleTarget != model.RoleAdmin {
		t.Fatalf("parent alert must target admins, got %+v", parent.RoleTarget)
	}
	if parent.Title != "Parent Alert: Rohan Verma" {
		t.Errorf("title = %q", parent.Title)
	}
	if !strings.Contains(parent.Message, "[SIMULATED]") ||
		!strings.Contains(parent.Message, "2024-CS-005") {
		t.Errorf("message = %q", parent.Message)
	}
}

func TestAbsenceAlerts_SubjectFallback(t *testing.T) {
	alerts := AbsenceAlerts("", "2024-03-04", []model.User{{ID: 5, Name: "Rohan Verma"}})
	if alerts[0].Title != "Absent: Class" {
		t.Errorf("empty subject must fall back to Class, got %q", alerts[0].Title)
	}
}

func TestAbsenceAlerts_NoAbsentees(t *testing.T) {
	if alerts := AbsenceAlerts("Data Structures", "2024-03-04", nil); len(alerts) != 0 {
		t.Fatalf("expected no notifications, got %d", len(alerts))
	}
}
