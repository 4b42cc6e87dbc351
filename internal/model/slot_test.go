package model

import "testing"

func TestDayIndex(t *testing.T) {
	if DayIndex("Monday") != 0 {
		t.Error("Monday must sort first")
	}
	if DayIndex("Sunday") != 6 {
		t.Error("Sunday must sort last among valid days")
	}
	if DayIndex("Funday") != 7 {
		t.Error("unknown days must sort after every valid day")
	}
}

func TestSortSlotViews_WeekOrderThenStartTime(t *testing.T) {
	slots := []SlotView{
		{ID: 1, DayOfWeek: "Friday", StartTime: "08:00"},
		{ID: 2, DayOfWeek: "Monday", StartTime: "14:00"},
		{ID: 3, DayOfWeek: "Monday", StartTime: "08:00"},
		{ID: 4, DayOfWeek: "Wednesday", StartTime: "11:00"},
		{ID: 5, DayOfWeek: "Someday", StartTime: "09:00"},
	}

	SortSlotViews(slots)

	wantOrder := []int{3, 2, 4, 1, 5}
	for i, want := range wantOrder {
		if slots[i].ID != want {
			t.Fatalf("position %d = slot %d, want %d (got order %+v)", i, slots[i].ID, want, slots)
		}
	}
}
