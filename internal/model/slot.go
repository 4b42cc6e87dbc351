package model

import "sort"

// ClassSlot is a recurring weekly meeting of one subject.
type ClassSlot struct {
	ID        int    `json:"id"`
	SubjectID int    `json:"subject_id"`
	DayOfWeek string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
}

// SlotView is a class slot with subject and faculty fields denormalized.
type SlotView struct {
	ID          int    `json:"id"`
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	SubjectCode string `json:"subject_code"`
	FacultyID   int    `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	DayOfWeek   string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
}

// daysOrder is the canonical week ordering used for slot listings.
var daysOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the position of a day name in the canonical week order.
// Unknown day names sort after every valid day.
func DayIndex(day string) int {
	for i, d := range daysOrder {
		if d == day {
			return i
		}
	}
	return len(daysOrder)
}

// SortSlotViews orders slots by canonical day of week, then start time.
func SortSlotViews(slots []SlotView) {
	sort.SliceStable(slots, func(i, j int) bool {
		di, dj := DayIndex(slots[i].DayOfWeek), DayIndex(slots[j].DayOfWeek)
		if di != dj {
			return di < dj
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
