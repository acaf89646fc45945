package models

import "time"

// Weekday names accepted in a timetable, in calendar order.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// IsWeekday reports whether day is one of the seven legal weekday names.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Timetable is the weekly schedule of one class. One timetable per class.
type Timetable struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ClassID   uint          `gorm:"uniqueIndex;not null" json:"class_id"`
	Class     ClassSection  `json:"class,omitempty"`
	Days      []DaySchedule `gorm:"constraint:OnDelete:CASCADE" json:"schedule"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DaySchedule groups the periods taught on one weekday.
// The weekday is unique within its timetable.
type DaySchedule struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	TimetableID uint     `gorm:"not null;uniqueIndex:idx_timetable_day" json:"-"`
	Day         string   `gorm:"size:16;not null;uniqueIndex:idx_timetable_day" json:"day"`
	Periods     []Period `gorm:"constraint:OnDelete:CASCADE" json:"periods"`
}

// Period is a single teaching slot. Times are opaque "HH:MM" strings
// ordered lexically.
type Period struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	DayScheduleID uint    `gorm:"not null;index" json:"-"`
	Position      int     `gorm:"not null" json:"-"`
	StartTime     string  `gorm:"size:8;not null" json:"start_time"`
	EndTime       string  `gorm:"size:8;not null" json:"end_time"`
	SubjectID     uint    `gorm:"not null" json:"subject_id"`
	Subject       Subject `json:"subject,omitempty"`
}

// Display renders the period's time range, e.g. "08:00 - 08:40".
func (p Period) Display() string {
	return p.StartTime + " - " + p.EndTime
}
