package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceExcused = "Excused"
)

// AttendanceStatuses lists the legal per-student marks.
var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
	AttendanceExcused,
}

// Attendance is one register session for a class. A session is unique per
// (class, date, period).
type Attendance struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	ClassID      uint             `gorm:"not null;uniqueIndex:idx_attendance_session" json:"class_id"`
	Class        ClassSection     `json:"class,omitempty"`
	Date         time.Time        `gorm:"not null;uniqueIndex:idx_attendance_session" json:"date"`
	Period       string           `gorm:"size:64;uniqueIndex:idx_attendance_session" json:"period,omitempty"`
	Marks        []AttendanceMark `gorm:"constraint:OnDelete:CASCADE" json:"records"`
	RecordedByID uint             `gorm:"not null" json:"recorded_by_id"`
	RecordedBy   User             `json:"recorded_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AttendanceMark is one student's status within a session; one per student.
type AttendanceMark struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	AttendanceID uint    `gorm:"not null;uniqueIndex:idx_attendance_mark" json:"-"`
	StudentID    uint    `gorm:"not null;uniqueIndex:idx_attendance_mark" json:"student_id"`
	Student      Student `json:"student,omitempty"`
	Status       string  `gorm:"size:16;not null" json:"status"`
}
