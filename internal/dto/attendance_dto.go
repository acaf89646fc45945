package dto

// MarkInput is one student's status within a submitted register.
type MarkInput struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=Present Absent Late Excused"`
}

// AttendanceCreateRequest describes the payload for recording a register
// session.
type AttendanceCreateRequest struct {
	ClassID uint        `json:"class_id" validate:"required"`
	Date    string      `json:"date" validate:"required,datetime=2006-01-02"`
	Period  string      `json:"period"`
	Records []MarkInput `json:"records" validate:"required,min=1,dive"`
}

// AttendanceUpdateRequest replaces the marks of an existing session.
type AttendanceUpdateRequest struct {
	Records []MarkInput `json:"records" validate:"required,min=1,dive"`
}

// AttendanceSummaryResponse aggregates one student's attendance over a
// period.
type AttendanceSummaryResponse struct {
	StudentID   uint    `json:"student_id"`
	Sessions    int     `json:"sessions"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Late        int     `json:"late"`
	Excused     int     `json:"excused"`
	PresentRate float64 `json:"present_rate"`
}
