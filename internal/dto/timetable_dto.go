package dto

// PeriodInput is one teaching slot in a submitted schedule.
type PeriodInput struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	SubjectID uint   `json:"subject_id" validate:"required"`
}

// DayInput groups the submitted periods of one weekday.
type DayInput struct {
	Day     string        `json:"day" validate:"required"`
	Periods []PeriodInput `json:"periods" validate:"required,min=1,dive"`
}

// TimetableCreateRequest describes the payload for creating a class
// timetable.
type TimetableCreateRequest struct {
	ClassID  uint       `json:"class_id" validate:"required"`
	Schedule []DayInput `json:"schedule" validate:"required,min=1,dive"`
}

// TimetableUpdateRequest replaces the full weekly schedule of a timetable.
type TimetableUpdateRequest struct {
	Schedule []DayInput `json:"schedule" validate:"required,min=1,dive"`
}

// ScheduleIssue pinpoints one problem found while validating a submitted
// schedule.
type ScheduleIssue struct {
	Day     string `json:"day,omitempty"`
	Period  int    `json:"period,omitempty"`
	Message string `json:"message"`
}

// TeacherPeriod is one slot in a teacher's weekly view.
type TeacherPeriod struct {
	Time       string `json:"time"`
	Subject    string `json:"subject"`
	ClassName  string `json:"class_name"`
	RoomNumber string `json:"room_number,omitempty"`
}

// TeacherScheduleResponse is a teacher's full weekly view, keyed by weekday
// in calendar order.
type TeacherScheduleResponse struct {
	TeacherID uint                       `json:"teacher_id"`
	Days      map[string][]TeacherPeriod `json:"days"`
}
