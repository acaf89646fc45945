package dto

import "gorm.io/datatypes"

// AssignmentCreateRequest describes the payload for issuing an assignment.
type AssignmentCreateRequest struct {
	Title        string         `json:"title" validate:"required,min=3"`
	Description  string         `json:"description" validate:"required,min=10"`
	Formats      []string       `json:"format" validate:"required,min=1,dive,oneof=Text Image PDF"`
	Attachments  datatypes.JSON `json:"attachments"`
	ClassID      uint           `json:"class_id" validate:"required"`
	SubjectID    uint           `json:"subject_id" validate:"required"`
	TeacherID    uint           `json:"teacher_id" validate:"required"`
	DueDate      string         `json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	AcademicYear string         `json:"academic_year" validate:"required"`
}

// AssignmentUpdateRequest describes a partial update. Only non-nil fields
// are applied.
type AssignmentUpdateRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=3"`
	Description *string         `json:"description" validate:"omitempty,min=10"`
	Formats     *[]string       `json:"format" validate:"omitempty,min=1,dive,oneof=Text Image PDF"`
	Attachments *datatypes.JSON `json:"attachments"`
	DueDate     *string         `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// SubmissionRequest is a student's answer payload. Resubmitting before the
// deadline replaces the previous content.
type SubmissionRequest struct {
	StudentID uint           `json:"student_id" validate:"required"`
	Content   datatypes.JSON `json:"content" validate:"required"`
}

// ReviewRequest carries a teacher's feedback on one submission.
type ReviewRequest struct {
	StudentID   uint    `json:"student_id" validate:"required"`
	ScoredMarks float64 `json:"scored_marks" validate:"gte=0"`
	TotalMarks  float64 `json:"total_marks" validate:"required,gt=0"`
	Comments    string  `json:"comments"`
	Term        string  `json:"term" validate:"required,oneof=First Second Third Summer Winter"`
}
