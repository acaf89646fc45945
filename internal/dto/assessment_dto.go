package dto

// AssessmentCreateRequest describes the payload for recording an assessment.
type AssessmentCreateRequest struct {
	StudentID    uint    `json:"student_id" validate:"required"`
	SubjectID    uint    `json:"subject_id" validate:"required"`
	ClassID      uint    `json:"class_id" validate:"required"`
	Type         string  `json:"assessment_type" validate:"required,oneof=Test Assignment Project Exam Quiz"`
	Title        string  `json:"title" validate:"required"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalMarks   float64 `json:"total_marks" validate:"required,gt=0"`
	ScoredMarks  float64 `json:"scored_marks" validate:"gte=0"`
	Comments     string  `json:"comments"`
	Term         string  `json:"term" validate:"required,oneof=First Second Third Summer Winter"`
	AcademicYear string  `json:"academic_year" validate:"required"`
}

// AssessmentUpdateRequest describes a partial update. Only non-nil fields
// are applied.
type AssessmentUpdateRequest struct {
	Type        *string  `json:"assessment_type" validate:"omitempty,oneof=Test Assignment Project Exam Quiz"`
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Date        *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TotalMarks  *float64 `json:"total_marks" validate:"omitempty,gt=0"`
	ScoredMarks *float64 `json:"scored_marks" validate:"omitempty,gte=0"`
	Comments    *string  `json:"comments"`
	Term        *string  `json:"term" validate:"omitempty,oneof=First Second Third Summer Winter"`
}

// GradeResponse is a computed grade for one scored total.
type GradeResponse struct {
	Percentage  float64 `json:"percentage"`
	Grade       string  `json:"grade"`
	Description string  `json:"description"`
}

// SubjectGrade aggregates a student's marks in one subject.
type SubjectGrade struct {
	SubjectID   uint    `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	TotalMarks  float64 `json:"total_marks"`
	ScoredMarks float64 `json:"scored_marks"`
	GradeResponse
}

// OverallGradeResponse is a student's aggregate standing across all
// assessments, with the per-subject breakdown.
type OverallGradeResponse struct {
	StudentID uint           `json:"student_id"`
	Subjects  []SubjectGrade `json:"subjects"`
	Overall   GradeResponse  `json:"overall"`
}
