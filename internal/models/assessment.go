package models

import "time"

// Assessment types.
const (
	AssessmentTypeTest       = "Test"
	AssessmentTypeAssignment = "Assignment"
	AssessmentTypeProject    = "Project"
	AssessmentTypeExam       = "Exam"
	AssessmentTypeQuiz       = "Quiz"
)

// Academic terms.
const (
	TermFirst  = "First"
	TermSecond = "Second"
	TermThird  = "Third"
	TermSummer = "Summer"
	TermWinter = "Winter"
)

// Assessment is a scored evaluation event for one student. Records
// accumulate over the year; only a submission review reuses an existing
// row, looked up by (student, subject, class, year, type, title).
type Assessment struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	StudentID    uint         `gorm:"not null;index:idx_assessment_review" json:"student_id"`
	Student      Student      `json:"student,omitempty"`
	SubjectID    uint         `gorm:"not null;index:idx_assessment_review" json:"subject_id"`
	Subject      Subject      `json:"subject,omitempty"`
	ClassID      uint         `gorm:"not null;index:idx_assessment_review" json:"class_id"`
	Class        ClassSection `json:"class,omitempty"`
	Type         string       `gorm:"size:32;not null;index:idx_assessment_review" json:"assessment_type"`
	Title        string       `gorm:"size:255;not null;index:idx_assessment_review" json:"title"`
	Date         time.Time    `json:"date"`
	TotalMarks   float64      `gorm:"not null" json:"total_marks"`
	ScoredMarks  float64      `gorm:"not null" json:"scored_marks"`
	Comments     string       `gorm:"type:text" json:"comments,omitempty"`
	Term         string       `gorm:"size:16;not null" json:"term"`
	AcademicYear string       `gorm:"size:16;not null;index:idx_assessment_review" json:"academic_year"`
	CreatedByID  *uint        `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
