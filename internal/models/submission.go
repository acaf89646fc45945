package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission statuses.
const (
	SubmissionStatusPending   = "Pending"
	SubmissionStatusSubmitted = "Submitted"
	SubmissionStatusReviewed  = "Reviewed"
)

// Submission is a student's answer to an assignment. At most one per
// (assignment, student), enforced by the composite unique index.
type Submission struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	AssignmentID uint           `gorm:"not null;uniqueIndex:idx_submission_once" json:"assignment_id"`
	StudentID    uint           `gorm:"not null;uniqueIndex:idx_submission_once" json:"student_id"`
	Student      Student        `json:"student,omitempty"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	Content      datatypes.JSON `json:"content,omitempty"`
	Status       string         `gorm:"size:32;default:Pending" json:"status"`

	// Teacher feedback, populated when the submission is reviewed.
	FeedbackComments string      `gorm:"type:text" json:"feedback_comments,omitempty"`
	FeedbackGrade    string      `gorm:"size:8" json:"feedback_grade,omitempty"`
	ScoredMarks      *float64    `json:"scored_marks,omitempty"`
	TotalMarks       *float64    `json:"total_marks,omitempty"`
	ReviewedAt       *time.Time  `json:"reviewed_at,omitempty"`
	AssessmentID     *uint       `json:"assessment_id,omitempty"`
	Assessment       *Assessment `json:"assessment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsReviewed reports whether a teacher has reviewed the submission.
func (s Submission) IsReviewed() bool {
	return s.Status == SubmissionStatusReviewed
}
