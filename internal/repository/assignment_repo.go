package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// AssignmentRepository defines persistence operations for assignments and
// their owned submissions.
type AssignmentRepository interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Assignment, error)
	ListByClass(ctx context.Context, classID uint) ([]models.Assignment, error)
	ListByClasses(ctx context.Context, classIDs []uint) ([]models.Assignment, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error

	GetSubmission(ctx context.Context, assignmentID, studentID uint) (models.Submission, error)
	SaveSubmission(ctx context.Context, submission *models.Submission) error
	// ReviewSubmission stamps teacher feedback on the submission and upserts
	// its companion assessment in a single transaction.
	ReviewSubmission(ctx context.Context, submission *models.Submission, assessment *models.Assessment) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		Preload("Submissions.Student")
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.preloaded(ctx).Order("due_date ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.preloaded(ctx).Where("teacher_id = ?", teacherID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByClass(ctx context.Context, classID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.preloaded(ctx).Where("class_id = ?", classID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListByClasses(ctx context.Context, classIDs []uint) ([]models.Assignment, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}
	var assignments []models.Assignment
	if err := r.preloaded(ctx).Where("class_id IN ?", classIDs).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.preloaded(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Omit("Submissions").Save(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Submissions").Delete(&models.Assignment{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) GetSubmission(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *assignmentRepository) SaveSubmission(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *assignmentRepository) ReviewSubmission(ctx context.Context, submission *models.Submission, assessment *models.Assessment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reuse an existing assessment for the review key; the original
		// system upserts rather than accumulating one per review.
		var existing models.Assessment
		err := tx.Where(
			"student_id = ? AND subject_id = ? AND class_id = ? AND academic_year = ? AND type = ? AND title = ?",
			assessment.StudentID, assessment.SubjectID, assessment.ClassID,
			assessment.AcademicYear, assessment.Type, assessment.Title,
		).First(&existing).Error

		switch {
		case err == nil:
			existing.TotalMarks = assessment.TotalMarks
			existing.ScoredMarks = assessment.ScoredMarks
			existing.Comments = assessment.Comments
			existing.Term = assessment.Term
			existing.Date = assessment.Date
			existing.CreatedByID = assessment.CreatedByID
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*assessment = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(assessment).Error; err != nil {
				return err
			}
		default:
			return err
		}

		submission.AssessmentID = &assessment.ID
		return tx.Save(submission).Error
	})
}
