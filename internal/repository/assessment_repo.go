package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// AssessmentRepository defines persistence operations for assessments.
type AssessmentRepository interface {
	List(ctx context.Context) ([]models.Assessment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Assessment, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]models.Assessment, error)
	ListByClassAndSubject(ctx context.Context, classID, subjectID uint) ([]models.Assessment, error)
	GetByID(ctx context.Context, id uint) (models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id uint) error
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository instantiates a GORM-backed repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) List(ctx context.Context) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Class").
		Order("date DESC").
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) ListBySubject(ctx context.Context, subjectID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Class").
		Where("subject_id = ?", subjectID).
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) ListByClassAndSubject(ctx context.Context, classID, subjectID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("class_id = ? AND subject_id = ?", classID, subjectID).
		Find(&assessments).Error
	if err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) GetByID(ctx context.Context, id uint) (models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Class").
		First(&assessment, id).Error
	if err != nil {
		return models.Assessment{}, err
	}
	return assessment, nil
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}

func (r *assessmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assessment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
