package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// ClassRepository defines persistence operations for class sections.
type ClassRepository interface {
	List(ctx context.Context) ([]models.ClassSection, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.ClassSection, error)
	ListActive(ctx context.Context) ([]models.ClassSection, error)
	ListIDsByStudent(ctx context.Context, studentID uint) ([]uint, error)
	GetByID(ctx context.Context, id uint) (models.ClassSection, error)
	ExistsNameInYear(ctx context.Context, className, academicYear string, excludeID uint) (bool, error)
	Create(ctx context.Context, class *models.ClassSection) error
	Update(ctx context.Context, class *models.ClassSection) error
	UpdateStatus(ctx context.Context, ids []uint, status string) error
	ReplaceStudents(ctx context.Context, class *models.ClassSection, students []models.Student) error
	ReplaceSubjects(ctx context.Context, class *models.ClassSection, subjects []models.Subject) error
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository instantiates a GORM-backed repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) List(ctx context.Context) ([]models.ClassSection, error) {
	var classes []models.ClassSection
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Preload("Students").
		Preload("Subjects").
		Order("academic_year DESC, class_name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]models.ClassSection, error) {
	var classes []models.ClassSection
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Preload("Students").
		Preload("Subjects").
		Where("class_teacher_id = ?", teacherID).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) ListActive(ctx context.Context) ([]models.ClassSection, error) {
	var classes []models.ClassSection
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ClassStatusActive).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) ListIDsByStudent(ctx context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("class_students").
		Where("student_id = ?", studentID).
		Pluck("class_section_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.ClassSection, error) {
	var class models.ClassSection
	err := r.db.WithContext(ctx).
		Preload("ClassTeacher").
		Preload("Students").
		Preload("Subjects").
		First(&class, id).Error
	if err != nil {
		return models.ClassSection{}, err
	}
	return class, nil
}

func (r *classRepository) ExistsNameInYear(ctx context.Context, className, academicYear string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ClassSection{}).
		Where("class_name = ? AND academic_year = ?", className, academicYear)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.ClassSection) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, class *models.ClassSection) error {
	return r.db.WithContext(ctx).Omit("Students", "Subjects").Save(class).Error
}

func (r *classRepository) UpdateStatus(ctx context.Context, ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ClassSection{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

func (r *classRepository) ReplaceStudents(ctx context.Context, class *models.ClassSection, students []models.Student) error {
	return r.db.WithContext(ctx).Model(class).Association("Students").Replace(students)
}

func (r *classRepository) ReplaceSubjects(ctx context.Context, class *models.ClassSection, subjects []models.Subject) error {
	return r.db.WithContext(ctx).Model(class).Association("Subjects").Replace(subjects)
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ClassSection{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
