package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// FeeRepository defines persistence operations for fees, payments and the
// student-fee fan-out links.
type FeeRepository interface {
	List(ctx context.Context) ([]models.Fee, error)
	GetByID(ctx context.Context, id uint) (models.Fee, error)
	Create(ctx context.Context, fee *models.Fee) error
	Update(ctx context.Context, fee *models.Fee) error
	Delete(ctx context.Context, id uint) error

	// LinkStudents attaches the fee to each student. Existing links are left
	// untouched, giving the fan-out set semantics.
	LinkStudents(ctx context.Context, feeID uint, studentIDs []uint) error
	// Retarget atomically detaches the fee from every student and re-links it
	// to the given ones, as required when a fee's grade level changes.
	Retarget(ctx context.Context, feeID uint, studentIDs []uint) error
	LinkedStudentIDs(ctx context.Context, feeID uint) ([]uint, error)

	AddPayment(ctx context.Context, payment *models.Payment) error
	ListUnpaidForStudent(ctx context.Context, studentID uint, gradeLevel string) ([]models.Fee, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository instantiates a GORM-backed repository.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) List(ctx context.Context) ([]models.Fee, error) {
	var fees []models.Fee
	err := r.db.WithContext(ctx).
		Preload("Payments.Student").
		Order("due_date ASC").
		Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) GetByID(ctx context.Context, id uint) (models.Fee, error) {
	var fee models.Fee
	if err := r.db.WithContext(ctx).Preload("Payments.Student").First(&fee, id).Error; err != nil {
		return models.Fee{}, err
	}
	return fee, nil
}

func (r *feeRepository) Create(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *feeRepository) Update(ctx context.Context, fee *models.Fee) error {
	return r.db.WithContext(ctx).Omit("Payments").Save(fee).Error
}

func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_id = ?", id).Delete(&models.StudentFee{}).Error; err != nil {
			return err
		}
		result := tx.Select("Payments").Delete(&models.Fee{ID: id})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *feeRepository) LinkStudents(ctx context.Context, feeID uint, studentIDs []uint) error {
	return linkStudents(r.db.WithContext(ctx), feeID, studentIDs)
}

func linkStudents(tx *gorm.DB, feeID uint, studentIDs []uint) error {
	if len(studentIDs) == 0 {
		return nil
	}
	links := make([]models.StudentFee, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		links = append(links, models.StudentFee{StudentID: studentID, FeeID: feeID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *feeRepository) Retarget(ctx context.Context, feeID uint, studentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_id = ?", feeID).Delete(&models.StudentFee{}).Error; err != nil {
			return err
		}
		return linkStudents(tx, feeID, studentIDs)
	})
}

func (r *feeRepository) LinkedStudentIDs(ctx context.Context, feeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.StudentFee{}).
		Where("fee_id = ?", feeID).
		Order("student_id ASC").
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddPayment inserts the payment row. The (fee, student) unique index makes
// a duplicate surface as gorm.ErrDuplicatedKey rather than racing a
// check-then-act pre-read.
func (r *feeRepository) AddPayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *feeRepository) ListUnpaidForStudent(ctx context.Context, studentID uint, gradeLevel string) ([]models.Fee, error) {
	query := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM payments WHERE payments.fee_id = fees.id AND payments.student_id = ?)", studentID)
	if gradeLevel != "" {
		query = query.Where("grade_level = ?", gradeLevel)
	}

	var fees []models.Fee
	if err := query.Order("due_date ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}
