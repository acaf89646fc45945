package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// TimetableRepository defines persistence operations for weekly timetables.
type TimetableRepository interface {
	List(ctx context.Context, classID uint) ([]models.Timetable, error)
	ListWithTeachers(ctx context.Context) ([]models.Timetable, error)
	GetByID(ctx context.Context, id uint) (models.Timetable, error)
	ExistsForClass(ctx context.Context, classID uint) (bool, error)
	Create(ctx context.Context, timetable *models.Timetable) error
	ReplaceSchedule(ctx context.Context, timetable *models.Timetable, days []models.DaySchedule) error
	Delete(ctx context.Context, id uint) error
}

type timetableRepository struct {
	db *gorm.DB
}

// NewTimetableRepository instantiates a GORM-backed repository.
func NewTimetableRepository(db *gorm.DB) TimetableRepository {
	return &timetableRepository{db: db}
}

func (r *timetableRepository) List(ctx context.Context, classID uint) ([]models.Timetable, error) {
	query := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Days.Periods.Subject")
	if classID != 0 {
		query = query.Where("class_id = ?", classID)
	}

	var timetables []models.Timetable
	if err := query.Find(&timetables).Error; err != nil {
		return nil, err
	}
	return timetables, nil
}

// ListWithTeachers loads every timetable with subject teacher associations,
// as needed by the per-teacher weekly view.
func (r *timetableRepository) ListWithTeachers(ctx context.Context) ([]models.Timetable, error) {
	var timetables []models.Timetable
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Days.Periods.Subject.Teachers").
		Find(&timetables).Error
	if err != nil {
		return nil, err
	}
	return timetables, nil
}

func (r *timetableRepository) GetByID(ctx context.Context, id uint) (models.Timetable, error) {
	var timetable models.Timetable
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Days.Periods.Subject").
		First(&timetable, id).Error
	if err != nil {
		return models.Timetable{}, err
	}
	return timetable, nil
}

func (r *timetableRepository) ExistsForClass(ctx context.Context, classID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Timetable{}).
		Where("class_id = ?", classID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *timetableRepository) Create(ctx context.Context, timetable *models.Timetable) error {
	return r.db.WithContext(ctx).Create(timetable).Error
}

// ReplaceSchedule swaps the full day/period graph of an existing timetable
// inside one transaction.
func (r *timetableRepository) ReplaceSchedule(ctx context.Context, timetable *models.Timetable, days []models.DaySchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint
		if err := tx.Model(&models.DaySchedule{}).
			Where("timetable_id = ?", timetable.ID).
			Pluck("id", &dayIDs).Error; err != nil {
			return err
		}
		if len(dayIDs) > 0 {
			if err := tx.Where("day_schedule_id IN ?", dayIDs).Delete(&models.Period{}).Error; err != nil {
				return err
			}
			if err := tx.Where("timetable_id = ?", timetable.ID).Delete(&models.DaySchedule{}).Error; err != nil {
				return err
			}
		}

		timetable.Days = days
		return tx.Save(timetable).Error
	})
}

func (r *timetableRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Days").Delete(&models.Timetable{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
