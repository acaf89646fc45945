package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	ClassID   uint
	StudentID uint
	From      time.Time
	To        time.Time
}

// AttendanceRepository defines persistence operations for register sessions.
type AttendanceRepository interface {
	List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error)
	GetByID(ctx context.Context, id uint) (models.Attendance, error)
	GetSession(ctx context.Context, classID uint, date time.Time, period string) (models.Attendance, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	ReplaceMarks(ctx context.Context, attendance *models.Attendance, marks []models.AttendanceMark) error
	Delete(ctx context.Context, id uint) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates a GORM-backed repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Marks.Student").
		Preload("RecordedBy")

	if filter.ClassID != 0 {
		query = query.Where("class_id = ?", filter.ClassID)
	}
	if filter.StudentID != 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM attendance_marks WHERE attendance_marks.attendance_id = attendances.id AND attendance_marks.student_id = ?)",
			filter.StudentID,
		)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}

	var sessions []models.Attendance
	if err := query.Order("date DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (models.Attendance, error) {
	var session models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Marks.Student").
		Preload("RecordedBy").
		First(&session, id).Error
	if err != nil {
		return models.Attendance{}, err
	}
	return session, nil
}

func (r *attendanceRepository) GetSession(ctx context.Context, classID uint, date time.Time, period string) (models.Attendance, error) {
	var session models.Attendance
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date = ? AND period = ?", classID, date, period).
		First(&session).Error
	if err != nil {
		return models.Attendance{}, err
	}
	return session, nil
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// ReplaceMarks swaps the full mark set of a session inside one transaction,
// used when a register is corrected after the fact.
func (r *attendanceRepository) ReplaceMarks(ctx context.Context, attendance *models.Attendance, marks []models.AttendanceMark) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attendance_id = ?", attendance.ID).Delete(&models.AttendanceMark{}).Error; err != nil {
			return err
		}
		attendance.Marks = marks
		return tx.Save(attendance).Error
	})
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Select("Marks").Delete(&models.Attendance{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
