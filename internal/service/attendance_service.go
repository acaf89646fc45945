package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Attendance domain failures.
var (
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrSessionAlreadyMarked = errors.New("attendance already recorded for this class, date and period")
	ErrStudentNotInClass    = errors.New("one or more students are not enrolled in the class")
)

// AttendanceService exposes register session use cases.
type AttendanceService interface {
	List(ctx context.Context, filter repository.AttendanceFilter) ([]models.Attendance, error)
	Get(ctx context.Context, id uint) (models.Attendance, error)
	Create(ctx context.Context, payload dto.AttendanceCreateRequest, recordedBy uint) (models.Attendance, error)
	Update(ctx context.Context, id uint, payload dto.AttendanceUpdateRequest) (models.Attendance, error)
	Delete(ctx context.Context, id uint) error
	StudentSummary(ctx context.Context, studentID uint, from, to time.Time) (dto.AttendanceSummaryResponse, error)
	ExportClassSheet(ctx context.Context, classID uint, from, to time.Time) ([]byte, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	classes    repository.ClassRepository
	students   repository.StudentRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService builds a new attendance service.
func NewAttendanceService(attendance repository.AttendanceRepository, classes repository.ClassRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		classes:    classes,
		students:   students,
		validator:  validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]models.Attendance, error) {
	return s.attendance.List(ctx, filter)
}

func (s *attendanceService) Get(ctx context.Context, id uint) (models.Attendance, error) {
	session, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrAttendanceNotFound
		}
		return models.Attendance{}, err
	}
	return session, nil
}

func (s *attendanceService) Create(ctx context.Context, payload dto.AttendanceCreateRequest, recordedBy uint) (models.Attendance, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Attendance{}, err
	}

	class, err := s.classes.GetByID(ctx, payload.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrClassNotFound
		}
		return models.Attendance{}, err
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("invalid date: %w", err)
	}

	marks, err := buildMarks(class, payload.Records)
	if err != nil {
		return models.Attendance{}, err
	}

	session := models.Attendance{
		ClassID:      payload.ClassID,
		Date:         date,
		Period:       payload.Period,
		Marks:        marks,
		RecordedByID: recordedBy,
	}

	if err := s.attendance.Create(ctx, &session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Attendance{}, ErrSessionAlreadyMarked
		}
		return models.Attendance{}, err
	}

	s.logger.Info().Uint("attendance_id", session.ID).Uint("class_id", session.ClassID).Int("marks", len(marks)).Msg("attendance recorded")
	return s.Get(ctx, session.ID)
}

func (s *attendanceService) Update(ctx context.Context, id uint, payload dto.AttendanceUpdateRequest) (models.Attendance, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Attendance{}, err
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return models.Attendance{}, err
	}

	class, err := s.classes.GetByID(ctx, session.ClassID)
	if err != nil {
		return models.Attendance{}, err
	}

	marks, err := buildMarks(class, payload.Records)
	if err != nil {
		return models.Attendance{}, err
	}

	if err := s.attendance.ReplaceMarks(ctx, &session, marks); err != nil {
		return models.Attendance{}, err
	}

	s.logger.Info().Uint("attendance_id", session.ID).Msg("attendance corrected")
	return s.Get(ctx, session.ID)
}

func (s *attendanceService) Delete(ctx context.Context, id uint) error {
	if err := s.attendance.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}

	s.logger.Info().Uint("attendance_id", id).Msg("attendance deleted")
	return nil
}

// StudentSummary aggregates a student's marks over a date range.
func (s *attendanceService) StudentSummary(ctx context.Context, studentID uint, from, to time.Time) (dto.AttendanceSummaryResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceSummaryResponse{}, ErrStudentNotFound
		}
		return dto.AttendanceSummaryResponse{}, err
	}

	sessions, err := s.attendance.List(ctx, repository.AttendanceFilter{StudentID: studentID, From: from, To: to})
	if err != nil {
		return dto.AttendanceSummaryResponse{}, err
	}

	summary := dto.AttendanceSummaryResponse{StudentID: studentID}
	for _, session := range sessions {
		for _, mark := range session.Marks {
			if mark.StudentID != studentID {
				continue
			}
			summary.Sessions++
			switch mark.Status {
			case models.AttendancePresent:
				summary.Present++
			case models.AttendanceAbsent:
				summary.Absent++
			case models.AttendanceLate:
				summary.Late++
			case models.AttendanceExcused:
				summary.Excused++
			}
		}
	}

	if summary.Sessions > 0 {
		rate := float64(summary.Present+summary.Late) / float64(summary.Sessions) * 100
		summary.PresentRate = math.Round(rate*100) / 100
	}

	return summary, nil
}

// ExportClassSheet renders a class register as an xlsx workbook: one row per
// student, one column per session date.
func (s *attendanceService) ExportClassSheet(ctx context.Context, classID uint, from, to time.Time) ([]byte, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	sessions, err := s.attendance.List(ctx, repository.AttendanceFilter{ClassID: classID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := "Attendance"
	if err := workbook.SetSheetName(workbook.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	// Sessions come back newest first; the sheet reads oldest to newest.
	columns := make([]models.Attendance, len(sessions))
	for i, session := range sessions {
		columns[len(sessions)-1-i] = session
	}

	_ = workbook.SetCellValue(sheet, "A1", "Student")
	_ = workbook.SetCellValue(sheet, "B1", "Admission No")
	for i, session := range columns {
		cell, err := excelize.CoordinatesToCellName(i+3, 1)
		if err != nil {
			return nil, err
		}
		header := session.Date.Format(dateLayout)
		if session.Period != "" {
			header = fmt.Sprintf("%s (%s)", header, session.Period)
		}
		_ = workbook.SetCellValue(sheet, cell, header)
	}

	for row, student := range class.Students {
		nameCell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, err
		}
		_ = workbook.SetCellValue(sheet, nameCell, student.FullName())

		admissionCell, err := excelize.CoordinatesToCellName(2, row+2)
		if err != nil {
			return nil, err
		}
		_ = workbook.SetCellValue(sheet, admissionCell, student.AdmissionNumber)

		for col, session := range columns {
			status := ""
			for _, mark := range session.Marks {
				if mark.StudentID == student.ID {
					status = mark.Status
					break
				}
			}
			cell, err := excelize.CoordinatesToCellName(col+3, row+2)
			if err != nil {
				return nil, err
			}
			_ = workbook.SetCellValue(sheet, cell, status)
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("class_id", classID).Int("sessions", len(sessions)).Msg("attendance sheet exported")
	return buf.Bytes(), nil
}

func buildMarks(class models.ClassSection, records []dto.MarkInput) ([]models.AttendanceMark, error) {
	enrolled := make(map[uint]bool, len(class.Students))
	for _, student := range class.Students {
		enrolled[student.ID] = true
	}

	seen := make(map[uint]bool, len(records))
	marks := make([]models.AttendanceMark, 0, len(records))
	for _, record := range records {
		if !enrolled[record.StudentID] {
			return nil, ErrStudentNotInClass
		}
		if seen[record.StudentID] {
			continue
		}
		seen[record.StudentID] = true
		marks = append(marks, models.AttendanceMark{StudentID: record.StudentID, Status: record.Status})
	}
	return marks, nil
}
