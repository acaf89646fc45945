package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Student domain failures.
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrAdmissionNumberTaken = errors.New("admission number already in use")
)

// StudentService exposes student enrollment use cases.
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id uint) (models.Student, error)
	Create(ctx context.Context, payload dto.StudentCreateRequest) (models.Student, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	events    Publisher
	logger    zerolog.Logger
}

// NewStudentService builds a new student service.
func NewStudentService(students repository.StudentRepository, validate *validator.Validate, events Publisher, logger zerolog.Logger) StudentService {
	return &studentService{
		students:  students,
		validator: validate,
		events:    events,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	return s.students.List(ctx)
}

func (s *studentService) Get(ctx context.Context, id uint) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Student{}, err
	}

	if taken, err := s.students.ExistsAdmissionNumber(ctx, payload.AdmissionNumber, 0); err != nil {
		return models.Student{}, err
	} else if taken {
		return models.Student{}, ErrAdmissionNumberTaken
	}

	dob, err := time.Parse(dateLayout, payload.DateOfBirth)
	if err != nil {
		return models.Student{}, fmt.Errorf("invalid date of birth: %w", err)
	}
	admitted, err := time.Parse(dateLayout, payload.AdmissionDate)
	if err != nil {
		return models.Student{}, fmt.Errorf("invalid admission date: %w", err)
	}

	student := models.Student{
		AdmissionNumber:   payload.AdmissionNumber,
		FirstName:         payload.FirstName,
		MiddleName:        payload.MiddleName,
		LastName:          payload.LastName,
		DateOfBirth:       dob,
		PlaceOfBirth:      payload.PlaceOfBirth,
		Gender:            payload.Gender,
		Nationality:       payload.Nationality,
		Religion:          payload.Religion,
		BloodGroup:        payload.BloodGroup,
		Photo:             payload.Photo,
		GradeLevel:        payload.GradeLevel,
		AdmissionDate:     admitted,
		PreviousSchool:    payload.PreviousSchool,
		PrimaryContact:    payload.PrimaryContact,
		EmergencyContacts: payload.EmergencyContacts,
		Address:           payload.Address,
		AcademicHistory:   payload.AcademicHistory,
		Allergies:         payload.Allergies,
		MedicalConditions: payload.MedicalConditions,
		Status:            payload.Status,
		IsActive:          true,
		Notes:             payload.Notes,
	}
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}

	if err := s.students.Create(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Student{}, ErrAdmissionNumberTaken
		}
		return models.Student{}, err
	}

	s.events.Publish(ctx, "student.enrolled", map[string]interface{}{
		"student_id":       student.ID,
		"admission_number": student.AdmissionNumber,
		"grade_level":      student.GradeLevel,
	})

	s.logger.Info().Uint("student_id", student.ID).Str("admission_number", student.AdmissionNumber).Msg("student enrolled")
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (models.Student, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Student{}, err
	}

	student, err := s.Get(ctx, id)
	if err != nil {
		return models.Student{}, err
	}

	if payload.FirstName != nil {
		student.FirstName = *payload.FirstName
	}
	if payload.MiddleName != nil {
		student.MiddleName = *payload.MiddleName
	}
	if payload.LastName != nil {
		student.LastName = *payload.LastName
	}
	if payload.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *payload.DateOfBirth)
		if err != nil {
			return models.Student{}, fmt.Errorf("invalid date of birth: %w", err)
		}
		student.DateOfBirth = dob
	}
	if payload.PlaceOfBirth != nil {
		student.PlaceOfBirth = *payload.PlaceOfBirth
	}
	if payload.Gender != nil {
		student.Gender = *payload.Gender
	}
	if payload.Nationality != nil {
		student.Nationality = *payload.Nationality
	}
	if payload.Religion != nil {
		student.Religion = *payload.Religion
	}
	if payload.BloodGroup != nil {
		student.BloodGroup = *payload.BloodGroup
	}
	if payload.Photo != nil {
		student.Photo = *payload.Photo
	}
	if payload.GradeLevel != nil {
		student.GradeLevel = *payload.GradeLevel
	}
	if payload.AdmissionDate != nil {
		admitted, err := time.Parse(dateLayout, *payload.AdmissionDate)
		if err != nil {
			return models.Student{}, fmt.Errorf("invalid admission date: %w", err)
		}
		student.AdmissionDate = admitted
	}
	if payload.PreviousSchool != nil {
		student.PreviousSchool = *payload.PreviousSchool
	}
	if payload.PrimaryContact != nil {
		student.PrimaryContact = *payload.PrimaryContact
	}
	if payload.EmergencyContacts != nil {
		student.EmergencyContacts = *payload.EmergencyContacts
	}
	if payload.Address != nil {
		student.Address = *payload.Address
	}
	if payload.AcademicHistory != nil {
		student.AcademicHistory = *payload.AcademicHistory
	}
	if payload.Allergies != nil {
		student.Allergies = *payload.Allergies
	}
	if payload.MedicalConditions != nil {
		student.MedicalConditions = *payload.MedicalConditions
	}
	if payload.Status != nil {
		student.Status = *payload.Status
	}
	if payload.IsActive != nil {
		student.IsActive = *payload.IsActive
	}
	if payload.Archived != nil {
		student.Archived = *payload.Archived
	}
	if payload.Notes != nil {
		student.Notes = *payload.Notes
	}

	if err := s.students.Update(ctx, &student); err != nil {
		return models.Student{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student updated")
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.logger.Info().Uint("student_id", id).Msg("student deleted")
	return nil
}
