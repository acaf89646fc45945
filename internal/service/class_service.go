package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Class domain failures.
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassNameTaken     = errors.New("class name already exists for that academic year")
	ErrClassTeacherNotSet = errors.New("class teacher does not exist or is not a teacher")
	ErrClassOverCapacity  = errors.New("student list exceeds class capacity")
	ErrUnknownStudents    = errors.New("one or more students do not exist")
)

// ClassService exposes class section use cases.
type ClassService interface {
	List(ctx context.Context) ([]models.ClassSection, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.ClassSection, error)
	Get(ctx context.Context, id uint) (models.ClassSection, error)
	Create(ctx context.Context, payload dto.ClassCreateRequest) (models.ClassSection, error)
	Update(ctx context.Context, id uint, payload dto.ClassUpdateRequest) (models.ClassSection, error)
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	classes   repository.ClassRepository
	users     repository.UserRepository
	students  repository.StudentRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService builds a new class service.
func NewClassService(classes repository.ClassRepository, users repository.UserRepository, students repository.StudentRepository, subjects repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		classes:   classes,
		users:     users,
		students:  students,
		subjects:  subjects,
		validator: validate,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]models.ClassSection, error) {
	return s.classes.List(ctx)
}

func (s *classService) ListByTeacher(ctx context.Context, teacherID uint) ([]models.ClassSection, error) {
	return s.classes.ListByTeacher(ctx, teacherID)
}

func (s *classService) Get(ctx context.Context, id uint) (models.ClassSection, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ClassSection{}, ErrClassNotFound
		}
		return models.ClassSection{}, err
	}
	return class, nil
}

func (s *classService) Create(ctx context.Context, payload dto.ClassCreateRequest) (models.ClassSection, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ClassSection{}, err
	}

	name := strings.TrimSpace(payload.ClassName)
	if taken, err := s.classes.ExistsNameInYear(ctx, name, payload.AcademicYear, 0); err != nil {
		return models.ClassSection{}, err
	} else if taken {
		return models.ClassSection{}, ErrClassNameTaken
	}

	if err := s.checkTeacher(ctx, payload.ClassTeacherID); err != nil {
		return models.ClassSection{}, err
	}

	class := models.ClassSection{
		ClassName:      name,
		Grade:          payload.Grade,
		Section:        payload.Section,
		AcademicYear:   payload.AcademicYear,
		ClassTeacherID: payload.ClassTeacherID,
		RoomNumber:     payload.RoomNumber,
		MaxCapacity:    payload.MaxCapacity,
		Status:         payload.Status,
	}
	if class.MaxCapacity == 0 {
		class.MaxCapacity = 30
	}
	if class.Status == "" {
		class.Status = models.ClassStatusActive
	}

	if len(payload.StudentIDs) > 0 {
		students, err := s.resolveStudents(ctx, payload.StudentIDs)
		if err != nil {
			return models.ClassSection{}, err
		}
		if len(students) > class.MaxCapacity {
			return models.ClassSection{}, ErrClassOverCapacity
		}
		class.Students = students
	}

	if len(payload.SubjectIDs) > 0 {
		subjects, err := s.resolveSubjects(ctx, payload.SubjectIDs)
		if err != nil {
			return models.ClassSection{}, err
		}
		class.Subjects = subjects
	}

	if err := s.classes.Create(ctx, &class); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ClassSection{}, ErrClassNameTaken
		}
		return models.ClassSection{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Str("class_name", class.ClassName).Msg("class created")
	return class, nil
}

func (s *classService) Update(ctx context.Context, id uint, payload dto.ClassUpdateRequest) (models.ClassSection, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ClassSection{}, err
	}

	class, err := s.Get(ctx, id)
	if err != nil {
		return models.ClassSection{}, err
	}

	if payload.ClassName != nil {
		class.ClassName = strings.TrimSpace(*payload.ClassName)
	}
	if payload.AcademicYear != nil {
		class.AcademicYear = *payload.AcademicYear
	}
	if payload.ClassName != nil || payload.AcademicYear != nil {
		if taken, err := s.classes.ExistsNameInYear(ctx, class.ClassName, class.AcademicYear, class.ID); err != nil {
			return models.ClassSection{}, err
		} else if taken {
			return models.ClassSection{}, ErrClassNameTaken
		}
	}

	if payload.Grade != nil {
		class.Grade = *payload.Grade
	}
	if payload.Section != nil {
		class.Section = *payload.Section
	}
	if payload.ClassTeacherID != nil {
		if err := s.checkTeacher(ctx, *payload.ClassTeacherID); err != nil {
			return models.ClassSection{}, err
		}
		class.ClassTeacherID = *payload.ClassTeacherID
	}
	if payload.RoomNumber != nil {
		class.RoomNumber = *payload.RoomNumber
	}
	if payload.MaxCapacity != nil {
		class.MaxCapacity = *payload.MaxCapacity
	}
	if payload.Status != nil {
		class.Status = *payload.Status
	}

	if payload.StudentIDs != nil {
		students, err := s.resolveStudents(ctx, *payload.StudentIDs)
		if err != nil {
			return models.ClassSection{}, err
		}
		if len(students) > class.MaxCapacity {
			return models.ClassSection{}, ErrClassOverCapacity
		}
		if err := s.classes.ReplaceStudents(ctx, &class, students); err != nil {
			return models.ClassSection{}, err
		}
	}

	if payload.SubjectIDs != nil {
		subjects, err := s.resolveSubjects(ctx, *payload.SubjectIDs)
		if err != nil {
			return models.ClassSection{}, err
		}
		if err := s.classes.ReplaceSubjects(ctx, &class, subjects); err != nil {
			return models.ClassSection{}, err
		}
	}

	if err := s.classes.Update(ctx, &class); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ClassSection{}, ErrClassNameTaken
		}
		return models.ClassSection{}, err
	}

	s.logger.Info().Uint("class_id", class.ID).Msg("class updated")
	return s.Get(ctx, class.ID)
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	s.logger.Info().Uint("class_id", id).Msg("class deleted")
	return nil
}

func (s *classService) checkTeacher(ctx context.Context, teacherID uint) error {
	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassTeacherNotSet
		}
		return err
	}
	if !teacher.HasRole(models.RoleTeacher) {
		return ErrClassTeacherNotSet
	}
	return nil
}

func (s *classService) resolveStudents(ctx context.Context, ids []uint) ([]models.Student, error) {
	students := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		student, err := s.students.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownStudents
			}
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

func (s *classService) resolveSubjects(ctx context.Context, ids []uint) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0, len(ids))
	for _, id := range ids {
		subject, err := s.subjects.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownSubjects
			}
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
