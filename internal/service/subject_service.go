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

// Subject domain failures.
var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrSubjectCodeTaken = errors.New("subject code already in use")
	ErrNotATeacher      = errors.New("one or more users are not teachers")
)

// SubjectService exposes subject catalogue use cases.
type SubjectService interface {
	List(ctx context.Context) ([]models.Subject, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]models.Subject, error)
	Get(ctx context.Context, id uint) (models.Subject, error)
	Create(ctx context.Context, payload dto.SubjectCreateRequest) (models.Subject, error)
	Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (models.Subject, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	subjects  repository.SubjectRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService builds a new subject service.
func NewSubjectService(subjects repository.SubjectRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) SubjectService {
	return &subjectService{
		subjects:  subjects,
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *subjectService) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Subject, error) {
	return s.subjects.ListByTeacher(ctx, teacherID)
}

func (s *subjectService) Get(ctx context.Context, id uint) (models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}
		return models.Subject{}, err
	}
	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest) (models.Subject, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Subject{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	if taken, err := s.subjects.ExistsCode(ctx, code, 0); err != nil {
		return models.Subject{}, err
	} else if taken {
		return models.Subject{}, ErrSubjectCodeTaken
	}

	subject := models.Subject{
		Name:         payload.Name,
		Code:         code,
		Description:  payload.Description,
		GradeLevels:  payload.GradeLevels,
		Department:   payload.Department,
		IsCompulsory: payload.IsCompulsory,
	}

	if len(payload.TeacherIDs) > 0 {
		teachers, err := s.resolveTeachers(ctx, payload.TeacherIDs)
		if err != nil {
			return models.Subject{}, err
		}
		subject.Teachers = teachers
	}

	if err := s.subjects.Create(ctx, &subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Subject{}, ErrSubjectCodeTaken
		}
		return models.Subject{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Str("code", subject.Code).Msg("subject created")
	return subject, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest) (models.Subject, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Subject{}, err
	}

	subject, err := s.Get(ctx, id)
	if err != nil {
		return models.Subject{}, err
	}

	if payload.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*payload.Code))
		if code != subject.Code {
			if taken, err := s.subjects.ExistsCode(ctx, code, subject.ID); err != nil {
				return models.Subject{}, err
			} else if taken {
				return models.Subject{}, ErrSubjectCodeTaken
			}
		}
		subject.Code = code
	}

	if payload.Name != nil {
		subject.Name = *payload.Name
	}
	if payload.Description != nil {
		subject.Description = *payload.Description
	}
	if payload.GradeLevels != nil {
		subject.GradeLevels = *payload.GradeLevels
	}
	if payload.Department != nil {
		subject.Department = *payload.Department
	}
	if payload.IsCompulsory != nil {
		subject.IsCompulsory = *payload.IsCompulsory
	}

	if payload.TeacherIDs != nil {
		teachers, err := s.resolveTeachers(ctx, *payload.TeacherIDs)
		if err != nil {
			return models.Subject{}, err
		}
		if err := s.subjects.ReplaceTeachers(ctx, &subject, teachers); err != nil {
			return models.Subject{}, err
		}
	}

	if err := s.subjects.Update(ctx, &subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Subject{}, ErrSubjectCodeTaken
		}
		return models.Subject{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Msg("subject updated")
	return s.Get(ctx, subject.ID)
}

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.logger.Info().Uint("subject_id", id).Msg("subject deleted")
	return nil
}

func (s *subjectService) resolveTeachers(ctx context.Context, ids []uint) ([]models.User, error) {
	teachers := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotATeacher
			}
			return nil, err
		}
		if !user.HasRole(models.RoleTeacher) {
			return nil, ErrNotATeacher
		}
		teachers = append(teachers, user)
	}
	return teachers, nil
}
