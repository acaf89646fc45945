package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// User domain failures.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrUserIDTaken     = errors.New("user id already in use")
	ErrUnknownSubjects = errors.New("one or more subjects do not exist")
)

const dateLayout = "2006-01-02"

// UserService exposes staff and parent account use cases.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	ListStaff(ctx context.Context) ([]models.User, error)
	ListParents(ctx context.Context) ([]models.User, error)
	Departments(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id uint) (models.User, error)
	Create(ctx context.Context, payload dto.UserCreateRequest) (models.User, error)
	Update(ctx context.Context, id uint, payload dto.UserUpdateRequest) (models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	users     repository.UserRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService builds a new user service.
func NewUserService(users repository.UserRepository, subjects repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		subjects:  subjects,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) ListStaff(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRoles(ctx, []string{models.RoleAdmin, models.RoleTeacher})
}

func (s *userService) ListParents(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRoles(ctx, []string{models.RoleParent})
}

func (s *userService) Departments(ctx context.Context) ([]string, error) {
	return s.users.Departments(ctx)
}

func (s *userService) Get(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, payload dto.UserCreateRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	if taken, err := s.users.ExistsEmail(ctx, payload.Email, 0); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrEmailTaken
	}

	if taken, err := s.users.ExistsUserID(ctx, payload.UserID, 0); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrUserIDTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		UserID:         payload.UserID,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		OtherNames:     payload.OtherNames,
		Title:          payload.Title,
		Roles:          payload.Roles,
		Status:         payload.Status,
		Email:          payload.Email,
		Password:       string(hash),
		Department:     payload.Department,
		Permissions:    payload.Permissions,
		Qualifications: payload.Qualifications,
		Children:       payload.Children,
		Phone:          payload.Phone,
		AlternatePhone: payload.AlternatePhone,
		Address:        payload.Address,
		Gender:         payload.Gender,
		IsActive:       true,
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	if payload.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, payload.DateOfBirth)
		if err != nil {
			return models.User{}, fmt.Errorf("invalid date of birth: %w", err)
		}
		user.DateOfBirth = &dob
	}

	if len(payload.SubjectIDs) > 0 {
		subjects, err := s.resolveSubjects(ctx, payload.SubjectIDs)
		if err != nil {
			return models.User{}, err
		}
		user.Subjects = subjects
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, payload dto.UserUpdateRequest) (models.User, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.User{}, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if payload.Email != nil && *payload.Email != user.Email {
		if taken, err := s.users.ExistsEmail(ctx, *payload.Email, user.ID); err != nil {
			return models.User{}, err
		} else if taken {
			return models.User{}, ErrEmailTaken
		}
		user.Email = *payload.Email
	}

	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.OtherNames != nil {
		user.OtherNames = *payload.OtherNames
	}
	if payload.Title != nil {
		user.Title = *payload.Title
	}
	if payload.Roles != nil {
		user.Roles = *payload.Roles
	}
	if payload.Status != nil {
		user.Status = *payload.Status
	}
	if payload.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}
	if payload.Department != nil {
		user.Department = *payload.Department
	}
	if payload.Permissions != nil {
		user.Permissions = *payload.Permissions
	}
	if payload.Qualifications != nil {
		user.Qualifications = *payload.Qualifications
	}
	if payload.Children != nil {
		user.Children = *payload.Children
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}
	if payload.AlternatePhone != nil {
		user.AlternatePhone = *payload.AlternatePhone
	}
	if payload.Address != nil {
		user.Address = *payload.Address
	}
	if payload.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *payload.DateOfBirth)
		if err != nil {
			return models.User{}, fmt.Errorf("invalid date of birth: %w", err)
		}
		user.DateOfBirth = &dob
	}
	if payload.Gender != nil {
		user.Gender = *payload.Gender
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.users.Update(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	if payload.SubjectIDs != nil {
		subjects, err := s.resolveSubjects(ctx, *payload.SubjectIDs)
		if err != nil {
			return models.User{}, err
		}
		user.Subjects = subjects
		if err := s.users.Update(ctx, &user); err != nil {
			return models.User{}, err
		}
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.logger.Info().Uint("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) resolveSubjects(ctx context.Context, ids []uint) ([]models.Subject, error) {
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
