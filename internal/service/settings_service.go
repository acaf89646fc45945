package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// ErrBadAcademicYear indicates an academic year string that cannot be parsed.
var ErrBadAcademicYear = errors.New("academic year must look like 2024/2025")

// SettingsService manages the global configuration row.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, payload dto.SettingsUpdateRequest, updatedBy uint) (models.Settings, error)
}

type settingsService struct {
	settings  repository.SettingsRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsService builds a new settings service.
func NewSettingsService(settings repository.SettingsRepository, classes repository.ClassRepository, validate *validator.Validate, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settings:  settings,
		classes:   classes,
		validator: validate,
		logger:    logger.With().Str("component", "settings_service").Logger(),
	}
}

// Get returns the settings row, creating a default one on first access.
func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{}, err
	}

	settings = models.Settings{
		AcademicYear: "2024/2025",
		Terms:        []string{models.TermFirst, models.TermSecond, models.TermThird},
		ActiveTerm:   models.TermFirst,
	}
	if err := s.settings.Save(ctx, &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// Update applies the patch. Advancing the academic year deactivates every
// active class whose year started earlier than the new one.
func (s *settingsService) Update(ctx context.Context, payload dto.SettingsUpdateRequest, updatedBy uint) (models.Settings, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Settings{}, err
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	yearChanged := false
	if payload.AcademicYear != nil && *payload.AcademicYear != settings.AcademicYear {
		if _, ok := models.AcademicYearStart(*payload.AcademicYear); !ok {
			return models.Settings{}, ErrBadAcademicYear
		}
		settings.AcademicYear = *payload.AcademicYear
		yearChanged = true
	}
	if payload.Terms != nil {
		settings.Terms = *payload.Terms
	}
	if payload.ActiveTerm != nil {
		settings.ActiveTerm = *payload.ActiveTerm
	}
	if updatedBy != 0 {
		settings.UpdatedByID = &updatedBy
	}

	if err := s.settings.Save(ctx, &settings); err != nil {
		return models.Settings{}, err
	}

	if yearChanged {
		if err := s.deactivateStaleClasses(ctx, settings.AcademicYear); err != nil {
			return models.Settings{}, err
		}
	}

	s.logger.Info().Str("academic_year", settings.AcademicYear).Msg("settings updated")
	return settings, nil
}

func (s *settingsService) deactivateStaleClasses(ctx context.Context, academicYear string) error {
	newStart, ok := models.AcademicYearStart(academicYear)
	if !ok {
		return ErrBadAcademicYear
	}

	classes, err := s.classes.ListActive(ctx)
	if err != nil {
		return err
	}

	stale := make([]uint, 0)
	for _, class := range classes {
		start, ok := models.AcademicYearStart(class.AcademicYear)
		if !ok {
			continue
		}
		if start < newStart {
			stale = append(stale, class.ID)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	if err := s.classes.UpdateStatus(ctx, stale, models.ClassStatusInactive); err != nil {
		return err
	}

	s.logger.Info().Int("classes", len(stale)).Str("academic_year", academicYear).Msg("stale classes deactivated")
	return nil
}
