package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

// Event domain failures.
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEventEndsFirst = errors.New("event must end after it starts")
)

// EventService exposes calendar event use cases. Free-text fields are
// sanitized before storage.
type EventService interface {
	List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error)
	Get(ctx context.Context, id uint) (models.Event, error)
	Create(ctx context.Context, payload dto.EventCreateRequest, createdBy uint) (models.Event, error)
	Update(ctx context.Context, id uint, payload dto.EventUpdateRequest) (models.Event, error)
	Delete(ctx context.Context, id uint) error
}

type eventService struct {
	events    repository.EventRepository
	publisher Publisher
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewEventService builds a new event service.
func NewEventService(events repository.EventRepository, publisher Publisher, validate *validator.Validate, logger zerolog.Logger) EventService {
	return &eventService{
		events:    events,
		publisher: publisher,
		sanitizer: bluemonday.StrictPolicy(),
		validator: validate,
		logger:    logger.With().Str("component", "event_service").Logger(),
	}
}

func (s *eventService) List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	return s.events.List(ctx, filter)
}

func (s *eventService) Get(ctx context.Context, id uint) (models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, payload dto.EventCreateRequest, createdBy uint) (models.Event, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Event{}, err
	}

	start, err := time.Parse(time.RFC3339, payload.StartDateTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, payload.EndDateTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid end time: %w", err)
	}
	if !end.After(start) {
		return models.Event{}, ErrEventEndsFirst
	}

	event := models.Event{
		Title:          s.sanitizer.Sanitize(payload.Title),
		Description:    s.sanitizer.Sanitize(payload.Description),
		StartDateTime:  start,
		EndDateTime:    end,
		AllDay:         payload.AllDay,
		Location:       s.sanitizer.Sanitize(payload.Location),
		Type:           payload.Type,
		Tags:           payload.Tags,
		VisibleToRoles: payload.VisibleToRoles,
		OrganizerID:    payload.OrganizerID,
		Attendees:      payload.Attendees,
		Reminders:      payload.Reminders,
		Recurrence:     payload.Recurrence,
		Status:         models.EventStatusScheduled,
		Visibility:     payload.Visibility,
		Attachments:    payload.Attachments,
	}
	if event.Visibility == "" {
		event.Visibility = models.EventVisibilityPublic
	}
	if createdBy != 0 {
		event.CreatedByID = &createdBy
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return models.Event{}, err
	}

	s.publisher.Publish(ctx, "event.scheduled", map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
		"start":    event.StartDateTime,
	})

	s.logger.Info().Uint("event_id", event.ID).Str("title", event.Title).Msg("event scheduled")
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uint, payload dto.EventUpdateRequest) (models.Event, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Event{}, err
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return models.Event{}, err
	}

	if payload.Title != nil {
		event.Title = s.sanitizer.Sanitize(*payload.Title)
	}
	if payload.Description != nil {
		event.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.StartDateTime != nil {
		start, err := time.Parse(time.RFC3339, *payload.StartDateTime)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid start time: %w", err)
		}
		event.StartDateTime = start
	}
	if payload.EndDateTime != nil {
		end, err := time.Parse(time.RFC3339, *payload.EndDateTime)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid end time: %w", err)
		}
		event.EndDateTime = end
	}
	if !event.EndDateTime.After(event.StartDateTime) {
		return models.Event{}, ErrEventEndsFirst
	}
	if payload.AllDay != nil {
		event.AllDay = *payload.AllDay
	}
	if payload.Location != nil {
		event.Location = s.sanitizer.Sanitize(*payload.Location)
	}
	if payload.Type != nil {
		event.Type = *payload.Type
	}
	if payload.Tags != nil {
		event.Tags = *payload.Tags
	}
	if payload.VisibleToRoles != nil {
		event.VisibleToRoles = *payload.VisibleToRoles
	}
	if payload.OrganizerID != nil {
		event.OrganizerID = payload.OrganizerID
	}
	if payload.Attendees != nil {
		event.Attendees = *payload.Attendees
	}
	if payload.Reminders != nil {
		event.Reminders = *payload.Reminders
	}
	if payload.Recurrence != nil {
		event.Recurrence = *payload.Recurrence
	}
	if payload.Status != nil {
		event.Status = *payload.Status
	}
	if payload.Visibility != nil {
		event.Visibility = *payload.Visibility
	}
	if payload.Attachments != nil {
		event.Attachments = *payload.Attachments
	}

	if err := s.events.Update(ctx, &event); err != nil {
		return models.Event{}, err
	}

	s.logger.Info().Uint("event_id", event.ID).Msg("event updated")
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.logger.Info().Uint("event_id", id).Msg("event deleted")
	return nil
}
