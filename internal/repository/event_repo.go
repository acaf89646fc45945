package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
)

// EventFilter narrows event listings.
type EventFilter struct {
	From   time.Time
	To     time.Time
	Type   string
	Status string
}

// EventRepository defines persistence operations for calendar events.
type EventRepository interface {
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	GetByID(ctx context.Context, id uint) (models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository instantiates a GORM-backed repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Preload("Organizer")

	if !filter.From.IsZero() {
		query = query.Where("end_date_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("start_date_time <= ?", filter.To)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var events []models.Event
	if err := query.Order("start_date_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Organizer").First(&event, id).Error; err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
