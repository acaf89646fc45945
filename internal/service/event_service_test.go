package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmadlawal020/schoolmanagementbe/internal/dto"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/models"
	"github.com/Ahmadlawal020/schoolmanagementbe/internal/repository"
)

func newEventFixture(t *testing.T) EventService {
	t.Helper()
	db := newTestDB(t)
	return NewEventService(
		repository.NewEventRepository(db),
		NewNATSPublisher(nil, "school", testLogger()),
		newTestValidator(),
		testLogger(),
	)
}

func eventPayload(title string, start, end time.Time) dto.EventCreateRequest {
	return dto.EventCreateRequest{
		Title:         title,
		StartDateTime: start.Format(time.RFC3339),
		EndDateTime:   end.Format(time.RFC3339),
	}
}

func TestEventCreateSanitizesFreeText(t *testing.T) {
	svc := newEventFixture(t)

	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	payload := eventPayload("Sports Day <script>alert(1)</script>", start, start.Add(4*time.Hour))
	payload.Description = "<b>Annual</b> inter-house games"
	payload.Location = "Main <i>field</i>"

	event, err := svc.Create(context.Background(), payload, 1)
	require.NoError(t, err)

	assert.Equal(t, "Sports Day ", event.Title)
	assert.Equal(t, "Annual inter-house games", event.Description)
	assert.Equal(t, "Main field", event.Location)
	assert.Equal(t, models.EventStatusScheduled, event.Status)
	assert.Equal(t, models.EventVisibilityPublic, event.Visibility)
}

func TestEventCreateRejectsInvertedWindow(t *testing.T) {
	svc := newEventFixture(t)

	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), eventPayload("PTA Meeting", start, start), 1)
	assert.ErrorIs(t, err, ErrEventEndsFirst)

	_, err = svc.Create(context.Background(), eventPayload("PTA Meeting", start, start.Add(-time.Hour)), 1)
	assert.ErrorIs(t, err, ErrEventEndsFirst)
}

func TestEventListWindowFilter(t *testing.T) {
	svc := newEventFixture(t)
	ctx := context.Background()

	may := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, eventPayload("May Fair", may, may.Add(2*time.Hour)), 1)
	require.NoError(t, err)
	juneEvent, err := svc.Create(ctx, eventPayload("June Recital", june, june.Add(2*time.Hour)), 1)
	require.NoError(t, err)

	events, err := svc.List(ctx, repository.EventFilter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, juneEvent.ID, events[0].ID)
}

func TestEventUpdateRevalidatesWindow(t *testing.T) {
	svc := newEventFixture(t)
	ctx := context.Background()

	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	event, err := svc.Create(ctx, eventPayload("Open Day", start, start.Add(3*time.Hour)), 1)
	require.NoError(t, err)

	badEnd := start.Add(-time.Hour).Format(time.RFC3339)
	_, err = svc.Update(ctx, event.ID, dto.EventUpdateRequest{EndDateTime: &badEnd})
	assert.ErrorIs(t, err, ErrEventEndsFirst)

	cancelled := models.EventStatusCancelled
	updated, err := svc.Update(ctx, event.ID, dto.EventUpdateRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, updated.Status)
}
