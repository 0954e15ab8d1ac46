package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travella-service/internal/domain/entity"
	"travella-service/pkg/logger"
)

type fakeReminderRepo struct {
	reminders []*entity.Reminder
}

func (r *fakeReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) error {
	reminder.ID = uint(len(r.reminders) + 1)
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *fakeReminderRepo) GetByID(ctx context.Context, id uint) (*entity.Reminder, error) {
	for _, reminder := range r.reminders {
		if reminder.ID == id {
			return reminder, nil
		}
	}
	return nil, nil
}

func (r *fakeReminderRepo) GetAll(ctx context.Context) ([]*entity.Reminder, error) {
	return r.reminders, nil
}

func (r *fakeReminderRepo) FindDue(ctx context.Context, beforeMillis int64, limit int) ([]*entity.Reminder, error) {
	var out []*entity.Reminder
	for _, reminder := range r.reminders {
		if !reminder.Notified && reminder.DateTime <= beforeMillis {
			out = append(out, reminder)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) MarkNotified(ctx context.Context, id uint) error {
	for _, reminder := range r.reminders {
		if reminder.ID == id {
			reminder.Notified = true
		}
	}
	return nil
}

func (r *fakeReminderRepo) Update(ctx context.Context, reminder *entity.Reminder) error { return nil }
func (r *fakeReminderRepo) Delete(ctx context.Context, id uint) error                   { return nil }

func TestDispatchDueFiresOnlyPastReminders(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeReminderRepo{}
	require.NoError(t, repo.Create(context.Background(), &entity.Reminder{
		Title: "Check in online", DateTime: now.Add(-time.Hour).UnixMilli(),
	}))
	require.NoError(t, repo.Create(context.Background(), &entity.Reminder{
		Title: "Pack bags", DateTime: now.Add(time.Hour).UnixMilli(),
	}))

	dispatcher := NewReminderDispatcher(repo, logger.NewNop(), testMetrics)
	require.NoError(t, dispatcher.DispatchDue(context.Background(), now))

	assert.True(t, repo.reminders[0].Notified)
	assert.False(t, repo.reminders[1].Notified)
}

func TestDispatchDueIsIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeReminderRepo{}
	require.NoError(t, repo.Create(context.Background(), &entity.Reminder{
		Title: "Check in online", DateTime: now.Add(-time.Hour).UnixMilli(),
	}))

	dispatcher := NewReminderDispatcher(repo, logger.NewNop(), testMetrics)
	require.NoError(t, dispatcher.DispatchDue(context.Background(), now))
	require.NoError(t, dispatcher.DispatchDue(context.Background(), now))

	assert.True(t, repo.reminders[0].Notified)
}
