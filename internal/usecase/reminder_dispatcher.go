package usecase

import (
	"context"
	"fmt"
	"time"

	"travella-service/internal/domain/repository"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
)

// ReminderDispatcher fires reminders whose scheduled time has passed.
// Delivery is a log line; the mobile client surfaces the notification.
type ReminderDispatcher struct {
	reminderRepo repository.ReminderRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
}

// NewReminderDispatcher creates a new reminder dispatcher
func NewReminderDispatcher(
	reminderRepo repository.ReminderRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ReminderDispatcher {
	return &ReminderDispatcher{
		reminderRepo: reminderRepo,
		logger:       logger,
		metrics:      metrics,
	}
}

// DispatchDue fires every reminder due at or before now
func (d *ReminderDispatcher) DispatchDue(ctx context.Context, now time.Time) error {
	due, err := d.reminderRepo.FindDue(ctx, now.UnixMilli(), 100)
	if err != nil {
		return fmt.Errorf("failed to find due reminders: %w", err)
	}

	for _, reminder := range due {
		d.logger.Info("Reminder due",
			"reminderID", reminder.ID,
			"title", reminder.Title,
			"scheduledAt", time.UnixMilli(reminder.DateTime))

		if err := d.reminderRepo.MarkNotified(ctx, reminder.ID); err != nil {
			d.logger.Error("Failed to mark reminder notified",
				"reminderID", reminder.ID,
				"error", err)
			d.metrics.ErrorsCount.WithLabelValues("reminder").Inc()
			continue
		}
		d.metrics.RemindersDelivered.Inc()
	}

	return nil
}

// Start runs the dispatch loop until the context is cancelled
func (d *ReminderDispatcher) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Reminder dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.DispatchDue(ctx, time.Now()); err != nil {
				d.logger.Error("Reminder pass failed", "error", err)
			}
		}
	}
}
