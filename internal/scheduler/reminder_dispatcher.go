package scheduler

import (
	"context"
	"time"

	"leadflow_backend/internal/records"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	reminderSweepInterval = 5 * time.Minute
	reminderBatchSize     = 100
)

// DueTaskStore lists open follow-ups and records sent reminders.
type DueTaskStore interface {
	DueForReminder(ctx context.Context, day time.Time, limit int) ([]records.FollowUpTask, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ReminderDispatcher sweeps due follow-ups once the reminder hour has passed
// and queues one reminder per task per day.
type ReminderDispatcher struct {
	store    DueTaskStore
	enqueuer ReminderEnqueuer
	hour     int
	log      *logger.Logger
	now      func() time.Time
}

func NewReminderDispatcher(store DueTaskStore, enqueuer ReminderEnqueuer, hour int, log *logger.Logger) *ReminderDispatcher {
	return &ReminderDispatcher{store: store, enqueuer: enqueuer, hour: hour, log: log, now: time.Now}
}

func (d *ReminderDispatcher) Run(ctx context.Context) {
	if d == nil || d.store == nil || d.enqueuer == nil {
		return
	}

	ticker := time.NewTicker(reminderSweepInterval)
	defer ticker.Stop()

	for {
		if _, err := d.Sweep(ctx); err != nil && ctx.Err() == nil {
			d.log.Error("follow-up reminder sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep queues reminders for every due task not yet reminded today and
// returns how many were queued.
func (d *ReminderDispatcher) Sweep(ctx context.Context) (int, error) {
	now := d.now()
	if now.Hour() < d.hour {
		return 0, nil
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	queued := 0
	for {
		due, err := d.store.DueForReminder(ctx, day, reminderBatchSize)
		if err != nil {
			return queued, err
		}
		for _, task := range due {
			payload := FollowUpReminderPayload{TaskID: task.ID.String(), Day: day.Format("2006-01-02")}
			if err := d.enqueuer.EnqueueFollowUpReminder(ctx, payload); err != nil {
				return queued, err
			}
			if err := d.store.MarkReminded(ctx, task.ID, now); err != nil {
				return queued, err
			}
			queued++
		}
		if len(due) < reminderBatchSize {
			break
		}
	}

	if queued > 0 {
		d.log.Info("follow-up reminders queued", "count", queued, "day", day.Format("2006-01-02"))
	}
	return queued, nil
}
