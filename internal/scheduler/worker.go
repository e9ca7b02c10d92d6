package scheduler

import (
	"context"
	"fmt"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/records"
	"leadflow_backend/internal/salestasks/repository"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskReader loads a follow-up task.
type TaskReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (records.FollowUpTask, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	tasks  TaskReader
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(repository.New(pool), bus, log)
	w.server = server
	return w, nil
}

func newWorker(tasks TaskReader, bus events.Bus, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{mux: mux, tasks: tasks, bus: bus, log: log}
	mux.HandleFunc(TaskFollowUpReminder, w.handleFollowUpReminder)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	taskID, err := uuid.Parse(payload.TaskID)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	followUp, err := w.tasks.GetByID(ctx, taskID)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if followUp.Status == records.TaskDone {
		return nil
	}

	w.log.Info("follow-up reminder due", "taskId", followUp.ID, "company", followUp.Company, "nextFollowUp", followUp.NextFollowUp.Format("2006-01-02"))
	if w.bus == nil {
		return nil
	}
	return w.bus.PublishSync(ctx, events.FollowUpReminderDue{
		BaseEvent:    events.NewBaseEvent(),
		TaskID:       followUp.ID,
		LeadName:     followUp.LeadName,
		Company:      followUp.Company,
		Contact:      followUp.Contact,
		NextFollowUp: followUp.NextFollowUp,
		Priority:     string(followUp.Priority),
	})
}
