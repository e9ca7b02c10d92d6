package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFollowUpReminder = "sales_tasks.follow_up_reminder"

type FollowUpReminderPayload struct {
	TaskID string `json:"taskId"`
	Day    string `json:"day"`
}

func NewFollowUpReminderTask(payload FollowUpReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowUpReminder, data), nil
}

func ParseFollowUpReminderPayload(task *asynq.Task) (FollowUpReminderPayload, error) {
	var payload FollowUpReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpReminderPayload{}, err
	}
	return payload, nil
}

// reminderTaskID makes one reminder per task per day.
func reminderTaskID(payload FollowUpReminderPayload) string {
	return "reminder:" + payload.TaskID + ":" + payload.Day
}
