package cron

import (
	"context"
	"encoding/json"
	"log"

	"barberbook/config"
	"barberbook/models"
	"barberbook/services/notification"
	"barberbook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

// handleReminderTask delivers a due reminder through the dispatcher. The
// delivery itself is best-effort: a store failure is logged by the
// dispatcher and the task is not retried.
func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}

		notifSvc.SendBestEffort(ctx, p.RecipientID, p.Title, p.Body, models.NotifInfo, p.AppointmentID)
		return nil
	}
}
