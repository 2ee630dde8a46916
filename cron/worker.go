package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"slotify/config"
	templateRepo "slotify/database/repository/template"
	"slotify/services/scheduling"

	"github.com/hibiken/asynq"
)

const (
	TypeRegenerateOwner = "slots:regenerate"
	TypeRegenerateAll   = "slots:regenerate_all"
)

// RegeneratePayload identifies one owner's regeneration window.
type RegeneratePayload struct {
	Owner string `json:"owner"`
	From  string `json:"from"`
	To    string `json:"to"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewClient returns an asynq client for enqueueing regeneration tasks.
func NewClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// EnqueueRegenerate schedules a regeneration task for one owner.
func EnqueueRegenerate(client *asynq.Client, owner, from, to string) error {
	payload, err := json.Marshal(RegeneratePayload{Owner: owner, From: from, To: to})
	if err != nil {
		return err
	}
	_, err = client.Enqueue(asynq.NewTask(TypeRegenerateOwner, payload), asynq.MaxRetry(3))
	return err
}

// InitSlotWorker runs the async worker in background: per-owner regeneration
// tasks plus a daily fan-out over all active templates.
func InitSlotWorker(sched *scheduling.Service, templates templateRepo.TemplateRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := NewClient()

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRegenerateOwner, handleRegenerateTask(sched))
	mux.HandleFunc(TypeRegenerateAll, handleRegenerateAll(templates, client))

	go func() {
		log.Println("[SlotWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[SlotWorker] failed to start worker: %v", err)
		}
	}()

	go runPeriodicScheduler()
}

// runPeriodicScheduler enqueues the nightly fan-out task.
func runPeriodicScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register("0 3 * * *", asynq.NewTask(TypeRegenerateAll, nil)); err != nil {
		log.Fatalf("[SlotWorker] failed to register periodic task: %v", err)
	}
	if err := scheduler.Run(); err != nil {
		log.Fatalf("[SlotWorker] scheduler stopped: %v", err)
	}
}

func handleRegenerateTask(sched *scheduling.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RegeneratePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid regenerate payload: %w", err)
		}
		inserted, err := sched.RegenerateForOwner(ctx, p.Owner, scheduling.DateRange{From: p.From, To: p.To}, false)
		if err != nil {
			return fmt.Errorf("regeneration for %s failed: %w", p.Owner, err)
		}
		log.Printf("[SlotWorker] regenerated %d slots for %s (%s..%s)", inserted, p.Owner, p.From, p.To)
		return nil
	}
}

// handleRegenerateAll fans one task out per active template over the
// configured horizon.
func handleRegenerateAll(templates templateRepo.TemplateRepository, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		active, err := templates.ListActive(ctx)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		from := now.Format("2006-01-02")
		to := now.AddDate(0, 0, config.AppConfig.GenerationHorizonDays).Format("2006-01-02")
		for _, tmpl := range active {
			if err := EnqueueRegenerate(client, tmpl.Owner, from, to); err != nil {
				log.Printf("[SlotWorker] failed to enqueue regeneration for %s: %v", tmpl.Owner, err)
			}
		}
		return nil
	}
}
