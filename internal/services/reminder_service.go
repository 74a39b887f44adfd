package services

import (
	"context"
	"log"
	"time"

	"taskpilot/internal/repositories"
)

// ReminderService — фоновый цикл: находит незакрытые задачи, чей срок
// прошёл, и уведомляет владельца по email и (если привязан чат) в telegram.
type ReminderService struct {
	tasks repositories.TaskRepository
	users repositories.UserRepository
	email EmailService
	tg    TelegramNotifier // может быть nil

	interval  time.Duration
	batchSize int
}

func NewReminderService(
	tasks repositories.TaskRepository,
	users repositories.UserRepository,
	email EmailService,
	tg TelegramNotifier,
	interval time.Duration,
	batchSize int,
) *ReminderService {
	return &ReminderService{
		tasks:     tasks,
		users:     users,
		email:     email,
		tg:        tg,
		interval:  interval,
		batchSize: batchSize,
	}
}

func (s *ReminderService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[reminder] loop started interval=%s batch=%d", s.interval, s.batchSize)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[reminder] loop stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *ReminderService) runOnce(ctx context.Context) {
	due, err := s.tasks.ListDueForReminder(ctx, s.batchSize)
	if err != nil {
		log.Printf("[reminder][err] list due tasks: %v", err)
		return
	}

	for i := range due {
		task := &due[i]

		user, err := s.users.GetByID(task.UserID)
		if err != nil {
			log.Printf("[reminder][err] task=%d owner=%d lookup: %v", task.ID, task.UserID, err)
			continue
		}

		if err := s.email.SendTaskReminderEmail(user.Email, task); err != nil {
			log.Printf("[reminder][warn] task=%d email to %q failed: %v", task.ID, user.Email, err)
		}

		if s.tg != nil && user.NotifyTelegram && user.TelegramChatID != 0 {
			if err := s.tg.SendTaskReminder(user.TelegramChatID, task); err != nil {
				log.Printf("[reminder][warn] task=%d telegram chat=%d failed: %v", task.ID, user.TelegramChatID, err)
			}
		}

		// помечаем в любом случае, иначе при мёртвом SMTP зациклимся
		if err := s.tasks.SetReminderFired(ctx, task.ID); err != nil {
			log.Printf("[reminder][err] task=%d mark fired: %v", task.ID, err)
		}
	}
}
