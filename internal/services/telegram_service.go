package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskpilot/internal/models"
)

// TelegramNotifier шлёт уведомления о задачах в привязанный чат.
type TelegramNotifier interface {
	SendTaskReminder(chatID int64, task *models.Task) error
}

type telegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &telegramService{bot: bot}, nil
}

func (t *telegramService) SendTaskReminder(chatID int64, task *models.Task) error {
	if chatID == 0 {
		return nil
	}
	text := fmt.Sprintf("⏰ <b>%s</b>\nбыла запланирована на %s и всё ещё не закрыта",
		task.Name, task.ScheduledFor.Format("02.01.2006 15:04"))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}
