package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Nop is used when no bot token is configured. Notifications are dropped and
// the updates channel never delivers.
type Nop struct{}

var _ Client = Nop{}

func (Nop) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (Nop) StopReceivingUpdates() {}

func (Nop) SendMessage(int64, string) (int, error) { return 0, nil }

func (Nop) EditMessageText(int64, int, string) error { return nil }

func (Nop) SendMessageToUser(string) {}

func (Nop) SendMessageToDefaultChannel(string) {}
