package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SendMessageToUser sends a text message to the configured user
func (tg *TelegramImpl) SendMessageToUser(message string) {
	if tg.Config.Telegram.User == 0 {
		return
	}

	msg := tgbotapi.NewMessage(tg.Config.Telegram.User, message)
	_, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message to user",
			"userID", tg.Config.Telegram.User,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to user",
		"userID", tg.Config.Telegram.User)
}

// SendMessageToDefaultChannel sends a text message to the configured channel
func (tg *TelegramImpl) SendMessageToDefaultChannel(msg string) {
	if tg.Config.Telegram.Channel == "" {
		tg.SendMessageToUser(msg)
		return
	}

	channelName := "@" + tg.Config.Telegram.Channel
	newMsg := tgbotapi.NewMessageToChannel(channelName, msg)

	_, err := tg.TgBot.Send(newMsg)
	if err != nil {
		tg.Logger.Error("Error sending message to channel",
			"channel", channelName,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to channel",
		"channel", channelName)
}

// SendMessage sends a message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Debug("Message sent",
		"chatID", chatID,
		"messageID", sentMsg.MessageID)
	return sentMsg.MessageID, nil
}

// EditMessageText replaces the text of a message sent earlier
func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message",
			"chatID", chatID,
			"messageID", messageID,
			"error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// GetUpdatesChan wraps the bot's GetUpdatesChan method
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}
