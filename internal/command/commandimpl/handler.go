package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `👋 Instagram archive bot

/archive - Archive new posts now.
/verify - Check that every archived media file is present.
/status - Show the result of the last archive run.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil || !u.Message.IsCommand() {
					return
				}

				c.Logger.Info("Command received", "from", u.Message.From.UserName, "text", u.Message.Text)

				if err := c.processCommand(ctx, u); err != nil {
					c.Logger.Error("Error processing command",
						"command", u.Message.Command(),
						"error", err)
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	if !c.isOwner(update.Message.From) {
		_, err := c.Telegram.SendMessage(chatID, "This bot only answers its owner.")
		return err
	}

	if !c.Limiter.Allow(strconv.FormatInt(chatID, 10)) {
		_, err := c.Telegram.SendMessage(chatID, "Too many commands, please wait a moment.")
		return err
	}

	switch update.Message.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "archive":
		return c.handleArchive(ctx, chatID)
	case "verify":
		return c.handleVerify(ctx, chatID)
	case "status":
		return c.handleStatus(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see the list of available commands.")
		return err
	}
}

func (c *CommandImpl) isOwner(from *tgbotapi.User) bool {
	return from != nil && c.Config.Telegram.User != 0 && from.ID == c.Config.Telegram.User
}
