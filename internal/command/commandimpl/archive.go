package commandimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-archiver/internal/archiver/archiverimpl"
	"github.com/orgball2608/insta-archiver/pkg/errors"
)

func (c *CommandImpl) handleArchive(ctx context.Context, chatID int64) error {
	sentMsgID, err := c.Telegram.SendMessage(chatID, "Archiving new posts... ⏳")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	summary, err := c.Archiver.Run(ctx)
	if err != nil {
		text := failureText("Archive run", err)
		if summary != nil {
			text += "\n\n" + archiverimpl.FormatSummary(summary)
		}
		return c.Telegram.EditMessageText(chatID, sentMsgID, text)
	}

	return c.Telegram.EditMessageText(chatID, sentMsgID, archiverimpl.FormatSummary(summary))
}

func (c *CommandImpl) handleVerify(ctx context.Context, chatID int64) error {
	sentMsgID, err := c.Telegram.SendMessage(chatID, "Verifying archived media... ⏳")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	report, err := c.Archiver.Verify(ctx)
	if err != nil {
		return c.Telegram.EditMessageText(chatID, sentMsgID, failureText("Verification", err))
	}

	return c.Telegram.EditMessageText(chatID, sentMsgID, archiverimpl.FormatVerifyReport(report))
}

func (c *CommandImpl) handleStatus(ctx context.Context, chatID int64) error {
	summary, err := c.Archiver.LastRun(ctx)
	switch {
	case errors.IsNotFound(err):
		_, err = c.Telegram.SendMessage(chatID, "No archive run recorded yet.")
		return err
	case err != nil:
		_, sendErr := c.Telegram.SendMessage(chatID, failureText("Status", err))
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, archiverimpl.FormatSummary(summary))
	return err
}

func failureText(what string, err error) string {
	if errors.IsRunInProgress(err) {
		return "⏳ An archive run is already in progress, try again later."
	}
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("❌ %s failed [%s]: %v", what, code, err)
	}
	return fmt.Sprintf("❌ %s failed: %v", what, err)
}
