// Package notify posts booking events to an operations Telegram chat. It is
// fire-and-forget: delivery failures are logged, never surfaced to the
// request that triggered them.
package notify

import (
	"fmt"

	"skillswap/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier implements booking.Notifier over the Telegram Bot API.
// A nil receiver is a valid no-op notifier, so callers don't need to guard
// for the unconfigured case.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier authorizes the bot. Returns (nil, nil) when token or
// chat ID are unset, which disables notifications.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	bot.Debug = false
	logger.Info("telegram notifier authorized", zap.String("account", bot.Self.UserName))
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) SessionRequested(req *models.SessionRequest) {
	n.send(fmt.Sprintf("New session request #%d: %q for slot %d (guest %s → mentor %s)",
		req.ID, req.Title, req.AvailabilityID, req.GuestID, req.MentorID))
}

func (n *TelegramNotifier) SessionAccepted(req *models.SessionRequest) {
	n.send(fmt.Sprintf("Session request #%d accepted, slot %d booked (mentor %s)",
		req.ID, req.AvailabilityID, req.MentorID))
}

func (n *TelegramNotifier) SessionCancelled(req *models.SessionRequest) {
	n.send(fmt.Sprintf("Session request #%d cancelled", req.ID))
}

func (n *TelegramNotifier) send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn("failed to send telegram notification", zap.Error(err))
	}
}
