// Package notify sends alerts for risky scan results in watch mode.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/addrsentry/addrsentry/internal/classify"
	"github.com/addrsentry/addrsentry/internal/model"
	"github.com/addrsentry/addrsentry/internal/render"
)

// Notifier delivers one alert message.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// AlertText builds the alert message for an assessment that crossed the
// alert line (high band or sanctioned).
func AlertText(a *model.RiskAssessment) string {
	level := classify.Classify(a.RiskScore)
	text := fmt.Sprintf("⚠️ %s scored %.0f/100 (%s)", render.TruncateAddress(a.Address), a.RiskScore, level)
	if a.IsSanctioned {
		text += "\n🚫 Address is on a sanctions list"
	}
	if len(a.Flags) > 0 {
		text += fmt.Sprintf("\nFlags: %v", a.Flags)
	}
	return text
}

// ShouldAlert reports whether an assessment is alert-worthy.
func ShouldAlert(a *model.RiskAssessment) bool {
	return a.IsSanctioned || classify.Classify(a.RiskScore) == classify.High
}

// TelegramNotifier sends alerts to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier initializes the bot API with the given token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	n.logger.Debug().Int64("chat_id", n.chatID).Msg("alert sent")
	return nil
}
