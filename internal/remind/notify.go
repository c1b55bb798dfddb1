// Package remind nudges the user when the day's first sip hasn't been
// logged yet.
package remind

import (
	"context"
	"fmt"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// WriterNotifier prints reminders to a writer, usually stdout.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, text string) error {
	_, err := fmt.Fprintln(n.W, text)
	return err
}

// botSender is the part of tgbotapi.BotAPI the notifier needs.
type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends reminders to a single Telegram chat.
type TelegramNotifier struct {
	bot    botSender
	chatID int64
}

// NewTelegramNotifier connects to the Bot API with token. It fails fast
// when the token is rejected.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram reminder: %w", err)
	}
	return nil
}
