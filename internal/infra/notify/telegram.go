// internal/infra/notify/telegram.go
package notify

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v3"

	"rent_tracker/internal/domain/notify"
	"rent_tracker/internal/domain/reconcile"
)

// TelegramNotifier sends a short outcome summary to landlords who linked a
// Telegram chat. Tenants are never contacted on this channel.
type TelegramNotifier struct {
	bot *telebot.Bot
}

func NewTelegramNotifier(b *telebot.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: b}
}

func (t *TelegramNotifier) NotifyLandlord(_ context.Context, n notify.Notification) error {
	if !n.Landlord.TelegramChatID.Valid {
		return nil // no linked chat, nothing to deliver
	}

	var text string
	due := n.DueDate.Format("2006-01-02")
	switch n.Outcome {
	case reconcile.OutcomeRentReceived:
		text = fmt.Sprintf("✅ Rent received for %s: $%s (due %s)", n.Property.Address, n.Received.StringFixed(2), due)
	case reconcile.OutcomeAmountMismatch:
		text = fmt.Sprintf("⚠️ Rent amount mismatch for %s: got $%s, expected $%s (due %s)",
			n.Property.Address, n.Received.StringFixed(2), n.Expected.StringFixed(2), due)
	case reconcile.OutcomeRentMissed:
		text = fmt.Sprintf("❌ Rent missed for %s: $%s expected (due %s)", n.Property.Address, n.Expected.StringFixed(2), due)
	default:
		return nil
	}

	recipient := &telebot.User{ID: n.Landlord.TelegramChatID.Int64}
	_, err := t.bot.Send(recipient, text, &telebot.SendOptions{})
	return err
}

func (t *TelegramNotifier) NotifyTenant(context.Context, notify.Notification) error {
	return nil
}
