// Package notify announces live slots and results to a Telegram chat.
package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fishing-clash/internal/match"
)

var ErrNoChat = errors.New("chat ID not set")

type Notifier interface {
	Send(text string) error
}

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	slog.Info("Authorized on account", "username", bot.Self.UserName)
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Send(text string) error {
	if t.chatID == 0 {
		return ErrNoChat
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.bot.Send(msg)
	return err
}

// Nop drops every message.
type Nop struct{}

func (Nop) Send(string) error { return nil }

// New returns a Telegram notifier, or Nop when token is empty.
func New(token string, chatID int64) (Notifier, error) {
	if token == "" {
		return Nop{}, nil
	}
	return NewTelegram(token, chatID)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// SlotMessage announces a live match about to start.
func SlotMessage(slot time.Time, venue match.Venue, entrants []match.Entrant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Live match %s*\n", slot.UTC().Format("15:04 MST"))
	fmt.Fprintf(&b, "Venue: %s (with %s)\n", escape(venue.Dominant), escape(venue.Secondary))
	names := make([]string, len(entrants))
	for i, e := range entrants {
		names[i] = escape(e.Name)
	}
	fmt.Fprintf(&b, "Anglers: %s", strings.Join(names, ", "))
	return b.String()
}

// ResultMessage reports how one angler finished a live match.
func ResultMessage(r match.Result) string {
	var b strings.Builder
	name := r.PlayerID
	for _, p := range r.Standings {
		if p.ID == r.PlayerID {
			name = p.Name
			break
		}
	}
	fmt.Fprintf(&b, "*%s* finished %s of %d at %s with %.2fkg", escape(name), ordinal(r.Rank), len(r.Standings), escape(r.Venue.Dominant), r.PlayerWeight)
	if r.Reward > 0 {
		fmt.Fprintf(&b, " (+%d coins)", r.Reward)
	}
	if r.Aborted {
		b.WriteString(", match stopped early")
	}
	return b.String()
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Announce sends text and logs a failure instead of returning it.
func Announce(n Notifier, text string) {
	if err := n.Send(text); err != nil {
		slog.Error("Error sending announcement", "error", err)
	}
}
