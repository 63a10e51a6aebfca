package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// editOrSend редактирует сообщение шага или шлёт новое, если id нет.
func (b *Bot) editOrSend(chatID int64, messageID *int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if messageID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *messageID, text, kb))
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// sessionOf выбор посетителя хранится в payload["session"]
func sessionOf(p dialog.Payload) booking.Session {
	var s booking.Session
	_ = dialog.Decode(p, "session", &s)
	return s
}

func (b *Bot) saveSession(ctx context.Context, chatID int64, state dialog.State, s booking.Session) {
	if err := b.states.Set(ctx, chatID, state, dialog.Payload{"session": s}); err != nil {
		b.log.Error("save dialog state failed", "chat_id", chatID, "state", state, "err", err)
	}
}

// formatMoney 50500, "INR" -> "₹50,500"
func formatMoney(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	symbol := currency + " "
	switch currency {
	case "", "INR":
		symbol = "₹"
	case "USD":
		symbol = "$"
	case "EUR":
		symbol = "€"
	}
	return sign + symbol + sb.String()
}

func roomLabel(single, double, twin int) string {
	parts := []string{}
	if double > 0 {
		parts = append(parts, fmt.Sprintf("%d double", double))
	}
	if twin > 0 {
		parts = append(parts, fmt.Sprintf("%d twin", twin))
	}
	if single > 0 {
		parts = append(parts, fmt.Sprintf("%d single", single))
	}
	if len(parts) == 0 {
		return "no rooms"
	}
	return strings.Join(parts, " + ")
}

func parseCallbackInt(data, prefix string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return 0, false
	}
	return v, true
}
