package bot

import (
	"context"
	"net/mail"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.send(tgbotapi.NewMessage(chatID,
			"Hi! I can book your seat on our tour.\n/book to start a booking\n/status to check your payment\n/cancel to stop"))
	case "book":
		b.startBooking(ctx, chatID)
	case "status":
		b.showStatus(ctx, chatID)
	case "cancel":
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Booking cancelled."))

	case "tiers":
		if b.isAdmin(chatID) {
			b.exportTiers(ctx, chatID)
		}
	case "tiers_import":
		if b.isAdmin(chatID) {
			_ = b.states.Set(ctx, chatID, dialog.StateAdmTiersImport, dialog.Payload{})
			b.send(tgbotapi.NewMessage(chatID, "Send the edited tiers .xlsx file."))
		}
	case "bookings":
		if b.isAdmin(chatID) {
			b.exportBookings(ctx, chatID)
		}
	default:
		b.send(tgbotapi.NewMessage(chatID, "Unknown command. Send /book to start a booking."))
	}
}

// handleStateMessage текстовые шаги диалога: контакты и загрузка файла админом.
func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st == nil {
		b.send(tgbotapi.NewMessage(chatID, "Send /book to start a booking."))
		return
	}
	s := sessionOf(st.Payload)
	text := strings.TrimSpace(msg.Text)

	switch st.State {
	case dialog.StateBookName:
		if len([]rune(text)) < 2 {
			b.send(tgbotapi.NewMessage(chatID, "Please send the full name as text."))
			return
		}
		c := s.Customer
		c.Name = text
		b.askEmail(ctx, chatID, nil, s.WithCustomer(c))

	case dialog.StateBookEmail:
		addr, err := mail.ParseAddress(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "That does not look like an email address, please try again."))
			return
		}
		c := s.Customer
		c.Email = addr.Address
		b.askPhone(ctx, chatID, nil, s.WithCustomer(c))

	case dialog.StateBookPhone:
		digits := 0
		for _, r := range text {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 7 {
			b.send(tgbotapi.NewMessage(chatID, "Please send a valid phone number."))
			return
		}
		c := s.Customer
		c.Phone = text
		b.showSummary(ctx, chatID, nil, s.WithCustomer(c))

	case dialog.StateAdmTiersImport:
		if !b.isAdmin(chatID) {
			return
		}
		if msg.Document == nil {
			b.send(tgbotapi.NewMessage(chatID, "Send the file as a document (.xlsx)."))
			return
		}
		b.importTiers(ctx, chatID, msg.Document.FileID)

	default:
		b.send(tgbotapi.NewMessage(chatID, "Send /book to start a booking."))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	fromChat := cb.Message.Chat.ID
	mid := cb.Message.MessageID

	// Общая навигация
	if data == "nav:cancel" {
		_ = b.states.Reset(ctx, fromChat)
		b.editTextAndClear(fromChat, mid, "Booking cancelled.")
		_ = b.answerCallback(cb, "Cancelled", false)
		return
	}

	st, err := b.states.Get(ctx, fromChat)
	if err != nil || st == nil {
		_ = b.answerCallback(cb, "Session expired, send /book", true)
		return
	}
	s := sessionOf(st.Payload)

	if data == "nav:back" {
		b.back(ctx, fromChat, mid, st)
		_ = b.answerCallback(cb, "", false)
		return
	}

	switch {
	case strings.HasPrefix(data, "date:") && st.State == dialog.StateBookDate:
		b.showAdults(ctx, fromChat, &mid, s.WithDate(strings.TrimPrefix(data, "date:")))

	case strings.HasPrefix(data, "adults:") && st.State == dialog.StateBookAdults:
		n, ok := parseCallbackInt(data, "adults:")
		if !ok || n < 1 {
			break
		}
		b.showChildBed(ctx, fromChat, &mid, s.WithAdults(n))

	case strings.HasPrefix(data, "cwb:") && st.State == dialog.StateBookChildBed:
		n, ok := parseCallbackInt(data, "cwb:")
		if !ok {
			break
		}
		b.showChildNoBed(ctx, fromChat, &mid, s.WithChildrenWithBed(n))

	case strings.HasPrefix(data, "cwob:") && st.State == dialog.StateBookChildNoBed:
		n, ok := parseCallbackInt(data, "cwob:")
		if !ok {
			break
		}
		b.showRooms(ctx, fromChat, &mid, s.WithChildrenWithoutBed(n))

	case strings.HasPrefix(data, "room:") && st.State == dialog.StateBookRoom:
		// номер берём из генератора, а не из callback: так он всегда под текущее число мест
		c, ok := rooms.Find(s.BedsNeeded(), b.flow.RoomRate(), strings.TrimPrefix(data, "room:"))
		if !ok {
			_ = b.answerCallback(cb, "Please choose again", true)
			b.showRooms(ctx, fromChat, &mid, s.ClearRoom())
			return
		}
		b.showAddons(ctx, fromChat, &mid, s.SelectRoom(c))

	case strings.HasPrefix(data, "addon:") && st.State == dialog.StateBookAddons:
		b.showAddons(ctx, fromChat, &mid, s.ToggleAddon(strings.TrimPrefix(data, "addon:")))

	case data == "addons:done" && st.State == dialog.StateBookAddons:
		b.askName(ctx, fromChat, &mid, s)

	case data == "book:pay" && st.State == dialog.StateBookConfirm:
		b.pay(ctx, fromChat, mid, s)

	case data == "book:status":
		b.showStatus(ctx, fromChat)

	default:
		_ = b.answerCallback(cb, "This button is no longer active", false)
		return
	}
	_ = b.answerCallback(cb, "", false)
}

// back шаг назад по цепочке диалога.
func (b *Bot) back(ctx context.Context, chatID int64, mid int, st *dialog.Item) {
	s := sessionOf(st.Payload)
	switch st.State {
	case dialog.StateBookAdults:
		b.showDates(ctx, chatID, &mid, s)
	case dialog.StateBookChildBed:
		b.showAdults(ctx, chatID, &mid, s)
	case dialog.StateBookChildNoBed:
		b.showChildBed(ctx, chatID, &mid, s)
	case dialog.StateBookRoom:
		b.showChildNoBed(ctx, chatID, &mid, s)
	case dialog.StateBookAddons:
		b.showRooms(ctx, chatID, &mid, s)
	case dialog.StateBookName:
		_, q, ok := b.quote(ctx, chatID, s)
		if !ok {
			return
		}
		if len(q.Addons) == 0 {
			b.showRooms(ctx, chatID, &mid, s)
			return
		}
		b.showAddons(ctx, chatID, &mid, s)
	case dialog.StateBookEmail:
		b.askName(ctx, chatID, &mid, s)
	case dialog.StateBookPhone:
		b.askEmail(ctx, chatID, &mid, s)
	case dialog.StateBookConfirm:
		b.askPhone(ctx, chatID, &mid, s)
	default:
		b.editTextAndClear(chatID, mid, "Send /book to start a booking.")
	}
}
