package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
)

const maxAdults = 10

// startBooking первый шаг: выбор даты выезда.
func (b *Bot) startBooking(ctx context.Context, chatID int64) {
	t, err := b.flow.Tour(ctx, b.tourID)
	if err != nil {
		b.log.Error("load tour failed", "tour_id", b.tourID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Sorry, the tour is not available right now."))
		return
	}

	open := 0
	for _, d := range t.Departures {
		if !d.SoldOut() {
			open++
		}
	}
	if open == 0 {
		b.send(tgbotapi.NewMessage(chatID, "All departures of "+t.Name+" are sold out."))
		return
	}

	b.saveSession(ctx, chatID, dialog.StateBookDate, booking.Session{TourID: t.ID})
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n\nChoose a departure date:", t.Name))
	m.ReplyMarkup = datesKeyboard(t)
	b.send(m)
}

func (b *Bot) showDates(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	t, err := b.flow.Tour(ctx, s.TourID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Sorry, the tour is not available right now."))
		return
	}
	b.saveSession(ctx, chatID, dialog.StateBookDate, s)
	b.editOrSend(chatID, mid, fmt.Sprintf("%s\n\nChoose a departure date:", t.Name), datesKeyboard(t))
}

func (b *Bot) showAdults(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookAdults, s)
	b.editOrSend(chatID, mid, "How many adults are travelling?", countKeyboard("adults", 1, maxAdults))
}

func (b *Bot) showChildBed(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookChildBed, s)
	b.editOrSend(chatID, mid, "How many children need their own bed?", countKeyboard("cwb", 0, 6))
}

func (b *Bot) showChildNoBed(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookChildNoBed, s)
	b.editOrSend(chatID, mid, "How many children will share a bed (no extra bed)?", countKeyboard("cwob", 0, 6))
}

func (b *Bot) showRooms(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	t, q, ok := b.quote(ctx, chatID, s)
	if !ok {
		return
	}
	b.saveSession(ctx, chatID, dialog.StateBookRoom, q.Session)
	text := fmt.Sprintf("Choose rooms for %d guests (⭐ best value):", s.BedsNeeded())
	b.editOrSend(chatID, mid, text, roomsKeyboard(q, t.Currency))
}

func (b *Bot) showAddons(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	t, q, ok := b.quote(ctx, chatID, s)
	if !ok {
		return
	}
	if len(q.Addons) == 0 {
		b.askName(ctx, chatID, mid, q.Session)
		return
	}
	b.saveSession(ctx, chatID, dialog.StateBookAddons, q.Session)
	b.editOrSend(chatID, mid, "Add extras to your trip:", addonsKeyboard(q.Addons, q.Session, t.Currency))
}

func (b *Bot) askName(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookName, s)
	b.editOrSend(chatID, mid, "Please send the lead traveller's full name.", navKeyboard(true, true))
}

func (b *Bot) askEmail(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookEmail, s)
	b.editOrSend(chatID, mid, "Please send your email address.", navKeyboard(true, true))
}

func (b *Bot) askPhone(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	b.saveSession(ctx, chatID, dialog.StateBookPhone, s)
	b.editOrSend(chatID, mid, "Please send a phone number we can reach you on.", navKeyboard(true, true))
}

func (b *Bot) showSummary(ctx context.Context, chatID int64, mid *int, s booking.Session) {
	t, q, ok := b.quote(ctx, chatID, s)
	if !ok {
		return
	}
	b.saveSession(ctx, chatID, dialog.StateBookConfirm, q.Session)
	b.editOrSend(chatID, mid, summaryText(t, q), confirmKeyboard())
}

// quote пересчёт под текущий выбор; ошибки показываем пользователю.
func (b *Bot) quote(ctx context.Context, chatID int64, s booking.Session) (*tours.Tour, booking.Quote, bool) {
	t, err := b.flow.Tour(ctx, s.TourID)
	if err != nil {
		b.log.Error("load tour failed", "tour_id", s.TourID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Sorry, the tour is not available right now."))
		return nil, booking.Quote{}, false
	}
	q, err := b.flow.Quote(ctx, s)
	if err != nil {
		b.log.Error("quote failed", "tour_id", s.TourID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not calculate the price, please try again."))
		return nil, booking.Quote{}, false
	}
	return t, q, true
}

func (b *Bot) pay(ctx context.Context, chatID int64, mid int, s booking.Session) {
	co, err := b.flow.Checkout(ctx, s)
	var verrs booking.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		lines := make([]string, 0, len(verrs))
		for _, e := range verrs {
			lines = append(lines, "• "+e.Message)
		}
		b.send(tgbotapi.NewMessage(chatID, "Please fix the following and try again:\n"+strings.Join(lines, "\n")))
		return
	default:
		b.log.Error("checkout failed", "chat_id", chatID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not start the payment, please try again in a few minutes."))
		return
	}

	if err := b.states.Set(ctx, chatID, dialog.StateBookAwaitPayment,
		dialog.Payload{"session": s, "reference": co.Reference}); err != nil {
		b.log.Error("save dialog state failed", "chat_id", chatID, "err", err)
	}

	text := fmt.Sprintf("Booking reference: %s\nAmount due: %s",
		co.Reference, formatMoney(co.Breakdown.TotalPrice, co.Order.Currency))
	if co.Order.CheckoutURL == "" {
		b.editTextAndClear(chatID, mid, text+"\n\nComplete the payment on our website using this reference.")
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, mid, text, payKeyboard(co.Order.CheckoutURL)))
}

func (b *Bot) showStatus(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st == nil {
		b.send(tgbotapi.NewMessage(chatID, "No booking in progress. Send /book to start."))
		return
	}
	ref, ok := dialog.GetString(st.Payload, "reference")
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, "No booking in progress. Send /book to start."))
		return
	}

	status, err := b.flow.Status(ctx, ref)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrNotFound):
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Booking %s was not found. Send /book to start again.", ref)))
		return
	default:
		b.log.Error("booking status failed", "reference", ref, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not check the booking, please try again."))
		return
	}

	switch status.Draft {
	case bookings.DraftBooked:
		_ = b.states.Reset(ctx, chatID)
		bk := status.Booking
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"✅ Booking %s is confirmed for %s. Total paid: %s.",
			bk.Reference, bk.Payload.DepartureDate, formatMoney(bk.Payload.TotalPrice, ""))))
	case bookings.DraftNeedsSupport:
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Your payment was received but we could not confirm the booking. Please contact support with reference %s.", ref)))
	case bookings.DraftFailed:
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"The payment for %s could not be started. Send /book to try again.", ref)))
	default:
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"We have not received the payment for %s yet. If you were charged, contact support with this reference.", ref)))
	}
}

func summaryText(t *tours.Tour, q booking.Quote) string {
	s := q.Session
	br := q.Breakdown
	cur := t.Currency

	date := s.DepartureDate
	if d, ok := t.Departure(s.DepartureDate); ok {
		date = d.Date.Format("02 Jan 2006")
	}
	rooms := "not selected"
	if s.Room != nil {
		rooms = roomLabel(s.Room.Single, s.Room.Double, s.Room.Twin)
	}
	addons := []string{}
	for _, a := range q.Addons {
		if s.HasAddon(a.ID) {
			addons = append(addons, a.Name)
		}
	}
	if len(addons) == 0 {
		addons = append(addons, "none")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", t.Name)
	fmt.Fprintf(&sb, "Date: %s\n", date)
	fmt.Fprintf(&sb, "Travellers: %d adults, %d children with bed, %d without bed\n",
		s.Adults, s.ChildrenWithBed, s.ChildrenWithoutBed)
	fmt.Fprintf(&sb, "Rooms: %s\n", rooms)
	fmt.Fprintf(&sb, "Add-ons: %s\n", strings.Join(addons, ", "))
	fmt.Fprintf(&sb, "Lead traveller: %s, %s, %s\n\n", s.Customer.Name, s.Customer.Email, s.Customer.Phone)
	fmt.Fprintf(&sb, "Base: %s\n", formatMoney(br.BasePrice, cur))
	if br.ChildrenPrice > 0 {
		fmt.Fprintf(&sb, "Children: %s\n", formatMoney(br.ChildrenPrice, cur))
	}
	fmt.Fprintf(&sb, "Rooms: %s\n", formatMoney(br.RoomPrice, cur))
	if br.AddonsPrice > 0 {
		fmt.Fprintf(&sb, "Add-ons: %s\n", formatMoney(br.AddonsPrice, cur))
	}
	fmt.Fprintf(&sb, "Total: %s", formatMoney(br.TotalPrice, cur))
	return sb.String()
}
