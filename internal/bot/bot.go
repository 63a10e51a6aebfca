package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/reports"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type StateStore interface {
	Get(ctx context.Context, chatID int64) (*dialog.Item, error)
	Set(ctx context.Context, chatID int64, state dialog.State, payload dialog.Payload) error
	Reset(ctx context.Context, chatID int64) error
}

type BookingFlow interface {
	Tour(ctx context.Context, id int64) (*tours.Tour, error)
	RoomRate() int64
	Quote(ctx context.Context, s booking.Session) (booking.Quote, error)
	Checkout(ctx context.Context, s booking.Session) (booking.Checkout, error)
	Status(ctx context.Context, reference string) (booking.Status, error)
}

type BookingLister interface {
	ListCreated(ctx context.Context, from, to time.Time) ([]bookings.Booking, error)
}

type Bot struct {
	tg        *tgbotapi.BotAPI
	api       sender
	log       *slog.Logger
	states    StateStore
	flow      BookingFlow
	tiers     reports.TierStore
	bookings  BookingLister
	tourID    int64
	adminChat int64
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	statesRepo StateStore, flow BookingFlow,
	tierStore reports.TierStore, bookingList BookingLister,
	tourID, adminChatID int64) *Bot {

	return &Bot{
		tg: api, api: api, log: log, states: statesRepo,
		flow: flow, tiers: tierStore, bookings: bookingList,
		tourID: tourID, adminChat: adminChatID,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.tg.GetUpdatesChan(u)
	defer b.tg.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

func (b *Bot) isAdmin(chatID int64) bool {
	return b.adminChat != 0 && chatID == b.adminChat
}
