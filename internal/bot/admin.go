package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/dialog"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/reports"
)

// exportTiers выгружает ступени цен тура в Excel.
func (b *Bot) exportTiers(ctx context.Context, chatID int64) {
	data, err := reports.ExportTiers(ctx, b.tiers, b.tourID)
	if err != nil {
		b.log.Error("export tiers failed", "tour_id", b.tourID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the tiers file."))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("tiers_%d_%s.xlsx", b.tourID, time.Now().Format("20060102_150405")),
		Bytes: data,
	})
	doc.Caption = "Pricing tiers. Edit price_per_person (blank keeps the price, \"-\" deletes the tier), " +
		"add rows without id for new tiers, then send the file back after /tiers_import."
	b.send(doc)
}

// importTiers читает присланный Excel и применяет изменения ступеней.
func (b *Bot) importTiers(ctx context.Context, chatID int64, fileID string) {
	data, err := b.downloadTelegramFile(fileID)
	if err != nil {
		b.log.Error("download tiers file failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not download the file."))
		return
	}

	res, err := reports.ImportTiers(ctx, b.tiers, b.tourID, data)
	var rerr *reports.RowError
	switch {
	case errors.As(err, &rerr):
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Import stopped at %s.\nApplied before the error: %d updated, %d created, %d deleted.",
			rerr.Error(), res.Updated, res.Created, res.Deleted)))
		return
	case err != nil:
		b.log.Error("import tiers failed", "tour_id", b.tourID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not read the file (damaged or not .xlsx)."))
		return
	}

	_ = b.states.Set(ctx, chatID, dialog.StateIdle, dialog.Payload{})
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Tiers updated.\nRows processed: %d\nUpdated: %d\nCreated: %d\nDeleted: %d",
		res.Rows, res.Updated, res.Created, res.Deleted)))
}

// exportBookings брони за последние 30 дней.
func (b *Bot) exportBookings(ctx context.Context, chatID int64) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	list, err := b.bookings.ListCreated(ctx, from, to)
	if err != nil {
		b.log.Error("list bookings failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not load bookings."))
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No bookings in the last 30 days."))
		return
	}

	data, err := reports.ExportBookings(list)
	if err != nil {
		b.log.Error("export bookings failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Could not build the bookings file."))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("bookings_%s.xlsx", to.Format("20060102")),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("%d bookings since %s.", len(list), from.Format("02 Jan 2006"))
	b.send(doc)
}
