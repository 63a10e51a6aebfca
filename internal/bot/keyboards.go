package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/booking"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// datesKeyboard только выезды, на которые ещё можно записаться
func datesKeyboard(t *tours.Tour) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, d := range t.Departures {
		if d.SoldOut() {
			continue
		}
		label := d.Date.Format("02 Jan 2006")
		if d.Status == tours.StatusFillingFast {
			label += " 🔥"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "date:"+d.DateString()),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// countKeyboard кнопки from..to с префиксом callback-данных
func countKeyboard(prefix string, from, to int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for n := from; n <= to; n++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(n), fmt.Sprintf("%s:%d", prefix, n)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func roomsKeyboard(q booking.Quote, currency string) tgbotapi.InlineKeyboardMarkup {
	recommended := map[string]bool{}
	for _, id := range q.Recommended {
		recommended[id] = true
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, c := range q.RoomOptions {
		label := fmt.Sprintf("%s · +%s", roomLabel(c.Single, c.Double, c.Twin), formatMoney(c.PriceDifference, currency))
		if recommended[c.ID] {
			label = "⭐ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "room:"+c.ID),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func addonsKeyboard(addons []pricing.Addon, s booking.Session, currency string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, a := range addons {
		mark := "⬜️"
		if s.HasAddon(a.ID) {
			mark = "✅"
		}
		label := fmt.Sprintf("%s %s · %s", mark, a.Name, formatMoney(int64(a.Price), currency))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "addon:"+a.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Continue ➡️", "addons:done"),
	))
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Pay and book", "book:pay"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func payKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open payment page", url),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Check status", "book:status"),
		),
	)
}
