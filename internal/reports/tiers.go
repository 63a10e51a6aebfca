package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
)

type TierStore interface {
	Get(ctx context.Context, id int64) (*tours.Tour, error)
	ListTiers(ctx context.Context, tourID int64) ([]tours.TierRow, error)
	UpsertTier(ctx context.Context, t tours.TierRow) (int64, error)
	UpdateTierPrice(ctx context.Context, tourID, id int64, price float64) error
	DeleteTier(ctx context.Context, tourID, id int64) error
}

var tierHeader = []interface{}{
	"id",
	"departure_date",
	"pax",
	"price_per_person",
}

// RowError ошибка в конкретной строке файла (нумерация как в Excel).
type RowError struct {
	Row int
	Msg string
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Msg) }

type ImportResult struct {
	Rows    int `json:"rows"`
	Updated int `json:"updated"`
	Created int `json:"created"`
	Deleted int `json:"deleted"`
}

// ExportTiers выгружает ступени тура; departure_date пустая у общих ступеней.
func ExportTiers(ctx context.Context, store TierStore, tourID int64) ([]byte, error) {
	tiers, err := store.ListTiers(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &tierHeader); err != nil {
		return nil, err
	}

	row := 2
	for _, t := range tiers {
		excelRow := []interface{}{
			t.ID,
			t.DepartureDate,
			t.Pax,
			t.PricePerPerson,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportTiers применяет отредактированный файл:
//   - есть id, пустая цена: ступень не меняем;
//   - есть id, цена "-": удаляем ступень;
//   - есть id и цена: обновляем цену;
//   - нет id: новая ступень (pax и цена обязательны).
//
// Первая ошибка прерывает импорт; уже применённые строки остаются.
func ImportTiers(ctx context.Context, store TierStore, tourID int64, data []byte) (ImportResult, error) {
	var res ImportResult

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return res, fmt.Errorf("read xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, err
	}
	if len(rows) < 2 {
		return res, &RowError{Row: 1, Msg: "no tier rows"}
	}
	if len(rows[0]) < len(tierHeader) {
		return res, &RowError{Row: 1, Msg: "expected columns id, departure_date, pax, price_per_person"}
	}

	var tour *tours.Tour
	for i := 1; i < len(rows); i++ {
		row := append(rows[i], make([]string, len(tierHeader))...)
		idStr := strings.TrimSpace(row[0])
		dateStr := strings.TrimSpace(row[1])
		paxStr := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])

		if idStr == "" && paxStr == "" && priceStr == "" {
			continue
		}
		res.Rows++

		if idStr != "" {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return res, &RowError{Row: i + 1, Msg: fmt.Sprintf("invalid id %q", idStr)}
			}
			switch priceStr {
			case "":
				continue
			case "-":
				if err := store.DeleteTier(ctx, tourID, id); err != nil {
					if errors.Is(err, tours.ErrNotFound) {
						return res, &RowError{Row: i + 1, Msg: fmt.Sprintf("tier %d does not belong to this tour", id)}
					}
					return res, fmt.Errorf("row %d: delete tier %d: %w", i+1, id, err)
				}
				res.Deleted++
				continue
			}
			price, err := parsePrice(priceStr)
			if err != nil {
				return res, &RowError{Row: i + 1, Msg: err.Error()}
			}
			if err := store.UpdateTierPrice(ctx, tourID, id, price); err != nil {
				if errors.Is(err, tours.ErrNotFound) {
					return res, &RowError{Row: i + 1, Msg: fmt.Sprintf("tier %d does not belong to this tour", id)}
				}
				return res, fmt.Errorf("row %d: update tier %d: %w", i+1, id, err)
			}
			res.Updated++
			continue
		}

		pax, err := strconv.Atoi(paxStr)
		if err != nil || pax <= 0 {
			return res, &RowError{Row: i + 1, Msg: fmt.Sprintf("invalid pax %q", paxStr)}
		}
		price, err := parsePrice(priceStr)
		if err != nil {
			return res, &RowError{Row: i + 1, Msg: err.Error()}
		}

		t := tours.TierRow{TourID: tourID, Pax: pax, PricePerPerson: price}
		if dateStr != "" {
			if tour == nil {
				if tour, err = store.Get(ctx, tourID); err != nil {
					return res, fmt.Errorf("load tour: %w", err)
				}
			}
			d, ok := tour.Departure(dateStr)
			if !ok {
				return res, &RowError{Row: i + 1, Msg: fmt.Sprintf("unknown departure date %q", dateStr)}
			}
			depID := d.ID
			t.DepartureID = &depID
		}
		if _, err := store.UpsertTier(ctx, t); err != nil {
			return res, fmt.Errorf("row %d: upsert tier: %w", i+1, err)
		}
		res.Created++
	}
	return res, nil
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid price_per_person %q, use a non-negative number", s)
	}
	return v, nil
}
