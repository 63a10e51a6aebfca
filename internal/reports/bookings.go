package reports

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
)

// ExportBookings выгрузка броней для операционного отдела.
func ExportBookings(list []bookings.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"reference",
		"created_at",
		"tour_id",
		"departure_date",
		"adults",
		"children_with_bed",
		"children_without_bed",
		"rooms",
		"addons",
		"base_price",
		"children_price",
		"room_price",
		"addons_price",
		"total_price",
		"customer_name",
		"customer_email",
		"customer_phone",
		"payment_provider",
		"payment_id",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	row := 2
	for _, b := range list {
		p := b.Payload
		roomsCell := ""
		if p.RoomConfiguration != nil {
			roomsCell = p.RoomConfiguration.String()
		}
		excelRow := []interface{}{
			b.Reference,
			b.CreatedAt.Format("2006-01-02 15:04"),
			p.TourID,
			p.DepartureDate,
			p.Adults,
			p.ChildrenWithBed,
			p.ChildrenWithoutBed,
			roomsCell,
			strings.Join(p.Addons, ", "),
			p.BasePrice,
			p.ChildrenPrice,
			p.RoomPrice,
			p.AddonsPrice,
			p.TotalPrice,
			p.Customer.Name,
			p.Customer.Email,
			p.Customer.Phone,
			b.PaymentProvider,
			b.PaymentID,
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
