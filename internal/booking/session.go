package booking

import (
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
)

// Session текущий выбор посетителя. Значение: каждый With*/Select* возвращает новую копию,
// изменяет её только владелец (HTTP-хендлер или диалог бота).
type Session struct {
	TourID             int64                `json:"tourId"`
	DepartureDate      string               `json:"departureDate"`
	Adults             int                  `json:"adults"`
	ChildrenWithBed    int                  `json:"childrenWithBed"`
	ChildrenWithoutBed int                  `json:"childrenWithoutBed"`
	Room               *rooms.Configuration `json:"roomConfiguration,omitempty"`
	Addons             []string             `json:"addons,omitempty"`
	Customer           bookings.Customer    `json:"customer"`
	Provider           string               `json:"provider,omitempty"`
}

// BedsNeeded взрослые + дети с местом
func (s Session) BedsNeeded() int { return rooms.BedsNeeded(s.Adults, s.ChildrenWithBed) }

func (s Session) Travelers() int { return s.Adults + s.ChildrenWithBed + s.ChildrenWithoutBed }

// WithDate смена даты сбрасывает выбранный номер.
func (s Session) WithDate(date string) Session {
	if s.DepartureDate != date {
		s.Room = nil
	}
	s.DepartureDate = date
	return s
}

func (s Session) WithAdults(n int) Session {
	if n < 0 {
		n = 0
	}
	if s.Adults != n {
		s.Room = nil
	}
	s.Adults = n
	return s
}

func (s Session) WithChildrenWithBed(n int) Session {
	if n < 0 {
		n = 0
	}
	if s.ChildrenWithBed != n {
		s.Room = nil
	}
	s.ChildrenWithBed = n
	return s
}

func (s Session) WithChildrenWithoutBed(n int) Session {
	if n < 0 {
		n = 0
	}
	if s.ChildrenWithoutBed != n {
		s.Room = nil
	}
	s.ChildrenWithoutBed = n
	return s
}

// SelectRoom сохраняет копию конфигурации; соответствие числу мест проверяет Validate.
func (s Session) SelectRoom(c rooms.Configuration) Session {
	s.Room = &c
	return s
}

func (s Session) ClearRoom() Session {
	s.Room = nil
	return s
}

// ToggleAddon добавляет id, если его нет, иначе убирает.
func (s Session) ToggleAddon(id string) Session {
	out := make([]string, 0, len(s.Addons)+1)
	found := false
	for _, a := range s.Addons {
		if a == id {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		out = append(out, id)
	}
	s.Addons = out
	return s
}

func (s Session) HasAddon(id string) bool {
	for _, a := range s.Addons {
		if a == id {
			return true
		}
	}
	return false
}

func (s Session) WithCustomer(c bookings.Customer) Session {
	s.Customer = c
	return s
}

// RoomOptions все варианты размещения для текущего числа мест.
func (s Session) RoomOptions(rate int64) []rooms.Configuration {
	return rooms.GenerateWithRate(s.BedsNeeded(), rate)
}

// Breakdown пересчитывается целиком на каждый вызов.
func (s Session) Breakdown(ctx pricing.Context) pricing.Breakdown {
	var roomPrice *int64
	if s.Room != nil {
		p := s.Room.PriceDifference
		roomPrice = &p
	}
	return pricing.ComputeBreakdown(ctx.Input(s.Adults, s.ChildrenWithBed, s.ChildrenWithoutBed, roomPrice, s.Addons))
}

// Payload тело заявки на бронирование.
func (s Session) Payload(b pricing.Breakdown) bookings.Payload {
	addons := append([]string{}, s.Addons...)
	var room *rooms.Configuration
	if s.Room != nil {
		c := *s.Room
		room = &c
	}
	return bookings.Payload{
		TourID:             s.TourID,
		DepartureDate:      s.DepartureDate,
		Adults:             s.Adults,
		ChildrenWithBed:    s.ChildrenWithBed,
		ChildrenWithoutBed: s.ChildrenWithoutBed,
		RoomConfiguration:  room,
		Addons:             addons,
		Breakdown:          b,
		Customer:           s.Customer,
	}
}
