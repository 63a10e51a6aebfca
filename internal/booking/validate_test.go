package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/bookings"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/rooms"
	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/tours"
)

func testTour() *tours.Tour {
	return &tours.Tour{
		ID:                   7,
		Name:                 "Spiti Valley Circuit",
		Currency:             "INR",
		PricePerPerson:       pricing.Float(26000),
		ChildWithBedPrice:    pricing.Float(14900),
		ChildWithoutBedPrice: pricing.Float(9900),
		MinTravelers:         1,
		MaxTravelers:         6,
		Tiers:                []pricing.Tier{{Pax: 2, PricePerPerson: 25000}, {Pax: 4, PricePerPerson: 22000}},
		Addons:               []pricing.Addon{{ID: "bike", Name: "Royal Enfield upgrade", Price: 8000}},
		Departures: []tours.Departure{
			{ID: 1, Date: time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC), Status: tours.StatusAvailable},
			{ID: 3, Date: time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), Status: tours.StatusSoldOut},
		},
	}
}

func validSession() Session {
	return Session{TourID: 7, DepartureDate: "2026-11-20", Adults: 2}.
		SelectRoom(rooms.Of(0, 1, 0, 500)).
		WithCustomer(bookings.Customer{Name: "Asha", Email: "asha@example.com", Phone: "+919800000000"})
}

func fields(err error) map[string]bool {
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := map[string]bool{}
	for _, e := range verrs {
		out[e.Field] = true
	}
	return out
}

func TestValidateAcceptsCompleteSelection(t *testing.T) {
	if err := Validate(testTour(), validSession()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(Session) Session
		field string
	}{
		{"missing date", func(s Session) Session { s.DepartureDate = ""; return s }, "departureDate"},
		{"unknown date", func(s Session) Session { s.DepartureDate = "2026-11-21"; return s }, "departureDate"},
		{"sold out", func(s Session) Session { s.DepartureDate = "2027-01-02"; return s }, "departureDate"},
		{"no room", func(s Session) Session { return s.ClearRoom() }, "roomConfiguration"},
		{"room too small", func(s Session) Session { return s.SelectRoom(rooms.Of(1, 0, 0, 500)) }, "roomConfiguration"},
		{"too many travelers", func(s Session) Session { s.ChildrenWithoutBed = 5; return s }, "travelers"},
		{"no name", func(s Session) Session { s.Customer.Name = "  "; return s }, "customer.name"},
		{"no email", func(s Session) Session { s.Customer.Email = ""; return s }, "customer.email"},
		{"no phone", func(s Session) Session { s.Customer.Phone = ""; return s }, "customer.phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testTour(), tt.edit(validSession()))
			got := fields(err)
			if !got[tt.field] {
				t.Fatalf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateNoAdultsNeedsNoRoom(t *testing.T) {
	s := validSession()
	s.Adults = 0
	s.ChildrenWithoutBed = 1
	s = s.ClearRoom()
	if got := fields(Validate(testTour(), s)); got["roomConfiguration"] {
		t.Fatal("room is only required when adults > 0")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	err := ValidationErrors{{"a", "first"}, {"b", "second"}}
	if err.Error() != "validation failed: first; second" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
