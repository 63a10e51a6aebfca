package tours

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
)

func testTour() *Tour {
	return &Tour{
		ID:                   7,
		Name:                 "Spiti Valley Circuit",
		PricePerPerson:       pricing.Float(26000),
		ChildWithBedPrice:    pricing.Float(14900),
		ChildWithoutBedPrice: pricing.Float(9900),
		MinTravelers:         2,
		MaxTravelers:         12,
		Tiers:                []pricing.Tier{{Pax: 2, PricePerPerson: 25000}, {Pax: 4, PricePerPerson: 22000}},
		Addons:               []pricing.Addon{{ID: "bike", Name: "Royal Enfield upgrade", Price: 8000}},
		Departures: []Departure{
			{
				ID:     1,
				Date:   time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
				Status: StatusAvailable,
			},
			{
				ID:                2,
				Date:              time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
				Status:            StatusFillingFast,
				Tiers:             []pricing.Tier{{Pax: 2, PricePerPerson: 29000}},
				ChildWithBedPrice: pricing.Float(17000),
			},
			{
				ID:     3,
				Date:   time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
				Status: StatusSoldOut,
			},
		},
	}
}

func TestDepartureLookup(t *testing.T) {
	tour := testTour()
	d, ok := tour.Departure("2026-12-24")
	if !ok || d.ID != 2 {
		t.Fatalf("expected departure 2, got %+v (ok=%v)", d, ok)
	}
	if _, ok := tour.Departure("2026-12-25"); ok {
		t.Fatal("unexpected departure")
	}
	sold, _ := tour.Departure("2027-01-02")
	if !sold.SoldOut() {
		t.Fatal("expected sold out")
	}
}

func TestPricingContextUsesDepartureOverrides(t *testing.T) {
	tour := testTour()

	ctx := tour.PricingContext("2026-12-24")
	if len(ctx.Tiers) != 1 || ctx.Tiers[0].PricePerPerson != 29000 {
		t.Fatalf("expected departure tiers, got %+v", ctx.Tiers)
	}
	if ctx.ChildWithBedPrice != 17000 {
		t.Fatalf("expected departure child price, got %v", ctx.ChildWithBedPrice)
	}
	if ctx.ChildWithoutBedPrice != 9900 {
		t.Fatalf("expected tour child-without-bed price, got %v", ctx.ChildWithoutBedPrice)
	}
	if !ctx.HasAddon("bike") {
		t.Fatal("expected tour add-ons")
	}

	ctx = tour.PricingContext("2026-11-20")
	if len(ctx.Tiers) != 2 {
		t.Fatalf("expected tour tiers, got %+v", ctx.Tiers)
	}

	ctx = tour.PricingContext("1999-01-01")
	if len(ctx.Tiers) != 2 {
		t.Fatalf("unknown date must fall back to tour pricing, got %+v", ctx.Tiers)
	}
}

func TestTravelers(t *testing.T) {
	tour := testTour()
	for total, want := range map[int]bool{1: false, 2: true, 12: true, 13: false} {
		if got := tour.Travelers(total); got != want {
			t.Errorf("%d travelers: expected %v, got %v", total, want, got)
		}
	}
	open := &Tour{}
	if !open.Travelers(40) {
		t.Fatal("no limits configured must accept any count")
	}
}

func TestDepartureJSONDate(t *testing.T) {
	raw, err := json.Marshal(testTour().Departures[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"date":"2026-11-20"`) {
		t.Fatalf("expected date string in %s", raw)
	}
	if !strings.Contains(string(raw), `"status":"available"`) {
		t.Fatalf("expected status in %s", raw)
	}
}
