package tours

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Shivansh-Bhushan-Dutt/Booking-system/internal/domain/pricing"
)

var ErrNotFound = errors.New("tours: not found")

const DateLayout = "2006-01-02"

type DepartureStatus string

const (
	StatusAvailable   DepartureStatus = "available"
	StatusFillingFast DepartureStatus = "filling_fast"
	StatusSoldOut     DepartureStatus = "sold_out"
)

type Tour struct {
	ID                   int64           `json:"id"`
	Slug                 string          `json:"slug"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Currency             string          `json:"currency"`
	PricePerPerson       *float64        `json:"pricePerPerson,omitempty"`
	ChildWithBedPrice    *float64        `json:"childWithBed,omitempty"`
	ChildWithoutBedPrice *float64        `json:"childWithoutBed,omitempty"`
	MinTravelers         int             `json:"minTravelers"`
	MaxTravelers         int             `json:"maxTravelers"`
	Tiers                []pricing.Tier  `json:"pricingTiers"`
	Addons               []pricing.Addon `json:"addons"`
	Departures           []Departure     `json:"availableDates"`
	CreatedAt            time.Time       `json:"-"`
}

// Departure конкретная дата выезда; заполненные поля перекрывают значения тура.
type Departure struct {
	ID                   int64           `json:"id"`
	Date                 time.Time       `json:"-"`
	Status               DepartureStatus `json:"status"`
	PricePerPerson       *float64        `json:"pricePerPerson,omitempty"`
	ChildWithBedPrice    *float64        `json:"childWithBed,omitempty"`
	ChildWithoutBedPrice *float64        `json:"childWithoutBed,omitempty"`
	Tiers                []pricing.Tier  `json:"pricingTiers,omitempty"`
	Addons               []pricing.Addon `json:"addons,omitempty"`
}

func (d Departure) DateString() string { return d.Date.Format(DateLayout) }

// MarshalJSON дата уходит в виджет как "YYYY-MM-DD"
func (d Departure) MarshalJSON() ([]byte, error) {
	type alias Departure
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(d), Date: d.DateString()})
}

func (d Departure) SoldOut() bool { return d.Status == StatusSoldOut }

// Departure ищет выезд по дате "YYYY-MM-DD".
func (t *Tour) Departure(date string) (Departure, bool) {
	for _, d := range t.Departures {
		if d.DateString() == date {
			return d, true
		}
	}
	return Departure{}, false
}

// PricingContext цепочка приоритетов: выезд -> тур -> нули.
// Если даты нет среди выездов, считаем по цене тура.
func (t *Tour) PricingContext(date string) pricing.Context {
	sources := make([]pricing.Source, 0, 3)
	if d, ok := t.Departure(date); ok {
		sources = append(sources, d.source())
	}
	sources = append(sources, t.source(), pricing.Source{Name: "default"})
	return pricing.Resolve(sources...)
}

// Travelers общее число путешественников в допустимых пределах тура
func (t *Tour) Travelers(total int) bool {
	if t.MinTravelers > 0 && total < t.MinTravelers {
		return false
	}
	if t.MaxTravelers > 0 && total > t.MaxTravelers {
		return false
	}
	return true
}

func (t *Tour) source() pricing.Source {
	return pricing.Source{
		Name:                 "tour",
		Tiers:                t.Tiers,
		ChildWithBedPrice:    t.ChildWithBedPrice,
		ChildWithoutBedPrice: t.ChildWithoutBedPrice,
		Addons:               t.Addons,
		PricePerPerson:       t.PricePerPerson,
	}
}

func (d Departure) source() pricing.Source {
	return pricing.Source{
		Name:                 "departure",
		Tiers:                d.Tiers,
		ChildWithBedPrice:    d.ChildWithBedPrice,
		ChildWithoutBedPrice: d.ChildWithoutBedPrice,
		Addons:               d.Addons,
		PricePerPerson:       d.PricePerPerson,
	}
}
