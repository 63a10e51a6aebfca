package pricing

import (
	"math"
	"sort"
)

// ResolveRate ставка на человека для adults взрослых:
// точное совпадение pax, иначе ступень с максимальным pax,
// иначе flat (цена выезда/тура), иначе 0.
func ResolveRate(tiers []Tier, adults int, flat *float64) float64 {
	if len(tiers) > 0 {
		sorted := make([]Tier, len(tiers))
		copy(sorted, tiers)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pax < sorted[j].Pax })

		for _, t := range sorted {
			if t.Pax == adults {
				return t.PricePerPerson
			}
		}
		return sorted[len(sorted)-1].PricePerPerson
	}
	if flat != nil {
		return *flat
	}
	return 0
}

// AddonsTotal неизвестные id молча дают 0.
func AddonsTotal(available []Addon, selected []string) float64 {
	if len(selected) == 0 {
		return 0
	}
	want := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		want[id] = struct{}{}
	}
	var sum float64
	for _, a := range available {
		if _, ok := want[a.ID]; ok {
			sum += a.Price
		}
	}
	return sum
}

// ComputeBreakdown каждая составляющая округляется до суммирования.
func ComputeBreakdown(in Input) Breakdown {
	rate := ResolveRate(in.Tiers, in.Adults, in.FlatPricePerPerson)

	b := Breakdown{
		BasePrice: round(float64(in.Adults) * rate),
		ChildrenPrice: round(float64(in.ChildrenWithBed)*in.ChildWithBedRate +
			float64(in.ChildrenWithoutBed)*in.ChildWithoutBedRate),
		AddonsPrice: round(AddonsTotal(in.AvailableAddons, in.SelectedAddonIDs)),
	}
	if in.RoomPrice != nil {
		b.RoomPrice = *in.RoomPrice
	}
	b.TotalPrice = b.BasePrice + b.ChildrenPrice + b.RoomPrice + b.AddonsPrice
	return b
}

func round(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int64(math.Round(v))
}
