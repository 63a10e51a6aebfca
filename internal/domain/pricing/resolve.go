package pricing

// Source один источник цен в цепочке приоритетов (выезд, тур, значения по умолчанию).
// nil/пустое поле означает "источник это поле не задаёт".
type Source struct {
	Name                 string
	Tiers                []Tier
	ChildWithBedPrice    *float64
	ChildWithoutBedPrice *float64
	Addons               []Addon
	PricePerPerson       *float64
}

// Resolve собирает Context: каждое поле берётся из первого источника, где оно задано.
// Порядок sources и есть порядок приоритета.
func Resolve(sources ...Source) Context {
	var ctx Context
	var tiersSet, withBedSet, withoutBedSet, addonsSet bool

	for _, s := range sources {
		if !tiersSet && len(s.Tiers) > 0 {
			ctx.Tiers = append([]Tier(nil), s.Tiers...)
			tiersSet = true
		}
		if !withBedSet && s.ChildWithBedPrice != nil {
			ctx.ChildWithBedPrice = *s.ChildWithBedPrice
			withBedSet = true
		}
		if !withoutBedSet && s.ChildWithoutBedPrice != nil {
			ctx.ChildWithoutBedPrice = *s.ChildWithoutBedPrice
			withoutBedSet = true
		}
		if !addonsSet && len(s.Addons) > 0 {
			ctx.Addons = append([]Addon(nil), s.Addons...)
			addonsSet = true
		}
		if ctx.BasePricePerPerson == nil && s.PricePerPerson != nil {
			v := *s.PricePerPerson
			ctx.BasePricePerPerson = &v
		}
	}
	return ctx
}

// Input заготовка для ComputeBreakdown из контекста выезда.
func (c Context) Input(adults, childrenWithBed, childrenWithoutBed int, roomPrice *int64, addonIDs []string) Input {
	return Input{
		Tiers:               c.Tiers,
		FlatPricePerPerson:  c.BasePricePerPerson,
		Adults:              adults,
		ChildrenWithBed:     childrenWithBed,
		ChildrenWithoutBed:  childrenWithoutBed,
		ChildWithBedRate:    c.ChildWithBedPrice,
		ChildWithoutBedRate: c.ChildWithoutBedPrice,
		RoomPrice:           roomPrice,
		SelectedAddonIDs:    addonIDs,
		AvailableAddons:     c.Addons,
	}
}

// HasAddon есть ли add-on с таким id в контексте
func (c Context) HasAddon(id string) bool {
	for _, a := range c.Addons {
		if a.ID == id {
			return true
		}
	}
	return false
}

func Float(v float64) *float64 { return &v }
