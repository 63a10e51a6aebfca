package pricing

// Tier ступенчатая цена: PricePerPerson действует, когда едет ровно Pax взрослых.
type Tier struct {
	Pax            int     `json:"pax"`
	PricePerPerson float64 `json:"pricePerPerson"`
}

type Addon struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Context итоговые входные данные цены для одного выезда.
type Context struct {
	Tiers                []Tier   `json:"pricingTiers"`
	ChildWithBedPrice    float64  `json:"childWithBedPrice"`
	ChildWithoutBedPrice float64  `json:"childWithoutBedPrice"`
	Addons               []Addon  `json:"availableAddons"`
	BasePricePerPerson   *float64 `json:"basePricePerPerson,omitempty"`
}

// Breakdown все суммы округлены до целых единиц валюты.
type Breakdown struct {
	BasePrice     int64 `json:"basePrice"`
	ChildrenPrice int64 `json:"childrenPrice"`
	RoomPrice     int64 `json:"roomPrice"`
	AddonsPrice   int64 `json:"addonsPrice"`
	TotalPrice    int64 `json:"totalPrice"`
}

// Input всё, что нужно для расчёта. RoomPrice == nil: номер ещё не выбран.
type Input struct {
	Tiers               []Tier
	FlatPricePerPerson  *float64
	Adults              int
	ChildrenWithBed     int
	ChildrenWithoutBed  int
	ChildWithBedRate    float64
	ChildWithoutBedRate float64
	RoomPrice           *int64
	SelectedAddonIDs    []string
	AvailableAddons     []Addon
}
