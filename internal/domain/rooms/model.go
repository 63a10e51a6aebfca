package rooms

import "fmt"

// DefaultRoomRate цена одного номера, не зависит от типа номера.
const DefaultRoomRate int64 = 500

type Configuration struct {
	ID              string `json:"id"`
	Single          int    `json:"single"`
	Double          int    `json:"double"`
	Twin            int    `json:"twin"`
	PriceDifference int64  `json:"priceDifference"`
}

// Rooms количество физических номеров
func (c Configuration) Rooms() int { return c.Single + c.Double + c.Twin }

// Beds сколько человек размещает конфигурация
func (c Configuration) Beds() int { return c.Single + 2*c.Double + 2*c.Twin }

func (c Configuration) String() string {
	return fmt.Sprintf("%d single, %d double, %d twin", c.Single, c.Double, c.Twin)
}

// BedsNeeded children without a bed never need one.
func BedsNeeded(adults, childrenWithBed int) int {
	return adults + childrenWithBed
}

// Of собирает конфигурацию из сохранённых количеств номеров.
func Of(single, double, twin int, price int64) Configuration {
	return Configuration{
		ID:              configID(single, double, twin),
		Single:          single,
		Double:          double,
		Twin:            twin,
		PriceDifference: price,
	}
}

func configID(single, double, twin int) string {
	return fmt.Sprintf("s%d-d%d-t%d", single, double, twin)
}
