package rooms

import "sort"

// Generate перечисляет все варианты размещения для partySize по ставке DefaultRoomRate.
func Generate(partySize int) []Configuration {
	return GenerateWithRate(partySize, DefaultRoomRate)
}

// GenerateWithRate перечисляет все тройки (single, double, twin) с
// single + 2*double + 2*twin == partySize и сортирует их по цене (дешёвые первыми).
// Цена зависит только от количества номеров, поэтому при равной цене
// сохраняется порядок перебора: сначала варианты с большим числом double.
func GenerateWithRate(partySize int, rate int64) []Configuration {
	if partySize < 0 {
		partySize = 0
	}
	if rate < 0 {
		rate = 0
	}

	out := make([]Configuration, 0, (partySize/2+1)*(partySize/2+2)/2)
	for double := partySize / 2; double >= 0; double-- {
		for twin := 0; 2*double+2*twin <= partySize; twin++ {
			single := partySize - 2*double - 2*twin
			c := Configuration{
				ID:     configID(single, double, twin),
				Single: single,
				Double: double,
				Twin:   twin,
			}
			c.PriceDifference = int64(c.Rooms()) * rate
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceDifference < out[j].PriceDifference
	})
	return out
}

// Recommended возвращает конфигурации с минимальной ценой ("best value").
func Recommended(cfgs []Configuration) []Configuration {
	if len(cfgs) == 0 {
		return nil
	}
	best := cfgs[0].PriceDifference
	for _, c := range cfgs[1:] {
		if c.PriceDifference < best {
			best = c.PriceDifference
		}
	}
	var out []Configuration
	for _, c := range cfgs {
		if c.PriceDifference == best {
			out = append(out, c)
		}
	}
	return out
}

// Find ищет конфигурацию по id среди вариантов для partySize.
func Find(partySize int, rate int64, id string) (Configuration, bool) {
	for _, c := range GenerateWithRate(partySize, rate) {
		if c.ID == id {
			return c, true
		}
	}
	return Configuration{}, false
}
