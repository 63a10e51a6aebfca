package pricing

import "testing"

func TestResolvePrecedence(t *testing.T) {
	departure := Source{
		Name:              "departure",
		Tiers:             []Tier{{Pax: 2, PricePerPerson: 27000}},
		ChildWithBedPrice: Float(16000),
	}
	tour := Source{
		Name:                 "tour",
		Tiers:                []Tier{{Pax: 2, PricePerPerson: 25000}},
		ChildWithBedPrice:    Float(14900),
		ChildWithoutBedPrice: Float(9900),
		Addons:               []Addon{{ID: "rafting", Price: 1500}},
		PricePerPerson:       Float(26000),
	}

	ctx := Resolve(departure, tour, Source{Name: "default"})

	if len(ctx.Tiers) != 1 || ctx.Tiers[0].PricePerPerson != 27000 {
		t.Fatalf("expected departure tiers, got %+v", ctx.Tiers)
	}
	if ctx.ChildWithBedPrice != 16000 {
		t.Fatalf("expected departure child price, got %v", ctx.ChildWithBedPrice)
	}
	if ctx.ChildWithoutBedPrice != 9900 {
		t.Fatalf("expected tour child-without-bed price, got %v", ctx.ChildWithoutBedPrice)
	}
	if !ctx.HasAddon("rafting") {
		t.Fatal("expected tour add-ons")
	}
	if ctx.BasePricePerPerson == nil || *ctx.BasePricePerPerson != 26000 {
		t.Fatalf("expected tour flat price, got %v", ctx.BasePricePerPerson)
	}
}

func TestResolveEmpty(t *testing.T) {
	ctx := Resolve()
	if ctx.Tiers != nil || ctx.Addons != nil || ctx.BasePricePerPerson != nil {
		t.Fatalf("expected empty context, got %+v", ctx)
	}
	b := ComputeBreakdown(ctx.Input(2, 1, 1, nil, nil))
	if b.TotalPrice != 0 {
		t.Fatalf("expected 0, got %d", b.TotalPrice)
	}
}

func TestResolveDoesNotAliasSources(t *testing.T) {
	tiers := []Tier{{Pax: 2, PricePerPerson: 100}}
	ctx := Resolve(Source{Tiers: tiers})
	tiers[0].PricePerPerson = 999
	if ctx.Tiers[0].PricePerPerson != 100 {
		t.Fatal("resolved context must not share the source slice")
	}
}
