package form

import (
	"testing"

	"nestlist/internal/domain"
)

// fullDraft satisfies every required field; optional fields stay at defaults.
func fullDraft() *domain.Draft {
	d := domain.NewDraft()
	d.Name = "Sunny Loft"
	d.Description = "A bright two-bedroom loft near the park."
	d.StreetAddress = "350 5th Ave"
	d.City = "New York"
	d.State = "NY"
	d.Country = "USA"
	d.PostalCode = "10118"
	d.Price = "2500"
	d.YearBuilt = "1995"
	d.MainPhoto = &domain.Photo{PublicID: "ph-main", URL: "https://img.test/ph-main.jpg"}
	return d
}

func TestScoreWeightsSplitEvenly(t *testing.T) {
	always := func(*domain.Draft) bool { return true }
	never := func(*domain.Draft) bool { return false }

	required := []Field{{"a", always}, {"b", never}}
	optional := []Field{{"c", always}, {"d", never}}

	p := scoreWith(domain.NewDraft(), required, optional)
	if p.Percentage != 50 {
		t.Fatalf("want 50%% for half required + half optional, got %d", p.Percentage)
	}
	if p.RequiredPercentage != 50 || p.OptionalPercentage != 50 {
		t.Fatalf("want 50/50 splits, got req=%d opt=%d", p.RequiredPercentage, p.OptionalPercentage)
	}
	if p.CanSubmit {
		t.Fatal("half-filled required fields must not be submittable")
	}
}

func TestScoreCompleteIsHundred(t *testing.T) {
	always := func(*domain.Draft) bool { return true }
	p := scoreWith(domain.NewDraft(), []Field{{"a", always}}, []Field{{"b", always}})
	if p.Percentage != 100 || !p.CanSubmit {
		t.Fatalf("complete draft should score 100 and be submittable, got %+v", p)
	}
}

func TestScoreOptionalCompletionNeverSubmits(t *testing.T) {
	always := func(*domain.Draft) bool { return true }
	never := func(*domain.Draft) bool { return false }

	p := scoreWith(domain.NewDraft(), []Field{{"a", always}, {"b", never}}, []Field{{"c", always}})
	if p.OptionalPercentage != 100 {
		t.Fatalf("want optional=100, got %d", p.OptionalPercentage)
	}
	if p.CanSubmit {
		t.Fatal("a missing required field must gate submission regardless of optional score")
	}
}

func TestScoreDefaultsNotSubmittable(t *testing.T) {
	p := Score(domain.NewDraft())
	if p.CanSubmit {
		t.Fatal("a fresh draft must not be submittable")
	}
	if p.Percentage <= 0 || p.Percentage >= 80 {
		t.Fatalf("defaults fill some but not all required fields, got %d%%", p.Percentage)
	}
}

func TestScoreMonotonicWhileFilling(t *testing.T) {
	d := domain.NewDraft()
	prev := Score(d).Percentage

	steps := []func(){
		func() { d.Name = "Sunny Loft" },
		func() { d.Description = "A bright two-bedroom loft near the park." },
		func() { d.StreetAddress = "350 5th Ave" },
		func() { d.City = "New York" },
		func() { d.State = "NY" },
		func() { d.Country = "USA" },
		func() { d.PostalCode = "10118" },
		func() { d.Price = "2500" },
		func() { d.YearBuilt = "1995" },
		func() { d.MainPhoto = &domain.Photo{PublicID: "ph-main"} },
	}
	for i, fill := range steps {
		fill()
		got := Score(d).Percentage
		if got < prev {
			t.Fatalf("step %d: percentage dropped from %d to %d", i, prev, got)
		}
		prev = got
	}
}

func TestScoreSubmittableWithoutOptionals(t *testing.T) {
	d := fullDraft()
	p := Score(d)
	if !p.CanSubmit {
		t.Fatalf("all required fields filled, want CanSubmit, got %+v", p)
	}
	if p.RequiredPercentage != 100 {
		t.Fatalf("want required=100, got %d", p.RequiredPercentage)
	}
	if p.Percentage >= 100 {
		t.Fatalf("optionals mostly empty, total should be below 100, got %d", p.Percentage)
	}
}

func TestScoreEverythingFilled(t *testing.T) {
	d := fullDraft()
	d.PropertyType = "apartment"
	d.PlotNumber = "12A"
	d.Region = "Manhattan"
	d.Latitude = "40.7128"
	d.Longitude = "-74.0060"
	d.SecurityDeposit = "1000"
	d.Tax = "8.875"
	d.MaintenanceFee = "200"
	d.LeaseTerm = "12 months"
	d.LivingArea = "85"
	d.OtherRooms = "Study"
	d.Stories = "2"
	d.CeilingHeight = "3"
	d.FloorNumber = "4"
	d.Flooring = []string{"hardwood"}
	d.KitchenFeatures = []string{"dishwasher"}
	d.Cooling = "central"
	d.Plumbing = "copper"
	d.Electrical = "200A panel"
	d.WaterSource = "municipal"
	d.AccessibilityFeatures = "elevator"
	d.View = "park"
	d.Privacy = "gated"
	d.BuildingRules = "No smoking"
	d.AdditionalPhotos = []domain.Photo{{PublicID: "ph-2"}}

	p := Score(d)
	if p.Percentage != 100 {
		t.Fatalf("everything filled, want 100, got %d", p.Percentage)
	}
	if p.OptionalPercentage != 100 {
		t.Fatalf("want optional=100, got %d", p.OptionalPercentage)
	}
}

func TestScoreIdempotent(t *testing.T) {
	d := fullDraft()
	a, b := Score(d), Score(d)
	if a != b {
		t.Fatalf("scoring must not mutate the draft: %+v vs %+v", a, b)
	}
}

func TestScoreCeilingHeightAgreesWithBattery(t *testing.T) {
	base := Score(fullDraft()).Percentage

	// A value the details battery rejects must not score either.
	d := fullDraft()
	d.CeilingHeight = "9999"
	if got := Score(d).Percentage; got != base {
		t.Fatalf("out-of-range ceiling height must not add to the score: %d vs %d", got, base)
	}
	if errs, ok := ValidateStep(2, d); ok || errs["ceilingHeight"] == "" {
		t.Fatalf("details battery should reject ceiling height 9999, got %v", errs)
	}

	// A value the battery accepts counts.
	d.CeilingHeight = "3"
	if got := Score(d).Percentage; got <= base {
		t.Fatalf("valid ceiling height should add to the score: %d vs %d", got, base)
	}
	if errs, ok := ValidateStep(2, d); !ok {
		t.Fatalf("details battery should accept ceiling height 3, got %v", errs)
	}
}

func TestScoreRejectsGarbageNumbers(t *testing.T) {
	d := fullDraft()
	d.Price = "abc"
	p := Score(d)
	if p.CanSubmit {
		t.Fatal("non-numeric price must not count as filled")
	}
}
