package geo

import (
	"math"
	"testing"

	"nestlist/internal/domain"
)

func TestBuildAddressJoinOrder(t *testing.T) {
	d := &domain.Draft{
		PlotNumber:    "12A",
		StreetAddress: "350 5th Ave",
		Region:        "Manhattan",
		City:          "New York",
		State:         "NY",
		PostalCode:    "10118",
		Country:       "USA",
	}
	want := "12A, 350 5th Ave, Manhattan, New York, NY, 10118, USA"
	if got := BuildAddress(d); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestBuildAddressSkipsBlanks(t *testing.T) {
	d := &domain.Draft{StreetAddress: "350 5th Ave", City: "  ", Country: "USA"}
	if got := BuildAddress(d); got != "350 5th Ave, USA" {
		t.Fatalf("blank parts must be dropped, got %q", got)
	}
}

func TestBuildAddressEmpty(t *testing.T) {
	if got := BuildAddress(&domain.Draft{}); got != "" {
		t.Fatalf("want empty address, got %q", got)
	}
}

func TestDistanceZero(t *testing.T) {
	p := Point{40.7128, -74.0060}
	if d := Distance(p, p); d != 0 {
		t.Fatalf("distance to self should be 0, got %f", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{40.7128, -74.0060}
	b := Point{51.5074, -0.1278}
	d1, d2 := Distance(a, b), Distance(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("distance must be symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// New York to London is about 5570km by great circle.
	d := Distance(Point{40.7128, -74.0060}, Point{51.5074, -0.1278})
	if d < 5500 || d > 5650 {
		t.Fatalf("NY-London distance off: %f km", d)
	}
}

func TestDistanceNearbyPoints(t *testing.T) {
	d := Distance(Point{40.7128, -74.0060}, Point{40.7130, -74.0065})
	if d <= 0 || d > 0.1 {
		t.Fatalf("a few blocks should be well under 100m, got %f km", d)
	}
}
