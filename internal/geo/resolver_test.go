package geo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nestlist/internal/domain"
)

// stubGeocoder counts calls so tests can assert the dedup cache worked.
type stubGeocoder struct {
	pt    Point
	err   error
	calls int
}

func (s *stubGeocoder) Search(ctx context.Context, address string) (Point, error) {
	s.calls++
	if s.err != nil {
		return Point{}, s.err
	}
	return s.pt, nil
}

func addressDraft() *domain.Draft {
	return &domain.Draft{
		StreetAddress: "350 5th Ave",
		City:          "New York",
		State:         "NY",
		PostalCode:    "10118",
		Country:       "USA",
	}
}

func TestResolveGeocodesWhenNoCoordinates(t *testing.T) {
	g := &stubGeocoder{pt: Point{51.5074, -0.1278}}
	r := NewResolver(g, 0)

	loc, err := r.Resolve(context.Background(), addressDraft())
	if err != nil {
		t.Fatal(err)
	}
	if loc.Source != "geocoded" || !loc.Verified {
		t.Fatalf("want verified geocoded location, got %+v", loc)
	}
	if loc.Lat != 51.5074 || loc.Lng != -0.1278 {
		t.Fatalf("wrong coordinates: %+v", loc)
	}
}

func TestResolveAcceptsNearbyUserCoordinates(t *testing.T) {
	g := &stubGeocoder{pt: Point{40.7128, -74.0060}}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "40.7130", "-74.0065"

	loc, err := r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Source != "user" || !loc.Verified {
		t.Fatalf("want verified user location, got %+v", loc)
	}
	if loc.DistanceKm <= 0 || loc.DistanceKm > 0.1 {
		t.Fatalf("distance should be a rounded sub-100m figure, got %f", loc.DistanceKm)
	}
}

func TestResolveRejectsFarCoordinates(t *testing.T) {
	g := &stubGeocoder{pt: Point{40.7128, -74.0060}}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "0", "0"

	_, err := r.Resolve(context.Background(), d)
	if err == nil {
		t.Fatal("coordinates on the equator must not pass for a Manhattan address")
	}
	if !strings.Contains(err.Error(), "away from the address") {
		t.Fatalf("error should name the distance: %v", err)
	}
}

func TestResolveDegradesWhenGeocoderDown(t *testing.T) {
	g := &stubGeocoder{err: errors.New("geocoder unreachable: connection refused")}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "40.7128", "-74.0060"

	loc, err := r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatalf("well-formed user coordinates should survive a geocoder outage: %v", err)
	}
	if loc.Verified || loc.Source != "user" || loc.Warning == "" {
		t.Fatalf("want unverified user location with warning, got %+v", loc)
	}
}

func TestResolveBlocksWhenNotFoundAndNoCoordinates(t *testing.T) {
	g := &stubGeocoder{err: ErrNotFound}
	r := NewResolver(g, 0)

	_, err := r.Resolve(context.Background(), addressDraft())
	if err == nil || !strings.Contains(err.Error(), "could not find coordinates") {
		t.Fatalf("want blocking not-found error, got %v", err)
	}
}

func TestResolveEmptyAddress(t *testing.T) {
	r := NewResolver(&stubGeocoder{}, 0)
	if _, err := r.Resolve(context.Background(), &domain.Draft{}); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("want ErrEmptyAddress, got %v", err)
	}
}

func TestResolveCoordinateRange(t *testing.T) {
	r := NewResolver(&stubGeocoder{pt: Point{40, -74}}, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "95", "0"
	if _, err := r.Resolve(context.Background(), d); err == nil || !strings.Contains(err.Error(), "latitude") {
		t.Fatalf("latitude 95 must be rejected, got %v", err)
	}

	d = addressDraft()
	d.Latitude, d.Longitude = "0", "-190"
	if _, err := r.Resolve(context.Background(), d); err == nil || !strings.Contains(err.Error(), "longitude") {
		t.Fatalf("longitude -190 must be rejected, got %v", err)
	}
}

func TestResolveDedupsUnchangedInput(t *testing.T) {
	g := &stubGeocoder{pt: Point{40.7128, -74.0060}}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "40.7130", "-74.0065"

	first, err := r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if g.calls != 1 {
		t.Fatalf("unchanged input must reuse the cached result, got %d geocoder calls", g.calls)
	}
	if first != second {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}

	// Any edit to the address invalidates the cache.
	d.City = "Brooklyn"
	if _, err := r.Resolve(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if g.calls != 2 {
		t.Fatalf("edited address must re-geocode, got %d calls", g.calls)
	}
}

func TestResolveDegradedResultNotCached(t *testing.T) {
	g := &stubGeocoder{err: errors.New("geocoder unreachable")}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "40.7128", "-74.0060"

	loc, err := r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if loc.Verified {
		t.Fatalf("outage result must be unverified: %+v", loc)
	}

	// Geocoder recovers; the same unchanged input must be retried, not served
	// from cache, so the location upgrades to verified.
	g.err = nil
	g.pt = Point{40.7128, -74.0060}
	loc, err = r.Resolve(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if g.calls != 2 {
		t.Fatalf("degraded result must not be cached, got %d geocoder calls", g.calls)
	}
	if !loc.Verified || loc.Warning != "" {
		t.Fatalf("recovered geocoder should verify the coordinates, got %+v", loc)
	}
}

func TestResolveFailureDoesNotPoisonCache(t *testing.T) {
	g := &stubGeocoder{pt: Point{40.7128, -74.0060}}
	r := NewResolver(g, 0)

	d := addressDraft()
	d.Latitude, d.Longitude = "0", "0"
	if _, err := r.Resolve(context.Background(), d); err == nil {
		t.Fatal("want mismatch error")
	}
	// Same bad input again: must hit the geocoder again, not a cached failure.
	if _, err := r.Resolve(context.Background(), d); err == nil {
		t.Fatal("want mismatch error on retry")
	}
	if g.calls != 2 {
		t.Fatalf("failures must not be cached, got %d calls", g.calls)
	}
}
