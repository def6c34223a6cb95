package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"nestlist/internal/domain"
)

// DefaultMaxDistanceKm is how far user-entered coordinates may sit from the
// geocoded address before we refuse them.
const DefaultMaxDistanceKm = 3

var ErrEmptyAddress = errors.New("address is empty")

// Location is the outcome of reconciling the draft's address with its
// coordinates.
type Location struct {
	Lat        float64
	Lng        float64
	Source     string // user | geocoded
	Verified   bool
	DistanceKm float64
	// Warning carries the geocoder failure message when we fell back to
	// trusting unverified user coordinates.
	Warning string
}

// Resolver cross-checks user coordinates against the geocoded address.
// It remembers the last verified address+coordinate pair so returning to the
// step without edits performs no further network calls; Nominatim allows
// about one request per second.
type Resolver struct {
	Geocoder      Geocoder
	MaxDistanceKm float64

	mu       sync.Mutex
	lastKey  string
	lastLoc  Location
	resolved bool
}

func NewResolver(g Geocoder, maxKm float64) *Resolver {
	if maxKm <= 0 {
		maxKm = DefaultMaxDistanceKm
	}
	return &Resolver{Geocoder: g, MaxDistanceKm: maxKm}
}

func cacheKey(d *domain.Draft) string {
	return BuildAddress(d) + "|" + d.Latitude + "," + d.Longitude
}

// Resolve implements the reconciliation protocol:
//   - unchanged address+coordinates since the last verified success: return
//     the cached location without touching the geocoder;
//   - user coordinates present: range-check, geocode the address, and accept
//     only if within MaxDistanceKm (geocoder failure degrades to trusting the
//     user's point, unverified);
//   - no user coordinates: geocode the address, failure is blocking.
func (r *Resolver) Resolve(ctx context.Context, d *domain.Draft) (Location, error) {
	key := cacheKey(d)

	r.mu.Lock()
	if r.resolved && key == r.lastKey {
		loc := r.lastLoc
		r.mu.Unlock()
		return loc, nil
	}
	r.mu.Unlock()

	loc, err := r.resolve(ctx, d)
	if err != nil {
		return Location{}, err
	}

	// Only verified outcomes are worth remembering: a degraded (geocoder-down)
	// result must be retried on the next pass so it can upgrade once the
	// geocoder recovers.
	if loc.Verified {
		r.mu.Lock()
		r.lastKey = key
		r.lastLoc = loc
		r.resolved = true
		r.mu.Unlock()
	}
	return loc, nil
}

func (r *Resolver) resolve(ctx context.Context, d *domain.Draft) (Location, error) {
	address := BuildAddress(d)
	hasUserCoords := d.Latitude != "" && d.Longitude != ""

	if !hasUserCoords {
		if address == "" {
			return Location{}, ErrEmptyAddress
		}
		p, err := r.Geocoder.Search(ctx, address)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Location{}, errors.New("could not find coordinates, please enter a correct address")
			}
			return Location{}, err
		}
		return Location{Lat: p.Lat, Lng: p.Lng, Source: "geocoded", Verified: true}, nil
	}

	userLat, errLat := strconv.ParseFloat(d.Latitude, 64)
	userLng, errLng := strconv.ParseFloat(d.Longitude, 64)
	if errLat != nil || errLng != nil || math.IsNaN(userLat) || math.IsInf(userLat, 0) ||
		math.IsNaN(userLng) || math.IsInf(userLng, 0) {
		return Location{}, errors.New("invalid coordinate format")
	}
	if userLat < -90 || userLat > 90 {
		return Location{}, errors.New("latitude must be between -90 and 90")
	}
	if userLng < -180 || userLng > 180 {
		return Location{}, errors.New("longitude must be between -180 and 180")
	}
	if address == "" {
		return Location{}, ErrEmptyAddress
	}

	geocoded, err := r.Geocoder.Search(ctx, address)
	if err != nil {
		// Can't verify, but the coordinates themselves are well-formed.
		// Trust the user's input rather than blocking submission.
		return Location{
			Lat: userLat, Lng: userLng, Source: "user", Verified: false,
			Warning: fmt.Sprintf("could not verify coordinates: %v", err),
		}, nil
	}

	dist := Distance(Point{userLat, userLng}, geocoded)
	dist = math.Round(dist*100) / 100

	if dist > r.MaxDistanceKm {
		return Location{}, fmt.Errorf(
			"coordinates are %.2fkm away from the address (max %.0fkm allowed), please verify the address or coordinates",
			dist, r.MaxDistanceKm)
	}

	return Location{
		Lat: userLat, Lng: userLng, Source: "user",
		Verified: true, DistanceKm: dist,
	}, nil
}
