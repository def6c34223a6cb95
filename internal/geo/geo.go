package geo

import (
	"math"
	"strings"

	"nestlist/internal/domain"
)

const earthRadiusKm = 6371

// BuildAddress joins the present address components into the canonical
// comma-separated string used as the sole geocoding query.
func BuildAddress(d *domain.Draft) string {
	parts := []string{}
	for _, p := range []string{
		d.PlotNumber, d.StreetAddress, d.Region,
		d.City, d.State, d.PostalCode, d.Country,
	} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Distance is the great-circle distance between two points in kilometers
// (Haversine).
func Distance(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 { return deg * (math.Pi / 180) }
