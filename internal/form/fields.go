package form

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"nestlist/internal/domain"
)

// Field binds one form attribute to its fill predicate. The registry is data,
// not code: the scoring engine and the step validator both walk these tables
// instead of hand-written per-field conditionals.
type Field struct {
	Key      string
	Validate func(d *domain.Draft) bool
}

var (
	reLatitude  = regexp.MustCompile(`^[-+]?([1-8]?\d(\.\d+)?|90(\.0+)?)$`)
	reLongitude = regexp.MustCompile(`^[-+]?((1[0-7]\d|[1-9]?\d)(\.\d+)?|180(\.0+)?)$`)
)

func trimLen(s string, min, max int) bool {
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// num parses a form number; ok is false for blanks and garbage.
func num(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func numIn(s string, min, max float64) bool {
	f, ok := num(s)
	return ok && f >= min && f <= max
}

// RequiredFields carry 80% of the completion score and gate submission.
var RequiredFields = []Field{
	{"type", func(d *domain.Draft) bool { return notBlank(d.Type) }},
	{"name", func(d *domain.Draft) bool { return trimLen(d.Name, 3, 100) }},
	{"description", func(d *domain.Draft) bool { return trimLen(d.Description, 10, 500) }},
	{"streetAddress", func(d *domain.Draft) bool { return trimLen(d.StreetAddress, 3, 100) }},
	{"city", func(d *domain.Draft) bool { return trimLen(d.City, 2, 20) }},
	{"state", func(d *domain.Draft) bool { return trimLen(d.State, 2, 20) }},
	{"country", func(d *domain.Draft) bool { return trimLen(d.Country, 2, 20) }},
	{"postalCode", func(d *domain.Draft) bool { return trimLen(d.PostalCode, 3, 10) }},
	{"price", func(d *domain.Draft) bool { f, ok := num(d.Price); return ok && f > 0 }},
	{"currency", func(d *domain.Draft) bool { return notBlank(d.Currency) }},
	{"priceType", func(d *domain.Draft) bool { return notBlank(d.PriceType) }},
	{"yearBuilt", func(d *domain.Draft) bool {
		return numIn(d.YearBuilt, 1800, float64(time.Now().Year()))
	}},
	{"bedrooms", func(d *domain.Draft) bool { return d.Bedrooms >= 0 && d.Bedrooms <= 200 }},
	{"bathrooms", func(d *domain.Draft) bool { return d.Bathrooms >= 0 && d.Bathrooms <= 250 }},
	{"parking", func(d *domain.Draft) bool { return true }},
	{"furnished", func(d *domain.Draft) bool { return true }},
	{"mainPhoto", func(d *domain.Draft) bool { return d.MainPhoto != nil && d.MainPhoto.PublicID != "" }},
}

// OptionalFields carry the remaining 20%; they enrich a listing but never
// block submission.
var OptionalFields = []Field{
	{"propertyType", func(d *domain.Draft) bool { return notBlank(d.PropertyType) }},
	{"plotNumber", func(d *domain.Draft) bool { return trimLen(d.PlotNumber, 1, 10) }},
	{"region", func(d *domain.Draft) bool { return trimLen(d.Region, 1, 50) }},
	{"latitude", func(d *domain.Draft) bool { return d.Latitude != "" && reLatitude.MatchString(d.Latitude) }},
	{"longitude", func(d *domain.Draft) bool { return d.Longitude != "" && reLongitude.MatchString(d.Longitude) }},
	{"securityDeposit", func(d *domain.Draft) bool { f, ok := num(d.SecurityDeposit); return ok && f > 0 }},
	{"tax", func(d *domain.Draft) bool { return numIn(d.Tax, 0, 100) }},
	{"maintenanceFee", func(d *domain.Draft) bool { f, ok := num(d.MaintenanceFee); return ok && f > 0 }},
	{"leaseTerm", func(d *domain.Draft) bool { return notBlank(d.LeaseTerm) }},
	{"livingArea", func(d *domain.Draft) bool { f, ok := num(d.LivingArea); return ok && f > 0 && f <= 500000 }},
	{"otherRooms", func(d *domain.Draft) bool { return trimLen(d.OtherRooms, 1, 200) }},
	{"stories", func(d *domain.Draft) bool { f, ok := num(d.Stories); return ok && f > 0 && f <= 100 }},
	{"ceilingHeight", func(d *domain.Draft) bool { f, ok := num(d.CeilingHeight); return ok && f > 0 && f <= 100 }},
	{"floorNumber", func(d *domain.Draft) bool { return numIn(d.FloorNumber, 0, 150) }},
	{"flooring", func(d *domain.Draft) bool { return len(d.Flooring) > 0 }},
	{"kitchenFeatures", func(d *domain.Draft) bool { return len(d.KitchenFeatures) > 0 }},
	{"cooling", func(d *domain.Draft) bool { return notBlank(d.Cooling) }},
	{"plumbing", func(d *domain.Draft) bool { return trimLen(d.Plumbing, 1, 175) }},
	{"electrical", func(d *domain.Draft) bool { return trimLen(d.Electrical, 1, 175) }},
	{"waterSource", func(d *domain.Draft) bool { return trimLen(d.WaterSource, 1, 175) }},
	{"accessibilityFeatures", func(d *domain.Draft) bool { return trimLen(d.AccessibilityFeatures, 1, 175) }},
	{"yardGarden", func(d *domain.Draft) bool { return true }},
	{"gym", func(d *domain.Draft) bool { return true }},
	{"pool", func(d *domain.Draft) bool { return true }},
	{"view", func(d *domain.Draft) bool { return trimLen(d.View, 1, 175) }},
	{"privacy", func(d *domain.Draft) bool { return trimLen(d.Privacy, 1, 175) }},
	{"buildingRules", func(d *domain.Draft) bool { return trimLen(d.BuildingRules, 1, 300) }},
	{"additionalPhotos", func(d *domain.Draft) bool { return len(d.AdditionalPhotos) > 0 }},
}
