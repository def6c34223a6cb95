package form

import (
	"strconv"
	"strings"

	"nestlist/internal/domain"
)

// setters maps posted field names onto the draft. Unknown keys are ignored so
// a stale form cannot corrupt the draft.
var setters = map[string]func(d *domain.Draft, v []string){
	"type":            func(d *domain.Draft, v []string) { d.Type = first(v) },
	"name":            func(d *domain.Draft, v []string) { d.Name = first(v) },
	"description":     func(d *domain.Draft, v []string) { d.Description = first(v) },
	"propertyType":    func(d *domain.Draft, v []string) { d.PropertyType = first(v) },
	"plotNumber":      func(d *domain.Draft, v []string) { d.PlotNumber = first(v) },
	"streetAddress":   func(d *domain.Draft, v []string) { d.StreetAddress = first(v) },
	"region":          func(d *domain.Draft, v []string) { d.Region = first(v) },
	"city":            func(d *domain.Draft, v []string) { d.City = first(v) },
	"state":           func(d *domain.Draft, v []string) { d.State = first(v) },
	"country":         func(d *domain.Draft, v []string) { d.Country = first(v) },
	"postalCode":      func(d *domain.Draft, v []string) { d.PostalCode = first(v) },
	"latitude":        func(d *domain.Draft, v []string) { d.Latitude = first(v) },
	"longitude":       func(d *domain.Draft, v []string) { d.Longitude = first(v) },
	"price":           func(d *domain.Draft, v []string) { d.Price = first(v) },
	"currency":        func(d *domain.Draft, v []string) { d.Currency = first(v) },
	"priceType":       func(d *domain.Draft, v []string) { d.PriceType = first(v) },
	"securityDeposit": func(d *domain.Draft, v []string) { d.SecurityDeposit = first(v) },
	"tax":             func(d *domain.Draft, v []string) { d.Tax = first(v) },
	"maintenanceFee":  func(d *domain.Draft, v []string) { d.MaintenanceFee = first(v) },
	"leaseTerm":       func(d *domain.Draft, v []string) { d.LeaseTerm = first(v) },
	"yearBuilt":       func(d *domain.Draft, v []string) { d.YearBuilt = first(v) },
	"livingArea":      func(d *domain.Draft, v []string) { d.LivingArea = first(v) },
	"bedrooms":        func(d *domain.Draft, v []string) { d.Bedrooms = intOr(first(v), d.Bedrooms) },
	"bathrooms":       func(d *domain.Draft, v []string) { d.Bathrooms = intOr(first(v), d.Bathrooms) },
	"otherRooms":      func(d *domain.Draft, v []string) { d.OtherRooms = first(v) },
	"stories":         func(d *domain.Draft, v []string) { d.Stories = first(v) },
	"ceilingHeight":   func(d *domain.Draft, v []string) { d.CeilingHeight = first(v) },
	"floorNumber":     func(d *domain.Draft, v []string) { d.FloorNumber = first(v) },
	"parking":         func(d *domain.Draft, v []string) { d.Parking = first(v) == "true" },
	"furnished":       func(d *domain.Draft, v []string) { d.Furnished = first(v) == "true" },
	"flooring":        func(d *domain.Draft, v []string) { d.Flooring = clean(v) },
	"kitchenFeatures": func(d *domain.Draft, v []string) { d.KitchenFeatures = clean(v) },
	"cooling":         func(d *domain.Draft, v []string) { d.Cooling = first(v) },
	"accessibilityFeatures": func(d *domain.Draft, v []string) {
		d.AccessibilityFeatures = first(v)
	},
	"plumbing":      func(d *domain.Draft, v []string) { d.Plumbing = first(v) },
	"electrical":    func(d *domain.Draft, v []string) { d.Electrical = first(v) },
	"waterSource":   func(d *domain.Draft, v []string) { d.WaterSource = first(v) },
	"yardGarden":    func(d *domain.Draft, v []string) { d.YardGarden = first(v) == "true" },
	"view":          func(d *domain.Draft, v []string) { d.View = first(v) },
	"gym":           func(d *domain.Draft, v []string) { d.Gym = first(v) == "true" },
	"pool":          func(d *domain.Draft, v []string) { d.Pool = first(v) == "true" },
	"privacy":       func(d *domain.Draft, v []string) { d.Privacy = first(v) },
	"buildingRules": func(d *domain.Draft, v []string) { d.BuildingRules = first(v) },
}

// Apply copies posted values onto the draft, field by field.
func Apply(d *domain.Draft, values map[string][]string) {
	for key, v := range values {
		if set, ok := setters[key]; ok {
			set(d, v)
		}
	}
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return strings.TrimSpace(v[0])
}

func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func clean(v []string) []string {
	out := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
