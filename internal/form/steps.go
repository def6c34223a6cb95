package form

import (
	"fmt"
	"time"

	"nestlist/internal/domain"
)

// Step is one ordered stage of the listing wizard.
type Step struct {
	ID       string
	Title    string
	Subtitle string
}

// Steps returns the fixed wizard stages in order.
func Steps() []Step {
	return []Step{
		{ID: "property", Title: "Property", Subtitle: "Basic info & location"},
		{ID: "pricing", Title: "Pricing", Subtitle: "Price & terms"},
		{ID: "details", Title: "Details", Subtitle: "Size & features"},
		{ID: "photos", Title: "Photos", Subtitle: "Upload images"},
		{ID: "review", Title: "Review", Subtitle: "Check & publish"},
	}
}

// Price ceilings by listing type.
const (
	maxRentPrice = 1_000_000
	maxSalePrice = 2_500_000_000
)

// MaxPrice is the price ceiling for a listing type; it gates both the wizard
// pricing step and later owner edits.
func MaxPrice(typ string) float64 {
	if typ == "rent" {
		return maxRentPrice
	}
	return maxSalePrice
}

// ValidateStep runs the fixed battery of checks for one step and returns the
// per-field error map. The map is rebuilt wholesale on every pass; a missing
// key means the field is currently valid.
func ValidateStep(step int, d *domain.Draft) (map[string]string, bool) {
	errs := map[string]string{}
	switch step {
	case 0:
		validateProperty(d, errs)
	case 1:
		validatePricing(d, errs)
	case 2:
		validateDetails(d, errs)
	case 3:
		if d.MainPhoto == nil || d.MainPhoto.PublicID == "" {
			errs["mainPhoto"] = "A main photo is required"
		}
	case 4:
		// Review step has no battery of its own; submission re-runs all steps.
	}
	return errs, len(errs) == 0
}

func validateProperty(d *domain.Draft, errs map[string]string) {
	if !notBlank(d.Type) {
		errs["type"] = "Listing type is required"
	}
	if !trimLen(d.Name, 3, 100) {
		errs["name"] = "Name must be 3-100 characters"
	}
	if !trimLen(d.Description, 10, 500) {
		errs["description"] = "Description must be 10-500 characters"
	}
	if notBlank(d.PlotNumber) && !trimLen(d.PlotNumber, 1, 10) {
		errs["plotNumber"] = "Plot number must be at most 10 characters"
	}
	if !trimLen(d.StreetAddress, 3, 100) {
		errs["streetAddress"] = "Street address must be 3-100 characters"
	}
	if notBlank(d.Region) && !trimLen(d.Region, 1, 50) {
		errs["region"] = "Region must be at most 50 characters"
	}
	if !trimLen(d.City, 2, 20) {
		errs["city"] = "City must be 2-20 characters"
	}
	if !trimLen(d.State, 2, 20) {
		errs["state"] = "State must be 2-20 characters"
	}
	if !trimLen(d.Country, 2, 20) {
		errs["country"] = "Country must be 2-20 characters"
	}
	if !trimLen(d.PostalCode, 3, 10) {
		errs["postalCode"] = "Postal code must be 3-10 characters"
	}
	// Format only; range and address agreement are checked at resolution time.
	if d.Latitude != "" && !reLatitude.MatchString(d.Latitude) {
		errs["latitude"] = "Latitude must be a number between -90 and 90"
	}
	if d.Longitude != "" && !reLongitude.MatchString(d.Longitude) {
		errs["longitude"] = "Longitude must be a number between -180 and 180"
	}
}

func validatePricing(d *domain.Draft, errs map[string]string) {
	price, ok := num(d.Price)
	if !ok || price <= 0 {
		errs["price"] = "Price must be greater than 0"
	} else {
		ceiling := MaxPrice(d.Type)
		if price > ceiling {
			errs["price"] = fmt.Sprintf("Price cannot exceed %.0f for this listing type", ceiling)
		}
	}
	if notBlank(d.SecurityDeposit) {
		dep, ok := num(d.SecurityDeposit)
		switch {
		case !ok || dep <= 0:
			errs["securityDeposit"] = "Security deposit must be greater than 0"
		case price > 0 && dep > price*0.5:
			errs["securityDeposit"] = "Security deposit cannot exceed 50% of the price"
		}
	}
	if notBlank(d.MaintenanceFee) {
		fee, ok := num(d.MaintenanceFee)
		switch {
		case !ok || fee <= 0:
			errs["maintenanceFee"] = "Maintenance fee must be greater than 0"
		case price > 0 && fee > price*0.2:
			errs["maintenanceFee"] = "Maintenance fee cannot exceed 20% of the price"
		}
	}
	if notBlank(d.Tax) && !numIn(d.Tax, 0, 100) {
		errs["tax"] = "Tax must be between 0 and 100"
	}
	if !numIn(d.YearBuilt, 1800, float64(time.Now().Year())) {
		errs["yearBuilt"] = fmt.Sprintf("Year built must be between 1800 and %d", time.Now().Year())
	}
}

func validateDetails(d *domain.Draft, errs map[string]string) {
	if notBlank(d.LivingArea) {
		if f, ok := num(d.LivingArea); !ok || f <= 0 || f > 500000 {
			errs["livingArea"] = "Living area must be between 1 and 500000"
		}
	}
	if d.Bedrooms < 0 || d.Bedrooms > 200 {
		errs["bedrooms"] = "Bedrooms must be between 0 and 200"
	}
	if d.Bathrooms < 0 || d.Bathrooms > 250 {
		errs["bathrooms"] = "Bathrooms must be between 0 and 250"
	}
	if notBlank(d.Stories) {
		if f, ok := num(d.Stories); !ok || f <= 0 || f > 100 {
			errs["stories"] = "Stories must be between 1 and 100"
		}
	}
	if notBlank(d.CeilingHeight) {
		if f, ok := num(d.CeilingHeight); !ok || f <= 0 || f > 100 {
			errs["ceilingHeight"] = "Ceiling height must be between 1 and 100"
		}
	}
	if notBlank(d.FloorNumber) && !numIn(d.FloorNumber, 0, 150) {
		errs["floorNumber"] = "Floor number must be between 0 and 150"
	}
	if notBlank(d.OtherRooms) && !trimLen(d.OtherRooms, 1, 200) {
		errs["otherRooms"] = "Other rooms must be at most 200 characters"
	}
	for key, val := range map[string]string{
		"plumbing":              d.Plumbing,
		"electrical":            d.Electrical,
		"waterSource":           d.WaterSource,
		"accessibilityFeatures": d.AccessibilityFeatures,
		"view":                  d.View,
		"privacy":               d.Privacy,
	} {
		if notBlank(val) && !trimLen(val, 1, 175) {
			errs[key] = "Must be at most 175 characters"
		}
	}
	if notBlank(d.BuildingRules) && !trimLen(d.BuildingRules, 1, 300) {
		errs["buildingRules"] = "Building rules must be at most 300 characters"
	}
}
