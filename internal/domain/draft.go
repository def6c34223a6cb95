package domain

// Photo is one hosted image as reported back by the upload widget.
type Photo struct {
	PublicID string `json:"publicId" db:"public_id"`
	URL      string `json:"url" db:"url"`
	Width    int    `json:"width" db:"width"`
	Height   int    `json:"height" db:"height"`
}

// Draft is the in-progress listing form state edited by the wizard.
// Numeric inputs stay strings until validated; empty string means "not entered".
type Draft struct {
	// Basic
	Type         string `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PropertyType string `json:"propertyType"`

	// Address
	PlotNumber    string `json:"plotNumber"`
	StreetAddress string `json:"streetAddress"`
	Region        string `json:"region"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	PostalCode    string `json:"postalCode"`

	// Coordinates
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`

	// Pricing
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	PriceType       string `json:"priceType"`
	SecurityDeposit string `json:"securityDeposit"`
	Tax             string `json:"tax"`
	MaintenanceFee  string `json:"maintenanceFee"`
	LeaseTerm       string `json:"leaseTerm"`

	// Year
	YearBuilt string `json:"yearBuilt"`

	// Size
	LivingArea    string `json:"livingArea"`
	Bedrooms      int    `json:"bedrooms"`
	Bathrooms     int    `json:"bathrooms"`
	OtherRooms    string `json:"otherRooms"`
	Stories       string `json:"stories"`
	CeilingHeight string `json:"ceilingHeight"`
	FloorNumber   string `json:"floorNumber"`

	// Features
	Parking               bool     `json:"parking"`
	Furnished             bool     `json:"furnished"`
	Flooring              []string `json:"flooring"`
	KitchenFeatures       []string `json:"kitchenFeatures"`
	Cooling               string   `json:"cooling"`
	AccessibilityFeatures string   `json:"accessibilityFeatures"`
	Plumbing              string   `json:"plumbing"`
	Electrical            string   `json:"electrical"`
	WaterSource           string   `json:"waterSource"`
	YardGarden            bool     `json:"yardGarden"`
	View                  string   `json:"view"`
	Gym                   bool     `json:"gym"`
	Pool                  bool     `json:"pool"`
	Privacy               string   `json:"privacy"`

	// Building rules
	BuildingRules string `json:"buildingRules"`

	// Photos
	MainPhoto        *Photo  `json:"mainPhoto"`
	AdditionalPhotos []Photo `json:"additionalPhotos"`
}

// NewDraft returns the defaults the wizard starts from.
func NewDraft() *Draft {
	return &Draft{
		Type:      "rent",
		Currency:  "USD",
		PriceType: "fixed",
		Bedrooms:  1,
		Bathrooms: 1,
	}
}
