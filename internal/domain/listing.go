package domain

import "strings"

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
}

// Listing is a published property listing.
// Older rows carry a single free-text address; newer rows carry the structured
// components. DisplayAddress normalizes both shapes.
type Listing struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	Type          string  `db:"type"` // rent | sale
	Name          string  `db:"name"`
	Price         float64 `db:"price"`
	Currency      string  `db:"currency"`
	Bedrooms      int     `db:"bedrooms"`
	Bathrooms     int     `db:"bathrooms"`
	Parking       bool    `db:"parking"`
	Furnished     bool    `db:"furnished"`
	Address       string  `db:"address"` // legacy single-line form, may be empty
	StreetAddress string  `db:"street_address"`
	City          string  `db:"city"`
	State         string  `db:"state"`
	Country       string  `db:"country"`
	PostalCode    string  `db:"postal_code"`
	Lat           float64 `db:"lat"`
	Lng           float64 `db:"lng"`
	GeoSource     string  `db:"geo_source"` // user | geocoded
	GeoVerified   bool    `db:"geo_verified"`
	DetailsJSON   string  `db:"details_json"`
	MainPhotoJSON string  `db:"main_photo_json"`
	PhotosJSON    string  `db:"photos_json"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

// DisplayAddress prefers the structured components and falls back to the
// legacy single-line address for rows created before the structured form.
func (l Listing) DisplayAddress() string {
	parts := []string{}
	for _, p := range []string{l.StreetAddress, l.City, l.State, l.PostalCode, l.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return l.Address
}
