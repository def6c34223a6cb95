package repos

import (
	"strings"

	"nestlist/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingCols = `
  id, user_id, type, name, price, currency, bedrooms, bathrooms, parking, furnished,
  address, street_address, city, state, country, postal_code,
  lat, lng, geo_source, geo_verified,
  details_json, main_photo_json, photos_json,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ListingRepo) Create(l *domain.Listing) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO listings(
	    id, user_id, type, name, price, currency, bedrooms, bathrooms, parking, furnished,
	    address, street_address, city, state, country, postal_code,
	    lat, lng, geo_source, geo_verified,
	    details_json, main_photo_json, photos_json
	  ) VALUES (
	    :id, :user_id, :type, :name, :price, :currency, :bedrooms, :bathrooms, :parking, :furnished,
	    :address, :street_address, :city, :state, :country, :postal_code,
	    :lat, :lng, :geo_source, :geo_verified,
	    :details_json, :main_photo_json, :photos_json
	  )`, l)
	return err
}

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	return l, err
}

// ListByType pages newest-first with a keyset cursor (created_at of the last
// row seen; empty cursor means start from the top).
func (r *ListingRepo) ListByType(typ string, limit int, cursor string) ([]domain.Listing, error) {
	var out []domain.Listing
	var err error
	if cursor == "" {
		err = r.db.Select(&out, `
		  SELECT `+listingCols+` FROM listings
		  WHERE type = ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`, typ, limit)
	} else {
		err = r.db.Select(&out, `
		  SELECT `+listingCols+` FROM listings
		  WHERE type = ? AND created_at < ?
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`, typ, cursor, limit)
	}
	return out, err
}

func (r *ListingRepo) ListByUser(userID string) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.Select(&out, `
	  SELECT `+listingCols+` FROM listings
	  WHERE user_id = ?
	  ORDER BY created_at DESC`, userID)
	return out, err
}

func (r *ListingRepo) Update(l *domain.Listing) error {
	_, err := r.db.NamedExec(`
	  UPDATE listings SET
	    type=:type, name=:name, price=:price, currency=:currency,
	    bedrooms=:bedrooms, bathrooms=:bathrooms, parking=:parking, furnished=:furnished,
	    address=:address, street_address=:street_address, city=:city, state=:state,
	    country=:country, postal_code=:postal_code,
	    lat=:lat, lng=:lng, geo_source=:geo_source, geo_verified=:geo_verified,
	    details_json=:details_json, main_photo_json=:main_photo_json, photos_json=:photos_json,
	    updated_at=CURRENT_TIMESTAMP
	  WHERE id=:id AND user_id=:user_id`, l)
	return err
}

func (r *ListingRepo) Delete(id, userID string) error {
	_, err := r.db.Exec(`DELETE FROM listings WHERE id=? AND user_id=?`, id, userID)
	return err
}

func (r *ListingRepo) Search(q, typ string, limit int) ([]domain.Listing, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(city) LIKE ?)`
		q = "%" + strings.ToLower(q) + "%"
		args = append(args, q, q)
	}
	if typ != "" {
		where += ` AND type = ?`
		args = append(args, typ)
	}
	args = append(args, limit)

	var out []domain.Listing
	err := r.db.Select(&out, `
	  SELECT `+listingCols+` FROM listings
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ?`, args...)
	return out, err
}
