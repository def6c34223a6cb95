package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nestlist/internal/domain"
	"nestlist/internal/form"
	"nestlist/internal/geo"
	"nestlist/internal/repos"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("listing belongs to another user")

type ListingService struct {
	Repo *repos.ListingRepo
}

func NewListingService(r *repos.ListingRepo) *ListingService { return &ListingService{Repo: r} }

// Publish turns a submittable draft plus its resolved location into a stored
// listing. Card columns are denormalized for browsing; the full draft rides
// along as details_json.
func (s *ListingService) Publish(userID string, d *domain.Draft, loc geo.Location) (domain.Listing, error) {
	price, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		return domain.Listing{}, errors.New("price is not a number")
	}

	details, err := json.Marshal(d)
	if err != nil {
		return domain.Listing{}, err
	}
	mainPhoto := ""
	if d.MainPhoto != nil {
		b, _ := json.Marshal(d.MainPhoto)
		mainPhoto = string(b)
	}
	photos, _ := json.Marshal(d.AdditionalPhotos)

	l := domain.Listing{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          d.Type,
		Name:          d.Name,
		Price:         price,
		Currency:      d.Currency,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Parking:       d.Parking,
		Furnished:     d.Furnished,
		StreetAddress: d.StreetAddress,
		City:          d.City,
		State:         d.State,
		Country:       d.Country,
		PostalCode:    d.PostalCode,
		Lat:           loc.Lat,
		Lng:           loc.Lng,
		GeoSource:     loc.Source,
		GeoVerified:   loc.Verified,
		DetailsJSON:   string(details),
		MainPhotoJSON: mainPhoto,
		PhotosJSON:    string(photos),
	}
	if err := s.Repo.Create(&l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *ListingService) Get(id string) (domain.Listing, error) {
	return s.Repo.Get(id)
}

func (s *ListingService) Browse(typ string, limit int, cursor string) ([]domain.Listing, string, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	out, err := s.Repo.ListByType(typ, limit, cursor)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(out) == limit {
		next = out[len(out)-1].CreatedAt
	}
	return out, next, nil
}

// ListingEdit is the owner-editable slice of a published listing. Address and
// coordinates are deliberately absent: changing those means re-running the
// wizard so the location is reconciled again.
type ListingEdit struct {
	Name      string
	Price     string
	Currency  string
	Bedrooms  int
	Bathrooms int
	Parking   bool
	Furnished bool
}

// Edit applies an owner's changes to their published listing.
func (s *ListingService) Edit(id, userID string, e ListingEdit) (domain.Listing, error) {
	l, err := s.Repo.Get(id)
	if err != nil {
		return domain.Listing{}, err
	}
	if l.UserID != userID {
		return domain.Listing{}, ErrNotOwner
	}

	name := strings.TrimSpace(e.Name)
	if len(name) < 3 || len(name) > 100 {
		return domain.Listing{}, errors.New("name must be 3-100 characters")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(e.Price), 64)
	if err != nil || price <= 0 {
		return domain.Listing{}, errors.New("price must be greater than 0")
	}
	if ceiling := form.MaxPrice(l.Type); price > ceiling {
		return domain.Listing{}, fmt.Errorf("price cannot exceed %.0f for this listing type", ceiling)
	}
	if e.Bedrooms < 0 || e.Bedrooms > 200 {
		return domain.Listing{}, errors.New("bedrooms must be between 0 and 200")
	}
	if e.Bathrooms < 0 || e.Bathrooms > 250 {
		return domain.Listing{}, errors.New("bathrooms must be between 0 and 250")
	}

	l.Name = name
	l.Price = price
	if c := strings.TrimSpace(e.Currency); c != "" {
		l.Currency = c
	}
	l.Bedrooms = e.Bedrooms
	l.Bathrooms = e.Bathrooms
	l.Parking = e.Parking
	l.Furnished = e.Furnished

	if err := s.Repo.Update(&l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *ListingService) ByOwner(userID string) ([]domain.Listing, error) {
	return s.Repo.ListByUser(userID)
}

func (s *ListingService) Delete(id, userID string) error {
	l, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if l.UserID != userID {
		return ErrNotOwner
	}
	return s.Repo.Delete(id, userID)
}

func (s *ListingService) Search(q, typ string, limit int) ([]domain.Listing, error) {
	if limit <= 0 || limit > 50 {
		limit = 12
	}
	return s.Repo.Search(q, typ, limit)
}
