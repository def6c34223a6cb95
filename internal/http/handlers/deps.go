package handlers

import (
	"nestlist/internal/config"
	"nestlist/internal/draft"
	"nestlist/internal/geo"
	"nestlist/internal/media"
	"nestlist/internal/repos"
	"nestlist/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ListingHandler *ListingHandler
	WizardHandler  *WizardHandler
	ProfileHandler *ProfileHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	listingRepo := repos.NewListingRepo(db)
	draftRepo := repos.NewDraftRepo(db)

	listingSvc := services.NewListingService(listingRepo)
	draftStore := draft.NewStore(draftRepo)
	geocoder := geo.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent)
	wizardSvc := services.NewWizardService(draftStore, listingSvc, geocoder, cfg.MaxCoordDistKm)
	mediaClient := media.NewClient(cfg.MediaAPIURL)

	return &Deps{
		ListingHandler: &ListingHandler{Listings: listingSvc},
		WizardHandler:  &WizardHandler{Wizard: wizardSvc, Auth: auth, Media: mediaClient},
		ProfileHandler: &ProfileHandler{Listings: listingSvc, Auth: auth},
	}
}
