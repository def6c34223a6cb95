package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"nestlist/internal/http/handlers"
	"nestlist/internal/repos"
	"nestlist/internal/services"
)

func TestProfileDeleteEnforcesOwnership(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	insertListing(t, db, "l-1", "rent", "Sunny Loft", "Boston") // owned by u-ada

	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-grace", "u-grace"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-ada", "u-ada"); err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: userRepo}
	profH := &handlers.ProfileHandler{
		Listings: services.NewListingService(repos.NewListingRepo(db)),
		Auth:     authSvc,
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Post("/profile/listings/delete", handlers.RequireUser(authSvc), profH.DeleteListing)

	post := func(sid string) *http.Response {
		form := url.Values{"listingId": {"l-1"}}
		req := httptest.NewRequest("POST", "/profile/listings/delete", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("sid-grace"); resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("non-owner delete should fail, got %d", resp.StatusCode)
	}
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM listings WHERE id='l-1'`); err != nil || count != 1 {
		t.Fatalf("listing should survive a non-owner delete, count=%d err=%v", count, err)
	}

	if resp := post("sid-ada"); resp.StatusCode != http.StatusFound {
		t.Fatalf("owner delete should redirect, got %d", resp.StatusCode)
	}
	if err := db.Get(&count, `SELECT COUNT(*) FROM listings WHERE id='l-1'`); err != nil || count != 0 {
		t.Fatalf("listing should be deleted by its owner, count=%d err=%v", count, err)
	}
}

func TestProfileEditEnforcesOwnership(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	insertListing(t, db, "l-1", "rent", "Sunny Loft", "Boston") // owned by u-ada

	userRepo := repos.NewUserRepo(db)
	if err := userRepo.BindSession("sid-grace", "u-grace"); err != nil {
		t.Fatal(err)
	}
	if err := userRepo.BindSession("sid-ada", "u-ada"); err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Users: userRepo}
	profH := &handlers.ProfileHandler{
		Listings: services.NewListingService(repos.NewListingRepo(db)),
		Auth:     authSvc,
	}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/profile/listings/:id/edit", handlers.RequireUser(authSvc), profH.EditForm)
	app.Post("/profile/listings/:id/edit", handlers.RequireUser(authSvc), profH.EditListing)

	get := func(sid string) *http.Response {
		req := httptest.NewRequest("GET", "/profile/listings/l-1/edit", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}
	post := func(sid string, form url.Values) *http.Response {
		req := httptest.NewRequest("POST", "/profile/listings/l-1/edit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}
	valid := url.Values{
		"name":      {"Renamed Loft"},
		"price":     {"1800"},
		"currency":  {"USD"},
		"bedrooms":  {"2"},
		"bathrooms": {"1"},
		"furnished": {"true"},
	}

	// Non-owners see the same 404 as a missing listing.
	if resp := get("sid-grace"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("non-owner edit form should 404, got %d", resp.StatusCode)
	}
	if resp := post("sid-grace", valid); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("non-owner edit should 404, got %d", resp.StatusCode)
	}
	var name string
	if err := db.Get(&name, `SELECT name FROM listings WHERE id='l-1'`); err != nil || name != "Sunny Loft" {
		t.Fatalf("non-owner edit must not change anything: name=%q err=%v", name, err)
	}

	// Owner sees the form and can save.
	if resp := get("sid-ada"); resp.StatusCode != http.StatusOK {
		t.Fatalf("owner edit form should render, got %d", resp.StatusCode)
	}
	resp := post("sid-ada", valid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("owner edit should redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/listings/l-1" {
		t.Fatalf("edit should land on the listing page, got %q", loc)
	}
	if err := db.Get(&name, `SELECT name FROM listings WHERE id='l-1'`); err != nil || name != "Renamed Loft" {
		t.Fatalf("edit not persisted: name=%q err=%v", name, err)
	}

	// Invalid values re-render the form and keep the stored listing intact.
	bad := url.Values{"name": {"Renamed Loft"}, "price": {"0"}}
	if resp := post("sid-ada", bad); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid edit should 400, got %d", resp.StatusCode)
	}
	var price float64
	if err := db.Get(&price, `SELECT price FROM listings WHERE id='l-1'`); err != nil || price != 1800 {
		t.Fatalf("rejected edit must not persist: price=%v err=%v", price, err)
	}
}
