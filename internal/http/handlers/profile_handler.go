package handlers

import (
	"errors"
	"strconv"

	"nestlist/internal/domain"
	"nestlist/internal/log"
	"nestlist/internal/services"
	"nestlist/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Listings *services.ListingService
	Auth     *services.AuthService
}

func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	listings, err := h.Listings.ByOwner(u.ID)
	if err != nil {
		log.Error(c, "profile.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your listings"})
	}
	return render(c, "profile", fiber.Map{"Listings": listings})
}

// EditForm shows the edit page for one of the signed-in user's listings.
// Non-owners get the same 404 as a missing listing.
func (h *ProfileHandler) EditForm(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	l, err := h.Listings.Get(id)
	if err != nil || l.ID == "" || l.UserID != u.ID {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	return render(c, "edit", fiber.Map{"L": l})
}

func (h *ProfileHandler) EditListing(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}

	bedrooms, _ := strconv.Atoi(c.FormValue("bedrooms"))
	bathrooms, _ := strconv.Atoi(c.FormValue("bathrooms"))
	edit := services.ListingEdit{
		Name:      c.FormValue("name"),
		Price:     c.FormValue("price"),
		Currency:  c.FormValue("currency"),
		Bedrooms:  bedrooms,
		Bathrooms: bathrooms,
		Parking:   c.FormValue("parking") == "true",
		Furnished: c.FormValue("furnished") == "true",
	}

	l, err := h.Listings.Edit(id, u.ID, edit)
	if errors.Is(err, services.ErrNotOwner) {
		log.Security(c, "profile.listing.edit.denied", map[string]any{"listing": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	if err != nil {
		// Re-render the form with the user's values so nothing is lost.
		cur, gerr := h.Listings.Get(id)
		if gerr != nil || cur.ID == "" {
			return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
		}
		cur.Name = edit.Name
		cur.Currency = edit.Currency
		cur.Bedrooms = edit.Bedrooms
		cur.Bathrooms = edit.Bathrooms
		cur.Parking = edit.Parking
		cur.Furnished = edit.Furnished
		c.Status(400)
		return render(c, "edit", fiber.Map{"L": cur, "Price": edit.Price, "Err": err.Error()})
	}
	log.Audit(c, "profile.listing.edit", map[string]any{"listing": id})
	return c.Redirect("/listings/" + l.ID)
}

func (h *ProfileHandler) DeleteListing(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.FormValue("listingId"))
	if !ok {
		return c.Status(400).SendString("missing listingId")
	}
	if err := h.Listings.Delete(id, u.ID); err != nil {
		log.Error(c, "profile.listing.delete.fail", err, map[string]any{"listing": id})
		return c.Status(500).SendString("Could not delete listing")
	}
	log.Audit(c, "profile.listing.delete", map[string]any{"listing": id})
	return c.Redirect("/profile")
}
