package handlers

import (
	"nestlist/internal/log"
	"nestlist/internal/services"
	"nestlist/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
}

func (h *ListingHandler) Home(c *fiber.Ctx) error {
	rent, _, err := h.Listings.Browse("rent", 4, "")
	if err != nil {
		log.Error(c, "home.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load listings"})
	}
	sale, _, err := h.Listings.Browse("sale", 4, "")
	if err != nil {
		log.Error(c, "home.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load listings"})
	}
	return render(c, "home", fiber.Map{"Rent": rent, "Sale": sale})
}

func (h *ListingHandler) Category(c *fiber.Ctx) error {
	typ, ok := validate.ListingType(c.Params("type"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Unknown category"})
	}
	cursor := c.Query("after")
	listings, next, err := h.Listings.Browse(typ, 12, cursor)
	if err != nil {
		log.Error(c, "category.load.fail", err, map[string]any{"type": typ})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load listings"})
	}
	return render(c, "category", fiber.Map{"Type": typ, "Listings": listings, "Next": next})
}

func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "listing"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	l, err := h.Listings.Get(id)
	if err != nil || l.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This listing is no longer available"})
	}
	return render(c, "listing", fiber.Map{"L": l, "Address": l.DisplayAddress()})
}

func (h *ListingHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return c.Status(400).Render("notfound", fiber.Map{"Message": "Invalid search query"})
	}
	typ, _ := validate.ListingType(c.Query("type"))
	listings, err := h.Listings.Search(q, typ, 12)
	if err != nil {
		log.Error(c, "search.fail", err, map[string]any{"q": q})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Search failed"})
	}
	return render(c, "category", fiber.Map{"Type": typ, "Listings": listings, "Query": q})
}
