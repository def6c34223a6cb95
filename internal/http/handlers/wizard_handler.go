package handlers

import (
	"errors"

	"nestlist/internal/domain"
	"nestlist/internal/draft"
	"nestlist/internal/form"
	"nestlist/internal/log"
	"nestlist/internal/media"
	"nestlist/internal/services"

	"github.com/gofiber/fiber/v2"
)

type WizardHandler struct {
	Wizard *services.WizardService
	Auth   *services.AuthService
	Media  *media.Client
}

func formValues(c *fiber.Ctx) map[string][]string {
	vals := map[string][]string{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		vals[string(k)] = append(vals[string(k)], string(v))
	})
	return vals
}

// Show renders the requested wizard step. On first visit with a stored draft
// the recovery prompt is shown instead of silently applying it.
func (h *WizardHandler) Show(c *fiber.Ctx) error {
	sid := ensureSID(c)
	step := c.QueryInt("step", 0)
	if step < 0 || step > 4 {
		step = 0
	}
	sess := h.Wizard.Session(sid)
	return render(c, "wizard", fiber.Map{
		"Step":        step,
		"Steps":       form.Steps(),
		"Draft":       sess.Draft,
		"Completed":   sess.Completed,
		"Progress":    form.Score(sess.Draft),
		"Errors":      map[string]string{},
		"PromptDraft": h.Wizard.HasStoredDraft(sid),
	})
}

// Advance validates the posted step and either moves forward or re-renders
// the step with inline errors and a toast.
func (h *WizardHandler) Advance(c *fiber.Ctx) error {
	sid := ensureSID(c)
	step, err := c.ParamsInt("n")
	if err != nil {
		return c.Status(400).SendString("bad step")
	}

	res, err := h.Wizard.Advance(c.Context(), sid, step, formValues(c))
	if errors.Is(err, services.ErrBadStep) {
		return c.Status(400).SendString("bad step")
	}
	if err != nil {
		log.Error(c, "wizard.advance.fail", err, map[string]any{"step": step})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}

	sess := h.Wizard.Session(sid)
	if !res.Passed {
		log.Info(c, "wizard.step.invalid", map[string]any{"step": step, "errors": len(res.Errors)})
		c.Status(400)
		return render(c, "wizard", fiber.Map{
			"Step":      step,
			"Steps":     form.Steps(),
			"Draft":     sess.Draft,
			"Completed": sess.Completed,
			"Progress":  res.Progress,
			"Errors":    res.Errors,
			"Toast":     "Please fix the highlighted fields",
		})
	}

	data := fiber.Map{
		"Step":      step + 1,
		"Steps":     form.Steps(),
		"Draft":     sess.Draft,
		"Completed": sess.Completed,
		"Progress":  res.Progress,
		"Errors":    map[string]string{},
	}
	if res.Warning != "" {
		// Geocoder was down; user coordinates accepted unverified.
		data["Toast"] = res.Warning
	}
	log.Info(c, "wizard.step.pass", map[string]any{"step": step})
	return render(c, "wizard", data)
}

func (h *WizardHandler) RestoreDraft(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Wizard.RestoreDraft(sid); err != nil {
		msg := "Could not restore draft"
		if errors.Is(err, draft.ErrCorrupt) {
			msg = "Saved draft was unreadable, starting fresh"
		}
		log.Error(c, "wizard.draft.restore.fail", err, nil)
		sess := h.Wizard.Session(sid)
		return render(c, "wizard", fiber.Map{
			"Step": 0, "Steps": form.Steps(), "Draft": sess.Draft,
			"Completed": sess.Completed, "Progress": form.Score(sess.Draft),
			"Errors": map[string]string{}, "Toast": msg,
		})
	}
	log.Audit(c, "wizard.draft.restore", nil)
	return c.Redirect("/listings/new")
}

func (h *WizardHandler) DiscardDraft(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Wizard.DiscardDraft(sid); err != nil {
		log.Error(c, "wizard.draft.discard.fail", err, nil)
	}
	log.Audit(c, "wizard.draft.discard", nil)
	return c.Redirect("/listings/new")
}

func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}

	l, errs, err := h.Wizard.Submit(c.Context(), sid, u.ID)
	if err != nil {
		if errs == nil {
			errs = map[string]string{}
		}
		sess := h.Wizard.Session(sid)
		log.Info(c, "wizard.submit.blocked", map[string]any{"errors": len(errs)})
		c.Status(400)
		return render(c, "wizard", fiber.Map{
			"Step": 4, "Steps": form.Steps(), "Draft": sess.Draft,
			"Completed": sess.Completed, "Progress": form.Score(sess.Draft),
			"Errors": errs, "Toast": "Listing is not ready to publish",
		})
	}

	log.Audit(c, "wizard.submit.success", map[string]any{"listing": l.ID})
	return c.Redirect("/listings/" + l.ID)
}

type photoPayload struct {
	Slot  string       `json:"slot"` // main | additional
	Photo domain.Photo `json:"photo"`
}

// AttachPhoto records an upload-widget result on the draft.
func (h *WizardHandler) AttachPhoto(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var p photoPayload
	if err := c.BodyParser(&p); err != nil || p.Photo.PublicID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing photo"})
	}
	sess := h.Wizard.Session(sid)
	if p.Slot == "main" {
		sess.Draft.MainPhoto = &p.Photo
	} else {
		sess.Draft.AdditionalPhotos = append(sess.Draft.AdditionalPhotos, p.Photo)
	}
	prog := h.Wizard.Apply(sid, nil)
	log.Audit(c, "wizard.photo.attach", map[string]any{"publicId": p.Photo.PublicID, "slot": p.Slot})
	return c.JSON(fiber.Map{"ok": true, "progress": prog.Percentage})
}

// DeletePhoto asks the media service to delete first and only then removes
// the photo from the draft, so a failed delete leaves the list intact for
// retry.
func (h *WizardHandler) DeletePhoto(c *fiber.Ctx) error {
	sid := ensureSID(c)
	publicID := c.FormValue("publicId")
	if publicID == "" {
		var p struct {
			PublicID string `json:"publicId"`
		}
		_ = c.BodyParser(&p)
		publicID = p.PublicID
	}
	if publicID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing publicId"})
	}

	if err := h.Media.Delete(c.Context(), publicID); err != nil {
		log.Error(c, "wizard.photo.delete.fail", err, map[string]any{"publicId": publicID})
		return c.Status(502).JSON(fiber.Map{"error": "Image deletion failed, please try again"})
	}

	h.Wizard.RemovePhoto(sid, publicID)
	log.Audit(c, "wizard.photo.delete", map[string]any{"publicId": publicID})
	return c.JSON(fiber.Map{"ok": true})
}
