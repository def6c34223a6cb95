package services

import (
	"context"
	"errors"
	"sync"

	"nestlist/internal/domain"
	"nestlist/internal/draft"
	"nestlist/internal/form"
	"nestlist/internal/geo"
)

var (
	ErrBadStep        = errors.New("unknown wizard step")
	ErrNotSubmittable = errors.New("listing is missing required fields")
)

const stepCount = 5
const addressStep = 0

// WizardSession is one user's in-flight wizard: the mutable draft, the
// one-way step-completion flags, and its own geocode resolver (the dedup
// cache key is per session and in-memory only).
type WizardSession struct {
	Draft     *domain.Draft
	Completed [stepCount]bool
	Location  *geo.Location
	resolver  *geo.Resolver
}

// StepResult is what one forward-navigation attempt produced.
type StepResult struct {
	Errors   map[string]string
	Passed   bool
	Progress form.Progress
	Location *geo.Location
	// Warning is set when the geocoder was unavailable and the user's
	// coordinates were accepted unverified.
	Warning string
}

// WizardService is the wizard controller: it owns draft lifecycle, invokes
// the step validator and the geocode resolver on transitions, recomputes
// progress on every change, and lets the draft store observe qualifying
// mutations.
type WizardService struct {
	Drafts   *draft.Store
	Listings *ListingService
	Geocoder geo.Geocoder
	MaxKm    float64

	mu       sync.Mutex
	sessions map[string]*WizardSession
}

func NewWizardService(drafts *draft.Store, listings *ListingService, g geo.Geocoder, maxKm float64) *WizardService {
	return &WizardService{
		Drafts:   drafts,
		Listings: listings,
		Geocoder: g,
		MaxKm:    maxKm,
		sessions: map[string]*WizardSession{},
	}
}

// Session returns the wizard state for a session, creating it with defaults
// on first use.
func (s *WizardService) Session(sid string) *WizardSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		sess = &WizardSession{
			Draft:    domain.NewDraft(),
			resolver: geo.NewResolver(s.Geocoder, s.MaxKm),
		}
		s.sessions[sid] = sess
	}
	return sess
}

// HasStoredDraft reports whether the recovery prompt should be shown.
func (s *WizardService) HasStoredDraft(sid string) bool {
	return s.Drafts.Pending(sid)
}

// RestoreDraft replaces the live draft with the stored one. On a corrupt
// payload the defaults stay in place and the error is user-reportable.
func (s *WizardService) RestoreDraft(sid string) error {
	d, err := s.Drafts.Restore(sid)
	if err != nil {
		return err
	}
	sess := s.Session(sid)
	s.mu.Lock()
	sess.Draft = d
	s.mu.Unlock()
	return nil
}

func (s *WizardService) DiscardDraft(sid string) error {
	return s.Drafts.Discard(sid)
}

// Apply copies posted form values onto the draft, recomputes progress, and
// opportunistically persists the draft once it is worth keeping.
func (s *WizardService) Apply(sid string, values map[string][]string) form.Progress {
	sess := s.Session(sid)
	form.Apply(sess.Draft, values)
	_ = s.Drafts.Save(sid, sess.Draft)
	return form.Score(sess.Draft)
}

// Advance validates one step (after applying the posted values) and, when
// leaving the address step, reconciles coordinates with the address. A
// passing step is marked completed; marks are never unset within a session.
func (s *WizardService) Advance(ctx context.Context, sid string, step int, values map[string][]string) (StepResult, error) {
	if step < 0 || step >= stepCount {
		return StepResult{}, ErrBadStep
	}
	sess := s.Session(sid)
	form.Apply(sess.Draft, values)
	defer func() { _ = s.Drafts.Save(sid, sess.Draft) }()

	res := StepResult{}
	res.Errors, res.Passed = form.ValidateStep(step, sess.Draft)

	if res.Passed && step == addressStep {
		loc, err := sess.resolver.Resolve(ctx, sess.Draft)
		if err != nil {
			res.Passed = false
			res.Errors["location"] = err.Error()
		} else {
			sess.Location = &loc
			res.Location = &loc
			res.Warning = loc.Warning
		}
	}

	if res.Passed {
		sess.Completed[step] = true
	}
	res.Progress = form.Score(sess.Draft)
	return res, nil
}

// Submit re-runs every step battery plus the required-field gate, publishes
// the listing, and clears the stored draft unconditionally on success.
func (s *WizardService) Submit(ctx context.Context, sid, userID string) (domain.Listing, map[string]string, error) {
	sess := s.Session(sid)

	allErrs := map[string]string{}
	for step := 0; step < stepCount; step++ {
		errs, _ := form.ValidateStep(step, sess.Draft)
		for k, v := range errs {
			allErrs[k] = v
		}
	}
	if !form.Score(sess.Draft).CanSubmit || len(allErrs) > 0 {
		if len(allErrs) == 0 {
			allErrs["form"] = ErrNotSubmittable.Error()
		}
		return domain.Listing{}, allErrs, ErrNotSubmittable
	}

	// Always re-resolve against the draft as it stands now: later steps can
	// post address edits, and the resolver's dedup makes the unchanged case
	// free. A location cached at step 0 is a UI hint, not an authority.
	loc, err := sess.resolver.Resolve(ctx, sess.Draft)
	if err != nil {
		return domain.Listing{}, map[string]string{"location": err.Error()}, err
	}
	sess.Location = &loc

	l, err := s.Listings.Publish(userID, sess.Draft, loc)
	if err != nil {
		return domain.Listing{}, nil, err
	}

	_ = s.Drafts.Clear(sid)
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return l, nil, nil
}

// RemovePhoto drops a photo from the draft after the media service confirmed
// deletion. Returns false if the id wasn't in the draft.
func (s *WizardService) RemovePhoto(sid, publicID string) bool {
	sess := s.Session(sid)
	d := sess.Draft
	if d.MainPhoto != nil && d.MainPhoto.PublicID == publicID {
		d.MainPhoto = nil
		_ = s.Drafts.Save(sid, d)
		return true
	}
	for i, p := range d.AdditionalPhotos {
		if p.PublicID == publicID {
			d.AdditionalPhotos = append(d.AdditionalPhotos[:i], d.AdditionalPhotos[i+1:]...)
			_ = s.Drafts.Save(sid, d)
			return true
		}
	}
	return false
}
