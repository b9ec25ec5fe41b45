// Package forms is the record side of the app: owner-scoped form CRUD,
// public response submission, and the owner's dashboard projections.
package forms

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/analytics"
	"Backend-Formcraft/src/services/validation"

	"github.com/google/uuid"
)

// DefaultTitle is used when a form is saved with a blank title.
const DefaultTitle = "Untitled form"

// Service owns the form rules on top of a Store. Every owner-scoped method
// takes the calling principal explicitly.
type Service struct {
	store    Store
	cache    CountCache
	notifier Notifier
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithCountCache(c CountCache) Option { return func(s *Service) { s.cache = c } }

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is truncated to what mongo stores so updatedAt round-trips as a
// compare-and-swap token.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func requireOwner(p models.Principal) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	return nil
}

// ListForms returns the caller's forms, most recently updated first.
func (s *Service) ListForms(ctx context.Context, p models.Principal, params models.FormListParams) ([]models.FormRecord, error) {
	if err := requireOwner(p); err != nil {
		return nil, err
	}
	forms, err := s.store.ListFormsByOwner(ctx, p.UserID, params.Normalize())
	if err != nil {
		return nil, persistence("list forms", err)
	}
	return forms, nil
}

// ListFormCards is ListForms plus the response count of each form.
func (s *Service) ListFormCards(ctx context.Context, p models.Principal, params models.FormListParams) ([]models.FormCard, error) {
	forms, err := s.ListForms(ctx, p, params)
	if err != nil {
		return nil, err
	}
	cards := make([]models.FormCard, 0, len(forms))
	for _, f := range forms {
		count, err := s.countResponses(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		desc := f.Description
		if strings.TrimSpace(desc) == "" {
			desc = "No description"
		}
		cards = append(cards, models.FormCard{
			ID:               f.ID,
			Title:            f.Title,
			Description:      desc,
			Status:           f.Status,
			CreatedAt:        f.CreatedAt,
			UpdatedAt:        f.UpdatedAt,
			SubmissionsCount: count,
		})
	}
	return cards, nil
}

// GetForm returns a form owned by the caller. Forms of other owners are
// reported as not found.
func (s *Service) GetForm(ctx context.Context, p models.Principal, id string) (*models.FormRecord, error) {
	if err := requireOwner(p); err != nil {
		return nil, err
	}
	form, err := s.store.GetForm(ctx, id)
	if err != nil {
		return nil, persistence("get form", err)
	}
	if form.OwnerID != p.UserID {
		return nil, ErrNotFound
	}
	return form, nil
}

// GetPublishedForm is the public lookup; only published forms are visible.
func (s *Service) GetPublishedForm(ctx context.Context, id string) (*models.FormRecord, error) {
	form, err := s.store.GetForm(ctx, id)
	if err != nil {
		return nil, persistence("get published form", err)
	}
	if form.Status != models.FormStatusPublished {
		return nil, ErrNotFound
	}
	return form, nil
}

// CreateDraft stores a new form for the caller.
func (s *Service) CreateDraft(ctx context.Context, p models.Principal, in models.CreateFormInput) (*models.FormRecord, error) {
	if err := requireOwner(p); err != nil {
		return nil, err
	}
	now := s.timestamp()
	form := &models.FormRecord{
		ID:        uuid.NewString(),
		OwnerID:   p.UserID,
		Title:     DefaultTitle,
		Status:    models.FormStatusDraft,
		Schema:    models.DefaultFormSchema(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Title != nil {
		form.Title = normalizeTitle(*in.Title)
	}
	if in.Description != nil {
		form.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("unknown status %q", *in.Status)
		}
		form.Status = *in.Status
	}
	if in.Schema != nil {
		if err := in.Schema.Validate(); err != nil {
			return nil, invalid("%v", err)
		}
		form.Schema = *in.Schema
	}

	if err := s.store.InsertForm(ctx, form); err != nil {
		log.Printf("❌ [CreateDraft] owner=%s: %v", p.UserID, err)
		return nil, persistence("create form", err)
	}
	log.Printf("✅ [CreateDraft] form=%s owner=%s status=%s fields=%d", form.ID, p.UserID, form.Status, len(form.Schema.Fields))
	return form, nil
}

// UpdateForm applies a partial update. When in.ExpectedUpdatedAt is set the
// write only happens if the stored updatedAt still matches; otherwise the
// last write wins.
func (s *Service) UpdateForm(ctx context.Context, p models.Principal, id string, in models.UpdateFormInput) (*models.FormRecord, error) {
	if err := requireOwner(p); err != nil {
		return nil, err
	}
	upd := models.FormUpdate{UpdatedAt: s.timestamp()}
	if in.Title != nil {
		title := normalizeTitle(*in.Title)
		upd.Title = &title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		upd.Description = &desc
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, invalid("unknown status %q", *in.Status)
		}
		upd.Status = in.Status
	}
	if in.Schema != nil {
		if err := in.Schema.Validate(); err != nil {
			return nil, invalid("%v", err)
		}
		upd.Schema = in.Schema
	}

	var expected *time.Time
	if in.ExpectedUpdatedAt != nil {
		t := in.ExpectedUpdatedAt.UTC().Truncate(time.Millisecond)
		expected = &t
	}

	form, err := s.store.UpdateForm(ctx, id, p.UserID, upd, expected)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			log.Printf("⚠️ [UpdateForm] stale update form=%s owner=%s", id, p.UserID)
		}
		return nil, persistence("update form", err)
	}
	return form, nil
}

// DeleteForm removes the caller's form and its responses.
func (s *Service) DeleteForm(ctx context.Context, p models.Principal, id string) error {
	if err := requireOwner(p); err != nil {
		return err
	}
	if err := s.store.DeleteForm(ctx, id, p.UserID); err != nil {
		return persistence("delete form", err)
	}
	if err := s.store.DeleteResponsesByForm(ctx, id); err != nil {
		log.Printf("⚠️ [DeleteForm] responses of form=%s not removed: %v", id, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// SubmitResponse validates answers against the published form and stores
// them. Answer errors come back as *AnswerValidationError.
func (s *Service) SubmitResponse(ctx context.Context, formID string, answers models.AnswerMap, meta models.ResponseMeta) (*models.FormResponse, error) {
	form, err := s.GetPublishedForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if errs := validation.Validate(form.Schema.Fields, answers); len(errs) > 0 {
		return nil, &AnswerValidationError{Fields: errs}
	}

	resp := &models.FormResponse{
		ID:          uuid.NewString(),
		FormID:      form.ID,
		Answers:     validation.Sanitize(form.Schema.Fields, answers),
		SubmittedAt: s.timestamp(),
		IP:          meta.IP,
		UserAgent:   meta.UserAgent,
	}
	if err := s.store.InsertResponse(ctx, resp); err != nil {
		log.Printf("❌ [SubmitResponse] form=%s: %v", formID, err)
		return nil, persistence("save response", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, form.ID)
	}
	if s.notifier != nil {
		s.notifier.ResponseCreated(ctx, form.OwnerID, form.ID, resp.ID)
	}
	log.Printf("✅ [SubmitResponse] form=%s response=%s answers=%d", form.ID, resp.ID, len(resp.Answers))
	return resp, nil
}

// ListResponses newest first, for a form owned by the caller.
func (s *Service) ListResponses(ctx context.Context, p models.Principal, formID string, limit int) ([]models.FormResponse, error) {
	if _, err := s.GetForm(ctx, p, formID); err != nil {
		return nil, err
	}
	limit = models.ClampLimit(limit, models.DefaultResponsesLimit, models.MaxResponsesLimit)
	responses, err := s.store.ListResponses(ctx, formID, limit)
	if err != nil {
		return nil, persistence("list responses", err)
	}
	return responses, nil
}

// CountResponses for a form owned by the caller.
func (s *Service) CountResponses(ctx context.Context, p models.Principal, formID string) (int64, error) {
	if _, err := s.GetForm(ctx, p, formID); err != nil {
		return 0, err
	}
	return s.countResponses(ctx, formID)
}

func (s *Service) countResponses(ctx context.Context, formID string) (int64, error) {
	var gen string
	if s.cache != nil {
		n, g, ok := s.cache.GetCount(ctx, formID)
		if ok {
			return n, nil
		}
		gen = g
	}
	n, err := s.store.CountResponses(ctx, formID)
	if err != nil {
		return 0, persistence("count responses", err)
	}
	if s.cache != nil {
		s.cache.SetCount(ctx, formID, n, gen)
	}
	return n, nil
}

// Dashboard is everything the owner's responses page shows.
type Dashboard struct {
	Form           models.FormRecord             `json:"form"`
	TotalResponses int64                         `json:"totalResponses"`
	Responses      []models.FormResponse         `json:"responses"`
	Distributions  []analytics.FieldDistribution `json:"distributions"`
	Table          analytics.Table               `json:"table"`
}

// Dashboard loads the form, its latest responses and their projections.
func (s *Service) Dashboard(ctx context.Context, p models.Principal, formID string, limit int) (*Dashboard, error) {
	form, err := s.GetForm(ctx, p, formID)
	if err != nil {
		return nil, err
	}
	limit = models.ClampLimit(limit, 100, models.MaxResponsesLimit)
	responses, err := s.store.ListResponses(ctx, formID, limit)
	if err != nil {
		return nil, persistence("list responses", err)
	}
	total, err := s.countResponses(ctx, formID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Form:           *form,
		TotalResponses: total,
		Responses:      responses,
		Distributions:  analytics.BuildDistributions(form.Schema.Fields, responses),
		Table:          analytics.BuildResponseTable(form.Schema.Fields, responses),
	}, nil
}

func normalizeTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultTitle
}
