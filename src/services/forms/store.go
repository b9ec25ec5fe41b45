package forms

import (
	"context"
	"time"

	"Backend-Formcraft/src/models"
)

// Store is the record store behind the forms service. Implementations return
// ErrNotFound for missing rows and ErrConflict when a compare-and-swap on
// updatedAt fails; any other error is treated as a persistence failure.
type Store interface {
	ListFormsByOwner(ctx context.Context, ownerID string, params models.FormListParams) ([]models.FormRecord, error)
	GetForm(ctx context.Context, id string) (*models.FormRecord, error)
	InsertForm(ctx context.Context, form *models.FormRecord) error
	// UpdateForm applies upd to the form owned by ownerID. A non-nil
	// expectedUpdatedAt makes the write conditional on the stored value.
	UpdateForm(ctx context.Context, id, ownerID string, upd models.FormUpdate, expectedUpdatedAt *time.Time) (*models.FormRecord, error)
	DeleteForm(ctx context.Context, id, ownerID string) error

	InsertResponse(ctx context.Context, resp *models.FormResponse) error
	ListResponses(ctx context.Context, formID string, limit int) ([]models.FormResponse, error)
	CountResponses(ctx context.Context, formID string) (int64, error)
	DeleteResponsesByForm(ctx context.Context, formID string) error
}

// CountCache caches response counts. A nil cache disables caching.
// GetCount also returns the form's current generation; SetCount stores the
// count only while that generation is unchanged, and Invalidate bumps it, so a
// count read before a concurrent insert is never cached after it.
type CountCache interface {
	GetCount(ctx context.Context, formID string) (count int64, gen string, ok bool)
	SetCount(ctx context.Context, formID string, count int64, gen string)
	Invalidate(ctx context.Context, formID string)
}

// Notifier is told about new responses; delivery is fire-and-forget.
type Notifier interface {
	ResponseCreated(ctx context.Context, ownerID, formID, responseID string)
}
