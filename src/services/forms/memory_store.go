package forms

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"Backend-Formcraft/src/models"
)

// MemoryStore keeps records in process memory. Used when MONGO_URI is not
// set and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	forms     map[string]models.FormRecord
	responses map[string][]models.FormResponse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		forms:     make(map[string]models.FormRecord),
		responses: make(map[string][]models.FormResponse),
	}
}

func (m *MemoryStore) ListFormsByOwner(_ context.Context, ownerID string, params models.FormListParams) ([]models.FormRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	search := strings.ToLower(params.Search)
	out := make([]models.FormRecord, 0)
	for _, f := range m.forms {
		if f.OwnerID != ownerID {
			continue
		}
		if params.Status != "" && string(f.Status) != params.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(f.Title), search) {
			continue
		}
		out = append(out, cloneForm(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

func (m *MemoryStore) GetForm(_ context.Context, id string) (*models.FormRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneForm(f)
	return &out, nil
}

func (m *MemoryStore) InsertForm(_ context.Context, form *models.FormRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forms[form.ID] = cloneForm(*form)
	return nil
}

func (m *MemoryStore) UpdateForm(_ context.Context, id, ownerID string, upd models.FormUpdate, expectedUpdatedAt *time.Time) (*models.FormRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok || f.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	if expectedUpdatedAt != nil && !f.UpdatedAt.Equal(*expectedUpdatedAt) {
		return nil, ErrConflict
	}
	if upd.Title != nil {
		f.Title = *upd.Title
	}
	if upd.Description != nil {
		f.Description = *upd.Description
	}
	if upd.Status != nil {
		f.Status = *upd.Status
	}
	if upd.Schema != nil {
		f.Schema = models.FormSchema{Version: upd.Schema.Version, Fields: models.CloneFields(upd.Schema.Fields)}
	}
	f.UpdatedAt = upd.UpdatedAt
	m.forms[id] = f
	out := cloneForm(f)
	return &out, nil
}

func (m *MemoryStore) DeleteForm(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok || f.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(m.forms, id)
	return nil
}

func (m *MemoryStore) InsertResponse(_ context.Context, resp *models.FormResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[resp.FormID] = append(m.responses[resp.FormID], *resp)
	return nil
}

func (m *MemoryStore) ListResponses(_ context.Context, formID string, limit int) ([]models.FormResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.responses[formID]
	out := make([]models.FormResponse, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) CountResponses(_ context.Context, formID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.responses[formID])), nil
}

func (m *MemoryStore) DeleteResponsesByForm(_ context.Context, formID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.responses, formID)
	return nil
}

func cloneForm(f models.FormRecord) models.FormRecord {
	f.Schema = models.FormSchema{Version: f.Schema.Version, Fields: models.CloneFields(f.Schema.Fields)}
	return f
}
