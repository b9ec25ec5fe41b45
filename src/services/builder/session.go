package builder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"Backend-Formcraft/src/models"

	"github.com/google/uuid"
)

const (
	DefaultSessionTTL = 2 * time.Hour
	defaultFormTitle  = "New form"
)

var (
	ErrSessionNotFound = errors.New("builder session not found")
	ErrBusy            = errors.New("a save for this session is already in progress")
	ErrUnknownCommand  = errors.New("unknown builder command")
)

// FormPersister is the record store side of the builder: hydrate a draft,
// create it on first save, update it afterwards.
type FormPersister interface {
	GetForm(ctx context.Context, p models.Principal, id string) (*models.FormRecord, error)
	CreateDraft(ctx context.Context, p models.Principal, in models.CreateFormInput) (*models.FormRecord, error)
	UpdateForm(ctx context.Context, p models.Principal, id string, in models.UpdateFormInput) (*models.FormRecord, error)
}

// AutosaveScheduler is told when a session's fields changed. Implementations
// debounce and persist off the request path.
type AutosaveScheduler interface {
	ScheduleAutosave(sessionID string) error
}

// Session one open editing session. Commands on a session are serialized
// by its mutex.
type Session struct {
	ID      string
	OwnerID string

	mu          sync.Mutex
	engine      *Engine
	props       *PropertiesEditor
	formID      string
	title       string
	description string
	status      models.FormStatus
	updatedAt   *time.Time
	revision    int
	savedRev    int
	saving      bool
	lastTouched time.Time
	// touch marks an edit: bumps the revision and schedules an autosave.
	touch func()
}

// Snapshot is the serializable view of a session.
type Snapshot struct {
	ID              string             `json:"id"`
	FormID          string             `json:"formId,omitempty"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Status          models.FormStatus  `json:"status"`
	Fields          []models.FormField `json:"fields"`
	SelectedFieldID string             `json:"selectedFieldId,omitempty"`
	Sections        []PropertySection  `json:"sections,omitempty"`
	Drag            DragState          `json:"drag"`
	Dirty           bool               `json:"dirty"`
	Saving          bool               `json:"saving"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
	Palette         []models.FieldType `json:"palette"`
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:              s.ID,
		FormID:          s.formID,
		Title:           s.title,
		Description:     s.description,
		Status:          s.status,
		Fields:          s.engine.Fields(),
		SelectedFieldID: s.engine.SelectedID(),
		Sections:        s.props.Sections(),
		Drag:            s.engine.DragState(),
		Dirty:           s.revision != s.savedRev,
		Saving:          s.saving,
		UpdatedAt:       s.updatedAt,
		Palette:         models.FieldTypes(),
	}
}

// Manager keeps the open sessions of this process.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	persister FormPersister
	autosave  AutosaveScheduler
	ttl       time.Duration
	now       func() time.Time
}

func NewManager(persister FormPersister, autosave AutosaveScheduler, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		persister: persister,
		autosave:  autosave,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Open starts a session, hydrated from formID when given.
func (m *Manager) Open(ctx context.Context, p models.Principal, formID string) (Snapshot, error) {
	s := &Session{
		ID:          uuid.NewString(),
		OwnerID:     p.UserID,
		title:       defaultFormTitle,
		status:      models.FormStatusDraft,
		lastTouched: m.now(),
	}
	var initial []models.FormField
	if formID != "" {
		form, err := m.persister.GetForm(ctx, p, formID)
		if err != nil {
			return Snapshot{}, err
		}
		s.formID = form.ID
		s.title = form.Title
		s.description = form.Description
		s.status = form.Status
		updated := form.UpdatedAt
		s.updatedAt = &updated
		initial = form.Schema.Fields
	}
	sid := s.ID
	s.touch = func() {
		s.revision++
		m.scheduleAutosave(sid)
	}
	s.engine = NewEngine(initial, func([]models.FormField) { s.touch() })
	s.props = NewPropertiesEditor(s.engine)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("✅ [Builder] session opened id=%s owner=%s form=%s", s.ID, p.UserID, formID)
	return s.snapshotLocked(), nil
}

// Get returns the session snapshot; sessions of other owners are reported
// as not found.
func (m *Manager) Get(p models.Principal, sid string) (Snapshot, error) {
	s, err := m.lookup(p, sid)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Apply runs one command against a session.
func (m *Manager) Apply(p models.Principal, sid string, cmd Command) (Snapshot, error) {
	s, err := m.lookup(p, sid)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTouched = m.now()
	if err := cmd.apply(s); err != nil {
		return s.snapshotLocked(), err
	}
	return s.snapshotLocked(), nil
}

// Save persists the session's draft with the given status. A failed save
// leaves the in-memory draft untouched. Only one save per session runs at a
// time; a second concurrent call gets ErrBusy.
func (m *Manager) Save(ctx context.Context, p models.Principal, sid string, status models.FormStatus) (Snapshot, error) {
	s, err := m.lookup(p, sid)
	if err != nil {
		return Snapshot{}, err
	}
	if !status.Valid() {
		return Snapshot{}, fmt.Errorf("invalid status %q", status)
	}

	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	s.saving = true
	rev := s.revision
	formID := s.formID
	title, description := s.title, s.description
	expected := s.updatedAt
	schema := models.FormSchema{Version: models.CurrentSchemaVersion, Fields: s.engine.NormalizedFields()}
	s.mu.Unlock()

	var form *models.FormRecord
	if formID == "" {
		form, err = m.persister.CreateDraft(ctx, p, models.CreateFormInput{
			Title:       &title,
			Description: &description,
			Status:      &status,
			Schema:      &schema,
		})
	} else {
		form, err = m.persister.UpdateForm(ctx, p, formID, models.UpdateFormInput{
			Title:             &title,
			Description:       &description,
			Status:            &status,
			Schema:            &schema,
			ExpectedUpdatedAt: expected,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		log.Printf("❌ [Builder] save failed session=%s: %v", sid, err)
		return s.snapshotLocked(), err
	}
	s.formID = form.ID
	s.status = form.Status
	if s.revision == rev {
		// keep edits made while the store write was in flight
		s.title = form.Title
		s.description = form.Description
	}
	updated := form.UpdatedAt
	s.updatedAt = &updated
	s.savedRev = rev
	log.Printf("✅ [Builder] saved session=%s form=%s status=%s", sid, form.ID, form.Status)
	return s.snapshotLocked(), nil
}

// Autosave persists a bound draft session that has unsaved changes. Sessions
// without a form record yet, published forms and clean sessions are skipped.
// A session still dirty after the save gets another autosave scheduled.
func (m *Manager) Autosave(ctx context.Context, sid string) error {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	s.mu.Lock()
	skip := s.formID == "" || s.status != models.FormStatusDraft || s.revision == s.savedRev
	busy := s.saving
	owner := s.OwnerID
	s.mu.Unlock()
	if skip {
		return nil
	}
	if busy {
		m.scheduleAutosave(sid)
		return nil
	}
	snap, err := m.Save(ctx, models.Principal{UserID: owner}, sid, models.FormStatusDraft)
	if errors.Is(err, ErrBusy) {
		// the running save may have snapshotted before the latest edit
		m.scheduleAutosave(sid)
		return nil
	}
	if err != nil {
		return err
	}
	if snap.Dirty {
		// edits arrived while the save was in flight
		m.scheduleAutosave(sid)
	}
	return nil
}

// Close drops a session without saving.
func (m *Manager) Close(p models.Principal, sid string) error {
	if _, err := m.lookup(p, sid); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, sid)
	m.mu.Unlock()
	return nil
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were dropped.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastTouched.Before(cutoff) && !s.saving
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Printf("🧹 [Builder] dropped %d idle sessions", n)
			}
		}
	}
}

func (m *Manager) lookup(p models.Principal, sid string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sid]
	m.mu.RUnlock()
	if !ok || s.OwnerID != p.UserID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) scheduleAutosave(sid string) {
	if m.autosave == nil {
		return
	}
	if err := m.autosave.ScheduleAutosave(sid); err != nil {
		log.Printf("⚠️ [Builder] autosave not scheduled session=%s: %v", sid, err)
	}
}
