package builder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Backend-Formcraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPersister struct {
	mock.Mock
}

func (m *mockPersister) GetForm(ctx context.Context, p models.Principal, id string) (*models.FormRecord, error) {
	args := m.Called(ctx, p, id)
	form, _ := args.Get(0).(*models.FormRecord)
	return form, args.Error(1)
}

func (m *mockPersister) CreateDraft(ctx context.Context, p models.Principal, in models.CreateFormInput) (*models.FormRecord, error) {
	args := m.Called(ctx, p, in)
	form, _ := args.Get(0).(*models.FormRecord)
	return form, args.Error(1)
}

func (m *mockPersister) UpdateForm(ctx context.Context, p models.Principal, id string, in models.UpdateFormInput) (*models.FormRecord, error) {
	args := m.Called(ctx, p, id, in)
	form, _ := args.Get(0).(*models.FormRecord)
	return form, args.Error(1)
}

type recordingAutosave struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingAutosave) ScheduleAutosave(sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, sid)
	return nil
}

var (
	owner    = models.Principal{UserID: "owner-1", Email: "owner@example.com"}
	stranger = models.Principal{UserID: "owner-2"}
)

func storedForm(id string, status models.FormStatus, fields ...models.FormField) *models.FormRecord {
	return &models.FormRecord{
		ID:        id,
		OwnerID:   owner.UserID,
		Title:     "Survey",
		Status:    status,
		Schema:    models.FormSchema{Version: 1, Fields: fields},
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOpenNewSession(t *testing.T) {
	m := NewManager(new(mockPersister), nil, 0)
	snap, err := m.Open(context.Background(), owner, "")
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Empty(t, snap.FormID)
	assert.Equal(t, "New form", snap.Title)
	assert.Equal(t, models.FormStatusDraft, snap.Status)
	assert.Empty(t, snap.Fields)
	assert.False(t, snap.Dirty)
	assert.Len(t, snap.Palette, 6)
}

func TestOpenHydratesFromStoredForm(t *testing.T) {
	p := new(mockPersister)
	fields := fieldsWithIDs("q1", "q2")
	p.On("GetForm", mock.Anything, owner, "form-1").Return(storedForm("form-1", models.FormStatusPublished, fields...), nil)

	m := NewManager(p, nil, 0)
	snap, err := m.Open(context.Background(), owner, "form-1")
	require.NoError(t, err)
	assert.Equal(t, "form-1", snap.FormID)
	assert.Equal(t, []string{"q1", "q2"}, ids(snap.Fields))
	assert.Equal(t, models.FormStatusPublished, snap.Status)
	require.NotNil(t, snap.UpdatedAt)

	p.On("GetForm", mock.Anything, owner, "missing").Return(nil, errors.New("form not found"))
	_, err = m.Open(context.Background(), owner, "missing")
	assert.Error(t, err)
}

func TestApplyMarksDirtyAndSchedulesAutosave(t *testing.T) {
	auto := &recordingAutosave{}
	m := NewManager(new(mockPersister), auto, 0)
	snap, err := m.Open(context.Background(), owner, "")
	require.NoError(t, err)

	snap, err = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldSingleSelect})
	require.NoError(t, err)
	require.Len(t, snap.Fields, 1)
	assert.True(t, snap.Dirty)
	assert.Equal(t, snap.Fields[0].ID, snap.SelectedFieldID)
	assert.Equal(t, []PropertySection{SectionLabel, SectionRequired, SectionOptions}, snap.Sections)
	assert.Equal(t, []string{snap.ID}, auto.ids)

	snap, err = m.Apply(owner, snap.ID, Command{Type: CmdAddOption})
	require.NoError(t, err)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, snap.Fields[0].Options)

	_, err = m.Apply(owner, snap.ID, Command{Type: "explode"})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: "hologram"})
	assert.ErrorIs(t, err, ErrUnknownFieldType)
}

func TestApplyDragCommands(t *testing.T) {
	m := NewManager(new(mockPersister), nil, 0)
	snap, _ := m.Open(context.Background(), owner, "")

	snap, err := m.Apply(owner, snap.ID, Command{Type: CmdDrag, Drag: &DragEvent{Kind: DragStart, Source: SourcePalette, FieldTypeID: models.FieldDate}})
	require.NoError(t, err)
	assert.True(t, snap.Drag.Dragging)

	snap, err = m.Apply(owner, snap.ID, Command{Type: CmdDrag, Drag: &DragEvent{Kind: DragEnd, Target: CanvasTarget}})
	require.NoError(t, err)
	assert.False(t, snap.Drag.Dragging)
	require.Len(t, snap.Fields, 1)
	assert.Equal(t, models.FieldDate, snap.Fields[0].Type)

	_, err = m.Apply(owner, snap.ID, Command{Type: CmdDrag})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestSessionsAreOwnerScoped(t *testing.T) {
	m := NewManager(new(mockPersister), nil, 0)
	snap, _ := m.Open(context.Background(), owner, "")

	_, err := m.Get(stranger, snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Apply(stranger, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldDate})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Close(stranger, snap.ID), ErrSessionNotFound)

	require.NoError(t, m.Close(owner, snap.ID))
	_, err = m.Get(owner, snap.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	p := new(mockPersister)
	m := NewManager(p, nil, 0)
	ctx := context.Background()

	snap, _ := m.Open(ctx, owner, "")
	snap, _ = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldShortText})
	snap, _ = m.Apply(owner, snap.ID, Command{Type: CmdSetTitle, Value: "Signup"})

	created := storedForm("form-9", models.FormStatusDraft, snap.Fields...)
	p.On("CreateDraft", mock.Anything, owner, mock.MatchedBy(func(in models.CreateFormInput) bool {
		return *in.Title == "Signup" && *in.Status == models.FormStatusDraft && len(in.Schema.Fields) == 1
	})).Return(created, nil).Once()

	saved, err := m.Save(ctx, owner, snap.ID, models.FormStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, "form-9", saved.FormID)
	assert.False(t, saved.Dirty)

	_, _ = m.Apply(owner, snap.ID, Command{Type: CmdSetRequired, Required: true})
	published := storedForm("form-9", models.FormStatusPublished, snap.Fields...)
	p.On("UpdateForm", mock.Anything, owner, "form-9", mock.MatchedBy(func(in models.UpdateFormInput) bool {
		return in.ExpectedUpdatedAt != nil && in.ExpectedUpdatedAt.Equal(created.UpdatedAt) &&
			*in.Status == models.FormStatusPublished && in.Schema.Fields[0].Required
	})).Return(published, nil).Once()

	saved, err = m.Save(ctx, owner, snap.ID, models.FormStatusPublished)
	require.NoError(t, err)
	assert.Equal(t, models.FormStatusPublished, saved.Status)
	assert.False(t, saved.Dirty)
	p.AssertExpectations(t)
}

func TestFailedSaveKeepsDraft(t *testing.T) {
	p := new(mockPersister)
	m := NewManager(p, nil, 0)
	ctx := context.Background()

	snap, _ := m.Open(ctx, owner, "")
	snap, _ = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldNumber})

	p.On("CreateDraft", mock.Anything, owner, mock.Anything).Return(nil, errors.New("store unavailable"))
	after, err := m.Save(ctx, owner, snap.ID, models.FormStatusPublished)
	require.Error(t, err)
	assert.True(t, after.Dirty)
	assert.Empty(t, after.FormID)
	assert.Equal(t, snap.Fields, after.Fields)
	assert.Equal(t, models.FormStatusDraft, after.Status)
	assert.False(t, after.Saving)
}

func TestSaveRejectsInvalidStatus(t *testing.T) {
	m := NewManager(new(mockPersister), nil, 0)
	snap, _ := m.Open(context.Background(), owner, "")
	_, err := m.Save(context.Background(), owner, snap.ID, "deleted")
	assert.Error(t, err)
}

type blockingPersister struct {
	mockPersister
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPersister) CreateDraft(ctx context.Context, p models.Principal, in models.CreateFormInput) (*models.FormRecord, error) {
	close(b.entered)
	<-b.release
	return storedForm("form-1", *in.Status), nil
}

func TestConcurrentSaveIsBusy(t *testing.T) {
	p := &blockingPersister{entered: make(chan struct{}), release: make(chan struct{})}
	m := NewManager(p, nil, 0)
	ctx := context.Background()
	snap, _ := m.Open(ctx, owner, "")

	done := make(chan error, 1)
	go func() {
		_, err := m.Save(ctx, owner, snap.ID, models.FormStatusDraft)
		done <- err
	}()
	<-p.entered

	busy, err := m.Get(owner, snap.ID)
	require.NoError(t, err)
	assert.True(t, busy.Saving)

	_, err = m.Save(ctx, owner, snap.ID, models.FormStatusDraft)
	assert.ErrorIs(t, err, ErrBusy)

	close(p.release)
	require.NoError(t, <-done)
}

func TestAutosaveOnlyBoundDirtyDrafts(t *testing.T) {
	p := new(mockPersister)
	m := NewManager(p, nil, 0)
	ctx := context.Background()

	unbound, _ := m.Open(ctx, owner, "")
	_, _ = m.Apply(owner, unbound.ID, Command{Type: CmdAddField, FieldType: models.FieldDate})
	require.NoError(t, m.Autosave(ctx, unbound.ID))

	p.On("GetForm", mock.Anything, owner, "pub").Return(storedForm("pub", models.FormStatusPublished), nil)
	pub, _ := m.Open(ctx, owner, "pub")
	_, _ = m.Apply(owner, pub.ID, Command{Type: CmdAddField, FieldType: models.FieldDate})
	require.NoError(t, m.Autosave(ctx, pub.ID))

	p.On("GetForm", mock.Anything, owner, "draft").Return(storedForm("draft", models.FormStatusDraft), nil)
	draft, _ := m.Open(ctx, owner, "draft")
	require.NoError(t, m.Autosave(ctx, draft.ID), "clean session")
	p.AssertNotCalled(t, "UpdateForm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, _ = m.Apply(owner, draft.ID, Command{Type: CmdAddField, FieldType: models.FieldDate})
	p.On("UpdateForm", mock.Anything, mock.MatchedBy(func(pr models.Principal) bool { return pr.UserID == owner.UserID }), "draft", mock.Anything).
		Return(storedForm("draft", models.FormStatusDraft), nil).Once()
	require.NoError(t, m.Autosave(ctx, draft.ID))
	p.AssertNumberOfCalls(t, "UpdateForm", 1)
	p.AssertNotCalled(t, "CreateDraft", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, m.Autosave(ctx, "gone"))
}

func TestSweepDropsIdleSessions(t *testing.T) {
	m := NewManager(new(mockPersister), nil, time.Hour)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old, _ := m.Open(context.Background(), owner, "")
	now = now.Add(50 * time.Minute)
	fresh, _ := m.Open(context.Background(), owner, "")
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	_, err := m.Get(owner, old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(owner, fresh.ID)
	assert.NoError(t, err)
}

func TestTitleAndDescriptionEditsScheduleAutosave(t *testing.T) {
	auto := &recordingAutosave{}
	m := NewManager(new(mockPersister), auto, 0)
	snap, err := m.Open(context.Background(), owner, "")
	require.NoError(t, err)

	snap, err = m.Apply(owner, snap.ID, Command{Type: CmdSetTitle, Value: "Signup"})
	require.NoError(t, err)
	assert.True(t, snap.Dirty)
	_, err = m.Apply(owner, snap.ID, Command{Type: CmdSetDescription, Value: "Tell us"})
	require.NoError(t, err)

	assert.Equal(t, []string{snap.ID, snap.ID}, auto.ids)
}

func TestSaveRefreshesDescriptionFromStore(t *testing.T) {
	p := new(mockPersister)
	m := NewManager(p, nil, 0)
	ctx := context.Background()

	snap, _ := m.Open(ctx, owner, "")
	_, _ = m.Apply(owner, snap.ID, Command{Type: CmdSetDescription, Value: "  About us  "})

	stored := storedForm("form-3", models.FormStatusDraft)
	stored.Description = "About us"
	p.On("CreateDraft", mock.Anything, owner, mock.Anything).Return(stored, nil).Once()

	saved, err := m.Save(ctx, owner, snap.ID, models.FormStatusDraft)
	require.NoError(t, err)
	assert.Equal(t, "About us", saved.Description)
}

func TestAutosaveRearmsWhenEditedDuringSave(t *testing.T) {
	p := new(mockPersister)
	auto := &recordingAutosave{}
	m := NewManager(p, auto, 0)
	ctx := context.Background()

	p.On("GetForm", mock.Anything, owner, "draft").Return(storedForm("draft", models.FormStatusDraft), nil)
	snap, err := m.Open(ctx, owner, "draft")
	require.NoError(t, err)
	_, err = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldDate})
	require.NoError(t, err)

	// clean after the save: nothing more to schedule
	p.On("UpdateForm", mock.Anything, mock.Anything, "draft", mock.Anything).
		Return(storedForm("draft", models.FormStatusDraft), nil).Once()
	before := len(auto.ids)
	require.NoError(t, m.Autosave(ctx, snap.ID))
	assert.Len(t, auto.ids, before)

	// an edit lands while the store write is in flight
	_, err = m.Apply(owner, snap.ID, Command{Type: CmdAddField, FieldType: models.FieldNumber})
	require.NoError(t, err)
	p.On("UpdateForm", mock.Anything, mock.Anything, "draft", mock.Anything).
		Run(func(mock.Arguments) {
			_, err := m.Apply(owner, snap.ID, Command{Type: CmdSetTitle, Value: "Edited mid-save"})
			require.NoError(t, err)
		}).
		Return(storedForm("draft", models.FormStatusDraft), nil).Once()

	before = len(auto.ids)
	require.NoError(t, m.Autosave(ctx, snap.ID))
	assert.Len(t, auto.ids, before+2, "one schedule from the edit, one re-arm after the save")

	after, err := m.Get(owner, snap.ID)
	require.NoError(t, err)
	assert.True(t, after.Dirty)
	assert.Equal(t, "Edited mid-save", after.Title)
}
