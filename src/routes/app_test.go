package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"Backend-Formcraft/src/controllers"
	"Backend-Formcraft/src/models"
	"Backend-Formcraft/src/services/auth"
	"Backend-Formcraft/src/services/builder"
	"Backend-Formcraft/src/services/forms"
	"Backend-Formcraft/src/services/notify"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app   *fiber.App
	forms *forms.Service
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("JWT_SECRET", "routes-test-secret")
	t.Setenv("PUBLIC_BASE_URL", "https://forms.example.com")

	formSvc := forms.NewService(forms.NewMemoryStore(), forms.WithNotifier(notify.NewNotifier(notify.NewLocalBroadcaster())))
	manager := builder.NewManager(formSvc, nil, time.Hour)
	app := NewApp(Handlers{
		Auth:    controllers.NewAuthController(auth.NewService(auth.NewMemoryUserStore())),
		Forms:   controllers.NewFormController(formSvc),
		Builder: controllers.NewBuilderController(manager),
		Stream:  controllers.NewStreamController(notify.NewLocalBroadcaster()),
		Public:  controllers.NewPublicController(formSvc),
	})
	return &testApp{app: app, forms: formSvc}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[models.AuthResponse](t, resp).Token
}

func (a *testApp) command(t *testing.T, token, sid string, cmd builder.Command) builder.Snapshot {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/builder/sessions/"+sid+"/commands", token, cmd)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[builder.Snapshot](t, resp)
}

// buildPublishedForm drives the builder to a published form with one
// required short text field and one single select.
func (a *testApp) buildPublishedForm(t *testing.T, token string) (formID string, fields []models.FormField) {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/builder/sessions", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sid := decode[builder.Snapshot](t, resp).ID

	a.command(t, token, sid, builder.Command{Type: builder.CmdSetTitle, Value: "Team lunch"})
	a.command(t, token, sid, builder.Command{Type: builder.CmdAddField, FieldType: models.FieldShortText})
	a.command(t, token, sid, builder.Command{Type: builder.CmdSetLabel, Value: "Name"})
	a.command(t, token, sid, builder.Command{Type: builder.CmdSetRequired, Required: true})
	a.command(t, token, sid, builder.Command{Type: builder.CmdAddField, FieldType: models.FieldSingleSelect})
	a.command(t, token, sid, builder.Command{Type: builder.CmdSetLabel, Value: "Dish"})
	a.command(t, token, sid, builder.Command{Type: builder.CmdAddOption})
	snap := a.command(t, token, sid, builder.Command{Type: builder.CmdUpdateOption, OptionIndex: 0, Value: "Pizza"})
	require.Len(t, snap.Fields, 2)

	resp = a.do(t, http.MethodPost, "/api/builder/sessions/"+sid+"/save", token, map[string]string{"status": "published"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decode[builder.Snapshot](t, resp)
	require.NotEmpty(t, saved.FormID)
	assert.Equal(t, models.FormStatusPublished, saved.Status)
	return saved.FormID, saved.Fields
}

func TestHealthAndPalette(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/field-types", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		FieldTypes []models.FieldType `json:"fieldTypes"`
	}](t, resp)
	assert.Len(t, out.FieldTypes, 6)
}

func TestOwnerRoutesRequireToken(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/api/forms", "/api/builder/sessions/x", "/api/stream/responses"} {
		resp := a.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
	resp := a.do(t, http.MethodGet, "/api/forms", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthErrors(t *testing.T) {
	a := newTestApp(t)
	a.register(t, "ann@example.com")

	resp := a.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "ANN@example.com", Password: "password123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: "bad", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "ann@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFormCRUD(t *testing.T) {
	a := newTestApp(t)
	token := a.register(t, "ann@example.com")
	other := a.register(t, "bob@example.com")

	resp := a.do(t, http.MethodPost, "/api/forms", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	form := decode[models.FormRecord](t, resp)
	assert.Equal(t, forms.DefaultTitle, form.Title)
	assert.Equal(t, models.FormStatusDraft, form.Status)

	resp = a.do(t, http.MethodGet, "/api/forms/"+form.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodPatch, "/api/forms/"+form.ID, token, map[string]any{
		"title":             "Renamed",
		"expectedUpdatedAt": form.UpdatedAt,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", decode[models.FormRecord](t, resp).Title)

	resp = a.do(t, http.MethodPatch, "/api/forms/"+form.ID, token, map[string]any{
		"title":             "Stale",
		"expectedUpdatedAt": form.UpdatedAt.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodPatch, "/api/forms/"+form.ID, token, map[string]any{"status": "gone"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/forms", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cards := decode[[]models.FormCard](t, resp)
	require.Len(t, cards, 1)
	assert.Equal(t, "No description", cards[0].Description)

	resp = a.do(t, http.MethodGet, "/api/forms/"+form.ID+"/preview", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "This form has no fields")

	resp = a.do(t, http.MethodGet, "/api/forms/"+form.ID+"/qrcode", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "drafts are not shareable")

	resp = a.do(t, http.MethodDelete, "/api/forms/"+form.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = a.do(t, http.MethodDelete, "/api/forms/"+form.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = a.do(t, http.MethodGet, "/api/forms/"+form.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBuilderSessionErrors(t *testing.T) {
	a := newTestApp(t)
	token := a.register(t, "ann@example.com")
	other := a.register(t, "bob@example.com")

	resp := a.do(t, http.MethodPost, "/api/builder/sessions", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[builder.Snapshot](t, resp)
	assert.Len(t, snap.Palette, 6)

	resp = a.do(t, http.MethodGet, "/api/builder/sessions/"+snap.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/builder/sessions/"+snap.ID+"/commands", token, builder.Command{Type: "explode"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/builder/sessions/"+snap.ID+"/commands", token, builder.Command{Type: builder.CmdAddField, FieldType: "hologram"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodDelete, "/api/builder/sessions/"+snap.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = a.do(t, http.MethodGet, "/api/builder/sessions/"+snap.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishAndCollectResponses(t *testing.T) {
	a := newTestApp(t)
	token := a.register(t, "ann@example.com")
	formID, fields := a.buildPublishedForm(t, token)
	nameID, dishID := fields[0].ID, fields[1].ID

	resp := a.do(t, http.MethodGet, "/f/"+formID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := readBody(t, resp)
	assert.Contains(t, page, "Team lunch")
	assert.Contains(t, page, "Name *")

	resp = a.do(t, http.MethodPost, "/f/"+formID, "", map[string]any{"answers": map[string]any{dishID: "Sushi"}})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := decode[models.ErrorResponse](t, resp)
	assert.Equal(t, "required", errBody.Fields[nameID])
	assert.Equal(t, "invalid option", errBody.Fields[dishID])

	resp = a.do(t, http.MethodPost, "/f/"+formID, "", map[string]any{"answers": map[string]any{nameID: "Ann", dishID: "Pizza"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	form := url.Values{nameID: {"Bob"}, dishID: {"Pizza"}}
	req := httptest.NewRequest(http.MethodPost, "/f/"+formID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	htmlResp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, htmlResp.StatusCode)
	assert.Contains(t, readBody(t, htmlResp), "Thanks!")

	resp = a.do(t, http.MethodGet, "/api/forms/"+formID+"/responses", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[struct {
		Total     int64                 `json:"total"`
		Responses []models.FormResponse `json:"responses"`
	}](t, resp)
	assert.EqualValues(t, 2, list.Total)
	assert.Len(t, list.Responses, 2)

	resp = a.do(t, http.MethodGet, "/api/forms/"+formID+"/analytics", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[forms.Dashboard](t, resp)
	require.Len(t, dash.Distributions, 1)
	assert.Equal(t, "Pizza", dash.Distributions[0].Distribution[0].Option)
	assert.Equal(t, 2, dash.Distributions[0].Distribution[0].Count)

	resp = a.do(t, http.MethodGet, "/api/forms/"+formID+"/qrcode", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://forms.example.com/f/"+formID, resp.Header.Get("X-Share-Link"))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestPublicDraftIsHidden(t *testing.T) {
	a := newTestApp(t)
	token := a.register(t, "ann@example.com")

	resp := a.do(t, http.MethodPost, "/api/forms", token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	form := decode[models.FormRecord](t, resp)

	resp = a.do(t, http.MethodGet, "/f/"+form.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "This form is not available.", readBody(t, resp))

	resp = a.do(t, http.MethodPost, "/f/"+form.ID, "", map[string]any{"answers": map[string]any{}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
