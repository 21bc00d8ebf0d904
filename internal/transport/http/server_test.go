package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vineet_portfolio/internal/domain/models"
	editorsvc "vineet_portfolio/internal/services/editor_service"
	usersvc "vineet_portfolio/internal/services/user_service"
	transport "vineet_portfolio/internal/transport/http"
	"vineet_portfolio/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, identifier, password string) (*models.TokenPair, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockTokenService) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) GetGallery(ctx context.Context, category string) (*dto.GalleryView, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GalleryView), args.Error(1)
}

func (m *MockGalleryService) GetContent(ctx context.Context, section string) (*dto.ContentResponse, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContentResponse), args.Error(1)
}

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) Open(ctx context.Context, editorID, category string) (editorsvc.EditorState, error) {
	args := m.Called(ctx, editorID, category)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) State(editorID, category string) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) MoveItem(editorID, category string, id uuid.UUID, dir int) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, id, dir)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) RepositionItem(editorID, category string, draggedID, targetID uuid.UUID) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, draggedID, targetID)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) SortItems(editorID, category, field string, desc bool) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, field, desc)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) ReverseItems(editorID, category string) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) AddItem(editorID, category, url, title string, tags []string, sectionID *uuid.UUID) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, url, title, tags, sectionID)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) UpdateItem(editorID, category string, updated models.MediaItem) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, updated)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) SetLayout(editorID, category string, kind models.LayoutKind) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category, kind)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) DeleteItem(ctx context.Context, editorID, category string, id uuid.UUID) (editorsvc.EditorState, error) {
	args := m.Called(ctx, editorID, category, id)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) Save(ctx context.Context, editorID, category string) (editorsvc.EditorState, error) {
	args := m.Called(ctx, editorID, category)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) Discard(editorID, category string) (editorsvc.EditorState, error) {
	args := m.Called(editorID, category)
	return args.Get(0).(editorsvc.EditorState), args.Error(1)
}

func (m *MockEditorService) HasUnsavedChanges(editorID, category string) (bool, error) {
	args := m.Called(editorID, category)
	return args.Bool(0), args.Error(1)
}

func (m *MockEditorService) Close(editorID, category string) {
	m.Called(editorID, category)
}

func (m *MockEditorService) ListSections(ctx context.Context, category string) ([]models.Section, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Section), args.Error(1)
}

func (m *MockEditorService) CreateSection(ctx context.Context, category, name string, orderIndex int) (*models.Section, error) {
	args := m.Called(ctx, category, name, orderIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockEditorService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEditorService) OpenContent(ctx context.Context, editorID, section string) (editorsvc.ContentState, error) {
	args := m.Called(ctx, editorID, section)
	return args.Get(0).(editorsvc.ContentState), args.Error(1)
}

func (m *MockEditorService) ContentStateOf(editorID, section string) (editorsvc.ContentState, error) {
	args := m.Called(editorID, section)
	return args.Get(0).(editorsvc.ContentState), args.Error(1)
}

func (m *MockEditorService) SetContentValue(editorID, section, key, value string) (editorsvc.ContentState, error) {
	args := m.Called(editorID, section, key, value)
	return args.Get(0).(editorsvc.ContentState), args.Error(1)
}

func (m *MockEditorService) SaveContent(ctx context.Context, editorID, section string) (editorsvc.ContentState, error) {
	args := m.Called(ctx, editorID, section)
	return args.Get(0).(editorsvc.ContentState), args.Error(1)
}

func (m *MockEditorService) DiscardContent(editorID, section string) (editorsvc.ContentState, error) {
	args := m.Called(editorID, section)
	return args.Get(0).(editorsvc.ContentState), args.Error(1)
}

func (m *MockEditorService) HasUnsavedContent(editorID, section string) (bool, error) {
	args := m.Called(editorID, section)
	return args.Bool(0), args.Error(1)
}

func (m *MockEditorService) CloseContent(editorID, section string) {
	m.Called(editorID, section)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*dto.MediaUploadResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MediaUploadResponse), args.Error(1)
}

type MockPublishService struct {
	mock.Mock
}

func (m *MockPublishService) LatestStamp(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type routerMocks struct {
	users   *MockUserService
	tokens  *MockTokenService
	gallery *MockGalleryService
	editor  *MockEditorService
	media   *MockMediaService
	publish *MockPublishService
}

func setupRouter(t *testing.T) (*echo.Echo, *transport.Routers, *routerMocks) {
	t.Helper()

	mocks := &routerMocks{
		users:   new(MockUserService),
		tokens:  new(MockTokenService),
		gallery: new(MockGalleryService),
		editor:  new(MockEditorService),
		media:   new(MockMediaService),
		publish: new(MockPublishService),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	routers := transport.NewRouter(log, mocks.users, mocks.tokens, mocks.gallery, mocks.editor, mocks.media, mocks.publish)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return e, routers, mocks
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestGetGallery_Success(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.gallery.On("GetGallery", mock.Anything, "wedding").Return(&dto.GalleryView{
		Category: "wedding",
		Layout:   "grid",
	}, nil)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/gallery/wedding", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")

	require.NoError(t, routers.GetGallery(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string          `json:"status"`
		Data   dto.GalleryView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "wedding", resp.Data.Category)
	mocks.gallery.AssertExpectations(t)
}

func TestGetGallery_ServiceError(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.gallery.On("GetGallery", mock.Anything, "broken").Return(nil, errors.New("db down"))

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/gallery/broken", "")
	c.SetParamNames("category")
	c.SetParamValues("broken")

	require.NoError(t, routers.GetGallery(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLatestPublish(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.publish.On("LatestStamp", mock.Anything).Return("2026-08-30T10:00:00Z", nil)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/publish/latest", "")

	require.NoError(t, routers.LatestPublish(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2026-08-30T10:00:00Z")
}

func TestLogin_Success(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	userID := uuid.New()
	mocks.users.On("Login", mock.Anything, "vineet@example.com", "password123").Return(&models.TokenPair{
		UserID:       userID,
		AccessToken:  "access",
		RefreshToken: "refresh",
	}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/login",
		`{"identifier":"vineet@example.com","password":"password123"}`)

	require.NoError(t, routers.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access")
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.users.On("Login", mock.Anything, "vineet@example.com", "wrongpassword").
		Return(nil, usersvc.ErrInvalidCredentials)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/login",
		`{"identifier":"vineet@example.com","password":"wrongpassword"}`)

	require.NoError(t, routers.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_ShortPassword(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/login",
		`{"identifier":"vineet@example.com","password":"short"}`)

	require.NoError(t, routers.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.users.AssertNotCalled(t, "Login")
}

func TestRegister_Conflict(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.users.On("RegisterUser", mock.Anything, mock.Anything).Return(uuid.Nil, usersvc.ErrUserExist)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/register",
		`{"name":"vineet","email":"vineet@example.com","password":"password123"}`)

	require.NoError(t, routers.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOpenEditor_RequiresHeader(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	c, _ := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/open", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")

	err := routers.OpenEditor(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mocks.editor.AssertNotCalled(t, "Open")
}

func TestOpenEditor_ReturnsState(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	itemID := uuid.New()
	mocks.editor.On("Open", mock.Anything, "tab-1", "wedding").Return(editorsvc.EditorState{
		Category: "wedding",
		Layout:   models.LayoutSetting{Category: "wedding", Kind: models.LayoutMasonry},
		Items: []models.MediaItem{
			{ID: itemID, URL: "https://cdn.example.com/a.jpg", OrderIndex: 0},
		},
	}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/open", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.OpenEditor(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.EditorStateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "masonry", resp.Data.Layout)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, itemID, resp.Data.Items[0].ID)
	assert.False(t, resp.Data.Dirty)
}

func TestMoveItem_MapsDirection(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	itemID := uuid.New()
	mocks.editor.On("MoveItem", "tab-1", "wedding", itemID, +1).
		Return(editorsvc.EditorState{Category: "wedding", Dirty: true}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/items/move",
		`{"item_id":"`+itemID.String()+`","direction":"down"}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.MoveItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dirty":true`)
	mocks.editor.AssertExpectations(t)
}

func TestMoveItem_RejectsUnknownDirection(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/items/move",
		`{"item_id":"`+uuid.NewString()+`","direction":"sideways"}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.MoveItem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.editor.AssertNotCalled(t, "MoveItem")
}

func TestEditorState_NoSession(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("State", "tab-1", "wedding").
		Return(editorsvc.EditorState{}, editorsvc.ErrNoSession)

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/editor/wedding/state", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.EditorState(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSortItems_UnknownField(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/items/sort",
		`{"field":"popularity"}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SortItems(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.editor.AssertNotCalled(t, "SortItems")
}

func TestDeleteItem_InvalidUUID(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	c, rec := newJSONContext(e, http.MethodDelete, "/api/v1/editor/wedding/items/not-a-uuid", "")
	c.SetParamNames("category", "item_id")
	c.SetParamValues("wedding", "not-a-uuid")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.DeleteItem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mocks.editor.AssertNotCalled(t, "DeleteItem")
}

func TestSetLayout_ParsesKind(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("SetLayout", "tab-1", "wedding", models.LayoutGrouped).
		Return(editorsvc.EditorState{Category: "wedding", Dirty: true}, nil)

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/editor/wedding/layout",
		`{"kind":"grouped"}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SetLayout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mocks.editor.AssertExpectations(t)
}

func TestSaveDraft_Success(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("Save", mock.Anything, "tab-1", "wedding").
		Return(editorsvc.EditorState{Category: "wedding", Dirty: false}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/save", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SaveDraft(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dirty":false`)
}

func TestSaveDraft_StorageFailure(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("Save", mock.Anything, "tab-1", "wedding").
		Return(editorsvc.EditorState{}, errors.New("update failed"))

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/save", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SaveDraft(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSetContentValue_UpdatesDraft(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("SetContentValue", "tab-1", "about", "headline", "Wedding photographer in Pune").
		Return(editorsvc.ContentState{
			Section: "about",
			Values:  map[string]string{"headline": "Wedding photographer in Pune"},
			Dirty:   true,
		}, nil)

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/admin/content/about",
		`{"key":"headline","value":"Wedding photographer in Pune"}`)
	c.SetParamNames("section")
	c.SetParamValues("about")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SetContentValue(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dirty":true`)
	mocks.editor.AssertExpectations(t)
}

func TestSaveContentDraft_Success(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("SaveContent", mock.Anything, "tab-1", "about").
		Return(editorsvc.ContentState{
			Section: "about",
			Values:  map[string]string{"headline": "Updated"},
			Dirty:   false,
		}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/admin/content/about/save", "")
	c.SetParamNames("section")
	c.SetParamValues("about")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.SaveContentDraft(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dirty":false`)
}

func TestAddItem_AppendsToDraft(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("AddItem", "tab-1", "wedding", "https://youtu.be/abc123", "Teaser",
		[]string{"reel"}, (*uuid.UUID)(nil)).
		Return(editorsvc.EditorState{Category: "wedding", Dirty: true}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/items",
		`{"url":"https://youtu.be/abc123","title":"Teaser","tags":["reel"]}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.AddItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dirty":true`)
	mocks.editor.AssertExpectations(t)
}

func TestCreateSection_Created(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	sectionID := uuid.New()
	mocks.editor.On("CreateSection", mock.Anything, "wedding", "Ceremony", 0).
		Return(&models.Section{ID: sectionID, Category: "wedding", Name: "Ceremony"}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/sections",
		`{"name":"Ceremony","order_index":0}`)
	c.SetParamNames("category")
	c.SetParamValues("wedding")

	require.NoError(t, routers.CreateSection(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), sectionID.String())
}

func TestCloseEditor_NoContent(t *testing.T) {
	e, routers, mocks := setupRouter(t)

	mocks.editor.On("Close", "tab-1", "wedding").Return()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/editor/wedding/close", "")
	c.SetParamNames("category")
	c.SetParamValues("wedding")
	c.Request().Header.Set("X-Editor-Session", "tab-1")

	require.NoError(t, routers.CloseEditor(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	mocks.editor.AssertExpectations(t)
}
