package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"vineet_portfolio/internal/domain/models"
	"vineet_portfolio/internal/lib/logger/sl"
	editorsvc "vineet_portfolio/internal/services/editor_service"
	usersvc "vineet_portfolio/internal/services/user_service"
	"vineet_portfolio/internal/transport/http/dto"
	"vineet_portfolio/internal/transport/http/dto/request"
	"vineet_portfolio/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "vineet_portfolio/docs"
)

type UserService interface {
	Login(ctx context.Context, identifier, password string) (*models.TokenPair, error)
	RegisterUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type GalleryService interface {
	GetGallery(ctx context.Context, category string) (*dto.GalleryView, error)
	GetContent(ctx context.Context, section string) (*dto.ContentResponse, error)
}

type EditorService interface {
	Open(ctx context.Context, editorID, category string) (editorsvc.EditorState, error)
	State(editorID, category string) (editorsvc.EditorState, error)
	MoveItem(editorID, category string, id uuid.UUID, dir int) (editorsvc.EditorState, error)
	RepositionItem(editorID, category string, draggedID, targetID uuid.UUID) (editorsvc.EditorState, error)
	SortItems(editorID, category, field string, desc bool) (editorsvc.EditorState, error)
	ReverseItems(editorID, category string) (editorsvc.EditorState, error)
	AddItem(editorID, category, url, title string, tags []string, sectionID *uuid.UUID) (editorsvc.EditorState, error)
	UpdateItem(editorID, category string, updated models.MediaItem) (editorsvc.EditorState, error)
	SetLayout(editorID, category string, kind models.LayoutKind) (editorsvc.EditorState, error)
	DeleteItem(ctx context.Context, editorID, category string, id uuid.UUID) (editorsvc.EditorState, error)
	Save(ctx context.Context, editorID, category string) (editorsvc.EditorState, error)
	Discard(editorID, category string) (editorsvc.EditorState, error)
	HasUnsavedChanges(editorID, category string) (bool, error)
	Close(editorID, category string)
	ListSections(ctx context.Context, category string) ([]models.Section, error)
	CreateSection(ctx context.Context, category, name string, orderIndex int) (*models.Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error
	OpenContent(ctx context.Context, editorID, section string) (editorsvc.ContentState, error)
	ContentStateOf(editorID, section string) (editorsvc.ContentState, error)
	SetContentValue(editorID, section, key, value string) (editorsvc.ContentState, error)
	SaveContent(ctx context.Context, editorID, section string) (editorsvc.ContentState, error)
	DiscardContent(editorID, section string) (editorsvc.ContentState, error)
	HasUnsavedContent(editorID, section string) (bool, error)
	CloseContent(editorID, section string)
}

type MediaService interface {
	UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*dto.MediaUploadResponse, error)
}

type PublishService interface {
	LatestStamp(ctx context.Context) (string, error)
}

type Routers struct {
	log            *slog.Logger
	UserService    UserService
	TokenService   TokenService
	GalleryService GalleryService
	EditorService  EditorService
	MediaService   MediaService
	PublishService PublishService
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	tokenService TokenService,
	galleryService GalleryService,
	editorService EditorService,
	mediaService MediaService,
	publishService PublishService,
) *Routers {
	return &Routers{
		log:            log,
		UserService:    userService,
		TokenService:   tokenService,
		GalleryService: galleryService,
		EditorService:  editorService,
		MediaService:   mediaService,
		PublishService: publishService,
	}
}

// editorHeader идентификатор сессии редактирования; отдельные вкладки
// редактора несут отдельные id
const editorHeader = "X-Editor-Session"

func (r *Routers) editorID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(editorHeader)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, editorHeader+" header is required")
	}
	return id, nil
}

// GetGallery godoc
// @Summary Собранная галерея категории
// @Description Раскладка, классифицированные элементы и группы для "grouped"
// @Tags gallery
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 200 {object} response.Response{data=dto.GalleryView}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/gallery/{category} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	const op = "http.routers.GetGallery"

	view, err := r.GalleryService.GetGallery(c.Request().Context(), c.Param("category"))
	if err != nil {
		r.log.Error("failed to compose gallery", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("gallery_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// GetContent godoc
// @Summary Текстовые блоки секции страницы
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 200 {object} response.Response{data=dto.ContentResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/content/{section} [get]
func (r *Routers) GetContent(c echo.Context) error {
	const op = "http.routers.GetContent"

	content, err := r.GalleryService.GetContent(c.Request().Context(), c.Param("section"))
	if err != nil {
		r.log.Error("failed to load content", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("content_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(content))
}

// LatestPublish godoc
// @Summary Последний штамп публикации
// @Description Клиенты поллят штамп и перечитывают контент при изменении
// @Tags publish
// @Produce json
// @Success 200 {object} response.Response{data=dto.PublishStateResponse}
// @Router /api/v1/publish/latest [get]
func (r *Routers) LatestPublish(c echo.Context) error {
	const op = "http.routers.LatestPublish"

	stamp, err := r.PublishService.LatestStamp(c.Request().Context())
	if err != nil {
		r.log.Error("failed to read publish state", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("publish_state_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.PublishStateResponse{Stamp: stamp}))
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по email или имени. Возвращает пару JWT-токенов.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("identifier", req.Identifier))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.UserService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, err := session.Get("session", c)
	if err == nil {
		sess.Values["user_id"] = pair.UserID.String()
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			log.Warn("failed to save session", sl.Err(err))
		}
	}

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data: map[string]string{
			"user_id":       pair.UserID.String(),
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создание аккаунта. Возвращает ID пользователя.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Данные для регистрации"
// @Success 201 {object} response.Response{data=object{user_id=string}}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(slog.String("op", op))

	var req dto.UserRegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	id, err := r.UserService.RegisterUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExist) {
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("failed to register user", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("register_failed", err.Error()))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{"user_id": id.String()}))
}

// Refresh godoc
// @Summary Ротация пары токенов
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	pair, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}))
}

// Logout godoc
// @Summary Выход пользователя
// @Description Отзывает все refresh-токены и чистит сессию
// @Tags users
// @Produce json
// @Success 204 "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	sess, err := session.Get("session", c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	raw, ok := sess.Values["user_id"].(string)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	if err := r.TokenService.Logout(c.Request().Context(), userID); err != nil {
		r.log.Error("failed to revoke tokens", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("logout_failed", err.Error()))
	}

	sess.Options.MaxAge = -1
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to clear session", slog.String("op", op), sl.Err(err))
	}

	return c.NoContent(http.StatusNoContent)
}

// OpenEditor godoc
// @Summary Открыть сессию редактирования категории
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Param X-Editor-Session header string true "Идентификатор сессии редактора"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/open [post]
func (r *Routers) OpenEditor(c echo.Context) error {
	const op = "http.routers.OpenEditor"

	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.Open(c.Request().Context(), editorID, c.Param("category"))
	if err != nil {
		r.log.Error("failed to open editor", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("editor_open_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// EditorState godoc
// @Summary Текущий черновик сессии
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Param X-Editor-Session header string true "Идентификатор сессии редактора"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/state [get]
func (r *Routers) EditorState(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.State(editorID, c.Param("category"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// EditorDirty godoc
// @Summary Есть ли несохраненные правки
// @Description Охранный запрос перед закрытием вкладки редактора
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Param X-Editor-Session header string true "Идентификатор сессии редактора"
// @Success 200 {object} response.Response{data=dto.DirtyResponse}
// @Router /api/v1/editor/{category}/dirty [get]
func (r *Routers) EditorDirty(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	dirty, err := r.EditorService.HasUnsavedChanges(editorID, c.Param("category"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.DirtyResponse{Dirty: dirty}))
}

// MoveItem godoc
// @Summary Сдвиг элемента черновика на одну позицию
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.MoveItemRequest true "Элемент и направление"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items/move [post]
func (r *Routers) MoveItem(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.MoveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	dir := -1
	if req.Direction == "down" {
		dir = +1
	}

	state, err := r.EditorService.MoveItem(editorID, c.Param("category"), req.ItemID, dir)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// RepositionItem godoc
// @Summary Перенос элемента перед другим (drag-and-drop)
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.RepositionItemRequest true "Пара элементов"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items/reposition [post]
func (r *Routers) RepositionItem(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.RepositionItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.RepositionItem(editorID, c.Param("category"), req.DraggedID, req.TargetID)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// SortItems godoc
// @Summary Пересортировка черновика
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.SortItemsRequest true "Поле и направление сортировки"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items/sort [post]
func (r *Routers) SortItems(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.SortItemsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.SortItems(editorID, c.Param("category"), req.Field, req.Desc)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// ReverseItems godoc
// @Summary Разворот порядка черновика
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items/reverse [post]
func (r *Routers) ReverseItems(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.ReverseItems(editorID, c.Param("category"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// AddItem godoc
// @Summary Добавление элемента в черновик по URL
// @Description Строка уходит в хранилище только при сохранении черновика
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.AddItemRequest true "URL и поля нового элемента"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items [post]
func (r *Routers) AddItem(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.AddItem(editorID, c.Param("category"), req.URL, req.Title, req.Tags, req.SectionID)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// UpdateItem godoc
// @Summary Правка полей элемента черновика
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.UpdateItemRequest true "Новые значения полей"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items [put]
func (r *Routers) UpdateItem(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.UpdateItem(editorID, c.Param("category"), models.MediaItem{
		ID:          req.ItemID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		SectionID:   req.SectionID,
	})
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// DeleteItem godoc
// @Summary Немедленное удаление элемента
// @Description Удаление уходит в хранилище сразу, минуя черновик
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Param item_id path string true "ID элемента"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/items/{item_id} [delete]
func (r *Routers) DeleteItem(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "not valid UUID"))
	}

	state, err := r.EditorService.DeleteItem(c.Request().Context(), editorID, c.Param("category"), itemID)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// SetLayout godoc
// @Summary Смена раскладки категории в черновике
// @Tags editor
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.SetLayoutRequest true "Раскладка"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/layout [put]
func (r *Routers) SetLayout(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.SetLayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.SetLayout(editorID, c.Param("category"), models.ParseLayoutKind(req.Kind))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// SaveDraft godoc
// @Summary Сохранить черновик
// @Description Построчный дифф уходит в хранилище, сигнал публикации
// @Description срабатывает один раз. Неудача оставляет черновик нетронутым.
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/save [post]
func (r *Routers) SaveDraft(c echo.Context) error {
	const op = "http.routers.SaveDraft"

	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.Save(c.Request().Context(), editorID, c.Param("category"))
	if err != nil {
		if errors.Is(err, editorsvc.ErrNoSession) {
			return r.editorError(c, err)
		}
		r.log.Error("failed to save draft", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("save_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// DiscardDraft godoc
// @Summary Отбросить правки черновика
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 200 {object} response.Response{data=dto.EditorStateResponse}
// @Router /api/v1/editor/{category}/discard [post]
func (r *Routers) DiscardDraft(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.Discard(editorID, c.Param("category"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toEditorStateResponse(state)))
}

// CloseEditor godoc
// @Summary Закрыть сессию редактирования
// @Tags editor
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 204 "Сессия закрыта"
// @Router /api/v1/editor/{category}/close [post]
func (r *Routers) CloseEditor(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	r.EditorService.Close(editorID, c.Param("category"))

	return c.NoContent(http.StatusNoContent)
}

// ListSections godoc
// @Summary Секции категории
// @Tags sections
// @Produce json
// @Param category path string true "Категория галереи"
// @Success 200 {object} response.Response{data=[]models.Section}
// @Router /api/v1/editor/{category}/sections [get]
func (r *Routers) ListSections(c echo.Context) error {
	sections, err := r.EditorService.ListSections(c.Request().Context(), c.Param("category"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("sections_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(sections))
}

// CreateSection godoc
// @Summary Создание секции (немедленно)
// @Tags sections
// @Accept json
// @Produce json
// @Param category path string true "Категория галереи"
// @Param request body dto.CreateSectionRequest true "Секция"
// @Success 201 {object} response.Response{data=models.Section}
// @Router /api/v1/editor/{category}/sections [post]
func (r *Routers) CreateSection(c echo.Context) error {
	var req dto.CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	section, err := r.EditorService.CreateSection(c.Request().Context(), c.Param("category"), req.Name, req.OrderIndex)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("section_create_failed", err.Error()))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(section))
}

// DeleteSection godoc
// @Summary Удаление секции (немедленно)
// @Description Ссылки элементов не чистятся: висячая ссылка читается как
// @Description отсутствие секции
// @Tags sections
// @Produce json
// @Param category path string true "Категория галереи"
// @Param section_id path string true "ID секции"
// @Success 204 "Секция удалена"
// @Router /api/v1/editor/{category}/sections/{section_id} [delete]
func (r *Routers) DeleteSection(c echo.Context) error {
	sectionID, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "not valid UUID"))
	}

	if err := r.EditorService.DeleteSection(c.Request().Context(), sectionID); err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("section_delete_failed", err.Error()))
	}

	return c.NoContent(http.StatusNoContent)
}

// OpenContentSession godoc
// @Summary Открыть контентную сессию секции
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Param X-Editor-Session header string true "Идентификатор сессии редактора"
// @Success 200 {object} response.Response{data=dto.ContentStateResponse}
// @Router /api/v1/admin/content/{section}/open [post]
func (r *Routers) OpenContentSession(c echo.Context) error {
	const op = "http.routers.OpenContentSession"

	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.OpenContent(c.Request().Context(), editorID, c.Param("section"))
	if err != nil {
		r.log.Error("failed to open content session", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("content_open_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toContentStateResponse(state)))
}

// ContentSessionState godoc
// @Summary Текущий контентный черновик
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 200 {object} response.Response{data=dto.ContentStateResponse}
// @Router /api/v1/admin/content/{section}/state [get]
func (r *Routers) ContentSessionState(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.ContentStateOf(editorID, c.Param("section"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toContentStateResponse(state)))
}

// SetContentValue godoc
// @Summary Правка значения ключа в контентном черновике
// @Tags content
// @Accept json
// @Produce json
// @Param section path string true "Секция страницы"
// @Param request body dto.SetContentValueRequest true "Ключ и значение"
// @Success 200 {object} response.Response{data=dto.ContentStateResponse}
// @Router /api/v1/admin/content/{section} [put]
func (r *Routers) SetContentValue(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	var req dto.SetContentValueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	state, err := r.EditorService.SetContentValue(editorID, c.Param("section"), req.Key, req.Value)
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toContentStateResponse(state)))
}

// SaveContentDraft godoc
// @Summary Сохранить контентный черновик
// @Description В хранилище уходят только измененные и добавленные ключи
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 200 {object} response.Response{data=dto.ContentStateResponse}
// @Router /api/v1/admin/content/{section}/save [post]
func (r *Routers) SaveContentDraft(c echo.Context) error {
	const op = "http.routers.SaveContentDraft"

	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.SaveContent(c.Request().Context(), editorID, c.Param("section"))
	if err != nil {
		if errors.Is(err, editorsvc.ErrNoSession) {
			return r.editorError(c, err)
		}
		r.log.Error("failed to save content draft", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("save_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toContentStateResponse(state)))
}

// DiscardContentDraft godoc
// @Summary Отбросить контентный черновик
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 200 {object} response.Response{data=dto.ContentStateResponse}
// @Router /api/v1/admin/content/{section}/discard [post]
func (r *Routers) DiscardContentDraft(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	state, err := r.EditorService.DiscardContent(editorID, c.Param("section"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(toContentStateResponse(state)))
}

// ContentSessionDirty godoc
// @Summary Есть ли несохраненные контентные правки
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 200 {object} response.Response{data=dto.DirtyResponse}
// @Router /api/v1/admin/content/{section}/dirty [get]
func (r *Routers) ContentSessionDirty(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	dirty, err := r.EditorService.HasUnsavedContent(editorID, c.Param("section"))
	if err != nil {
		return r.editorError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.DirtyResponse{Dirty: dirty}))
}

// CloseContentSession godoc
// @Summary Закрыть контентную сессию
// @Tags content
// @Produce json
// @Param section path string true "Секция страницы"
// @Success 204 "Сессия закрыта"
// @Router /api/v1/admin/content/{section}/close [post]
func (r *Routers) CloseContentSession(c echo.Context) error {
	editorID, err := r.editorID(c)
	if err != nil {
		return err
	}

	r.EditorService.CloseContent(editorID, c.Param("section"))

	return c.NoContent(http.StatusNoContent)
}

// UploadMedia godoc
// @Summary Загрузка файла в галерею
// @Description Файл уходит в блоб-хранилище, элемент встает в хвост категории
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param category formData string true "Категория галереи"
// @Param title formData string false "Подпись"
// @Success 201 {object} response.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/media/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(slog.String("op", op))

	input, err := r.parseMediaUploadInput(c)
	if err != nil {
		log.Warn("invalid upload request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := c.Validate(input); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	resp, err := r.MediaService.UploadMedia(c.Request().Context(), *input)
	if err != nil {
		log.Error("failed to upload media", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("upload_failed", err.Error()))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(resp))
}

func (r *Routers) parseMediaUploadInput(c echo.Context) (*dto.MediaUploadInput, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("file is required")
	}

	uploaderID := uuid.Nil
	sess, err := session.Get("session", c)
	if err == nil {
		if raw, ok := sess.Values["user_id"].(string); ok {
			if id, err := uuid.Parse(raw); err == nil {
				uploaderID = id
			}
		}
	}

	input := &dto.MediaUploadInput{
		UploaderID: uploaderID,
		File:       file,
		Category:   c.FormValue("category"),
		Title:      c.FormValue("title"),
	}

	if form, err := c.MultipartForm(); err == nil {
		input.Tags = form.Value["tags"]
	}

	return input, nil
}

func (r *Routers) editorError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, editorsvc.ErrNoSession):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("no_session", err.Error()))
	case errors.Is(err, editorsvc.ErrItemNotInDraft):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("item_not_found", err.Error()))
	case errors.Is(err, editorsvc.ErrUnknownSortField):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("editor_failed", err.Error()))
	}
}

func toEditorStateResponse(state editorsvc.EditorState) dto.EditorStateResponse {
	items := make([]dto.EditorItem, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, dto.EditorItem{
			ID:          item.ID,
			URL:         item.URL,
			Title:       item.Title,
			Description: item.Description,
			Tags:        item.Tags,
			SectionID:   item.SectionID,
			OrderIndex:  item.OrderIndex,
		})
	}

	return dto.EditorStateResponse{
		Category: state.Category,
		Layout:   string(state.Layout.Kind),
		Items:    items,
		Dirty:    state.Dirty,
	}
}

func toContentStateResponse(state editorsvc.ContentState) dto.ContentStateResponse {
	return dto.ContentStateResponse{
		Section: state.Section,
		Values:  state.Values,
		Dirty:   state.Dirty,
	}
}
