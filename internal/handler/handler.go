package handler

import (
	"net/http"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/session"
	"github.com/booknest/booknest/pkg/inflight"
	"github.com/booknest/booknest/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	collectionSvc CollectionService
	catalogSvc    CatalogService
	identitySvc   IdentityService
	sessions      *session.Store
	cfg           config.Config
	log           *zap.Logger
}

func New(log *zap.Logger, cfg config.Config, collectionSvc CollectionService, catalogSvc CatalogService, identitySvc IdentityService) *Handler {
	return &Handler{
		collectionSvc: collectionSvc,
		catalogSvc:    catalogSvc,
		identitySvc:   identitySvc,
		sessions:      session.NewStore(cfg.Session.TTL),
		cfg:           cfg,
		log:           log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
	)
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/login", h.SignIn)

	authed := api.Group("", h.sessionMW)
	authed.POST("/auth/logout", h.SignOut)

	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/profile", h.GetProfile)
	authed.PUT("/profile", h.UpdateProfile)
	authed.GET("/catalog", h.SearchCatalog)

	authed.GET("/library", h.GetLibrary)
	authed.GET("/library/shelves", h.GetShelves)
	authed.GET("/library/reviews", h.GetReviews)
	authed.POST("/library", h.AddBook)
	authed.PUT("/library/:id/status", h.SetStatus)
	authed.PUT("/library/:id/rating", h.RateBook)
	authed.PUT("/library/:id/review", h.ReviewBook)
	authed.DELETE("/library/:id/review", h.ClearReview)
	authed.DELETE("/library/:id", h.DeleteBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetLibrary(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, sess.Shelf.Books())
}

func (h *Handler) GetShelves(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if status := c.QueryParam("status"); status != "" {
		rs := model.ReadStatus(status)
		if !rs.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown read status")
		}
		return c.JSON(http.StatusOK, sess.Shelf.ByStatus(rs))
	}
	return c.JSON(http.StatusOK, sess.Shelf.Partitions())
}

func (h *Handler) GetReviews(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, sess.Shelf.Reviewed())
}

func (h *Handler) AddBook(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.AddBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ReadStatus == "" {
		req.ReadStatus = model.StatusWishlist
	}
	if !req.ReadStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown read status")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := sess.Shelf.Add(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) SetStatus(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req struct {
		ReadStatus model.ReadStatus `json:"readStatus"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.ReadStatus.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown read status")
	}
	book, err := sess.Shelf.SetStatus(c.Request().Context(), c.Param("id"), req.ReadStatus)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) RateBook(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req struct {
		UserRating int `json:"userRating" validate:"required,min=1,max=5"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := sess.Shelf.Rate(c.Request().Context(), c.Param("id"), req.UserRating)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ReviewBook(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req struct {
		UserReview string `json:"userReview" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	book, err := sess.Shelf.Review(c.Request().Context(), c.Param("id"), req.UserReview)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) ClearReview(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	book, err := sess.Shelf.ClearReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if err := sess.Shelf.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// httpError maps shelf and backend errors onto the HTTP surface, keeping
// the backend's message when it reported one.
func (h *Handler) httpError(err error) *echo.HTTPError {
	var apiErr *errs.APIError
	switch {
	case errors.Is(err, errs.ErrDuplicateBook):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, inflight.ErrBusy):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNoBookID):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrSessionExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &apiErr):
		return echo.NewHTTPError(apiErr.Code, apiErr.Message)
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}
