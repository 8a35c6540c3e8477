package handler

import (
	"net/http"

	"github.com/booknest/booknest/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardResponse renders each section independently: a section that
// failed to load comes back empty with its error listed, without blocking
// the others.
type DashboardResponse struct {
	Profile *model.User       `json:"profile"`
	Library []model.Book      `json:"library"`
	Catalog []model.Volume    `json:"catalog"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Dashboard is the initial load: profile, collection and catalog are
// fetched concurrently and none of them gates the others.
func (h *Handler) Dashboard(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	ctx := c.Request().Context()

	var (
		profileErr error
		libraryErr error
		catalogErr error
		volumes    []model.Volume
	)
	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		user, _, err := h.collectionSvc.GetProfile(ctx, sess)
		if err != nil {
			profileErr = err
			return nil
		}
		sess.SetUser(user)
		return nil
	})
	gg.Go(func() error {
		libraryErr = sess.Shelf.Refresh(ctx)
		return nil
	})
	gg.Go(func() error {
		volumes, _, catalogErr = h.catalogSvc.Search(ctx, c.QueryParam("q"))
		return nil
	})
	_ = gg.Wait() //nolint:errcheck

	resp := DashboardResponse{
		Library: sess.Shelf.Books(),
		Catalog: volumes,
	}
	if profileErr == nil {
		user := sess.User()
		resp.Profile = &user
	}
	for name, err := range map[string]error{
		"profile": profileErr,
		"library": libraryErr,
		"catalog": catalogErr,
	} {
		if err != nil {
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[name] = err.Error()
			h.log.Warn("dashboard section unavailable", zap.String("section", name), zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetProfile(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	user, code, err := h.collectionSvc.GetProfile(c.Request().Context(), sess)
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	sess.SetUser(user)
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	var req model.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	user, code, err := h.collectionSvc.UpdateProfile(c.Request().Context(), sess, req)
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	sess.SetUser(user)
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) SearchCatalog(c echo.Context) error {
	volumes, code, err := h.catalogSvc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	return c.JSON(http.StatusOK, volumes)
}
