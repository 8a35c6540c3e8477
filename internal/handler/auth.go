package handler

import (
	"net/http"

	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/identity"
	"github.com/booknest/booknest/internal/session"
	"github.com/booknest/booknest/internal/shelf"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SignUp creates the account with the auth provider, registers the profile
// with the collection backend and opens a session.
func (h *Handler) SignUp(c echo.Context) error {
	var req model.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	creds, code, err := h.identitySvc.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	user, code, err := h.collectionSvc.Register(ctx, model.RegisterRequest{
		Name:        req.Name,
		Email:       req.Email,
		FirebaseUID: creds.UID,
	})
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}

	sess, err := h.openSession(c, creds, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.log.Info("signed up", zap.String("session", sess.ID), zap.String("uid", creds.UID))
	return c.JSON(http.StatusCreated, user)
}

// SignIn authenticates with the auth provider, confirms the session with
// the backend using the freshly issued ID token, and opens a session.
func (h *Handler) SignIn(c echo.Context) error {
	var req model.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	creds, code, err := h.identitySvc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	res, code, err := h.collectionSvc.Login(ctx, model.LoginRequest{
		IDToken:     creds.IDToken,
		FirebaseUID: creds.UID,
	})
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}

	user := model.User{Email: creds.Email, FirebaseUID: creds.UID}
	if res.User != nil {
		user = *res.User
	}
	sess, err := h.openSession(c, creds, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.log.Info("signed in", zap.String("session", sess.ID), zap.String("uid", creds.UID))
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) SignOut(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	h.sessions.Delete(sess.ID)
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) openSession(c echo.Context, creds identity.Credentials, user model.User) (*session.Session, error) {
	sess := h.sessions.Create(h.identitySvc, creds.RefreshToken, user)
	sess.Shelf = shelf.New(h.collectionSvc, sess, h.log)

	token, err := session.NewToken(h.cfg.Session.SigningKey, sess.ID, h.cfg.Session.TTL)
	if err != nil {
		h.sessions.Delete(sess.ID)
		return nil, err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
