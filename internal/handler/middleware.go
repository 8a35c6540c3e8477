package handler

import (
	"net/http"
	"strings"

	"github.com/booknest/booknest/internal/session"
	"github.com/booknest/booknest/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "

	// SessionCookie carries the signed session token between page loads.
	SessionCookie = "booknest_session"

	sessionKeyString = "sessionKey"
)

// sessionMW resolves the session cookie (or a bearer header for non-browser
// clients) into a live session and rejects everything else with 401.
func (h *Handler) sessionMW(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenStr = cookie.Value
		}
		if tokenStr == "" {
			authorization := c.Request().Header.Get(AuthorizationHeader)
			tokenStr = strings.TrimPrefix(authorization, bearer)
		}
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "no session")
		}
		sid, err := session.ParseToken(h.cfg.Session.SigningKey, tokenStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		sess, err := h.sessions.Get(sid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		c.Set(sessionKeyString, sess)
		return next(c)
	}
}

func sessionFrom(c echo.Context) (*session.Session, error) {
	sess, ok := c.Get(sessionKeyString).(*session.Session)
	if !ok {
		return nil, errors.New("no session in context")
	}
	return sess, nil
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}

func newRateLimiterMW(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}
