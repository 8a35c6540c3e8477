package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/errs"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Service talks to the auth provider's REST surface. It owns user identity
// (sign-up, password sign-in) and mints short-lived ID tokens from a
// session's refresh token.
type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.Identity
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:    log,
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg.Identity,
	}
}

// Credentials is what the provider hands back after sign-up, sign-in or a
// token refresh. IDToken is the short-lived bearer credential; it is never
// persisted, only forwarded on the next backend call.
type Credentials struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	UID          string `json:"localId"`
	Email        string `json:"email"`
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Service) SignUp(ctx context.Context, email, password string) (Credentials, int, error) {
	return s.accounts(ctx, "accounts:signUp", email, password)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Credentials, int, error) {
	return s.accounts(ctx, "accounts:signInWithPassword", email, password)
}

func (s *Service) accounts(ctx context.Context, endpoint, email, password string) (Credentials, int, error) {
	body := struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(body); err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s?key=%s", s.cfg.BaseURL, endpoint, url.QueryEscape(s.cfg.APIKey)), b)
	if err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp, err := s.client.Do(req)
	if err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var pe providerError
		_ = json.NewDecoder(resp.Body).Decode(&pe) //nolint:errcheck
		s.log.Warn("identity provider rejected request",
			zap.String("endpoint", endpoint), zap.Int("code", resp.StatusCode), zap.String("message", pe.Error.Message))
		return Credentials{}, resp.StatusCode, errs.NewAPIError(resp.StatusCode, pe.Error.Message)
	}

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	return creds, resp.StatusCode, nil
}

// Mint exchanges a refresh token for a fresh ID token. Called before every
// outbound backend request so an expired token is never sent.
func (s *Service) Mint(ctx context.Context, refreshToken string) (Credentials, int, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/token?key=%s", s.cfg.TokenBaseURL, url.QueryEscape(s.cfg.APIKey)),
		strings.NewReader(form.Encode()))
	if err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	resp, err := s.client.Do(req)
	if err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var pe providerError
		_ = json.NewDecoder(resp.Body).Decode(&pe) //nolint:errcheck
		return Credentials{}, resp.StatusCode, errs.NewAPIError(resp.StatusCode, pe.Error.Message)
	}

	// the token endpoint answers in snake_case, unlike the accounts API
	var tok struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		UserID       string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return Credentials{}, http.StatusBadRequest, err
	}
	return Credentials{
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
		UID:          tok.UserID,
	}, resp.StatusCode, nil
}
