package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TokenSource mints a fresh bearer token for one outbound call. Tokens are
// requested per call and never cached here, so an expired token is never
// attached.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Service is the only boundary between this process and the collection
// backend: one method per backend capability, one request per method, no
// retries and no client-side caching.
type Service struct {
	log     *zap.Logger
	client  *http.Client
	baseURL string
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:     log,
		client:  &http.Client{Timeout: time.Minute},
		baseURL: cfg.Collection.BaseURL,
	}
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, int, error) {
	var user model.User
	code, err := s.send(ctx, nil, http.MethodPost, "/auth/register", req, &user)
	return user, code, err
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, int, error) {
	var res model.LoginResult
	code, err := s.send(ctx, nil, http.MethodPost, "/auth/login", req, &res)
	return res, code, err
}

func (s *Service) GetProfile(ctx context.Context, ts TokenSource) (model.User, int, error) {
	var user model.User
	code, err := s.send(ctx, ts, http.MethodGet, "/profile", nil, &user)
	return user, code, err
}

func (s *Service) UpdateProfile(ctx context.Context, ts TokenSource, req model.UpdateProfileRequest) (model.User, int, error) {
	var user model.User
	code, err := s.send(ctx, ts, http.MethodPut, "/profile", req, &user)
	return user, code, err
}

// GetBooks returns the user's collection in server order; callers must not
// re-sort it.
func (s *Service) GetBooks(ctx context.Context, ts TokenSource) ([]model.Book, int, error) {
	var books []model.Book
	code, err := s.send(ctx, ts, http.MethodGet, "/books", nil, &books)
	return books, code, err
}

// AddBook creates the record from the catalog copy fields. Draft rating
// and review are not part of the create payload; the caller applies them
// against the id the backend assigns.
func (s *Service) AddBook(ctx context.Context, ts TokenSource, req model.AddBookRequest) (model.Book, int, error) {
	body := struct {
		GoogleBooksID string           `json:"googleBooksId"`
		Title         string           `json:"title"`
		Authors       []string         `json:"authors"`
		Description   string           `json:"description,omitempty"`
		ImageURL      string           `json:"imageUrl,omitempty"`
		ReadStatus    model.ReadStatus `json:"readStatus"`
	}{
		GoogleBooksID: req.GoogleBooksID,
		Title:         req.Title,
		Authors:       req.Authors,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		ReadStatus:    req.ReadStatus,
	}
	var book model.Book
	code, err := s.send(ctx, ts, http.MethodPost, "/books", body, &book)
	return book, code, err
}

func (s *Service) UpdateBook(ctx context.Context, ts TokenSource, id string, req model.UpdateBookRequest) (model.Book, int, error) {
	var book model.Book
	code, err := s.send(ctx, ts, http.MethodPut, "/books/"+id, req, &book)
	return book, code, err
}

// ClearReview drops both the rating and the review in one update. The
// explicit nulls matter: omitting the fields would leave them untouched.
func (s *Service) ClearReview(ctx context.Context, ts TokenSource, id string) (model.Book, int, error) {
	req := struct {
		UserRating *int    `json:"userRating"`
		UserReview *string `json:"userReview"`
	}{}
	var book model.Book
	code, err := s.send(ctx, ts, http.MethodPut, "/books/"+id, req, &book)
	return book, code, err
}

func (s *Service) DeleteBook(ctx context.Context, ts TokenSource, id string) (int, error) {
	return s.send(ctx, ts, http.MethodDelete, "/books/"+id, nil, nil)
}

// send makes a single attempt against the backend. If minting a token
// fails the request still goes out without an Authorization header and the
// backend is expected to reject it.
func (s *Service) send(ctx context.Context, ts TokenSource, method, path string, in, out interface{}) (int, error) {
	var body *bytes.Buffer
	if in != nil {
		body = bytes.NewBuffer(nil)
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return http.StatusBadRequest, err
		}
	}
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return http.StatusBadRequest, err
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if ts != nil {
		token, err := ts.Token(ctx)
		if err != nil {
			s.log.Warn("token mint failed, sending without authorization", zap.Error(err))
		} else {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return http.StatusBadRequest, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&env) //nolint:errcheck
		return resp.StatusCode, backendError(resp.StatusCode, env.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return http.StatusBadRequest, err
		}
	}
	return resp.StatusCode, nil
}

func backendError(code int, message string) error {
	switch code {
	case http.StatusUnauthorized:
		if message != "" {
			return errors.Wrap(errs.ErrUnauthenticated, message)
		}
		return errs.ErrUnauthenticated
	case http.StatusNotFound:
		if message != "" {
			return errors.Wrap(errs.ErrNotFound, message)
		}
		return errs.ErrNotFound
	default:
		return errs.NewAPIError(code, message)
	}
}
