package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"go.uber.org/zap"
)

// defaultQuery is what the home page shows before the user has searched.
const (
	defaultQuery      = "subject:fiction"
	defaultMaxResults = 9
)

// Service reads the public book catalog. No auth, no caching; every query
// hits the search API and the result set is discarded on the next one.
type Service struct {
	log     *zap.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:     log,
		client:  &http.Client{Timeout: time.Minute},
		baseURL: cfg.Catalog.BaseURL,
		apiKey:  cfg.Catalog.APIKey,
	}
}

func (s *Service) Search(ctx context.Context, query string) ([]model.Volume, int, error) {
	q := url.Values{}
	if query == "" {
		q.Set("q", defaultQuery)
		q.Set("maxResults", fmt.Sprint(defaultMaxResults))
	} else {
		q.Set("q", query)
	}
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/volumes?%s", s.baseURL, q.Encode()), http.NoBody)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&env) //nolint:errcheck
		return nil, resp.StatusCode, errs.NewAPIError(resp.StatusCode, env.Error.Message)
	}

	var result struct {
		Items []model.Volume `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return result.Items, resp.StatusCode, nil
}
