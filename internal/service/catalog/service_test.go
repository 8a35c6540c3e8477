package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/booknest/booknest/config"
	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/catalog"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, handler http.HandlerFunc) *catalog.Service {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{}
	cfg.Catalog.BaseURL = srv.URL
	cfg.Catalog.APIKey = "test-key"
	return catalog.NewService(zap.NewExample().Named("test"), cfg)
}

func TestService_Search(t *testing.T) {
	t.Parallel()
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/volumes", r.URL.Path)
		require.Equal(t, "dune herbert", r.URL.Query().Get("q"))
		require.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []model.Volume{
				{
					ID: "g1",
					VolumeInfo: model.VolumeInfo{
						Title:      "Dune",
						Authors:    []string{"Frank Herbert"},
						ImageLinks: &model.ImageLinks{Thumbnail: "http://img/g1.jpg"},
					},
				},
			},
		})
	})

	volumes, code, err := svc.Search(context.Background(), "dune herbert")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, volumes, 1)
	require.Equal(t, "g1", volumes[0].ID)
	require.Equal(t, "Dune", volumes[0].VolumeInfo.Title)
}

func TestService_Search_EmptyQueryUsesDefaultSubject(t *testing.T) {
	t.Parallel()
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "subject:fiction", r.URL.Query().Get("q"))
		require.Equal(t, "9", r.URL.Query().Get("maxResults"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []model.Volume{}})
	})

	volumes, _, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, volumes)
}

func TestService_Search_NoItemsField(t *testing.T) {
	t.Parallel()
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"totalItems": 0})
	})

	volumes, code, err := svc.Search(context.Background(), "unfindable")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, volumes)
}

func TestService_Search_ProviderError(t *testing.T) {
	t.Parallel()
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "API key not valid"},
		})
	})

	_, code, err := svc.Search(context.Background(), "dune")
	require.Equal(t, http.StatusForbidden, code)
	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "API key not valid", apiErr.Message)
}
