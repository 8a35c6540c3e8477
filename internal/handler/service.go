package handler

import (
	"context"

	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/catalog"
	"github.com/booknest/booknest/internal/service/collection"
	"github.com/booknest/booknest/internal/service/identity"
	"github.com/booknest/booknest/internal/shelf"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CollectionService = (*collection.Service)(nil)
	_ CatalogService    = (*catalog.Service)(nil)
	_ IdentityService   = (*identity.Service)(nil)
)

type CollectionService interface {
	shelf.CollectionService
	Register(ctx context.Context, req model.RegisterRequest) (model.User, int, error)
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, int, error)
	GetProfile(ctx context.Context, ts collection.TokenSource) (model.User, int, error)
	UpdateProfile(ctx context.Context, ts collection.TokenSource, req model.UpdateProfileRequest) (model.User, int, error)
}

type CatalogService interface {
	Search(ctx context.Context, query string) ([]model.Volume, int, error)
}

type IdentityService interface {
	SignUp(ctx context.Context, email, password string) (identity.Credentials, int, error)
	SignIn(ctx context.Context, email, password string) (identity.Credentials, int, error)
	Mint(ctx context.Context, refreshToken string) (identity.Credentials, int, error)
}
