package session

import (
	"context"
	"sync"
	"time"

	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/identity"
	"github.com/booknest/booknest/internal/shelf"
	"github.com/google/uuid"
)

// Minter exchanges a refresh token for fresh provider credentials.
type Minter interface {
	Mint(ctx context.Context, refreshToken string) (identity.Credentials, int, error)
}

var _ Minter = (*identity.Service)(nil)

// Session is the explicit per-user auth state: it holds the provider
// refresh token, the cached profile and the user's shelf. There is no
// process-wide "current user"; every call that needs auth is handed a
// session.
type Session struct {
	ID        string
	Shelf     *shelf.Shelf
	ExpiresAt time.Time

	minter Minter

	mu           sync.Mutex
	user         model.User
	refreshToken string
}

// Token mints a fresh ID token for one outbound call. Nothing is cached:
// a token is requested per call so an expired one is never sent.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	rt := s.refreshToken
	s.mu.Unlock()

	creds, _, err := s.minter.Mint(ctx, rt)
	if err != nil {
		return "", err
	}
	if creds.RefreshToken != "" && creds.RefreshToken != rt {
		s.mu.Lock()
		s.refreshToken = creds.RefreshToken
		s.mu.Unlock()
	}
	return creds.IDToken, nil
}

// User returns the cached profile. The authoritative copy lives on the
// backend; this one only changes when a backend response replaces it.
func (s *Session) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) SetUser(user model.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session. The caller attaches the shelf afterwards;
// the shelf mints tokens through the session it belongs to.
func (st *Store) Create(minter Minter, refreshToken string, user model.User) *Session {
	s := &Session{
		ID:           uuid.NewString(),
		ExpiresAt:    time.Now().Add(st.ttl),
		minter:       minter,
		user:         user,
		refreshToken: refreshToken,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, errs.ErrUnauthenticated
	}
	if time.Now().After(s.ExpiresAt) {
		st.Delete(id)
		return nil, errs.ErrSessionExpired
	}
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
