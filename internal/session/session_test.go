package session_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/booknest/booknest/internal/errs"
	"github.com/booknest/booknest/internal/model"
	"github.com/booknest/booknest/internal/service/identity"
	"github.com/booknest/booknest/internal/session"
	"github.com/stretchr/testify/require"
)

type fakeMinter struct {
	calls  int
	rotate string
	err    error
}

func (m *fakeMinter) Mint(_ context.Context, refreshToken string) (identity.Credentials, int, error) {
	m.calls++
	if m.err != nil {
		return identity.Credentials{}, http.StatusBadRequest, m.err
	}
	rt := refreshToken
	if m.rotate != "" {
		rt = m.rotate
	}
	return identity.Credentials{IDToken: "minted-" + refreshToken, RefreshToken: rt}, http.StatusOK, nil
}

func TestSession_TokenIsMintedPerCall(t *testing.T) {
	t.Parallel()
	minter := &fakeMinter{}
	st := session.NewStore(time.Hour)
	sess := st.Create(minter, "rt-0", model.User{Name: "Jo"})

	tok, err := sess.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "minted-rt-0", tok)

	_, err = sess.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, minter.calls, "token must not be cached between calls")
}

func TestSession_TokenRotatesRefreshToken(t *testing.T) {
	t.Parallel()
	minter := &fakeMinter{rotate: "rt-1"}
	st := session.NewStore(time.Hour)
	sess := st.Create(minter, "rt-0", model.User{})

	_, err := sess.Token(context.Background())
	require.NoError(t, err)

	minter.rotate = ""
	tok, err := sess.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "minted-rt-1", tok)
}

func TestStore_GetExpired(t *testing.T) {
	t.Parallel()
	st := session.NewStore(-time.Minute)
	sess := st.Create(&fakeMinter{}, "rt", model.User{})

	_, err := st.Get(sess.ID)
	require.ErrorIs(t, err, errs.ErrSessionExpired)

	// expired sessions are evicted
	_, err = st.Get(sess.ID)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()
	st := session.NewStore(time.Hour)
	sess := st.Create(&fakeMinter{}, "rt", model.User{})

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	require.Equal(t, sess.ID, got.ID)

	st.Delete(sess.ID)
	_, err = st.Get(sess.ID)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()
	tok, err := session.NewToken("signing-key", "sid-1", time.Hour)
	require.NoError(t, err)

	sid, err := session.ParseToken("signing-key", tok)
	require.NoError(t, err)
	require.Equal(t, "sid-1", sid)

	_, err = session.ParseToken("other-key", tok)
	require.Error(t, err)

	_, err = session.ParseToken("signing-key", "not-a-token")
	require.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	t.Parallel()
	tok, err := session.NewToken("signing-key", "sid-1", -time.Minute)
	require.NoError(t, err)

	_, err = session.ParseToken("signing-key", tok)
	require.Error(t, err)
}
