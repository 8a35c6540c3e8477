package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// Claims is the payload of the session cookie: just the session id, signed
// so the cookie cannot be forged. Auth itself lives in the session store.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func NewToken(signingKey, sessionID string, ttl time.Duration) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
}

func ParseToken(signingKey, tokenStr string) (string, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(signingKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
