package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is the payload carried by a session token. Only the acting user's
// id is asserted; everything else about the user is looked up per request.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Maker signs and verifies session tokens with a single HMAC secret. The
// secret is injected at construction instead of read from ambient state so
// tests can run with a throwaway key.
type Maker struct {
	secret []byte
}

func NewMaker(secret string) (*Maker, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	return &Maker{secret: []byte(secret)}, nil
}

// Sign mints a token asserting userId. Tokens carry no expiry, matching the
// session model where a token stays valid until the secret rotates.
func (m *Maker) Sign(userId string) (string, error) {
	claims := Claims{
		UserID: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "token: fail to sign")
	}
	return signed, nil
}

// Verify validates the signature of a bearer token and returns the asserted
// user id. Any parse or signature failure is returned as-is so the caller
// can decide the response status.
func (m *Maker) Verify(tokenString string) (string, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("token: unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.UserID == "" {
		return "", errors.New("token: invalid claims")
	}
	return claims.UserID, nil
}
