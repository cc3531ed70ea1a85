package utils // package utils provides helper primitives for hashing and token handling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/lortega/product-catalog-api/internal/model"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// unexpected algorithm, malformed payload or expired token.  Callers must not
// be able to distinguish the cases.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in every access token.  The subject of the
// registered claims carries the user ID; role and email ride alongside so the
// middleware can gate requests without a store round-trip.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.  The secret and the
// token lifetime are fixed at construction and never change afterwards, so a
// single issuer can be shared by all requests.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer from the configured signing secret and
// token lifetime.  An empty secret is a configuration error the caller must
// reject before getting here.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the given identity.  It returns the serialized
// token and its expiration time.
func (i *TokenIssuer) Issue(userID, email string, role model.Role) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.ttl)
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses and validates a serialized token.  Signature, algorithm and
// expiry checks all collapse into ErrInvalidToken.
func (i *TokenIssuer) Verify(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC; otherwise a crafted
		// token could select its own verification scheme.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
