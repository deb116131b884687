// Package tokens issues and validates the stateless session tokens handed
// back to the client after a successful login. Tokens are HS256 JWTs with a
// fixed validity window; there is no refresh path, expiry forces a full
// re-authentication.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is the fixed validity window for issued session tokens.
const SessionTTL = 7 * 24 * time.Hour

// Claims holds the claims embedded in a session token. UserID is the stable
// identifier the user store assigned to the record.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer signs and validates session tokens with a server-held secret.
type Issuer struct {
	secret []byte
}

// NewIssuer constructs an Issuer. The secret must be non-empty.
func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	return &Issuer{secret: secret}, nil
}

// Issue creates a signed HS256 token embedding the subject id.
func (i *Issuer) Issue(subjectID string, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("subject id is required")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique id per token so individual tokens are distinguishable
			// in logs even for the same subject.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: subjectID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a session token and returns the embedded subject id.
// Expired tokens, wrong algorithms, and bad signatures all fail.
func (i *Issuer) Parse(tokenStr string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	return claims.UserID, nil
}
