// Package auth supplies the bearer token for API requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/otfkit/internal/keyring"
)

// TokenEnvVar overrides the keyring-stored token when set.
const TokenEnvVar = "OTF_TOKEN"

var (
	ErrNoToken      = errors.New("no API token configured, run 'otf auth set' or set " + TokenEnvVar)
	ErrTokenExpired = errors.New("API token has expired, run 'otf auth login' to store a new one")
	ErrInvalidToken = errors.New("API token is not a valid JWT")
)

// TokenSource returns the token to send with the next request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Claims are the identity fields read from the token payload.
type Claims struct {
	MemberUUID string
	Email      string
	ExpiresAt  time.Time
}

// Expired reports whether the token has an expiry at or before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes the token payload without verifying its signature;
// the API verifies it, we only need the identity and expiry.
func ParseClaims(token string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var c Claims
	for _, key := range []string{"cognito:username", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			c.MemberUUID = v
			break
		}
	}
	c.Email, _ = claims["email"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Source reads the token from OTF_TOKEN, falling back to the OS keyring.
type Source struct {
	lookupEnv func(string) (string, bool)
	keyring   func() (string, error)
	now       func() time.Time
}

func NewSource() *Source {
	return &Source{
		lookupEnv: os.LookupEnv,
		keyring:   keyring.GetToken,
		now:       time.Now,
	}
}

// Token returns the configured token, rejecting expired or malformed ones
// before any request is made.
func (s *Source) Token(_ context.Context) (string, error) {
	token, err := s.raw()
	if err != nil {
		return "", err
	}

	claims, err := ParseClaims(token)
	if err != nil {
		return "", err
	}
	if claims.Expired(s.now()) {
		return "", ErrTokenExpired
	}
	return token, nil
}

// Claims returns the identity of the configured token.
func (s *Source) Claims(ctx context.Context) (Claims, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(token)
}

func (s *Source) raw() (string, error) {
	if v, ok := s.lookupEnv(TokenEnvVar); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}

	token, err := s.keyring()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Static is a fixed token, used in tests and for one-off requests.
type Static string

func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}
