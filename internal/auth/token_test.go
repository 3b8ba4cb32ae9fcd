package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/otfkit/internal/keyring"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func testSource(env map[string]string, stored string, storedErr error) *Source {
	return &Source{
		lookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		keyring: func() (string, error) { return stored, storedErr },
		now:     func() time.Time { return testNow },
	}
}

func TestParseClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   Claims
	}{
		{
			name: "cognito username preferred",
			claims: jwt.MapClaims{
				"cognito:username": "member-1",
				"sub":              "sub-1",
				"email":            "a@example.com",
				"exp":              testNow.Add(time.Hour).Unix(),
			},
			want: Claims{MemberUUID: "member-1", Email: "a@example.com", ExpiresAt: testNow.Add(time.Hour)},
		},
		{
			name:   "sub fallback without expiry",
			claims: jwt.MapClaims{"sub": "sub-1"},
			want:   Claims{MemberUUID: "sub-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClaims(signToken(t, tt.claims))
			if err != nil {
				t.Fatalf("ParseClaims() error = %v", err)
			}
			if got.MemberUUID != tt.want.MemberUUID || got.Email != tt.want.Email || !got.ExpiresAt.Equal(tt.want.ExpiresAt) {
				t.Errorf("ParseClaims() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseClaimsInvalid(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseClaims(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ParseClaims(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestSourceToken(t *testing.T) {
	valid := signToken(t, jwt.MapClaims{"sub": "m", "exp": testNow.Add(time.Hour).Unix()})
	fromEnv := signToken(t, jwt.MapClaims{"sub": "env", "exp": testNow.Add(time.Hour).Unix()})
	expired := signToken(t, jwt.MapClaims{"sub": "m", "exp": testNow.Add(-time.Minute).Unix()})

	tests := []struct {
		name      string
		env       map[string]string
		stored    string
		storedErr error
		want      string
		wantErr   error
	}{
		{name: "keyring", stored: valid, want: valid},
		{name: "env wins", env: map[string]string{TokenEnvVar: " " + fromEnv + " "}, stored: valid, want: fromEnv},
		{name: "blank env ignored", env: map[string]string{TokenEnvVar: "  "}, stored: valid, want: valid},
		{name: "not stored", storedErr: keyring.ErrNotFound, wantErr: ErrNoToken},
		{name: "keyring unavailable", storedErr: keyring.ErrKeyringUnavailable, wantErr: keyring.ErrKeyringUnavailable},
		{name: "expired", stored: expired, wantErr: ErrTokenExpired},
		{name: "garbage", stored: "garbage", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testSource(tt.env, tt.stored, tt.storedErr).Token(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Token() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceClaims(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "member-9", "email": "m@example.com"})
	c, err := testSource(nil, token, nil).Claims(context.Background())
	if err != nil {
		t.Fatalf("Claims() error = %v", err)
	}
	if c.MemberUUID != "member-9" || c.Email != "m@example.com" {
		t.Errorf("Claims() = %+v", c)
	}
}

func TestNewSourceUsesKeyring(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(TokenEnvVar, "")

	token := signToken(t, jwt.MapClaims{"sub": "kr"})
	if err := keyring.SetToken(token); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	got, err := NewSource().Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got != token {
		t.Errorf("Token() = %q, want stored token", got)
	}
}

func TestStatic(t *testing.T) {
	if got, err := Static("abc").Token(context.Background()); err != nil || got != "abc" {
		t.Errorf("Token() = %q, %v", got, err)
	}
	if _, err := Static("").Token(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() error = %v, want ErrNoToken", err)
	}
}
