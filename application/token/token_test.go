package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/muhammadheryan/property-listing/application/token"
	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/constant"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/stretchr/testify/require"
)

func testConfig(secret, alg string) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     secret,
			JWTAlgorithm:  alg,
			JWTExpiration: time.Hour,
		},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenApp_RoundTrip(t *testing.T) {
	app := token.NewTokenApp(testConfig("secret", "HS256"))

	signed, err := app.Issue("u1", "Agence Nord")
	require.NoError(t, err)

	claims, err := app.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "Agence Nord", claims.UserName)
	require.Equal(t, "u1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
}

func TestTokenApp_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	cfg := testConfig("secret", "HS384")

	signed, err := token.NewTokenAppWithClock(cfg, fixedClock(issuedAt)).Issue("u1", "A")
	require.NoError(t, err)

	_, err = token.NewTokenAppWithClock(cfg, fixedClock(issuedAt.Add(59*time.Minute))).Verify(signed)
	require.NoError(t, err)

	_, err = token.NewTokenAppWithClock(cfg, fixedClock(issuedAt.Add(61*time.Minute))).Verify(signed)
	require.Error(t, err)
	require.True(t, cerr.Is(err, constant.ErrTokenExpired), "got %v", err)
}

func TestTokenApp_Rejects(t *testing.T) {
	app := token.NewTokenApp(testConfig("secret", "HS256"))

	good, err := app.Issue("u1", "A")
	require.NoError(t, err)
	other, err := app.Issue("u2", "B")
	require.NoError(t, err)

	foreign, err := token.NewTokenApp(testConfig("another-secret", "HS256")).Issue("u1", "A")
	require.NoError(t, err)

	strongerAlg, err := token.NewTokenApp(testConfig("secret", "HS512")).Issue("u1", "A")
	require.NoError(t, err)

	goodParts := strings.Split(good, ".")
	otherParts := strings.Split(other, ".")
	swapped := goodParts[0] + "." + otherParts[1] + "." + goodParts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "signed with another secret", token: foreign},
		{name: "payload swapped under original signature", token: swapped},
		{name: "algorithm not configured", token: strongerAlg},
		{name: "not a jwt", token: "definitely-not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.Verify(tt.token)
			require.Error(t, err)
			require.True(t, cerr.Is(err, constant.ErrInvalidToken), "got %v", err)
		})
	}
}
