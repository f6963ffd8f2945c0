package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/constant"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	jwt.RegisteredClaims
}

type TokenApp interface {
	Issue(userID, userName string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type tokenAppImpl struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenApp(cfg *config.Config) TokenApp {
	return newTokenApp(cfg, time.Now)
}

// NewTokenAppWithClock is NewTokenApp with an injectable clock.
func NewTokenAppWithClock(cfg *config.Config, now func() time.Time) TokenApp {
	return newTokenApp(cfg, now)
}

func newTokenApp(cfg *config.Config, now func() time.Time) *tokenAppImpl {
	method := jwt.GetSigningMethod(cfg.Auth.JWTAlgorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &tokenAppImpl{
		secret: []byte(cfg.Auth.JWTSecret),
		method: method,
		ttl:    cfg.Auth.JWTExpiration,
		now:    now,
	}
}

// Issue signs a token for the user expiring after the configured TTL.
func (s *tokenAppImpl) Issue(userID, userName string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   userID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. Expired tokens yield ErrTokenExpired,
// every other failure ErrInvalidToken.
func (s *tokenAppImpl) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, cerr.SetCustomError(constant.ErrTokenExpired)
		}
		return nil, cerr.SetCustomError(constant.ErrInvalidToken)
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidToken)
	}
	return claims, nil
}
