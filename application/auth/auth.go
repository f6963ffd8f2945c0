package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/muhammadheryan/property-listing/application/token"
	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	redisrepo "github.com/muhammadheryan/property-listing/repository/redis"
	userrepo "github.com/muhammadheryan/property-listing/repository/user"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/muhammadheryan/property-listing/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const loginAttemptsPrefix = "login_attempts:"

type AuthApp interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Resolve(ctx context.Context, tokenString string) (*model.UserEntity, error)
}

type AuthAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	tokenApp  token.TokenApp
}

func NewAuthApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, tokenApp token.TokenApp) AuthApp {
	return &AuthAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		tokenApp:  tokenApp,
	}
}

// Login checks the email/password pair. Unknown email and wrong password fail the
// same way so callers cannot probe for registered addresses.
func (s *AuthAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	attemptsKey := loginAttemptsPrefix + strings.ToLower(req.Username)

	if limit := s.config.Auth.LoginMaxAttempts; limit > 0 {
		attempts, err := s.redisRepo.GetInt(ctx, attemptsKey)
		if err != nil {
			logger.Warn("[Login] err redisRepo.GetInt", zap.String("error", err.Error()))
		} else if attempts >= int64(limit) {
			return nil, cerr.SetCustomError(constant.ErrTooManyRequests)
		}
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Username})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.recordFailure(ctx, attemptsKey)
		return nil, cerr.SetCustomError(constant.ErrInvalidCredentials)
	}

	accessToken, err := s.tokenApp.Issue(user.ID, user.Name)
	if err != nil {
		logger.Error("[Login] err tokenApp.Issue", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	if s.config.Auth.LoginMaxAttempts > 0 {
		if err := s.redisRepo.Delete(ctx, attemptsKey); err != nil {
			logger.Warn("[Login] err redisRepo.Delete", zap.String("error", err.Error()))
		}
	}

	return &model.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserName:    user.Name,
	}, nil
}

// Resolve maps a bearer token back to its user. Every protected route goes through it.
func (s *AuthAppImpl) Resolve(ctx context.Context, tokenString string) (*model.UserEntity, error) {
	claims, err := s.tokenApp.Verify(tokenString)
	if err != nil {
		logger.Debug("[Resolve] token rejected", zap.String("error", err.Error()))
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: claims.UserID})
	if err != nil {
		if errors.Is(err, model.ErrMalformedID) {
			return nil, cerr.SetCustomError(constant.ErrInvalidToken)
		}
		logger.Error("[Resolve] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidCredentials)
	}
	return user, nil
}

func (s *AuthAppImpl) recordFailure(ctx context.Context, key string) {
	if s.config.Auth.LoginMaxAttempts <= 0 {
		return
	}
	if _, err := s.redisRepo.IncrWithTTL(ctx, key, s.config.Auth.LoginLockout); err != nil {
		logger.Warn("[Login] err redisRepo.IncrWithTTL", zap.String("error", err.Error()))
	}
}
