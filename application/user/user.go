package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	userrepo "github.com/muhammadheryan/property-listing/repository/user"
	"github.com/muhammadheryan/property-listing/thirdparty/email"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/muhammadheryan/property-listing/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error)
	GetByID(ctx context.Context, id string) (*model.UserResponse, error)
	List(ctx context.Context) ([]model.UserResponse, error)
	UpdateContact(ctx context.Context, userID string, req *model.UpdateContactRequest) (*model.UserResponse, error)
}

type UserAppImpl struct {
	userRepo userrepo.UserRepository
	notifier email.Notifier
	now      func() time.Time
}

func NewUserApp(userRepo userrepo.UserRepository, notifier email.Notifier) UserApp {
	return &UserAppImpl{
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error) {
	emailAddr := strings.TrimSpace(req.Email)

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: emailAddr})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, cerr.SetCustomError(constant.ErrDuplicateEmail)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	userEntity := &model.UserEntity{
		Name:         req.Name,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
		Agency:       req.Agency,
		Contact:      req.Contact,
		CreatedAt:    s.now().UTC(),
	}

	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, model.ErrDuplicateEmail) {
			return nil, cerr.SetCustomError(constant.ErrDuplicateEmail)
		}
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	// best effort: the account stays even if the email cannot be sent
	if err := s.notifier.SendWelcome(ctx, userEntity); err != nil {
		logger.Warn("[Register] err notifier.SendWelcome",
			zap.String("user_id", userEntity.ID),
			zap.String("error", err.Error()))
	}

	return userEntity.Response(), nil
}

func (s *UserAppImpl) GetByID(ctx context.Context, id string) (*model.UserResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		if errors.Is(err, model.ErrMalformedID) {
			return nil, cerr.SetCustomError(constant.ErrInvalidID)
		}
		logger.Error("[GetByID] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return user.Response(), nil
}

func (s *UserAppImpl) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Error("[ListUsers] err userRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	result := make([]model.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *users[i].Response())
	}
	return result, nil
}

// UpdateContact changes the caller's contact field, the only mutable user attribute.
func (s *UserAppImpl) UpdateContact(ctx context.Context, userID string, req *model.UpdateContactRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		if errors.Is(err, model.ErrMalformedID) {
			return nil, cerr.SetCustomError(constant.ErrInvalidID)
		}
		logger.Error("[UpdateContact] err userRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	if err := s.userRepo.UpdateContact(ctx, userID, req.Contact); err != nil {
		logger.Error("[UpdateContact] err userRepo.UpdateContact", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	user.Contact = req.Contact
	return user.Response(), nil
}
