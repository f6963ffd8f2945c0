package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	appuser "github.com/muhammadheryan/property-listing/application/user"
	"github.com/muhammadheryan/property-listing/constant"
	usermocks "github.com/muhammadheryan/property-listing/mocks/repository/user"
	emailmocks "github.com/muhammadheryan/property-listing/mocks/thirdparty/email"
	"github.com/muhammadheryan/property-listing/model"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type fields struct {
	userRepo *usermocks.UserRepository
	notifier *emailmocks.Notifier
}

func newFields(t *testing.T) fields {
	return fields{
		userRepo: usermocks.NewUserRepository(t),
		notifier: emailmocks.NewNotifier(t),
	}
}

func checkErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

var createdAt = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func TestUserApp_Register(t *testing.T) {
	req := &model.RegisterRequest{
		Name:     "Agence Nord",
		Email:    " nord@example.com ",
		Password: "password123",
		Agency:   "Nord Immo",
		Contact:  "+221 77 000 00 00",
	}
	stored := &model.UserEntity{
		ID:        "u1",
		Name:      "Agence Nord",
		Email:     "nord@example.com",
		Agency:    "Nord Immo",
		Contact:   "+221 77 000 00 00",
		CreatedAt: createdAt,
	}
	want := &model.UserResponse{
		ID:        "u1",
		Name:      "Agence Nord",
		Email:     "nord@example.com",
		Agency:    "Nord Immo",
		Contact:   "+221 77 000 00 00",
		CreatedAt: createdAt,
	}

	tests := []struct {
		name     string
		mockCall func(f fields)
		want     *model.UserResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: password hashed and welcome sent",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "nord@example.com"}).Return(nil, nil).Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
						return u.Email == "nord@example.com" &&
							bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
					})).
					Return(stored, nil).
					Once()
				f.notifier.On("SendWelcome", mock.Anything, stored).Return(nil).Once()
			},
			want: want,
		},
		{
			name: "success: notifier failure keeps the account",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.Anything).Return(stored, nil).Once()
				f.notifier.On("SendWelcome", mock.Anything, stored).Return(errors.New("smtp down")).Once()
			},
			want: want,
		},
		{
			name: "error: email already registered",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{ID: "u0"}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrDuplicateEmail,
		},
		{
			name: "error: concurrent registration hits the unique index",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrDuplicateEmail).Once()
			},
			wantErr: true,
			errCode: constant.ErrDuplicateEmail,
		},
		{
			name: "error: store failure",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)
			app := appuser.NewUserApp(f.userRepo, f.notifier)

			got, err := app.Register(context.Background(), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			id:   "u1",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u1"}).
					Return(&model.UserEntity{ID: "u1", PasswordHash: "secret"}, nil).Once()
			},
		},
		{
			name: "error: malformed id",
			id:   "xyz",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, model.ErrMalformedID).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidID,
		},
		{
			name: "error: not found",
			id:   "u9",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := appuser.NewUserApp(f.userRepo, f.notifier).GetByID(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			if got.ID != tt.id {
				t.Fatalf("GetByID() = %+v", got)
			}
		})
	}
}

func TestUserApp_List(t *testing.T) {
	f := newFields(t)
	f.userRepo.On("List", mock.Anything).
		Return([]model.UserEntity{{ID: "u1", Name: "A"}, {ID: "u2", Name: "B"}}, nil).Once()

	got, err := appuser.NewUserApp(f.userRepo, f.notifier).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "u1" || got[1].ID != "u2" {
		t.Fatalf("List() = %+v", got)
	}
}

func TestUserApp_UpdateContact(t *testing.T) {
	t.Run("success: only contact changes", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u1"}).
			Return(&model.UserEntity{ID: "u1", Name: "A", Contact: "old"}, nil).Once()
		f.userRepo.On("UpdateContact", mock.Anything, "u1", "new").Return(nil).Once()

		got, err := appuser.NewUserApp(f.userRepo, f.notifier).
			UpdateContact(context.Background(), "u1", &model.UpdateContactRequest{Contact: "new"})
		if err != nil {
			t.Fatalf("UpdateContact() error = %v", err)
		}
		if got.Contact != "new" || got.Name != "A" {
			t.Fatalf("UpdateContact() = %+v", got)
		}
	})

	t.Run("error: store failure", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{ID: "u1"}, nil).Once()
		f.userRepo.On("UpdateContact", mock.Anything, "u1", "new").Return(errors.New("db down")).Once()

		_, err := appuser.NewUserApp(f.userRepo, f.notifier).
			UpdateContact(context.Background(), "u1", &model.UpdateContactRequest{Contact: "new"})
		checkErrCode(t, err, constant.ErrInternal)
	})
}
