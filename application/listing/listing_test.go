package listing_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	applisting "github.com/muhammadheryan/property-listing/application/listing"
	"github.com/muhammadheryan/property-listing/constant"
	listingmocks "github.com/muhammadheryan/property-listing/mocks/repository/listing"
	usermocks "github.com/muhammadheryan/property-listing/mocks/repository/user"
	mediamocks "github.com/muhammadheryan/property-listing/mocks/thirdparty/media"
	"github.com/muhammadheryan/property-listing/model"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/stretchr/testify/mock"
)

type fields struct {
	listingRepo *listingmocks.ListingRepository
	userRepo    *usermocks.UserRepository
	uploader    *mediamocks.Uploader
}

func newFields(t *testing.T) fields {
	return fields{
		listingRepo: listingmocks.NewListingRepository(t),
		userRepo:    usermocks.NewUserRepository(t),
		uploader:    mediamocks.NewUploader(t),
	}
}

func (f fields) app() applisting.ListingApp {
	return applisting.NewListingApp(f.listingRepo, f.userRepo, f.uploader)
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

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func validCreateRequest() *model.CreateListingRequest {
	return &model.CreateListingRequest{
		Title:       "Villa Plateau",
		Price:       floatPtr(120000),
		Type:        "villa",
		Location:    "Abidjan",
		Address:     "Rue 12, Plateau",
		Description: "Belle villa",
		Surface:     floatPtr(250),
		Bedrooms:    intPtr(4),
		Bathrooms:   intPtr(2),
		Equipment:   []string{"piscine", "garage"},
	}
}

func image(name string) model.ImageUpload {
	return model.ImageUpload{Filename: name, Content: strings.NewReader("data")}
}

func storedListing(id string, owner *string, status constant.ListingStatus) *model.ListingEntity {
	return &model.ListingEntity{
		ID:          id,
		Title:       "Appartement",
		Price:       500,
		Type:        "appartement",
		Location:    "Dakar",
		Address:     "Avenue 1",
		Description: "F3",
		Surface:     80,
		Bedrooms:    2,
		Bathrooms:   1,
		Equipment:   model.StringList{"balcon"},
		Images:      model.StringList{"/uploads/old.jpg"},
		Status:      status,
		OwnerID:     owner,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestListingApp_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.CreateListingRequest
		images   []model.ImageUpload
		mockCall func(f fields)
		check    func(t *testing.T, got *model.ListingEntity)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: images stored in order and caller is owner",
			req:    validCreateRequest(),
			images: []model.ImageUpload{image("a.JPG"), image("b.webp")},
			mockCall: func(f fields) {
				f.uploader.On("Store", mock.Anything, mock.Anything, "a.JPG").Return("/uploads/1.JPG", nil).Once()
				f.uploader.On("Store", mock.Anything, mock.Anything, "b.webp").Return("/uploads/2.webp", nil).Once()
				f.listingRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(l *model.ListingEntity) bool {
						return l.OwnerID != nil && *l.OwnerID == "u1" &&
							reflect.DeepEqual([]string(l.Images), []string{"/uploads/1.JPG", "/uploads/2.webp"}) &&
							l.Status == constant.ListingStatusInProgress
					})).
					Return(func(_ context.Context, l *model.ListingEntity) (*model.ListingEntity, error) {
						l.ID = "l1"
						return l, nil
					}).
					Once()
			},
			check: func(t *testing.T, got *model.ListingEntity) {
				if got.ID != "l1" || got.Title != "Villa Plateau" || got.Bedrooms != 4 {
					t.Fatalf("unexpected listing %+v", got)
				}
				if !reflect.DeepEqual([]string(got.Equipment), []string{"piscine", "garage"}) {
					t.Fatalf("equipment = %v", got.Equipment)
				}
			},
		},
		{
			name: "success: explicit status without images",
			req: func() *model.CreateListingRequest {
				r := validCreateRequest()
				r.Status = string(constant.ListingStatusSold)
				return r
			}(),
			mockCall: func(f fields) {
				f.listingRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(l *model.ListingEntity) bool {
						return l.Status == constant.ListingStatusSold && len(l.Images) == 0
					})).
					Return(func(_ context.Context, l *model.ListingEntity) (*model.ListingEntity, error) {
						l.ID = "l2"
						return l, nil
					}).
					Once()
			},
			check: func(t *testing.T, got *model.ListingEntity) {
				if got.Status != constant.ListingStatusSold {
					t.Fatalf("status = %s", got.Status)
				}
			},
		},
		{
			name: "error: status outside the enumeration",
			req: func() *model.CreateListingRequest {
				r := validCreateRequest()
				r.Status = "pending"
				return r
			}(),
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name: "error: missing required field",
			req: func() *model.CreateListingRequest {
				r := validCreateRequest()
				r.Title = ""
				r.Price = nil
				return r
			}(),
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: malware.exe rejected before anything is stored",
			req:     validCreateRequest(),
			images:  []model.ImageUpload{image("photo.png"), image("malware.exe")},
			wantErr: true,
			errCode: constant.ErrUnsupportedMediaType,
		},
		{
			name:   "error: second upload fails and first is removed",
			req:    validCreateRequest(),
			images: []model.ImageUpload{image("a.jpg"), image("b.png")},
			mockCall: func(f fields) {
				f.uploader.On("Store", mock.Anything, mock.Anything, "a.jpg").Return("/uploads/1.jpg", nil).Once()
				f.uploader.On("Store", mock.Anything, mock.Anything, "b.png").Return("", errors.New("disk full")).Once()
				f.uploader.On("Remove", mock.Anything, "/uploads/1.jpg").Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name:   "error: insert fails and stored images are removed",
			req:    validCreateRequest(),
			images: []model.ImageUpload{image("a.gif")},
			mockCall: func(f fields) {
				f.uploader.On("Store", mock.Anything, mock.Anything, "a.gif").Return("/uploads/1.gif", nil).Once()
				f.listingRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
				f.uploader.On("Remove", mock.Anything, "/uploads/1.gif").Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Create(context.Background(), "u1", tt.req, tt.images)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			tt.check(t, got)
		})
	}
}

func TestListingApp_ListPublic(t *testing.T) {
	t.Run("success: only en cours requested and owners joined in one batch", func(t *testing.T) {
		f := newFields(t)
		a := storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress)
		b := storedListing("l2", strPtr("u1"), constant.ListingStatusInProgress)
		c := storedListing("l3", nil, constant.ListingStatusInProgress)

		f.listingRepo.
			On("List", mock.Anything, &model.ListingFilter{Status: constant.ListingStatusInProgress}).
			Return([]model.ListingEntity{*a, *b, *c}, nil).
			Once()
		f.userRepo.
			On("GetByIDs", mock.Anything, []string{"u1"}).
			Return([]model.UserEntity{{ID: "u1", Name: "Agence Sud", Email: "sud@example.com", Agency: "Sud", Contact: "0102"}}, nil).
			Once()

		got, err := f.app().ListPublic(context.Background())
		if err != nil {
			t.Fatalf("ListPublic() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		want := &model.OwnerPublic{Name: "Agence Sud", Email: "sud@example.com", Agency: "Sud", Contact: "0102"}
		if !reflect.DeepEqual(got[0].Owner, want) || !reflect.DeepEqual(got[1].Owner, want) {
			t.Fatalf("owner = %+v, want %+v", got[0].Owner, want)
		}
		if got[2].Owner != nil {
			t.Fatalf("ownerless listing got owner %+v", got[2].Owner)
		}
	})

	t.Run("success: no owners means no user lookup", func(t *testing.T) {
		f := newFields(t)
		f.listingRepo.On("List", mock.Anything, mock.Anything).Return([]model.ListingEntity{}, nil).Once()

		got, err := f.app().ListPublic(context.Background())
		if err != nil || len(got) != 0 {
			t.Fatalf("ListPublic() = %v, %v", got, err)
		}
	})

	t.Run("error: store failure", func(t *testing.T) {
		f := newFields(t)
		f.listingRepo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := f.app().ListPublic(context.Background())
		checkErrCode(t, err, constant.ErrInternal)
	})
}

func TestListingApp_ListMine(t *testing.T) {
	f := newFields(t)
	mine := storedListing("l1", strPtr("u1"), constant.ListingStatusSold)
	f.listingRepo.
		On("List", mock.Anything, &model.ListingFilter{OwnerID: "u1"}).
		Return([]model.ListingEntity{*mine}, nil).
		Once()

	got, err := f.app().ListMine(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(got) != 1 || got[0].Status != constant.ListingStatusSold {
		t.Fatalf("ListMine() = %+v", got)
	}
}

func TestListingApp_GetPublic(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: sold listing is still readable by id",
			id:   "l1",
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusSold), nil).Once()
				f.userRepo.On("GetByIDs", mock.Anything, []string{"u1"}).
					Return([]model.UserEntity{{ID: "u1", Name: "Agence"}}, nil).Once()
			},
		},
		{
			name: "error: malformed id",
			id:   "not-an-id",
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "not-an-id").Return(nil, model.ErrMalformedID).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidID,
		},
		{
			name: "error: absent listing",
			id:   "l9",
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l9").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().GetPublic(context.Background(), tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetPublic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			if got.Owner == nil || got.Owner.Name != "Agence" {
				t.Fatalf("owner = %+v", got.Owner)
			}
		})
	}
}

func TestListingApp_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		status   string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: owner marks listing as rented",
			caller: "u1",
			status: string(constant.ListingStatusRented),
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
				f.listingRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *model.ListingEntity) bool {
					return l.Status == constant.ListingStatusRented
				})).Return(nil).Once()
			},
		},
		{
			name:   "error: caller is not the owner",
			caller: "u2",
			status: string(constant.ListingStatusSold),
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:   "error: listing without owner is immutable",
			caller: "u1",
			status: string(constant.ListingStatusSold),
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", nil, constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:   "error: status outside the enumeration",
			caller: "u1",
			status: "pending",
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name:   "error: empty status",
			caller: "u1",
			status: "",
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidStatus,
		},
		{
			name:   "error: listing not found",
			caller: "u1",
			status: string(constant.ListingStatusSold),
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().UpdateStatus(context.Background(), "l1", tt.caller, &model.UpdateStatusRequest{Status: tt.status})
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			if string(got.Status) != tt.status {
				t.Fatalf("status = %s, want %s", got.Status, tt.status)
			}
		})
	}
}

func TestListingApp_UpdateFields(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		patch    *model.ListingPatch
		images   []model.ImageUpload
		mockCall func(f fields)
		check    func(t *testing.T, got *model.ListingEntity)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:   "success: only supplied fields change",
			caller: "u1",
			patch:  &model.ListingPatch{Price: model.Some(450.0), Bedrooms: model.Some(0)},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
				f.listingRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.ListingEntity) {
				if got.Price != 450 || got.Bedrooms != 0 {
					t.Fatalf("price/bedrooms = %v/%v", got.Price, got.Bedrooms)
				}
				if got.Title != "Appartement" || got.Location != "Dakar" || got.Bathrooms != 1 {
					t.Fatalf("untouched fields changed: %+v", got)
				}
				if got.OwnerID == nil || *got.OwnerID != "u1" {
					t.Fatalf("owner changed")
				}
			},
		},
		{
			name:   "success: images are appended",
			caller: "u1",
			patch:  &model.ListingPatch{},
			images: []model.ImageUpload{image("new.png")},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
				f.uploader.On("Store", mock.Anything, mock.Anything, "new.png").Return("/uploads/new.png", nil).Once()
				f.listingRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.ListingEntity) {
				want := []string{"/uploads/old.jpg", "/uploads/new.png"}
				if !reflect.DeepEqual([]string(got.Images), want) {
					t.Fatalf("images = %v, want %v", got.Images, want)
				}
			},
		},
		{
			name:   "error: foreign caller",
			caller: "u2",
			patch:  &model.ListingPatch{Title: model.Some("hijack")},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:   "error: negative price",
			caller: "u1",
			patch:  &model.ListingPatch{Price: model.Some(-1.0)},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: blank title",
			caller: "u1",
			patch:  &model.ListingPatch{Title: model.Some("")},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:   "error: unsupported image extension",
			caller: "u1",
			patch:  &model.ListingPatch{Title: model.Some("x")},
			images: []model.ImageUpload{image("doc.pdf")},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnsupportedMediaType,
		},
		{
			name:   "error: update fails and new images are removed",
			caller: "u1",
			patch:  &model.ListingPatch{},
			images: []model.ImageUpload{image("n.jpeg")},
			mockCall: func(f fields) {
				f.listingRepo.On("GetByID", mock.Anything, "l1").
					Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
				f.uploader.On("Store", mock.Anything, mock.Anything, "n.jpeg").Return("/uploads/n.jpeg", nil).Once()
				f.listingRepo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
				f.uploader.On("Remove", mock.Anything, "/uploads/n.jpeg").Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := f.app().UpdateFields(context.Background(), "l1", tt.caller, tt.patch, tt.images)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				checkErrCode(t, err, tt.errCode)
				return
			}
			tt.check(t, got)
		})
	}
}

func TestListingApp_Delete(t *testing.T) {
	t.Run("success: owner deletes", func(t *testing.T) {
		f := newFields(t)
		f.listingRepo.On("GetByID", mock.Anything, "l1").
			Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()
		f.listingRepo.On("Delete", mock.Anything, "l1").Return(nil).Once()

		if err := f.app().Delete(context.Background(), "l1", "u1"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	})

	t.Run("error: foreign delete is forbidden and nothing is removed", func(t *testing.T) {
		f := newFields(t)
		f.listingRepo.On("GetByID", mock.Anything, "l1").
			Return(storedListing("l1", strPtr("u1"), constant.ListingStatusInProgress), nil).Once()

		err := f.app().Delete(context.Background(), "l1", "u2")
		checkErrCode(t, err, constant.ErrForbidden)
		f.listingRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("error: malformed id", func(t *testing.T) {
		f := newFields(t)
		f.listingRepo.On("GetByID", mock.Anything, "zz").Return(nil, model.ErrMalformedID).Once()

		err := f.app().Delete(context.Background(), "zz", "u1")
		checkErrCode(t, err, constant.ErrInvalidID)
	})
}
