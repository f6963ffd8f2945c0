package listing

import (
	"context"
	"errors"
	"time"

	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	listingrepo "github.com/muhammadheryan/property-listing/repository/listing"
	userrepo "github.com/muhammadheryan/property-listing/repository/user"
	"github.com/muhammadheryan/property-listing/thirdparty/media"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
	"github.com/muhammadheryan/property-listing/utils/logger"
	validatorx "github.com/muhammadheryan/property-listing/utils/validator"
	"go.uber.org/zap"
)

type ListingApp interface {
	Create(ctx context.Context, ownerID string, req *model.CreateListingRequest, images []model.ImageUpload) (*model.ListingEntity, error)
	ListPublic(ctx context.Context) ([]model.ListingWithOwner, error)
	ListMine(ctx context.Context, ownerID string) ([]model.ListingEntity, error)
	GetPublic(ctx context.Context, id string) (*model.ListingWithOwner, error)
	UpdateStatus(ctx context.Context, id, callerID string, req *model.UpdateStatusRequest) (*model.ListingEntity, error)
	UpdateFields(ctx context.Context, id, callerID string, patch *model.ListingPatch, images []model.ImageUpload) (*model.ListingEntity, error)
	Delete(ctx context.Context, id, callerID string) error
}

type ListingAppImpl struct {
	listingRepo listingrepo.ListingRepository
	userRepo    userrepo.UserRepository
	uploader    media.Uploader
	now         func() time.Time
}

func NewListingApp(listingRepo listingrepo.ListingRepository, userRepo userrepo.UserRepository, uploader media.Uploader) ListingApp {
	return &ListingAppImpl{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		uploader:    uploader,
		now:         time.Now,
	}
}

func (s *ListingAppImpl) Create(ctx context.Context, ownerID string, req *model.CreateListingRequest, images []model.ImageUpload) (*model.ListingEntity, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		if validatorx.HasTagFailure(err, "listing_status") {
			return nil, cerr.SetCustomError(constant.ErrInvalidStatus)
		}
		logger.Debug("[CreateListing] invalid request", zap.Strings("fields", validatorx.FailedFields(err)))
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	images = nonEmpty(images)
	if err := validateImages(images); err != nil {
		return nil, err
	}

	refs, err := s.storeImages(ctx, "[CreateListing]", images)
	if err != nil {
		return nil, err
	}

	status := constant.ListingStatus(req.Status)
	if status == "" {
		status = constant.DefaultListingStatus
	}

	owner := ownerID
	entity := &model.ListingEntity{
		Title:       req.Title,
		Price:       *req.Price,
		Type:        req.Type,
		Location:    req.Location,
		Address:     req.Address,
		Description: req.Description,
		Surface:     *req.Surface,
		Bedrooms:    *req.Bedrooms,
		Bathrooms:   *req.Bathrooms,
		Equipment:   model.StringList(req.Equipment),
		Images:      model.StringList(refs),
		Status:      status,
		OwnerID:     &owner,
		CreatedAt:   s.now().UTC(),
	}

	entity, err = s.listingRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateListing] err listingRepo.Create", zap.String("error", err.Error()))
		s.removeImages(ctx, refs)
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return entity, nil
}

// ListPublic returns every listing still "en cours" with its owner's public projection.
// Owners are fetched in one batch and joined in memory.
func (s *ListingAppImpl) ListPublic(ctx context.Context) ([]model.ListingWithOwner, error) {
	items, err := s.listingRepo.List(ctx, &model.ListingFilter{Status: constant.ListingStatusInProgress})
	if err != nil {
		logger.Error("[ListPublic] err listingRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	owners, err := s.loadOwners(ctx, items)
	if err != nil {
		logger.Error("[ListPublic] err userRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	result := make([]model.ListingWithOwner, 0, len(items))
	for _, item := range items {
		result = append(result, withOwner(item, owners))
	}
	return result, nil
}

func (s *ListingAppImpl) ListMine(ctx context.Context, ownerID string) ([]model.ListingEntity, error) {
	items, err := s.listingRepo.List(ctx, &model.ListingFilter{OwnerID: ownerID})
	if err != nil {
		logger.Error("[ListMine] err listingRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *ListingAppImpl) GetPublic(ctx context.Context, id string) (*model.ListingWithOwner, error) {
	item, err := s.get(ctx, "[GetPublic]", id)
	if err != nil {
		return nil, err
	}

	owners, err := s.loadOwners(ctx, []model.ListingEntity{*item})
	if err != nil {
		logger.Error("[GetPublic] err userRepo.GetByIDs", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	result := withOwner(*item, owners)
	return &result, nil
}

func (s *ListingAppImpl) UpdateStatus(ctx context.Context, id, callerID string, req *model.UpdateStatusRequest) (*model.ListingEntity, error) {
	item, err := s.getOwned(ctx, "[UpdateStatus]", id, callerID)
	if err != nil {
		return nil, err
	}

	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidStatus)
	}

	item.Status = constant.ListingStatus(req.Status)
	if err := s.listingRepo.Update(ctx, item); err != nil {
		logger.Error("[UpdateStatus] err listingRepo.Update", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return item, nil
}

// UpdateFields applies a sparse patch and appends newly uploaded images.
// Existing images are never removed here.
func (s *ListingAppImpl) UpdateFields(ctx context.Context, id, callerID string, patch *model.ListingPatch, images []model.ImageUpload) (*model.ListingEntity, error) {
	item, err := s.getOwned(ctx, "[UpdateFields]", id, callerID)
	if err != nil {
		return nil, err
	}

	if !patch.Valid() {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	images = nonEmpty(images)
	if err := validateImages(images); err != nil {
		return nil, err
	}

	refs, err := s.storeImages(ctx, "[UpdateFields]", images)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(item)
	if len(refs) > 0 {
		updated := make(model.StringList, 0, len(item.Images)+len(refs))
		updated = append(updated, item.Images...)
		item.Images = append(updated, refs...)
	}

	if err := s.listingRepo.Update(ctx, item); err != nil {
		logger.Error("[UpdateFields] err listingRepo.Update", zap.String("error", err.Error()))
		s.removeImages(ctx, refs)
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return item, nil
}

// Delete removes the listing. Its stored images are left in place.
func (s *ListingAppImpl) Delete(ctx context.Context, id, callerID string) error {
	item, err := s.getOwned(ctx, "[DeleteListing]", id, callerID)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, item.ID); err != nil {
		logger.Error("[DeleteListing] err listingRepo.Delete", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *ListingAppImpl) get(ctx context.Context, op, id string) (*model.ListingEntity, error) {
	item, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMalformedID) {
			return nil, cerr.SetCustomError(constant.ErrInvalidID)
		}
		logger.Error(op+" err listingRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if item == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return item, nil
}

// getOwned loads a listing and applies the ownership gate shared by every mutation.
func (s *ListingAppImpl) getOwned(ctx context.Context, op, id, callerID string) (*model.ListingEntity, error) {
	item, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(item, callerID); err != nil {
		logger.Info(op+" forbidden", zap.String("listing_id", item.ID), zap.String("caller_id", callerID))
		return nil, err
	}
	return item, nil
}

// authorize: a listing without owner is immutable; otherwise only its owner may mutate it.
func authorize(item *model.ListingEntity, callerID string) error {
	switch {
	case item.OwnerID == nil:
		return cerr.SetCustomError(constant.ErrForbidden)
	case *item.OwnerID != callerID:
		return cerr.SetCustomError(constant.ErrForbidden)
	default:
		return nil
	}
}

func (s *ListingAppImpl) loadOwners(ctx context.Context, items []model.ListingEntity) (map[string]*model.OwnerPublic, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, item := range items {
		if item.OwnerID == nil {
			continue
		}
		if _, ok := seen[*item.OwnerID]; ok {
			continue
		}
		seen[*item.OwnerID] = struct{}{}
		ids = append(ids, *item.OwnerID)
	}

	owners := make(map[string]*model.OwnerPublic, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		owners[users[i].ID] = users[i].Public()
	}
	return owners, nil
}

func withOwner(item model.ListingEntity, owners map[string]*model.OwnerPublic) model.ListingWithOwner {
	result := model.ListingWithOwner{ListingEntity: item}
	if item.OwnerID != nil {
		result.Owner = owners[*item.OwnerID]
	}
	return result
}

// validateImages checks every extension before anything is stored.
func validateImages(images []model.ImageUpload) error {
	for _, img := range images {
		if err := media.ValidateFilename(img.Filename); err != nil {
			return cerr.SetCustomError(constant.ErrUnsupportedMediaType)
		}
	}
	return nil
}

// storeImages uploads in submission order; on failure the already stored ones are removed.
func (s *ListingAppImpl) storeImages(ctx context.Context, op string, images []model.ImageUpload) ([]string, error) {
	refs := make([]string, 0, len(images))
	for _, img := range images {
		ref, err := s.uploader.Store(ctx, img.Content, img.Filename)
		if err != nil {
			s.removeImages(ctx, refs)
			if errors.Is(err, media.ErrUnsupportedMediaType) {
				return nil, cerr.SetCustomError(constant.ErrUnsupportedMediaType)
			}
			logger.Error(op+" err uploader.Store", zap.String("filename", img.Filename), zap.String("error", err.Error()))
			return nil, cerr.SetCustomError(constant.ErrInternal)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *ListingAppImpl) removeImages(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.uploader.Remove(ctx, ref); err != nil {
			logger.Warn("err uploader.Remove", zap.String("ref", ref), zap.String("error", err.Error()))
		}
	}
}

func nonEmpty(images []model.ImageUpload) []model.ImageUpload {
	out := make([]model.ImageUpload, 0, len(images))
	for _, img := range images {
		if img.Filename != "" {
			out = append(out, img)
		}
	}
	return out
}
