package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	"github.com/muhammadheryan/property-listing/utils/errors"
)

// CreateListing handler
// @Summary Create listing
// @Description Multipart form; images are optional and must be jpg, jpeg, png, gif or webp
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param price formData number true "Price"
// @Param type formData string true "Type"
// @Param localisation formData string true "Location"
// @Param adresse_complet formData string true "Full address"
// @Param description formData string true "Description"
// @Param surface formData number true "Surface"
// @Param chambres formData integer true "Bedrooms"
// @Param salle_de_bain formData integer true "Bathrooms"
// @Param equipement formData string true "JSON array or single item"
// @Param status formData string false "en cours, vendu, loué or retiré"
// @Param images formData file false "Images"
// @Success 201 {object} model.ListingEntity
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /posts/create [post]
func (s *RestHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	form, err := readListingForm(w, r, s.maxUpload)
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := form.createRequest()
	if err != nil {
		writeError(w, err)
		return
	}

	images, closeImages, err := form.images()
	if err != nil {
		writeError(w, err)
		return
	}
	defer closeImages()

	res, err := s.ListingApp.Create(r.Context(), callerID(r), req, images)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

// PublicListings handler
// @Summary Public listings
// @Description Listings with status "en cours", each with its owner
// @Tags Posts
// @Produce json
// @Success 200 {array} model.ListingWithOwner
// @Router /posts/public/all [get]
func (s *RestHandler) PublicListings(w http.ResponseWriter, r *http.Request) {
	res, err := s.ListingApp.ListPublic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// PublicListing handler
// @Summary Listing by id
// @Tags Posts
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} model.ListingWithOwner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/public/{id} [get]
func (s *RestHandler) PublicListing(w http.ResponseWriter, r *http.Request) {
	res, err := s.ListingApp.GetPublic(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// MyListings handler
// @Summary Caller listings
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ListingEntity
// @Router /posts/my-properties [get]
func (s *RestHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	res, err := s.ListingApp.ListMine(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateListingStatus handler
// @Summary Change listing status
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body model.UpdateStatusRequest true "Status"
// @Success 200 {object} model.ListingEntity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /posts/{id}/status [patch]
func (s *RestHandler) UpdateListingStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ListingApp.UpdateStatus(r.Context(), mux.Vars(r)["id"], callerID(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateListing handler
// @Summary Partially update listing
// @Description Only the supplied fields change; uploaded images are appended
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param title formData string false "Title"
// @Param price formData number false "Price"
// @Param type formData string false "Type"
// @Param localisation formData string false "Location"
// @Param adresse_complet formData string false "Full address"
// @Param description formData string false "Description"
// @Param surface formData number false "Surface"
// @Param chambres formData integer false "Bedrooms"
// @Param salle_de_bain formData integer false "Bathrooms"
// @Param equipement formData string false "JSON array or single item"
// @Param images formData file false "Images"
// @Success 200 {object} model.ListingEntity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [patch]
func (s *RestHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	form, err := readListingForm(w, r, s.maxUpload)
	if err != nil {
		writeError(w, err)
		return
	}

	patch, err := form.patch()
	if err != nil {
		writeError(w, err)
		return
	}

	images, closeImages, err := form.images()
	if err != nil {
		writeError(w, err)
		return
	}
	defer closeImages()

	res, err := s.ListingApp.UpdateFields(r.Context(), mux.Vars(r)["id"], callerID(r), patch, images)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DeleteListing handler
// @Summary Delete listing
// @Tags Posts
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [delete]
func (s *RestHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.ListingApp.Delete(r.Context(), mux.Vars(r)["id"], callerID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}
