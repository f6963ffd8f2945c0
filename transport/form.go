package transport

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	cerr "github.com/muhammadheryan/property-listing/utils/errors"
)

// Multipart field names of the listing forms.
const (
	fieldTitle       = "title"
	fieldPrice       = "price"
	fieldType        = "type"
	fieldLocation    = "localisation"
	fieldAddress     = "adresse_complet"
	fieldDescription = "description"
	fieldSurface     = "surface"
	fieldBedrooms    = "chambres"
	fieldBathrooms   = "salle_de_bain"
	fieldEquipment   = "equipement"
	fieldStatus      = "status"
	fieldImages      = "images"
)

// memory kept for multipart parts, the rest spills to temporary files
const multipartMemory = 8 << 20

type listingForm struct {
	values url.Values
	files  []*multipart.FileHeader
}

func readListingForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (*listingForm, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	err := r.ParseMultipartForm(multipartMemory)
	switch {
	case err == nil:
		return &listingForm{values: r.MultipartForm.Value, files: r.MultipartForm.File[fieldImages]}, nil
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		return &listingForm{values: r.PostForm}, nil
	default:
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
}

func (f *listingForm) value(key string) (string, bool) {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// filled is value with blank input treated as absent.
func (f *listingForm) filled(key string) (string, bool) {
	v, ok := f.value(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (f *listingForm) createRequest() (*model.CreateListingRequest, error) {
	req := &model.CreateListingRequest{}
	req.Title, _ = f.value(fieldTitle)
	req.Type, _ = f.value(fieldType)
	req.Location, _ = f.value(fieldLocation)
	req.Address, _ = f.value(fieldAddress)
	req.Description, _ = f.value(fieldDescription)
	req.Status, _ = f.value(fieldStatus)

	var err error
	if req.Price, err = f.floatPtr(fieldPrice); err != nil {
		return nil, err
	}
	if req.Surface, err = f.floatPtr(fieldSurface); err != nil {
		return nil, err
	}
	if req.Bedrooms, err = f.intPtr(fieldBedrooms); err != nil {
		return nil, err
	}
	if req.Bathrooms, err = f.intPtr(fieldBathrooms); err != nil {
		return nil, err
	}
	if raw, ok := f.value(fieldEquipment); ok {
		req.Equipment = parseEquipment(raw)
	}
	return req, nil
}

// patch marks as set every field the form carries with a non-blank value.
// Blank fields leave the listing unchanged.
func (f *listingForm) patch() (*model.ListingPatch, error) {
	p := &model.ListingPatch{}
	if v, ok := f.filled(fieldTitle); ok {
		p.Title = model.Some(v)
	}
	if v, ok := f.filled(fieldType); ok {
		p.Type = model.Some(v)
	}
	if v, ok := f.filled(fieldLocation); ok {
		p.Location = model.Some(v)
	}
	if v, ok := f.filled(fieldAddress); ok {
		p.Address = model.Some(v)
	}
	if v, ok := f.filled(fieldDescription); ok {
		p.Description = model.Some(v)
	}
	if v, ok := f.filled(fieldEquipment); ok {
		p.Equipment = model.Some(parseEquipment(v))
	}

	if v, err := f.floatPtr(fieldPrice); err != nil {
		return nil, err
	} else if v != nil {
		p.Price = model.Some(*v)
	}
	if v, err := f.floatPtr(fieldSurface); err != nil {
		return nil, err
	} else if v != nil {
		p.Surface = model.Some(*v)
	}
	if v, err := f.intPtr(fieldBedrooms); err != nil {
		return nil, err
	} else if v != nil {
		p.Bedrooms = model.Some(*v)
	}
	if v, err := f.intPtr(fieldBathrooms); err != nil {
		return nil, err
	} else if v != nil {
		p.Bathrooms = model.Some(*v)
	}
	return p, nil
}

// images opens every uploaded file. The returned func closes them.
func (f *listingForm) images() ([]model.ImageUpload, func(), error) {
	opened := make([]multipart.File, 0, len(f.files))
	closeAll := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}

	uploads := make([]model.ImageUpload, 0, len(f.files))
	for _, fh := range f.files {
		file, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, cerr.SetCustomError(constant.ErrInvalidRequest)
		}
		opened = append(opened, file)
		uploads = append(uploads, model.ImageUpload{Filename: fh.Filename, Content: file})
	}
	return uploads, closeAll, nil
}

func (f *listingForm) floatPtr(key string) (*float64, error) {
	raw, ok := f.filled(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return &v, nil
}

func (f *listingForm) intPtr(key string) (*int, error) {
	raw, ok := f.filled(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	return &v, nil
}

// parseEquipment accepts a JSON array of strings, otherwise the raw value is a single item.
func parseEquipment(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}
	return []string{raw}
}
