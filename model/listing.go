package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muhammadheryan/property-listing/constant"
)

// ListingEntity represents the properties table / collection entity
type ListingEntity struct {
	ID          string                 `db:"id" json:"id"`
	Title       string                 `db:"title" json:"title"`
	Price       float64                `db:"price" json:"price"`
	Type        string                 `db:"type" json:"type"`
	Location    string                 `db:"location" json:"localisation"`
	Address     string                 `db:"address" json:"adresse_complet"`
	Description string                 `db:"description" json:"description"`
	Surface     float64                `db:"surface" json:"surface"`
	Bedrooms    int                    `db:"bedrooms" json:"chambres"`
	Bathrooms   int                    `db:"bathrooms" json:"salle_de_bain"`
	Equipment   StringList             `db:"equipment" json:"equipement"`
	Images      StringList             `db:"images" json:"images"`
	Status      constant.ListingStatus `db:"status" json:"status"`
	OwnerID     *string                `db:"owner_id" json:"-"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
}

// ListingWithOwner is a listing enriched with its owner's public projection.
type ListingWithOwner struct {
	ListingEntity
	Owner *OwnerPublic `json:"owner"`
}

// ListingFilter for querying listings. Empty fields are ignored.
type ListingFilter struct {
	Status  constant.ListingStatus
	OwnerID string
}

// CreateListingRequest carries the form fields of a new listing.
type CreateListingRequest struct {
	Title       string   `validate:"required"`
	Price       *float64 `validate:"required,gte=0"`
	Type        string   `validate:"required"`
	Location    string   `validate:"required"`
	Address     string   `validate:"required"`
	Description string   `validate:"required"`
	Surface     *float64 `validate:"required,gte=0"`
	Bedrooms    *int     `validate:"required,gte=0"`
	Bathrooms   *int     `validate:"required,gte=0"`
	Equipment   []string `validate:"required"`
	Status      string   `validate:"listing_status"`
}

// ListingPatch is a sparse update: only fields with Set == true are applied.
type ListingPatch struct {
	Title       Optional[string]
	Price       Optional[float64]
	Type        Optional[string]
	Location    Optional[string]
	Address     Optional[string]
	Description Optional[string]
	Surface     Optional[float64]
	Bedrooms    Optional[int]
	Bathrooms   Optional[int]
	Equipment   Optional[[]string]
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,listing_status"`
}

// ImageUpload is one file of a multipart submission.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// Valid reports whether every supplied numeric field is non-negative and every
// supplied text field is non-blank.
func (p *ListingPatch) Valid() bool {
	for _, text := range []Optional[string]{p.Title, p.Type, p.Location, p.Address, p.Description} {
		if text.Set && strings.TrimSpace(text.Value) == "" {
			return false
		}
	}
	if p.Price.Set && p.Price.Value < 0 {
		return false
	}
	if p.Surface.Set && p.Surface.Value < 0 {
		return false
	}
	if p.Bedrooms.Set && p.Bedrooms.Value < 0 {
		return false
	}
	if p.Bathrooms.Set && p.Bathrooms.Value < 0 {
		return false
	}
	return true
}

func (p *ListingPatch) ApplyTo(l *ListingEntity) {
	p.Title.Apply(&l.Title)
	p.Price.Apply(&l.Price)
	p.Type.Apply(&l.Type)
	p.Location.Apply(&l.Location)
	p.Address.Apply(&l.Address)
	p.Description.Apply(&l.Description)
	p.Surface.Apply(&l.Surface)
	p.Bedrooms.Apply(&l.Bedrooms)
	p.Bathrooms.Apply(&l.Bathrooms)
	if p.Equipment.Set {
		l.Equipment = StringList(p.Equipment.Value)
	}
}

// StringList is stored as a JSON array in SQL text columns.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
