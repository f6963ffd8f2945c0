package listing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/property-listing/model"
)

type ListingRepository interface {
	Create(ctx context.Context, data *model.ListingEntity) (*model.ListingEntity, error)
	GetByID(ctx context.Context, id string) (*model.ListingEntity, error)
	List(ctx context.Context, filter *model.ListingFilter) ([]model.ListingEntity, error)
	Update(ctx context.Context, data *model.ListingEntity) error
	Delete(ctx context.Context, id string) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewListingRepository(conn *sqlx.DB) ListingRepository {
	return &SQL{conn: conn}
}

const (
	listingColumns = `id, title, price, type, location, address, description, surface, bedrooms, bathrooms, equipment, images, status, owner_id, created_at`

	insertListingQuery = `INSERT INTO properties (` + listingColumns + `)
VALUES (:id, :title, :price, :type, :location, :address, :description, :surface, :bedrooms, :bathrooms, :equipment, :images, :status, :owner_id, :created_at)`

	getListingBase = `SELECT ` + listingColumns + ` FROM properties WHERE 1=1`

	updateListingQuery = `UPDATE properties SET
	title = :title,
	price = :price,
	type = :type,
	location = :location,
	address = :address,
	description = :description,
	surface = :surface,
	bedrooms = :bedrooms,
	bathrooms = :bathrooms,
	equipment = :equipment,
	images = :images,
	status = :status
WHERE id = :id`

	deleteListingQuery = `DELETE FROM properties WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.ListingEntity) (*model.ListingEntity, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if _, err := s.conn.NamedExecContext(ctx, insertListingQuery, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SQL) GetByID(ctx context.Context, id string) (*model.ListingEntity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, model.ErrMalformedID
	}

	var entity model.ListingEntity
	query := s.conn.Rebind(getListingBase + " AND id = ?")
	if err := s.conn.QueryRowxContext(ctx, query, id).StructScan(&entity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context, filter *model.ListingFilter) ([]model.ListingEntity, error) {
	query := getListingBase
	args := make([]any, 0, 2)

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.OwnerID != "" {
		query += " AND owner_id = ?"
		args = append(args, filter.OwnerID)
	}
	query += " ORDER BY created_at DESC"

	items := make([]model.ListingEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, s.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists every mutable column. owner_id and created_at are never written.
func (s *SQL) Update(ctx context.Context, data *model.ListingEntity) error {
	_, err := s.conn.NamedExecContext(ctx, updateListingQuery, data)
	return err
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrMalformedID
	}
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(deleteListingQuery), id)
	return err
}
