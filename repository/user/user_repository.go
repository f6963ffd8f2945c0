package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/muhammadheryan/property-listing/model"
)

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.UserEntity, error)
	List(ctx context.Context) ([]model.UserEntity, error)
	UpdateContact(ctx context.Context, id, contact string) error
}

// SQL is the UserRepository for the mysql and postgres drivers. Queries are written
// with ? placeholders and rebound for the connected driver.
type SQL struct {
	conn *sqlx.DB
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery        = `INSERT INTO users (id, name, email, password_hash, agency, contact, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	getUserBase            = `SELECT id, name, email, password_hash, agency, contact, created_at FROM users WHERE 1=1`
	listUsersQuery         = `SELECT id, name, email, password_hash, agency, contact, created_at FROM users ORDER BY created_at`
	getUsersByIDsQuery     = `SELECT id, name, email, password_hash, agency, contact, created_at FROM users WHERE id IN (?)`
	updateUserContactQuery = `UPDATE users SET contact = ? WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(insertUserQuery),
		data.ID, data.Name, data.Email, data.PasswordHash, data.Agency, data.Contact, data.CreatedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, model.ErrDuplicateEmail
		}
		return nil, err
	}
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != "" {
		if _, err := uuid.Parse(filter.ID); err != nil {
			return nil, model.ErrMalformedID
		}
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, s.conn.Rebind(query), args...).StructScan(&entity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) GetByIDs(ctx context.Context, ids []string) ([]model.UserEntity, error) {
	if len(ids) == 0 {
		return []model.UserEntity{}, nil
	}
	query, args, err := sqlx.In(getUsersByIDsQuery, ids)
	if err != nil {
		return nil, err
	}
	users := make([]model.UserEntity, 0, len(ids))
	if err := s.conn.SelectContext(ctx, &users, s.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQL) List(ctx context.Context) ([]model.UserEntity, error) {
	users := make([]model.UserEntity, 0)
	if err := s.conn.SelectContext(ctx, &users, listUsersQuery); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *SQL) UpdateContact(ctx context.Context, id, contact string) error {
	if _, err := uuid.Parse(id); err != nil {
		return model.ErrMalformedID
	}
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(updateUserContactQuery), contact, id)
	return err
}

func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
