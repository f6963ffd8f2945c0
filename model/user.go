package model

import "time"

// UserEntity represents the users table / collection entity
type UserEntity struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Agency       string    `db:"agency" json:"agence"`
	Contact      string    `db:"contact" json:"contact"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserFilter for querying users. Only one field is expected to be set.
type UserFilter struct {
	ID    string
	Email string
}

// RegisterRequest for agency registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Agency   string `json:"agence"`
	Contact  string `json:"contact"`
}

// LoginRequest mirrors the OAuth2 password form: username carries the email.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserName    string `json:"user_name"`
}

type UpdateContactRequest struct {
	Contact string `json:"contact" validate:"required"`
}

// UserResponse is the outward projection of a user, without the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Agency    string    `json:"agence"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerPublic is the projection of a listing owner exposed on public endpoints.
type OwnerPublic struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Agency  string `json:"agence"`
	Contact string `json:"contact"`
}

func (u *UserEntity) Response() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Agency:    u.Agency,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}
}

func (u *UserEntity) Public() *OwnerPublic {
	return &OwnerPublic{
		Name:    u.Name,
		Email:   u.Email,
		Agency:  u.Agency,
		Contact: u.Contact,
	}
}
