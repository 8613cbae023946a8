// internal/auth/repository.go

package auth

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `user_id, username, email, phone, password_hash, nickname,
       gender, birthday, region, avatar_url, bio, created_at`

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
        INSERT INTO users (username, email, phone, password_hash, nickname)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING user_id, created_at
    `

	return r.db.QueryRowxContext(
		ctx, query,
		user.Username, user.Email, user.Phone, user.PasswordHash, user.Nickname,
	).Scan(&user.UserID, &user.CreatedAt)
}

func (r *postgresRepository) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return r.getUserBy(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUserBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *postgresRepository) GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	return r.getUserBy(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUserBy(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresRepository) getUserBy(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
