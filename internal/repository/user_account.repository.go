package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockpulse/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type UserAccountRepository interface {
	Create(email, passwordHash string) (*domain.User, error)
	GetByEmail(email string) (*domain.User, error)
}

type userAccountRepositoryHandler struct {
	DB *sql.DB
}

func NewUserAccountRepository(db *sql.DB) UserAccountRepository {
	return userAccountRepositoryHandler{
		DB: db,
	}
}

func (h userAccountRepositoryHandler) Create(email, passwordHash string) (*domain.User, error) {
	now := time.Now().UTC()
	res, err := h.DB.Exec(
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		strings.ToLower(email), passwordHash, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new user id: %w", err)
	}
	return &domain.User{
		ID:           id,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (h userAccountRepositoryHandler) GetByEmail(email string) (*domain.User, error) {
	row := h.DB.QueryRow(
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`,
		strings.ToLower(email),
	)
	out := domain.User{}
	err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user account: %w", err)
	}
	return &out, nil
}
