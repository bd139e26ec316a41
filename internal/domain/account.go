package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type WatchlistItem struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Symbol    string    `json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}
