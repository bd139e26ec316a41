package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockpulse/internal/domain"
)

type WatchlistRepository interface {
	Add(userID int64, symbol string) (*domain.WatchlistItem, error)
	List(userID int64) ([]domain.WatchlistItem, error)
	Remove(userID int64, symbol string) error
}

type watchlistRepositoryHandler struct {
	DB *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return watchlistRepositoryHandler{
		DB: db,
	}
}

func (h watchlistRepositoryHandler) Add(userID int64, symbol string) (*domain.WatchlistItem, error) {
	item := domain.WatchlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Symbol:    strings.ToUpper(symbol),
		CreatedAt: time.Now().UTC(),
	}
	// re-adding an existing symbol is a no-op rather than an error
	_, err := h.DB.Exec(
		`INSERT INTO watchlist_items (id, user_id, symbol, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, symbol) DO NOTHING`,
		item.ID, item.UserID, item.Symbol, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add watchlist item: %w", err)
	}
	return &item, nil
}

func (h watchlistRepositoryHandler) List(userID int64) ([]domain.WatchlistItem, error) {
	rows, err := h.DB.Query(
		`SELECT id, user_id, symbol, created_at FROM watchlist_items
		 WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	out := []domain.WatchlistItem{}
	for rows.Next() {
		item := domain.WatchlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Symbol, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (h watchlistRepositoryHandler) Remove(userID int64, symbol string) error {
	_, err := h.DB.Exec(
		`DELETE FROM watchlist_items WHERE user_id = ? AND symbol = ?`,
		userID, strings.ToUpper(symbol),
	)
	if err != nil {
		return fmt.Errorf("failed to remove watchlist item: %w", err)
	}
	return nil
}
