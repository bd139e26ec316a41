package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type AddWatchlistRequest struct {
	Symbol string `json:"symbol"`
}

func (m ApiHandler) listWatchlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("not authenticated"), c, 401)
		return
	}

	items, err := m.WatchlistRepository.List(user.ID)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to list watchlist: %w", err), c)
		return
	}
	c.JSON(200, gin.H{"items": items})
}

func (m ApiHandler) addToWatchlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("not authenticated"), c, 401)
		return
	}

	var requestBody AddWatchlistRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.Symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, 400)
		return
	}

	item, err := m.WatchlistRepository.Add(user.ID, requestBody.Symbol)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to add to watchlist: %w", err), c)
		return
	}
	c.JSON(201, item)
}

func (m ApiHandler) removeFromWatchlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("not authenticated"), c, 401)
		return
	}

	symbol := c.Param("symbol")
	if err := m.WatchlistRepository.Remove(user.ID, symbol); err != nil {
		returnErrorJson(fmt.Errorf("failed to remove from watchlist: %w", err), c)
		return
	}
	c.JSON(200, gin.H{"removed": symbol})
}
