package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) quote(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		returnErrorJsonCode(fmt.Errorf("ticker is required"), c, 400)
		return
	}

	quote, err := m.QuoteService.GetQuote(c.Request.Context(), ticker)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get quote: %w", err), c)
		return
	}
	c.JSON(200, quote)
}

func (m ApiHandler) yearStats(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		returnErrorJsonCode(fmt.Errorf("ticker is required"), c, 400)
		return
	}

	stats, err := m.QuoteService.YearStats(c.Request.Context(), ticker)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get 52w stats: %w", err), c)
		return
	}
	c.JSON(200, stats)
}
