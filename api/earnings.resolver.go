package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"stockpulse/pkg/finnhub"
)

func (m ApiHandler) earnings(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		returnErrorJsonCode(fmt.Errorf("ticker is required"), c, 400)
		return
	}

	info, err := m.EarningsService.NextEarnings(c.Request.Context(), ticker)
	if errors.Is(err, finnhub.ErrRateLimited) {
		returnErrorJsonCode(fmt.Errorf("earnings calendar is rate limited"), c, 503)
		return
	}
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get earnings: %w", err), c)
		return
	}
	c.JSON(200, info)
}
