package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type PredictRequest struct {
	Ticker string   `json:"ticker"`
	Models []string `json:"models"`
}

func (m ApiHandler) predict(c *gin.Context) {
	var requestBody PredictRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.Ticker == "" || len(requestBody.Models) == 0 {
		returnErrorJsonCode(fmt.Errorf("ticker and at least one model are required"), c, 400)
		return
	}

	forecasts, err := m.PredictionService.Forecast(c.Request.Context(), requestBody.Ticker, requestBody.Models)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get forecasts: %w", err), c)
		return
	}
	c.JSON(200, gin.H{"results": forecasts})
}
