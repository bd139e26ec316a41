package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"

	"stockpulse/internal/domain"
	"stockpulse/internal/service"
)

type ChartRequest struct {
	Ticker         string   `json:"ticker"`
	Models         []string `json:"models"`
	PastWindowSize int      `json:"pastWindowSize"`
	HorizonLength  int      `json:"horizonLength"`
}

// ChartCSVRow is the long-format export shape: one line per (date, series)
// observation, so the column set is stable regardless of model selection.
type ChartCSVRow struct {
	Date   string   `csv:"date"`
	Kind   string   `csv:"kind"`
	Series string   `csv:"series"`
	Value  *float64 `csv:"value"`
}

func (m ApiHandler) chart(c *gin.Context) {
	var requestBody ChartRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.PastWindowSize == 0 {
		requestBody.PastWindowSize = m.DefaultPastWindow
	}
	if requestBody.HorizonLength == 0 {
		requestBody.HorizonLength = m.DefaultHorizon
	}

	rows, err := m.ChartService.GetMergedChart(c.Request.Context(), service.GetMergedChartInput{
		Ticker:         requestBody.Ticker,
		Models:         requestBody.Models,
		PastWindowSize: requestBody.PastWindowSize,
		HorizonLength:  requestBody.HorizonLength,
	})
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to build chart: %w", err), c, 400)
		return
	}

	if c.Query("format") == "csv" {
		csvBody, err := gocsv.MarshalString(flattenForCSV(rows, requestBody.Models))
		if err != nil {
			returnErrorJson(fmt.Errorf("failed to encode csv: %w", err), c)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-chart.csv", requestBody.Ticker))
		c.Data(200, "text/csv", []byte(csvBody))
		return
	}

	c.JSON(200, gin.H{"rows": rows})
}

func flattenForCSV(rows []domain.MergedRow, models []string) []ChartCSVRow {
	out := []ChartCSVRow{}
	for _, row := range rows {
		out = append(out, ChartCSVRow{
			Date:   row.Date,
			Kind:   string(row.Kind),
			Series: "actual",
			Value:  row.Actual,
		})
		for _, model := range models {
			out = append(out, ChartCSVRow{
				Date:   row.Date,
				Kind:   string(row.Kind),
				Series: model,
				Value:  row.PerModel[model],
			})
		}
	}
	return out
}
