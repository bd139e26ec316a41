package main

import (
	"context"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"stockpulse/cmd"
	"stockpulse/internal/domain"
	"stockpulse/internal/service"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "stockpulse prediction dashboard backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the http api server",
	RunE: func(c *cobra.Command, args []string) error {
		apiHandler, cfg, err := cmd.InitializeDependencies(configPath)
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		port, err := c.Flags().GetInt("port")
		if err != nil {
			return err
		}
		if port == 0 {
			port = cfg.Server.Port
		}

		return apiHandler.StartApi(port)
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart [ticker]",
	Short: "print the merged chart table for a ticker as csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		apiHandler, cfg, err := cmd.InitializeDependencies(configPath)
		if err != nil {
			return err
		}
		defer cmd.CloseDependencies(apiHandler)

		models, err := c.Flags().GetStringSlice("models")
		if err != nil {
			return err
		}
		window, err := c.Flags().GetInt("window")
		if err != nil {
			return err
		}
		if window == 0 {
			window = cfg.Chart.PastWindowSize
		}
		horizon, err := c.Flags().GetInt("horizon")
		if err != nil {
			return err
		}
		if horizon == 0 {
			horizon = cfg.Chart.HorizonLength
		}

		rows, err := apiHandler.ChartService.GetMergedChart(context.Background(), service.GetMergedChartInput{
			Ticker:         args[0],
			Models:         models,
			PastWindowSize: window,
			HorizonLength:  horizon,
		})
		if err != nil {
			return err
		}

		return gocsv.Marshal(toCSVRows(rows, models), os.Stdout)
	},
}

type chartCSVRow struct {
	Date   string   `csv:"date"`
	Kind   string   `csv:"kind"`
	Series string   `csv:"series"`
	Value  *float64 `csv:"value"`
}

func toCSVRows(rows []domain.MergedRow, models []string) []chartCSVRow {
	out := []chartCSVRow{}
	for _, row := range rows {
		out = append(out, chartCSVRow{
			Date:   row.Date,
			Kind:   string(row.Kind),
			Series: "actual",
			Value:  row.Actual,
		})
		for _, model := range models {
			out = append(out, chartCSVRow{
				Date:   row.Date,
				Kind:   string(row.Kind),
				Series: model,
				Value:  row.PerModel[model],
			})
		}
	}
	return out
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to yaml config file")
	serveCmd.Flags().Int("port", 0, "listen port, overrides config")
	chartCmd.Flags().StringSlice("models", nil, "model names to include")
	chartCmd.Flags().Int("window", 0, "past window size in trading days")
	chartCmd.Flags().Int("horizon", 0, "forecast horizon in business days")
	rootCmd.AddCommand(serveCmd, chartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
