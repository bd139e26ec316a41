package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is loaded once at startup
// and handed to collaborators at construction; nothing reads it as ambient
// global state.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	ModelServer struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"model_server"`
	TwelveData struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"twelve_data"`
	Finnhub struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"finnhub"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret    string `yaml:"jwt_secret"`
		ExpireMinute int    `yaml:"expire_minutes"`
	} `yaml:"auth"`
	Chart struct {
		PastWindowSize int `yaml:"past_window_size"`
		HorizonLength  int `yaml:"horizon_length"`
	} `yaml:"chart"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; env vars alone can carry
// a deployment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PULSE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PULSE_MODEL_SERVER_URL"); v != "" {
		cfg.ModelServer.BaseURL = v
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		cfg.TwelveData.APIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Finnhub.APIKey = v
	}
	if v := os.Getenv("PULSE_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3009
	}
	if c.ModelServer.BaseURL == "" {
		c.ModelServer.BaseURL = "http://localhost:8000"
	}
	if c.TwelveData.BaseURL == "" {
		c.TwelveData.BaseURL = "https://api.twelvedata.com"
	}
	if c.Finnhub.BaseURL == "" {
		c.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "pulse.db"
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "dev-insecure-secret"
	}
	if c.Auth.ExpireMinute == 0 {
		c.Auth.ExpireMinute = 60
	}
	if c.Chart.PastWindowSize == 0 {
		c.Chart.PastWindowSize = 30
	}
	if c.Chart.HorizonLength == 0 {
		c.Chart.HorizonLength = 7
	}
}
