package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
// It captures scraper credentials, analysis policy, storage and serving.
type Config struct {
	Apify    ApifyConfig    `yaml:"apify"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type ApifyConfig struct {
	// API token. If empty, read from env APIFY_TOKEN.
	Token string `yaml:"token"`
	// Actor identifier for the TikTok scraper.
	Actor string `yaml:"actor"`
	// Base API URL, overridable for tests.
	BaseURL string `yaml:"baseURL"`
	// Transport timeout for the synchronous actor run.
	Timeout time.Duration `yaml:"timeout"`
	// Default number of videos per scrape.
	ResultsPerPage int `yaml:"resultsPerPage"`
}

type AnalysisConfig struct {
	// Caption language: "id", "en" or "id+en".
	Language string `yaml:"language"`
	// K used for top/bottom ranking views.
	TopK int `yaml:"topK"`
	// Number of hashtag pairs kept for the co-occurrence graph.
	TopPairs int `yaml:"topPairs"`
	// Seed for the force-directed layout.
	LayoutSeed int64 `yaml:"layoutSeed"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type MetricsConfig struct {
	// Prometheus listen address, e.g. ":9090". Empty disables the listener.
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Apify: ApifyConfig{
			Actor:          "clockworks~tiktok-scraper",
			BaseURL:        "https://api.apify.com",
			Timeout:        120 * time.Second,
			ResultsPerPage: 50,
		},
		Analysis: AnalysisConfig{
			Language:   "id",
			TopK:       5,
			TopPairs:   30,
			LayoutSeed: 42,
		},
		Storage: StorageConfig{DBPath: "./clipsight.db"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Metrics: MetricsConfig{Addr: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Apify.Token == "" {
		c.Apify.Token = os.Getenv("APIFY_TOKEN")
	}
	if v := os.Getenv("CLIPSIGHT_DB"); v != "" && c.Storage.DBPath == "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" && c.Metrics.Addr == "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("CLIPSIGHT_LAYOUT_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Analysis.LayoutSeed = n
		}
	}
}

// Load reads YAML config from path. A .env file next to the working
// directory is loaded first so APIFY_TOKEN can live outside the config.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
