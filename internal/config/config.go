package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"MarketPress/internal/model"

	"gopkg.in/yaml.v3"
)

// PacingConfig spaces one batch task's requests out. The tape and heatmap
// sections each carry their own copy.
type PacingConfig struct {
	BatchSize     int `yaml:"batch_size"`
	ItemDelayMs   int `yaml:"item_delay_ms"`
	ItemJitterMs  int `yaml:"item_jitter_ms"`
	BatchDelayMs  int `yaml:"batch_delay_ms"`
	BatchJitterMs int `yaml:"batch_jitter_ms"`
}

// Config holds all application configuration. Watch lists live here rather
// than as package globals so tests can inject small fixture lists.
type Config struct {
	OutputDir string `yaml:"output_dir"`
	Proxy     string `yaml:"proxy"`

	HTTP struct {
		TimeoutSec  int `yaml:"timeout_sec"`
		MaxRetries  int `yaml:"max_retries"`
		BaseDelayMs int `yaml:"base_delay_ms"`
		MaxDelaySec int `yaml:"max_delay_sec"`
	} `yaml:"http"`

	Tape struct {
		Source       string `yaml:"source"`
		OutFile      string `yaml:"out_file"`
		PacingConfig `yaml:",inline"`
		Watch        []model.WatchItem `yaml:"watch"`
	} `yaml:"tape"`

	Heatmap struct {
		OutFile      string `yaml:"out_file"`
		PacingConfig `yaml:",inline"`
		Watch        []model.WatchItem `yaml:"watch"`
	} `yaml:"heatmap"`

	FRED struct {
		APIKey        string             `yaml:"api_key"`
		BackfillYears int                `yaml:"backfill_years"`
		FallbackStart string             `yaml:"fallback_start"`
		Series        []model.SeriesSpec `yaml:"series"`
	} `yaml:"fred"`

	Ratio struct {
		OutFile     string `yaml:"out_file"`
		Numerator   string `yaml:"numerator"`   // series file basename
		Denominator string `yaml:"denominator"` // series file basename
	} `yaml:"ratio"`

	News struct {
		FeedURL  string `yaml:"feed_url"`
		Source   string `yaml:"source"`
		OutFile  string `yaml:"out_file"`
		MaxItems int    `yaml:"max_items"`
	} `yaml:"news"`

	Schedule struct {
		Timezone     string   `yaml:"timezone"`
		Targets      []string `yaml:"targets"` // "15:04" wall-clock times
		ToleranceMin int      `yaml:"tolerance_min"`
		TapeCron     string   `yaml:"tape_cron"`
		HeatmapCron  string   `yaml:"heatmap_cron"`
		FredCron     string   `yaml:"fred_cron"`
		NewsCron     string   `yaml:"news_cron"`
	} `yaml:"schedule"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; defaults carry the run.
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

	applyDefaults(cfg)

	// Environment variable overrides run after defaults so MAX_RETRIES=0
	// (no retries at all) survives.
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.FRED.APIKey = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("NEWS_FEED_URL"); v != "" {
		cfg.News.FeedURL = v
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.HTTP.MaxRetries = n
		}
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "public/data"
	}
	if cfg.HTTP.TimeoutSec == 0 {
		cfg.HTTP.TimeoutSec = 30
	}
	if cfg.HTTP.MaxRetries == 0 {
		cfg.HTTP.MaxRetries = 4
	}
	if cfg.HTTP.BaseDelayMs == 0 {
		cfg.HTTP.BaseDelayMs = 800
	}
	if cfg.HTTP.MaxDelaySec == 0 {
		cfg.HTTP.MaxDelaySec = 15
	}

	if cfg.Tape.Source == "" {
		cfg.Tape.Source = "stooq"
	}
	if cfg.Tape.OutFile == "" {
		cfg.Tape.OutFile = "tape.json"
	}
	defaultPacing(&cfg.Tape.PacingConfig)
	if len(cfg.Tape.Watch) == 0 {
		cfg.Tape.Watch = defaultTapeWatch
	}

	if cfg.Heatmap.OutFile == "" {
		cfg.Heatmap.OutFile = "heatmap.json"
	}
	defaultPacing(&cfg.Heatmap.PacingConfig)
	if len(cfg.Heatmap.Watch) == 0 {
		cfg.Heatmap.Watch = defaultHeatmapWatch
	}

	if cfg.FRED.BackfillYears == 0 {
		cfg.FRED.BackfillYears = 5
	}
	if cfg.FRED.FallbackStart == "" {
		cfg.FRED.FallbackStart = "1990-01-01"
	}
	if len(cfg.FRED.Series) == 0 {
		cfg.FRED.Series = defaultSeries
	}

	if cfg.Ratio.OutFile == "" {
		cfg.Ratio.OutFile = "home-price-to-income"
	}
	if cfg.Ratio.Numerator == "" {
		cfg.Ratio.Numerator = "median-home-price"
	}
	if cfg.Ratio.Denominator == "" {
		cfg.Ratio.Denominator = "median-household-income"
	}

	if cfg.News.FeedURL == "" {
		cfg.News.FeedURL = "https://feeds.content.dowjones.io/public/rss/mw_topstories"
	}
	if cfg.News.Source == "" {
		cfg.News.Source = "MarketWatch"
	}
	if cfg.News.OutFile == "" {
		cfg.News.OutFile = "news.json"
	}
	if cfg.News.MaxItems == 0 {
		cfg.News.MaxItems = 40
	}

	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "America/New_York"
	}
	if len(cfg.Schedule.Targets) == 0 {
		cfg.Schedule.Targets = []string{"17:45"}
	}
	if cfg.Schedule.ToleranceMin == 0 {
		cfg.Schedule.ToleranceMin = 90
	}
	if cfg.Schedule.TapeCron == "" {
		cfg.Schedule.TapeCron = "0 45 17 * * 1-5"
	}
	if cfg.Schedule.HeatmapCron == "" {
		cfg.Schedule.HeatmapCron = "0 55 17 * * 1-5"
	}
	if cfg.Schedule.FredCron == "" {
		cfg.Schedule.FredCron = "0 15 18 * * 1-5"
	}
	if cfg.Schedule.NewsCron == "" {
		cfg.Schedule.NewsCron = "0 5 * * * *"
	}
}

func defaultPacing(p *PacingConfig) {
	if p.BatchSize == 0 {
		p.BatchSize = 6
	}
	if p.ItemDelayMs == 0 {
		p.ItemDelayMs = 1200
	}
	if p.ItemJitterMs == 0 {
		p.ItemJitterMs = 600
	}
	if p.BatchDelayMs == 0 {
		p.BatchDelayMs = 6000
	}
	if p.BatchJitterMs == 0 {
		p.BatchJitterMs = 2500
	}
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSec) * time.Second
}

// ValidateFor checks the configuration a task depends on, failing fast before
// any fetching begins.
func (c *Config) ValidateFor(task string) error {
	switch task {
	case "tape":
		if len(c.Tape.Watch) == 0 {
			return fmt.Errorf("tape.watch is empty")
		}
	case "heatmap":
		if len(c.Heatmap.Watch) == 0 {
			return fmt.Errorf("heatmap.watch is empty")
		}
	case "fred":
		if c.FRED.APIKey == "" {
			return fmt.Errorf("FRED_API_KEY is required for the fred task")
		}
		if len(c.FRED.Series) == 0 {
			return fmt.Errorf("fred.series is empty")
		}
	case "news":
		if c.News.FeedURL == "" {
			return fmt.Errorf("news.feed_url is required")
		}
	}
	return nil
}
