package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Currency is one entry of the static rate table. Rates are USD multipliers
// and are refreshed only by redeploying updated configuration.
type Currency struct {
	Rate   float64 `yaml:"rate"`
	Symbol string  `yaml:"symbol"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Model struct {
		ArtifactPath string  `yaml:"artifact_path"`
		Trees        int     `yaml:"trees" default:"300"`
		LearningRate float64 `yaml:"learning_rate" default:"0.1"`
		MaxDepth     int     `yaml:"max_depth" default:"6"`
		Subsample    float64 `yaml:"subsample" default:"1.0"`
		Seed         int64   `yaml:"seed" default:"42"`
	} `yaml:"model"`
	Synthesis struct {
		Seed int64 `yaml:"seed" default:"42"`
	} `yaml:"synthesis"`
	Data struct {
		Source     string `yaml:"source" default:"csv"`
		CSVPath    string `yaml:"csv_path"`
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port" default:"9000"`
			Database     string        `yaml:"database" default:"geoprice"`
			Table        string        `yaml:"table" default:"observations"`
			User         string        `yaml:"user" default:"default"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"clickhouse"`
	} `yaml:"data"`
	Geocode struct {
		Enabled   bool          `yaml:"enabled"`
		BaseURL   string        `yaml:"base_url" default:"https://nominatim.openstreetmap.org"`
		UserAgent string        `yaml:"user_agent" default:"geoprice/1.0"`
		Timeout   time.Duration `yaml:"timeout" default:"5s"`
		Cache     struct {
			Backend string `yaml:"backend" default:"memory"` // memory or redis
			Redis   struct {
				Addr     string `yaml:"addr"`
				Password string `yaml:"password"`
				DB       int    `yaml:"db"`
			} `yaml:"redis"`
		} `yaml:"cache"`
	} `yaml:"geocode"`
	Audit struct {
		Enabled bool   `yaml:"enabled"`
		Topic   string `yaml:"topic" default:"geoprice.estimates"`
		Kafka   struct {
			Brokers      []string      `yaml:"brokers"`
			RequiredAcks int           `yaml:"required_acks" default:"1"`
			Compression  string        `yaml:"compression" default:"gzip"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		} `yaml:"kafka"`
	} `yaml:"audit"`
	Currencies map[string]Currency `yaml:"currencies"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MODEL_ARTIFACT_PATH"); v != "" {
		c.Model.ArtifactPath = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.Data.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.Data.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Audit.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("GEOCODE_BASE_URL"); v != "" {
		c.Geocode.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Geocode.Cache.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Model.ArtifactPath == "" {
		return fmt.Errorf("model.artifact_path is required")
	}
	if c.Model.Trees <= 0 {
		return fmt.Errorf("model.trees must be positive")
	}
	if c.Model.LearningRate <= 0 || c.Model.LearningRate > 1 {
		return fmt.Errorf("model.learning_rate must be in (0, 1]")
	}
	if c.Data.Source != "csv" && c.Data.Source != "clickhouse" {
		return fmt.Errorf("data.source must be 'csv' or 'clickhouse', got '%s'", c.Data.Source)
	}
	if c.Data.Source == "csv" && c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required for csv source")
	}
	if len(c.Currencies) == 0 {
		return fmt.Errorf("currencies cannot be empty")
	}
	if _, ok := c.Currencies["USD"]; !ok {
		return fmt.Errorf("currencies must include USD")
	}
	for code, cur := range c.Currencies {
		if cur.Rate <= 0 {
			return fmt.Errorf("currencies.%s.rate must be positive", code)
		}
	}
	if c.Audit.Enabled && len(c.Audit.Kafka.Brokers) == 0 {
		return fmt.Errorf("audit.kafka.brokers is required when audit is enabled")
	}
	return nil
}
