package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geniass/pricebot/pkg/scraper"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the full application configuration.
type Config struct {
	Brands    []BrandConfig   `yaml:"brands" mapstructure:"brands"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Retailers RetailersConfig `yaml:"retailers" mapstructure:"retailers"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// BrandConfig lists what to search for one brand and where.
type BrandConfig struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Keywords  []string `yaml:"keywords" mapstructure:"keywords"`
	Retailers []string `yaml:"retailers" mapstructure:"retailers"`
}

// OutputConfig holds the snapshot and summary paths.
type OutputConfig struct {
	JSON     string `yaml:"json" mapstructure:"json"`
	Markdown string `yaml:"markdown" mapstructure:"markdown"`
}

// HTTPConfig configures retailer requests.
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RetailersConfig overrides per-retailer settings.
type RetailersConfig struct {
	MediaExpert RetailerConfig `yaml:"mediaexpert" mapstructure:"mediaexpert"`
	Eurocom     RetailerConfig `yaml:"eurocom" mapstructure:"eurocom"`
}

// RetailerConfig configures one retailer.
type RetailerConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from path, or from config.yaml in the working
// directory or scripts/ when path is empty. Environment variables prefixed
// with PRICEBOT_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("scripts")
	}

	v.SetEnvPrefix("PRICEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.json", "products/products.json")
	v.SetDefault("output.markdown", "products/README.md")
	v.SetDefault("http.user_agent", scraper.DefaultUserAgent)
	v.SetDefault("http.timeout", scraper.DefaultTimeout)
	v.SetDefault("retailers.mediaexpert.base_url", "https://www.mediaexpert.pl")
	v.SetDefault("retailers.eurocom.base_url", "https://www.euro.com.pl")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// brands have no sensible default, so the file is required
	if err := v.ReadInConfig(); err != nil {
		return nil, eris.Wrap(err, "config: read file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration that would make a run meaningless.
func (c *Config) Validate() error {
	if len(c.Brands) == 0 {
		return eris.Wrap(ErrInvalidConfig, "config: no brands configured")
	}
	for i, b := range c.Brands {
		if strings.TrimSpace(b.Name) == "" {
			return eris.Wrapf(ErrInvalidConfig, "config: brand %d has no name", i)
		}
	}
	if c.Output.JSON == "" || c.Output.Markdown == "" {
		return eris.Wrap(ErrInvalidConfig, "config: output paths must be set")
	}
	return nil
}

// SearchSpace expands the brands into triples in configuration order:
// brands, then keywords, then retailers.
func (c *Config) SearchSpace() []scraper.Triple {
	var space []scraper.Triple
	for _, b := range c.Brands {
		for _, kw := range b.Keywords {
			for _, r := range b.Retailers {
				space = append(space, scraper.Triple{Brand: b.Name, Keyword: kw, RetailerID: r})
			}
		}
	}
	return space
}

// AdapterOptions maps the retailer settings onto the scraper's options.
func (c *Config) AdapterOptions() scraper.AdapterOptions {
	return scraper.AdapterOptions{
		UserAgent: c.HTTP.UserAgent,
		BaseURLs: map[scraper.Retailer]string{
			scraper.MediaExpert: c.Retailers.MediaExpert.BaseURL,
			scraper.Eurocom:     c.Retailers.Eurocom.BaseURL,
		},
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
