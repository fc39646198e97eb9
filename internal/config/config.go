// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Hunter    HunterConfig    `yaml:"hunter" mapstructure:"hunter"`
	BuiltWith BuiltWithConfig `yaml:"builtwith" mapstructure:"builtwith"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Firecrawl FirecrawlConfig `yaml:"firecrawl" mapstructure:"firecrawl"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Ledger    LedgerConfig    `yaml:"ledger" mapstructure:"ledger"`
	Resolver  ResolverConfig  `yaml:"resolver" mapstructure:"resolver"`
	SMTP      SMTPConfig      `yaml:"smtp" mapstructure:"smtp"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SearchConfig holds search-provider credentials and the daily query budget.
type SearchConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	CompaniesCX string  `yaml:"companies_cx" mapstructure:"companies_cx"`
	PeopleCX    string  `yaml:"people_cx" mapstructure:"people_cx"`
	DailyLimit  int     `yaml:"daily_limit" mapstructure:"daily_limit"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// HunterConfig holds the Hunter.io email-finder key (optional).
type HunterConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// BuiltWithConfig holds the BuiltWith technology-lookup key (optional).
type BuiltWithConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// AnthropicConfig holds Anthropic API settings for the grader.
type AnthropicConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	HaikuModel string `yaml:"haiku_model" mapstructure:"haiku_model"`
	GradeModel string `yaml:"grade_model" mapstructure:"grade_model"`
}

// JinaConfig holds Jina AI Reader settings (scrape fallback).
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// FirecrawlConfig holds Firecrawl API settings (primary scraper, optional).
type FirecrawlConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// NotionConfig holds the spreadsheet-mirror settings (optional).
type NotionConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	LeadDB string `yaml:"lead_db" mapstructure:"lead_db"`
}

// StoreConfig configures the lead store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LedgerConfig configures the domain/keyword ledger database.
type LedgerConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ResolverConfig configures decision-maker resolution.
type ResolverConfig struct {
	DeepValidation       bool `yaml:"deep_validation" mapstructure:"deep_validation"`
	DeepValidationStrict bool `yaml:"deep_validation_strict" mapstructure:"deep_validation_strict"`
}

// SMTPConfig configures the email verification probe.
type SMTPConfig struct {
	VerifyLimit int    `yaml:"verify_limit" mapstructure:"verify_limit"`
	HelloDomain string `yaml:"hello_domain" mapstructure:"hello_domain"`
	FromAddress string `yaml:"from_address" mapstructure:"from_address"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// PipelineConfig configures the orchestrator run loop.
type PipelineConfig struct {
	Workers         int    `yaml:"workers" mapstructure:"workers"`
	TargetLeads     int    `yaml:"target_leads" mapstructure:"target_leads"`
	MinGrade        int    `yaml:"min_grade" mapstructure:"min_grade"`
	MaxKeywordUsage int    `yaml:"max_keyword_usage" mapstructure:"max_keyword_usage"`
	ICPFile         string `yaml:"icp_file" mapstructure:"icp_file"`
	BroadLimit      int    `yaml:"broad_limit" mapstructure:"broad_limit"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("search.daily_limit", 1000)
	v.SetDefault("search.rate_limit", 1)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.grade_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v1")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "leads.db")
	v.SetDefault("ledger.path", "ledger.db")
	v.SetDefault("resolver.deep_validation", false)
	v.SetDefault("resolver.deep_validation_strict", false)
	v.SetDefault("smtp.verify_limit", 2)
	v.SetDefault("smtp.hello_domain", "verify.shipcube.io")
	v.SetDefault("smtp.from_address", "check@shipcube.io")
	v.SetDefault("smtp.timeout_secs", 3)
	v.SetDefault("pipeline.workers", 5)
	v.SetDefault("pipeline.target_leads", 1000)
	v.SetDefault("pipeline.min_grade", 1)
	v.SetDefault("pipeline.max_keyword_usage", 3)
	v.SetDefault("pipeline.icp_file", "icp.yaml")
	v.SetDefault("pipeline.broad_limit", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports fatal configuration errors. Called once at startup;
// the process exits before doing any work if it fails.
func (c *Config) Validate() error {
	var missing []string
	if c.Search.Key == "" {
		missing = append(missing, "search.key")
	}
	if c.Search.CompaniesCX == "" {
		missing = append(missing, "search.companies_cx")
	}
	if c.Search.PeopleCX == "" {
		missing = append(missing, "search.people_cx")
	}
	if c.Anthropic.Key == "" {
		missing = append(missing, "anthropic.key")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
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
