package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the site server and its CLIs.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Site       SiteConfig       `yaml:"site"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
	SES        SESConfig        `yaml:"ses"`
	CRM        CRMConfig        `yaml:"crm"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// SiteConfig holds business identity and rendering settings.
type SiteConfig struct {
	BaseURL      string `yaml:"base_url"`      // public origin for absolute links, e.g. https://forgepoint.digital
	Name         string `yaml:"name"`          // business name used in titles and templates
	TemplatesDir string `yaml:"templates_dir"` // Liquid template directory
	ContentDir   string `yaml:"content_dir"`   // YAML content module directory
}

// NewsletterConfig holds subscriber storage and token settings.
type NewsletterConfig struct {
	TokenSecret           string `yaml:"token_secret"`
	ConfirmTTLHours       int    `yaml:"confirm_ttl_hours"`
	UnsubscribeTTLDays    int    `yaml:"unsubscribe_ttl_days"`
	DynamoDBTable         string `yaml:"dynamodb_table"`
	AWSRegion             string `yaml:"aws_region"`
	AWSProfile            string `yaml:"aws_profile"` // empty uses the default credential chain
}

// ConfirmTTL returns the confirm-token lifetime as a duration.
func (c NewsletterConfig) ConfirmTTL() time.Duration {
	return time.Duration(c.ConfirmTTLHours) * time.Hour
}

// UnsubscribeTTL returns the unsubscribe-token lifetime as a duration.
func (c NewsletterConfig) UnsubscribeTTL() time.Duration {
	return time.Duration(c.UnsubscribeTTLDays) * 24 * time.Hour
}

// GetAWSProfile returns the AWS profile, with environment variable override.
func (c NewsletterConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return "" // use default credential chain (IAM role)
		}
		return envProfile
	}
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "" // running on ECS or Lambda, use IAM role
	}
	return c.AWSProfile
}

// SESConfig holds AWS SES settings for transactional email.
type SESConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration.
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CRMConfig holds the external CRM's resource API credentials.
type CRMConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	APISecret      string `yaml:"api_secret"`
	LeadSource     string `yaml:"lead_source"` // tag stamped on created leads, e.g. "Website"
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration.
func (c CRMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RateLimitConfig holds Redis-backed form rate limiting settings.
// Limiting is skipped entirely when RedisURL is empty.
type RateLimitConfig struct {
	RedisURL      string `yaml:"redis_url"`
	WindowSeconds int    `yaml:"window_seconds"`
	MaxRequests   int    `yaml:"max_requests"`
}

// Window returns the limiter window as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "http://localhost:8080"
	}
	if cfg.Site.Name == "" {
		cfg.Site.Name = "ForgePoint Digital"
	}
	if cfg.Site.TemplatesDir == "" {
		cfg.Site.TemplatesDir = "web/templates"
	}
	if cfg.Site.ContentDir == "" {
		cfg.Site.ContentDir = "content"
	}
	if cfg.Newsletter.ConfirmTTLHours == 0 {
		cfg.Newsletter.ConfirmTTLHours = 48
	}
	if cfg.Newsletter.UnsubscribeTTLDays == 0 {
		cfg.Newsletter.UnsubscribeTTLDays = 30
	}
	if cfg.Newsletter.AWSRegion == "" {
		cfg.Newsletter.AWSRegion = "us-east-1"
	}
	if cfg.SES.TimeoutSeconds == 0 {
		cfg.SES.TimeoutSeconds = 30
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = cfg.Newsletter.AWSRegion
	}
	if cfg.CRM.TimeoutSeconds == 0 {
		cfg.CRM.TimeoutSeconds = 30
	}
	if cfg.CRM.LeadSource == "" {
		cfg.CRM.LeadSource = "Website"
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 5
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := os.Getenv("NEWSLETTER_TOKEN_SECRET"); v != "" {
		cfg.Newsletter.TokenSecret = v
	}
	if v := os.Getenv("NEWSLETTER_DYNAMODB_TABLE"); v != "" {
		cfg.Newsletter.DynamoDBTable = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("SES_FROM_ADDRESS"); v != "" {
		cfg.SES.FromAddress = v
	}
	if v := os.Getenv("CRM_BASE_URL"); v != "" {
		cfg.CRM.BaseURL = v
	}
	if v := os.Getenv("CRM_API_KEY"); v != "" {
		cfg.CRM.APIKey = v
		if !cfg.CRM.Enabled {
			cfg.CRM.Enabled = true
		}
	}
	if v := os.Getenv("CRM_API_SECRET"); v != "" {
		cfg.CRM.APISecret = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RateLimit.RedisURL = v
	}

	return cfg, nil
}
