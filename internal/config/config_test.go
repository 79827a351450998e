package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

site:
  base_url: "https://forgepoint.digital"
  name: "ForgePoint Digital"

newsletter:
  token_secret: "test-secret"
  confirm_ttl_hours: 24
  dynamodb_table: "fp-subscribers"
  aws_region: "us-west-2"

ses:
  region: "us-west-2"
  from_address: "hello@forgepoint.digital"
  timeout_seconds: 45
  enabled: true

crm:
  base_url: "https://erp.example.com/api"
  api_key: "key"
  api_secret: "secret"
  enabled: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://forgepoint.digital", cfg.Site.BaseURL)
	assert.Equal(t, "fp-subscribers", cfg.Newsletter.DynamoDBTable)
	assert.Equal(t, 24, cfg.Newsletter.ConfirmTTLHours)
	assert.Equal(t, "hello@forgepoint.digital", cfg.SES.FromAddress)
	assert.Equal(t, 45, cfg.SES.TimeoutSeconds)
	assert.True(t, cfg.CRM.Enabled)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 0\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 48, cfg.Newsletter.ConfirmTTLHours)
	assert.Equal(t, 30, cfg.Newsletter.UnsubscribeTTLDays)
	assert.Equal(t, "web/templates", cfg.Site.TemplatesDir)
	assert.Equal(t, "Website", cfg.CRM.LeadSource)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("newsletter:\n  token_secret: file-secret\n"), 0644)
	require.NoError(t, err)

	t.Setenv("NEWSLETTER_TOKEN_SECRET", "env-secret")
	t.Setenv("CRM_API_KEY", "env-key")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Newsletter.TokenSecret)
	assert.Equal(t, "env-key", cfg.CRM.APIKey)
	// Setting the key implies the integration is live
	assert.True(t, cfg.CRM.Enabled)
}

func TestConfirmTTL(t *testing.T) {
	c := NewsletterConfig{ConfirmTTLHours: 48}
	assert.Equal(t, "48h0m0s", c.ConfirmTTL().String())
}
