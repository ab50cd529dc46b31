package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Read()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "inventory.db", cfg.SQLitePath)
	assert.Equal(t, DefaultPasswordHash, cfg.AuthPasswordHash)
	assert.Len(t, cfg.AuthAllowedEmails, 10)
	assert.Contains(t, cfg.AuthAllowedEmails, "user10@example.com")
	assert.False(t, cfg.AuthRequired)
	assert.False(t, cfg.IsProduction())
}

func TestRead_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("AUTH_ALLOWED_EMAILS", "a@example.com,b@example.com")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("APP_ENV", "production")

	cfg := Read()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AuthAllowedEmails)
	assert.True(t, cfg.AuthRequired)
	assert.True(t, cfg.IsProduction())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &AppConfig{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUsername: "inv",
		PostgresPassword: "secret",
		PostgresDatabase: "inventory",
		PostgresSSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5433 user=inv password=secret dbname=inventory sslmode=disable", cfg.PostgresDSN())
}

func TestS3Enabled(t *testing.T) {
	assert.False(t, (&AppConfig{}).S3Enabled())
	assert.False(t, (&AppConfig{AWSEndpoint: "http://minio:9000"}).S3Enabled())
	assert.True(t, (&AppConfig{AWSBucket: "inv", AWSEndpoint: "http://minio:9000"}).S3Enabled())
	assert.True(t, (&AppConfig{AWSBucket: "inv", AWSDefaultRegion: "eu-west-1"}).S3Enabled())
}
