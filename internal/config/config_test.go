package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(5000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "book_catalogue", cfg.Mongo.Database)
	assert.Empty(t, cfg.Auth.SessionSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionLifetime)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.SecureCookies)
	assert.Equal(t, "./templates", cfg.UI.TemplatesPath)
	assert.Equal(t, "./static", cfg.UI.StaticPath)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DBNAME", "catalogue_test")
	t.Setenv("SECRET_KEY", "deadbeef")
	t.Setenv("SESSION_LIFETIME", "30m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("SECURE_COOKIES", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "catalogue_test", cfg.Mongo.Database)
	assert.Equal(t, "deadbeef", cfg.Auth.SessionSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionLifetime)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.SecureCookies)
}
