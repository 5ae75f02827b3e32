package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "blog")
	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("STORE_RETRY_MAX", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "blog", cfg.DbName)
	assert.Equal(t, "5432", cfg.DbPort)
	assert.Equal(t, "disable", cfg.DbSSLMode)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.StoreRetryMax)
	assert.Equal(t, 12*time.Hour, cfg.AccessTTL())
}

func TestLoadConfig_BadRetryMax(t *testing.T) {
	t.Setenv("STORE_RETRY_MAX", "many")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DbHost: "db", DbUser: "u", DbName: "blog", AccessTokenTTL: "1h"}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Contains(t, warnings, "JWT_SECRET is empty")

	cfg.DbHost = ""
	_, err = cfg.Validate()
	assert.Error(t, err)

	cfg.DbHost = "db"
	cfg.AccessTokenTTL = "soon"
	_, err = cfg.Validate()
	assert.Error(t, err)
}

func TestGetDSNSafe_HidesPassword(t *testing.T) {
	cfg := &Config{DbUser: "u", DbPass: "secret", DbHost: "h", DbPort: "5432", DbName: "blog", DbSSLMode: "disable"}

	assert.Equal(t, "postgres://u:secret@h:5432/blog?sslmode=disable", cfg.GetDSN())
	assert.NotContains(t, cfg.GetDSNSafe(), "secret")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitList(""))
}
