package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("JWT_SECRET", "test-secret")

	config, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "rental-store", config.App.Name)
	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, []string{"*"}, config.App.CORSAllowedOrigins)
	assert.Equal(t, "5432", config.Database.Port)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.True(t, config.Database.AutoMigrate)
	assert.Equal(t, 24, config.JWT.ExpiryHours)
	assert.Equal(t, "rental.events", config.AMQP.Exchange)
	assert.Empty(t, config.AMQP.URL)
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	env := "JWT_SECRET=from-file\nDB_NAME=rentals\nPORT=9000\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("PORT", "9100")

	config, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.JWT.Secret)
	assert.Equal(t, "rentals", config.Database.Name)
	assert.Equal(t, "9100", config.App.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.App.CORSAllowedOrigins)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	resetViper(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(t.TempDir())
	require.EqualError(t, err, "JWT_SECRET is required")
}
