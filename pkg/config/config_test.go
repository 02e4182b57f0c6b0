package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiereCredencialesAppSheet(t *testing.T) {
	t.Setenv("APPSHEET_APP_ID", "")
	t.Setenv("APPSHEET_ACCESS_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APPSHEET_APP_ID", "app-123")
	t.Setenv("APPSHEET_ACCESS_KEY", "key-abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "es-MX", cfg.AppSheet.Locale)
	assert.Equal(t, "America/Mexico_City", cfg.AppSheet.Timezone)
	assert.Equal(t, 17.5, cfg.Rates.USD)
	assert.Equal(t, 13.0, cfg.Rates.CAD)
	assert.Equal(t, 19.0, cfg.Rates.EUR)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.Enabled())
	assert.False(t, cfg.Policy.RequireAuthOnVariance)
}

func TestLoad_TasasInvalidasUsanDefecto(t *testing.T) {
	t.Setenv("APPSHEET_APP_ID", "app-123")
	t.Setenv("APPSHEET_ACCESS_KEY", "key-abc")
	t.Setenv("TASA_USD", "abc")
	t.Setenv("TASA_EUR", "20.25")
	t.Setenv("CORTE_AUTORIZACION_OBLIGATORIA", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 17.5, cfg.Rates.USD)
	assert.Equal(t, 20.25, cfg.Rates.EUR)
	assert.True(t, cfg.Policy.RequireAuthOnVariance)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "umo", SSLMode: "disable"}

	assert.True(t, c.Enabled())
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/umo?sslmode=disable", c.ConnectionString())
}
