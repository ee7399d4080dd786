package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()

	var (
		cfg Config
		err error
	)
	app := &cli.App{
		Flags: Flags,
		Action: func(c *cli.Context) error {
			cfg, err = FromContext(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"quick-forms"}, args...)))
	return cfg, err
}

func TestFromContext_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Addr:      "0.0.0.0:80",
		DBUrl:     "qforms.sqlite",
		TokenTTL:  120 * time.Second,
		LogFormat: "text",
	}, cfg)
	assert.Error(t, cfg.RequireSecret())
}

func TestFromContext_Flags(t *testing.T) {
	cfg, err := parse(t,
		"--host", "127.0.0.1",
		"--port", "8080",
		"--db-url", "/tmp/forms.sqlite",
		"--token-secret", "s3cret",
		"--token-ttl", "5m",
		"--debug",
		"--log-format", "json",
	)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "/tmp/forms.sqlite", cfg.DBUrl)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.NoError(t, cfg.RequireSecret())
}

func TestFromContext_Env(t *testing.T) {
	t.Setenv("QUICKFORMS_PORT", "9000")
	t.Setenv("QUICKFORMS_TOKEN_SECRET", "from-env")

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, "from-env", cfg.TokenSecret)
}

func TestFromContext_EmptyDBUrl(t *testing.T) {
	_, err := parse(t, "--db-url", "")
	assert.Error(t, err)
}

func TestUrl(t *testing.T) {
	assert.Equal(t, "http://localhost:80", Config{Addr: "0.0.0.0:80"}.Url())
	assert.Equal(t, "http://127.0.0.1:8080", Config{Addr: "127.0.0.1:8080"}.Url())
}
