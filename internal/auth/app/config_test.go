package app

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 3001, cfg.Port)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	require.Equal(t, time.Hour, cfg.Reset.TTL)
	require.Equal(t, 30*24*time.Hour, cfg.Cookie.MaxAge)
	require.Equal(t, "console", cfg.Email.Provider)
	// Dev gets a placeholder secret.
	require.NotEmpty(t, cfg.JWT.Secret)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8443
databaseFile: /var/lib/tarotlyfe/auth.db
jwt:
  secret: file-secret
  accessTtl: 30m
cookie:
  sameSite: lax
  secure: true
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 8443, cfg.Port)
	require.Equal(t, "/var/lib/tarotlyfe/auth.db", cfg.DatabaseFile)
	require.Equal(t, "file-secret", cfg.JWT.Secret)
	require.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	require.True(t, cfg.Cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cfg.SameSiteMode())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_PORT", "9001")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("AUTH_DATABASE_FILE", "/tmp/env.db")
	t.Setenv("AUTH_RESET_TTL", "15m")
	t.Setenv("AUTH_EMAIL_PROVIDER", "smtp")
	t.Setenv("AUTH_EMAIL_SMTP_ADDR", "mail.example.com:587")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, 9001, cfg.Port)
	require.Equal(t, "env-secret", cfg.JWT.Secret)
	require.Equal(t, "/tmp/env.db", cfg.DatabaseFile)
	require.Equal(t, 15*time.Minute, cfg.Reset.TTL)
	require.Equal(t, "smtp", cfg.Email.Provider)
	require.Equal(t, "mail.example.com:587", cfg.Email.SMTPAddr)
}

func TestLoadConfigRequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("AUTH_ENV", "prod")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownEmailProvider(t *testing.T) {
	t.Setenv("AUTH_EMAIL_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig("")
	require.Error(t, err)
}
