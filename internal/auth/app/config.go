package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tarotlyfe/tarotlyfe/pkg/jwtx"
)

// envPrefix namespaces all environment overrides, e.g. AUTH_JWT_SECRET maps to
// jwt.secret.
const envPrefix = "AUTH_"

type Config struct {
	Env       string `koanf:"env"`
	LogLevel  string `koanf:"logLevel"`
	LogFormat string `koanf:"logFormat"`

	Port                 int           `koanf:"port"`
	ShutdownGracePeriod  time.Duration `koanf:"shutdownGracePeriod"`
	HousekeepingInterval time.Duration `koanf:"housekeepingInterval"`

	DatabaseFile string `koanf:"databaseFile"`
	PepperFile   string `koanf:"pepperFile"`

	JWT struct {
		Secret    string        `koanf:"secret"`
		Issuer    string        `koanf:"issuer"`
		AccessTTL time.Duration `koanf:"accessTtl"`
	} `koanf:"jwt"`

	Reset struct {
		TTL         time.Duration `koanf:"ttl"`
		FrontendURL string        `koanf:"frontendUrl"`
	} `koanf:"reset"`

	Cookie struct {
		Domain   string        `koanf:"domain"`
		Path     string        `koanf:"path"`
		Secure   bool          `koanf:"secure"`
		SameSite string        `koanf:"sameSite"`
		MaxAge   time.Duration `koanf:"maxAge"`
	} `koanf:"cookie"`

	CORS struct {
		Origin string `koanf:"origin"`
	} `koanf:"cors"`

	Email struct {
		Provider     string `koanf:"provider"` // console or smtp
		From         string `koanf:"from"`
		SMTPAddr     string `koanf:"smtpAddr"`
		SMTPUsername string `koanf:"smtpUsername"`
		SMTPPassword string `koanf:"smtpPassword"`
	} `koanf:"email"`
}

func defaultConfig() Config {
	cfg := Config{
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 3001,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: 1 * time.Hour,
		DatabaseFile:         "auth.db",
		PepperFile:           "pepper",
	}
	cfg.JWT.Issuer = "tarotlyfe-auth"
	cfg.JWT.AccessTTL = jwtx.DefaultAccessTokenTTL
	cfg.Reset.TTL = 1 * time.Hour
	cfg.Reset.FrontendURL = "http://localhost:3000"
	cfg.Cookie.Path = "/"
	cfg.Cookie.SameSite = "strict"
	cfg.Cookie.MaxAge = 30 * 24 * time.Hour
	cfg.Email.Provider = "console"
	cfg.Email.From = "noreply@tarotlyfe.com"
	return cfg
}

// LoadConfig reads configuration from an optional YAML file and AUTH_*
// environment variables, in that order. Env always wins.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// AUTH_JWT_SECRET -> jwt.secret, AUTH_DATABASE_FILE -> databasefile.
			// Field matching below is case-insensitive, so squashing the
			// remaining underscores is enough.
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			section, rest, found := strings.Cut(key, "_")
			switch section {
			case "jwt", "reset", "cookie", "cors", "email":
				if found {
					return section + "." + strings.ReplaceAll(rest, "_", ""), value
				}
				return section, value
			default:
				return strings.ReplaceAll(key, "_", ""), value
			}
		},
	}), nil); err != nil {
		return cfg, fmt.Errorf("load env config: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Env keys arrive lower-cased, yaml keys camel-cased.
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.Env != "dev" {
			return errors.New("jwt secret must be set outside dev")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	switch c.Email.Provider {
	case "console", "smtp":
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}
	if c.Email.Provider == "smtp" && c.Email.SMTPAddr == "" {
		return errors.New("smtp provider requires email.smtpAddr")
	}
	return nil
}

// SameSiteMode maps the configured string to the http constant.
func (c *Config) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.Cookie.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
