package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	envPrefix   = "DEALERPRO_"
	defaultFile = "dealerpro.yaml"
	devSecret   = "dev-only-secret-change-me-please-0123456789"
)

type Config struct {
	// Dev allows the built-in session secret. Never set it on a shared deployment.
	Dev     bool    `koanf:"dev"`
	HTTP    HTTP    `koanf:"http"`
	API     API     `koanf:"api"`
	DB      DB      `koanf:"db"`
	Session Session `koanf:"session"`
	Log     Log     `koanf:"log"`
	Upload  Upload  `koanf:"upload"`
}

type HTTP struct {
	Port        string `koanf:"port"`
	BodyLimitMB int    `koanf:"body_limit_mb"`
}

// API points at the external dealer REST API and the host serving uploaded media.
type API struct {
	BaseURL  string        `koanf:"base_url"`
	MediaURL string        `koanf:"media_url"`
	Timeout  time.Duration `koanf:"timeout"`
}

type DB struct {
	DSN string `koanf:"dsn"`
}

type Session struct {
	Secret       string        `koanf:"secret"`
	CookieSecure bool          `koanf:"cookie_secure"`
	MaxAge       time.Duration `koanf:"max_age"`
}

type Log struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

type Upload struct {
	MaxImageMB int `koanf:"max_image_mb"`
	MaxVideoMB int `koanf:"max_video_mb"`
}

func Default() Config {
	return Config{
		HTTP: HTTP{Port: "8080", BodyLimitMB: 110},
		API: API{
			BaseURL:  "http://localhost:3000/api",
			MediaURL: "http://localhost:3000",
			Timeout:  15 * time.Second,
		},
		DB: DB{DSN: "dealerpro.db"},
		Session: Session{
			Secret: devSecret,
			MaxAge: 7 * 24 * time.Hour,
		},
		Log:    Log{Level: "info"},
		Upload: Upload{MaxImageMB: 5, MaxVideoMB: 100},
	}
}

// Load layers defaults, an optional YAML file and DEALERPRO_* environment variables.
// Nested keys use a double underscore: DEALERPRO_API__BASE_URL -> api.base_url.
func Load() (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	path := os.Getenv(envPrefix + "CONFIG")
	if path == "" {
		path = defaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, v string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			if key == "CONFIG" {
				return "", nil
			}
			return strings.ToLower(strings.ReplaceAll(key, "__", ".")), v
		},
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load env")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if cfg.Dev {
		log.Printf("[config] dev mode: built-in session secret allowed")
	}
	log.Printf("[config] PORT=%s API=%s MEDIA=%s DB_DSN=%s LOG_FILE=%s",
		cfg.HTTP.Port, cfg.API.BaseURL, cfg.API.MediaURL, cfg.DB.DSN, cfg.Log.File)
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is required")
	}
	if len(c.Session.Secret) < 32 {
		return errors.New("session.secret must be at least 32 bytes")
	}
	if c.Session.Secret == devSecret && !c.Dev {
		return errors.New("session.secret must be set unless dev is enabled")
	}
	if c.HTTP.BodyLimitMB <= 0 {
		return errors.New("http.body_limit_mb must be positive")
	}
	return nil
}
