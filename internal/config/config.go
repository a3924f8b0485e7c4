package config

import (
	"os"
	"path/filepath"
	"time"

	"emperror.dev/errors"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thesavant42/gitfolio/internal/models"
)

type GitHub struct {
	Token   string
	BaseURL string `mapstructure:"base_url"`
}

type Portfolio struct {
	// Drop forks and repositories without a description.
	HideForks bool `mapstructure:"hide_forks"`
	// "social" or "palette".
	Cover string
	// Let the search box match the language field as well.
	SearchLanguages bool   `mapstructure:"search_languages"`
	DefaultSort     string `mapstructure:"default_sort"`
	DefaultView     string `mapstructure:"default_view"`
}

type UI struct {
	Theme          string
	DebounceMillis int    `mapstructure:"debounce_ms"`
	ShareBaseURL   string `mapstructure:"share_base_url"`
	Splash         bool
	ExportDir      string `mapstructure:"export_dir"`
}

type Storage struct {
	DBPath string `mapstructure:"db_path"`
}

type Config struct {
	GitHub    GitHub
	Portfolio Portfolio
	UI        UI
	Storage   Storage
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Portfolio: Portfolio{
			Cover:       "social",
			DefaultSort: string(models.SortStars),
			DefaultView: string(models.ViewGrid),
		},
		UI: UI{
			Theme:          string(models.ThemeDark),
			DebounceMillis: 300,
			ShareBaseURL:   "https://gitfolio.dev/",
			Splash:         true,
			ExportDir:      ".",
		},
	}
}

// Load reads config.{yaml,toml,json} from the usual places and applies
// environment overrides. Paths are searched before the defaults.
// Returns whether a config file was loaded.
func Load(paths []string) (Config, bool, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	loaded, err := loadFromFile(&cfg, paths)
	loadFromEnv(&cfg)
	if err != nil {
		return cfg, loaded, err
	}

	if cfg.Storage.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return cfg, loaded, err
		}
		cfg.Storage.DBPath = path
	}
	return cfg, loaded, cfg.Validate()
}

func loadFromFile(cfg *Config, paths []string) (bool, error) {
	v := viper.New()
	v.SetConfigName("config")

	for _, path := range paths {
		v.AddConfigPath(path)
	}
	if home := os.Getenv("GITFOLIO_HOME"); home != "" {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("$XDG_CONFIG_HOME/gitfolio")
	v.AddConfigPath("$HOME/.config/gitfolio")

	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to read gitfolio config")
	}

	if err := v.Unmarshal(cfg); err != nil {
		return true, errors.Wrap(err, "failed to parse gitfolio config")
	}
	return true, nil
}

func loadFromEnv(cfg *Config) {
	if token := os.Getenv("GITFOLIO_GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if path := os.Getenv("GITFOLIO_DB"); path != "" {
		cfg.Storage.DBPath = path
	}
}

// DefaultDBPath is gitfolio.db under the XDG state directory.
func DefaultDBPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("gitfolio", "gitfolio.db"))
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve state directory")
	}
	return path, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := models.ParseSortKey(c.Portfolio.DefaultSort); err != nil {
		return errors.WithMessage(err, "portfolio.default_sort")
	}
	if _, err := models.ParseViewMode(c.Portfolio.DefaultView); err != nil {
		return errors.WithMessage(err, "portfolio.default_view")
	}
	if _, err := models.ParseTheme(c.UI.Theme); err != nil {
		return errors.WithMessage(err, "ui.theme")
	}
	switch c.Portfolio.Cover {
	case "", "social", "palette":
	default:
		return errors.Errorf("portfolio.cover: unknown cover style %q", c.Portfolio.Cover)
	}
	if c.UI.DebounceMillis < 0 {
		return errors.Errorf("ui.debounce_ms must not be negative, got %d", c.UI.DebounceMillis)
	}
	return nil
}

// Debounce is the search input delay.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMillis) * time.Millisecond
}

// ViewState builds the initial view settings. Call after Validate.
func (c Config) ViewState() models.ViewState {
	vs := models.DefaultViewState()
	if k, err := models.ParseSortKey(c.Portfolio.DefaultSort); err == nil {
		vs.Sort = k
	}
	if m, err := models.ParseViewMode(c.Portfolio.DefaultView); err == nil {
		vs.Mode = m
	}
	return vs
}
