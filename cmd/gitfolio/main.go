package main

import (
	"fmt"
	"os"
	"strings"

	"emperror.dev/errors"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thesavant42/gitfolio/internal/api"
	"github.com/thesavant42/gitfolio/internal/config"
	"github.com/thesavant42/gitfolio/internal/db"
	"github.com/thesavant42/gitfolio/internal/export"
	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
	"github.com/thesavant42/gitfolio/internal/ui"
)

var rootFlags struct {
	Debug     bool
	Token     string
	DBPath    string
	Theme     string
	ConfigDir string
	NoSplash  bool
	URL       string
}

// app holds what PersistentPreRunE sets up for the subcommands.
var app struct {
	cfg    config.Config
	logger *log.Logger
	db     *db.DB
	theme  models.Theme
}

var RootCmd = &cobra.Command{
	Use:   "gitfolio [<username>]",
	Short: "Browse a GitHub user's public projects as a portfolio",
	Args:  cobra.MaximumNArgs(1),

	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		app.logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
		app.logger.SetLevel(log.WarnLevel)
		if rootFlags.Debug {
			app.logger.SetLevel(log.DebugLevel)
		}

		var configDirs []string
		if rootFlags.ConfigDir != "" {
			configDirs = append(configDirs, rootFlags.ConfigDir)
		}
		cfg, loaded, err := config.Load(configDirs)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if loaded {
			app.logger.Debug("Loaded configuration")
		} else {
			app.logger.Debug("No configuration found, using defaults")
		}
		if rootFlags.Token != "" {
			cfg.GitHub.Token = rootFlags.Token
		}
		if rootFlags.DBPath != "" {
			cfg.Storage.DBPath = rootFlags.DBPath
		}
		app.cfg = cfg

		app.db, err = db.New(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		app.logger.Debug("Opened database", "path", cfg.Storage.DBPath)

		app.theme, err = resolveTheme()
		return err
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app.db != nil {
			return app.db.Close()
		}
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) == 1 {
			username = args[0]
		}
		if rootFlags.URL != "" {
			u, err := export.ParseShareURL(rootFlags.URL)
			if err != nil {
				return err
			}
			username = u
		}

		if username == "" {
			recent, err := app.db.RecentUsers(10)
			if err != nil {
				app.logger.Warn("Failed to read recent users", "error", err)
			}
			last, err := app.db.LastUser()
			if err != nil {
				app.logger.Warn("Failed to read last user", "error", err)
			}
			username, err = ui.PromptForUsername(recent, last, app.theme)
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}
		} else if err := ui.ValidateUsername(username); err != nil {
			return err
		}

		if app.cfg.UI.Splash && !rootFlags.NoSplash {
			if err := ui.ShowSplash(app.theme); err != nil {
				app.logger.Debug("Splash screen failed", "error", err)
			}
		}

		loader, err := newLoader()
		if err != nil {
			return err
		}
		return ui.RunPortfolio(ui.Options{
			Username:        username,
			Loader:          loader,
			Store:           app.db,
			Theme:           app.theme,
			ViewState:       app.cfg.ViewState(),
			SearchLanguages: app.cfg.Portfolio.SearchLanguages,
			Debounce:        app.cfg.Debounce(),
			ShareBaseURL:    app.cfg.UI.ShareBaseURL,
			ExportDir:       app.cfg.UI.ExportDir,
			Logger:          app.logger,
		})
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.BoolVar(&rootFlags.Debug, "debug", false, "enable verbose debug logging")
	pf.StringVar(&rootFlags.Token, "token", "", "GitHub personal access token (default $GITHUB_TOKEN)")
	pf.StringVar(&rootFlags.DBPath, "db", "", "path to the preferences database")
	pf.StringVar(&rootFlags.Theme, "theme", "", "color theme: dark or light")
	pf.StringVar(&rootFlags.ConfigDir, "config", "", "directory containing config.yaml")

	RootCmd.Flags().BoolVar(&rootFlags.NoSplash, "no-splash", false, "skip the splash screen")
	RootCmd.Flags().StringVar(&rootFlags.URL, "url", "", "open the portfolio named by a share link")

	RootCmd.AddCommand(exportCmd, shareCmd)
}

// resolveTheme picks the --theme flag, then the saved theme, then the config.
func resolveTheme() (models.Theme, error) {
	if rootFlags.Theme != "" {
		return models.ParseTheme(rootFlags.Theme)
	}
	saved, ok, err := app.db.Theme()
	if err != nil {
		app.logger.Warn("Failed to read saved theme", "error", err)
	} else if ok {
		return saved, nil
	}
	return models.ParseTheme(app.cfg.UI.Theme)
}

func newLoader() (*portfolio.Loader, error) {
	level := log.InfoLevel
	if rootFlags.Debug {
		level = log.DebugLevel
	}
	client := api.NewClientWithLogging(app.cfg.GitHub.Token, api.NewFileLogger(app.cfg.Storage.DBPath, level))
	if app.cfg.GitHub.BaseURL != "" {
		if err := client.SetBaseURL(app.cfg.GitHub.BaseURL); err != nil {
			return nil, err
		}
	}

	cover, err := portfolio.ParseCoverStyle(app.cfg.Portfolio.Cover)
	if err != nil {
		return nil, err
	}
	opts := portfolio.NormalizeOptions{
		HideForksAndUndescribed: app.cfg.Portfolio.HideForks,
		Cover:                   cover,
	}
	return portfolio.NewLoader(client, opts, app.logger), nil
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		if rootFlags.Debug {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, indent(fmt.Sprintf("%+v", err), "\t"))
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}

func indent(s string, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
