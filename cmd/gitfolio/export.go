package main

import (
	"context"
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/thesavant42/gitfolio/internal/export"
	"github.com/thesavant42/gitfolio/internal/models"
	"github.com/thesavant42/gitfolio/internal/portfolio"
	"github.com/thesavant42/gitfolio/internal/ui"
)

var exportFlags struct {
	Format string
	Out    string
	Search string
	Filter string
	Sort   string
}

var exportCmd = &cobra.Command{
	Use:   "export <username>",
	Short: "Write a user's portfolio to a markdown, csv, json or html file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		if err := ui.ValidateUsername(username); err != nil {
			return err
		}

		formatName := exportFlags.Format
		if formatName == "" {
			var err error
			formatName, err = ui.PromptForExportFormat(app.theme)
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			if err != nil {
				return err
			}
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		query := app.cfg.ViewState()
		query.SearchTerm = exportFlags.Search
		if exportFlags.Filter != "" {
			query.Filter = exportFlags.Filter
		}
		if exportFlags.Sort != "" {
			if query.Sort, err = models.ParseSortKey(exportFlags.Sort); err != nil {
				return err
			}
		}

		loader, err := newLoader()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		var res portfolio.LoadResult
		err = spinner.New().
			Title(fmt.Sprintf("Fetching %s's repositories...", username)).
			Action(func() {
				res = loader.Load(ctx, 0, username)
			}).
			Run()
		if err != nil {
			return err
		}
		if res.Err != nil {
			return errors.Wrapf(res.Err, "could not load %s", username)
		}

		repos := portfolio.Apply(res.Repos, query, app.cfg.Portfolio.SearchLanguages)
		if len(repos) == 0 {
			return errors.WithMessage(portfolio.ErrEmptyResult, "nothing matches the given search and filter")
		}

		share, err := export.ShareURL(app.cfg.UI.ShareBaseURL, res.Username)
		if err != nil {
			app.logger.Debug("No share link", "error", err)
		}
		out := exportFlags.Out
		if out == "" {
			out = app.cfg.UI.ExportDir
		}
		path, err := export.WriteFile(out, format, export.Document{
			Username:    res.Username,
			Profile:     res.Profile,
			Stats:       portfolio.ComputeStats(res.Repos),
			Query:       query,
			Repos:       repos,
			Readme:      res.Readme,
			ShareURL:    share,
			GeneratedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d of %d repositories to %s\n", len(repos), len(res.Repos), path)
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportFlags.Format, "format", "f", "", "md, csv, json or html (prompts when omitted)")
	f.StringVarP(&exportFlags.Out, "out", "o", "", "output file or directory")
	f.StringVar(&exportFlags.Search, "search", "", "only include repositories matching this term")
	f.StringVar(&exportFlags.Filter, "filter", "", "only include repositories in this language")
	f.StringVar(&exportFlags.Sort, "sort", "", "stars, forks, updated, created or name")
}
