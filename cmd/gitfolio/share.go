package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesavant42/gitfolio/internal/export"
	"github.com/thesavant42/gitfolio/internal/ui"
)

var shareFlags struct {
	BaseURL string
}

var shareCmd = &cobra.Command{
	Use:   "share <username>",
	Short: "Print the share link for a user's portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ui.ValidateUsername(args[0]); err != nil {
			return err
		}
		base := shareFlags.BaseURL
		if base == "" {
			base = app.cfg.UI.ShareBaseURL
		}
		link, err := export.ShareURL(base, args[0])
		if err != nil {
			return err
		}
		fmt.Println(link)
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareFlags.BaseURL, "base-url", "", "viewer URL the link points at")
}
