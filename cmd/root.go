package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "siteshell",
	Short: "Presentation-state service for a marketing site page shell",
	Long: `Siteshell owns the page-shell state of a marketing website: which
navigation entries a viewer sees, the breadcrumb trail for the current
location, the responsive breakpoint tier, and the resolved visual theme.
It serves these as JSON plus a WebSocket event stream for the frontend.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "siteshell.yml", "config file path")
}
