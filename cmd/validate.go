package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calegray/siteshell/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and navigation tree",
	Long: `Loads the configuration, builds the navigation tree, and reports the
first violation found (missing label or href, duplicate href, excessive
nesting). Exits non-zero on any error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		tree, err := cfg.Tree()
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%d navigation items)\n", cfgFile, tree.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
