package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/calegray/siteshell/internal/config"
	"github.com/calegray/siteshell/internal/db"
	"github.com/calegray/siteshell/internal/server"
	"github.com/calegray/siteshell/internal/theme"
)

var serveNoWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shell state server",
	Long: `Starts the siteshell HTTP server. The frontend reads navigation,
breadcrumbs, breakpoint, and theme state as JSON and subscribes to changes
over a WebSocket. The config file is watched and hot-reloaded unless
--no-watch is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		tree, err := cfg.Tree()
		if err != nil {
			return err
		}

		// Preference store. A failure here is non-fatal: the shell degrades
		// to an in-memory store and sessions surface the error flag.
		store, cleanup := openStore(cfg)
		defer cleanup()

		srv := server.New(cfg, tree, store)

		if !serveNoWatch {
			watcher, err := config.Watch(cfgFile, func(next *config.Config) {
				nextTree, err := next.Tree()
				if err != nil {
					// Watch already validated; a failure here means the
					// config changed between validation and build.
					fmt.Fprintf(os.Stderr, "Warning: reload skipped: %v\n", err)
					return
				}
				srv.Reload(next, nextTree)
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: config watching disabled: %v\n", err)
			} else {
				defer watcher.Close()
			}
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

// openStore opens the SQLite preference store, seeding the configured
// default theme into an empty slot. Falls back to memory when the database
// cannot be opened.
func openStore(cfg *config.Config) (theme.Store, func()) {
	database, err := db.Open(filepath.Join(cfg.Server.DataDir, "siteshell.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: preference store unavailable, using memory: %v\n", err)
		return theme.NewMemStore(), func() {}
	}

	store := theme.NewSQLiteStore(database)
	seedDefaultTheme(store, cfg)
	return store, func() { database.Close() }
}

// seedDefaultTheme writes the configured default preference into an empty
// store so first-time visitors start from the operator's choice.
func seedDefaultTheme(store theme.Store, cfg *config.Config) {
	def := cfg.Theme.Default
	if def == "" || def == string(theme.PreferenceSystem) {
		return
	}
	if _, ok, err := store.Get(cfg.Theme.StorageKey); err == nil && !ok {
		if err := store.Set(cfg.Theme.StorageKey, def); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not seed default theme: %v\n", err)
		}
	}
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "disable config hot-reload")
	rootCmd.AddCommand(serveCmd)
}
