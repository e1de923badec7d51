// Package cli wires configuration, credentials and services into the
// melia commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/riordanpawley/melia/internal/app"
	"github.com/riordanpawley/melia/internal/config"
	"github.com/riordanpawley/melia/internal/services/favorites"
	"github.com/riordanpawley/melia/internal/services/taiga"
	"github.com/riordanpawley/melia/internal/state"
	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "melia",
		Short:         "Terminal client for Taiga task boards",
		Long:          "Melia is a terminal client for Taiga. Running it without a subcommand opens the board UI.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.AddCommand(newLoginCmd(), newLogoutCmd(), newVersionCmd())
	return root
}

// deps holds everything a command needs. The log file stays open for
// the lifetime of the command.
type deps struct {
	cfg       *config.Config
	client    *taiga.Client
	credStore *config.CredentialStore
	logger    *slog.Logger
	logFile   *os.File
}

func (d *deps) Close() {
	if d.logFile != nil {
		d.logFile.Close()
	}
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.StateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	// The UI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}))

	credStore := config.NewCredentialStore(cfg.CredentialsPath())
	creds, err := credStore.LoadCredentials()
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	timeout := time.Duration(cfg.Network.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	client := taiga.NewClient(httpClient, cfg.ServerURL, creds, credStore, logger)

	return &deps{
		cfg:       cfg,
		client:    client,
		credStore: credStore,
		logger:    logger,
		logFile:   logFile,
	}, nil
}

func runTUI() error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.client.Credentials().AuthToken == "" {
		return fmt.Errorf("not logged in: run \"melia login\" first")
	}

	st := state.NewStore()
	ctx, cancel := contextWithRequestTimeout(d.cfg)
	user, err := d.client.Me(ctx)
	cancel()
	if err != nil {
		// Keep going: the board opens offline and the status bar
		// shows the connection state.
		d.logger.Warn("failed to fetch current user", "error", err)
	} else {
		st.SetUser(*user)
	}

	favs, err := favorites.Open(d.cfg.FavoritesPath(), d.logger)
	if err != nil {
		return fmt.Errorf("failed to open favorites store: %w", err)
	}
	defer favs.Close()

	m := app.New(d.cfg, d.client, st, favs, d.logger)
	return app.Run(m)
}

func contextWithRequestTimeout(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := time.Duration(cfg.Network.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
