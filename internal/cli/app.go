// Package cli is the terminal frontend over the session store: commands map
// onto store actions, and command guards decide what may run based on the
// session state, the way the web client's route guards did.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jober-app/go-alimtalk-client/api"
	"github.com/jober-app/go-alimtalk-client/internal/config"
	"github.com/jober-app/go-alimtalk-client/session"
	"github.com/jober-app/go-alimtalk-client/snapshot/badgerrepo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// App wires the config, API client, and session store behind the command
// tree. One App lives for one command invocation.
type App struct {
	cfg    config.Config
	client *api.Client
	store  *session.Store
	snaps  *badgerrepo.BadgerRepo
	logger zerolog.Logger

	verbose bool
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "alimtalk",
		Short:         "Compose and manage alimtalk notification templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.bootstrap()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.teardown()
		},
	}
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.registerCmd(),
		app.accountCmd(),
		app.spacesCmd(),
		app.templatesCmd(),
		app.contactsCmd(),
	)
	return root
}

func (a *App) bootstrap() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	guard := api.NewExpiryGuard(stderrAlerter(), nil, api.WithGuardLogger(a.logger))
	client, err := api.New(cfg.BaseURL, guard, api.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.client = client
	a.restoreCookies()

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	snaps, err := badgerrepo.New(cfg.SnapshotDir())
	if err != nil {
		return err
	}
	a.snaps = snaps

	store, err := session.New(client, snaps, session.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.store = store
	guard.SetLogout(func() {
		a.store.Logout(context.Background())
	})

	return a.store.Restore()
}

func (a *App) teardown() {
	if a.client != nil {
		a.persistCookies()
	}
	if a.store != nil {
		a.flushSnackbar()
	}
	if a.snaps != nil {
		_ = a.snaps.Close()
	}
}

// requireLogin is the guard in front of every protected command.
func (a *App) requireLogin() error {
	if !a.store.State().LoggedIn {
		return fmt.Errorf("not logged in: run `alimtalk login` first")
	}
	return nil
}

// requireSpace reconciles the space list and makes sure a current space is
// selected before any space-scoped command runs.
func (a *App) requireSpace(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.store.FetchSpaces(ctx); err != nil {
		return err
	}
	state := a.store.State()
	if state.APIError != "" {
		return fmt.Errorf("%s", state.APIError)
	}
	if state.CurrentSpace == nil {
		return fmt.Errorf("no space available: create one in the web app or accept an invitation")
	}
	return nil
}
