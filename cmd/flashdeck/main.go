package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/conorfennell/flashdeck/internal/app"
	"github.com/conorfennell/flashdeck/internal/auth"
	"github.com/conorfennell/flashdeck/internal/config"
	"github.com/conorfennell/flashdeck/internal/importer"
	"github.com/conorfennell/flashdeck/internal/menu"
	"github.com/conorfennell/flashdeck/internal/navigation"
	"github.com/conorfennell/flashdeck/internal/prompt"
	"github.com/conorfennell/flashdeck/internal/review"
	"github.com/conorfennell/flashdeck/internal/storage"
)

// env is what every command works with once flags and config are resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *storage.DB
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	e := &env{}

	root := &cobra.Command{
		Use:           "flashdeck",
		Short:         "Manage and review flashcard decks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = newLogger(cfg.Log)
			slog.SetDefault(e.logger)

			db, err := storage.Open(cfg.Database.DSN)
			if err != nil {
				return errors.Wrap(err, "open database")
			}
			e.db = db
			e.logger.Debug("database opened", "dsn", cfg.Database.DSN)
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if e.db == nil {
				return nil
			}
			return e.db.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.String("db", "", "SQLite database file (overrides database.dsn)")
	flags.String("log-level", "", "debug, info, warn or error (overrides log.level)")

	root.AddCommand(newStartCmd(e), newCardCmd(e), newUserCmd(e))
	return root
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := new(slog.LevelVar)
	// Validated by config.Load.
	_ = level.UnmarshalText([]byte(cfg.Level))

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor || !isatty.IsTerminal(os.Stderr.Fd()),
		})
	}
	return slog.New(handler)
}

func newStartCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Show the menus and start the interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			io, closeIO := prompt.Open()
			defer closeIO()

			if e.cfg.Auth.Enabled {
				err := e.db.WithTx(ctx, func(tx *storage.Tx) error {
					_, err := auth.Login(ctx, io, tx)
					return err
				})
				if errors.Is(err, prompt.ErrInputClosed) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			reviewOpts := []review.Option{review.WithLogger(e.logger)}
			if !e.cfg.Review.Shuffle {
				reviewOpts = append(reviewOpts, review.WithShuffle(review.InOrder))
			}

			nav := navigation.New(menu.Main())
			dispatcher := menu.NewDispatcher(io, nav,
				menu.WithReviewer(review.New(io, reviewOpts...)),
				menu.WithImporter(importer.New(e.cfg.Import.ReposDir, e.logger)),
				menu.WithLogger(e.logger),
			)
			return app.New(e.db, io, nav, dispatcher,
				app.WithClearScreen(e.cfg.UI.ClearScreen),
				app.WithLogger(e.logger),
			).Run(ctx)
		},
	}
}
