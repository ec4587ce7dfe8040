// Command wordle-tui plays the Otter word ladder in the terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RubyShuey/Otter/internal/app"
	"github.com/RubyShuey/Otter/internal/config"
	"github.com/RubyShuey/Otter/internal/daily"
	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/tui"
	"github.com/RubyShuey/Otter/internal/words"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wordle-tui",
		Short:        "Climb the word ladder in your terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().String("lang", "", "language to play (default GAME_DEFAULT_LANGUAGE)")
	cmd.Flags().Bool("daily", false, "play the word of the day for every length")
	cmd.Flags().Bool("no-hints", false, "disable the hint after the third miss")
	cmd.Flags().String("log-file", os.Getenv("LOG_FILE"), "write logs to this file")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// the screen owns the terminal, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	app.NewLogger(cfg.Log, logOut)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, ws, err := app.Sources(ctx, cfg.Words)
	if err != nil {
		return err
	}
	if ws != nil {
		defer ws.Close()
	}
	catalog, err := app.NewCatalog(ctx, sources)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	if cfg.Words.Watch {
		go func() {
			if err := words.Watch(ctx, catalog, cfg.Words.Debounce); err != nil {
				log.Error().Err(err).Msg("word list watcher stopped")
			}
		}()
	}

	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = cfg.Game.DefaultLanguage
	}
	if _, err := catalog.Bank(lang); err != nil {
		return fmt.Errorf("language %q: %w", lang, err)
	}
	mode, picker := "random", game.Picker(nil)
	if d, _ := cmd.Flags().GetBool("daily"); d {
		mode, picker = "daily", daily.Picker{Salt: cfg.Game.DailySalt}
	}
	noHints, _ := cmd.Flags().GetBool("no-hints")

	g := game.New(uuid.NewString(), catalog, game.Settings{
		Language:      lang,
		Mode:          mode,
		MaxAttempts:   cfg.Game.MaxAttempts,
		StartLength:   cfg.Game.StartLength,
		HintsEnabled:  cfg.Game.Hints && !noHints,
		RetryInterval: cfg.Game.RetryInterval,
		RetryAttempts: cfg.Game.RetryAttempts,
	}, picker, nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	log.Info().Str("gameId", g.ID).Str("lang", lang).Str("mode", mode).Msg("terminal game started")
	return tui.New(screen, g, catalog, cfg.Game.SettleDelay).Run(ctx)
}
