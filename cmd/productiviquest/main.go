package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/productiviquest/internal/app"
	"github.com/alexanderramin/productiviquest/internal/cli"
	"github.com/alexanderramin/productiviquest/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	a := &cli.App{
		State:      core.State,
		Location:   core.Location,
		DaemonAddr: cfg.ListenAddr,
		Serve: func(ctx context.Context) error {
			daemon, err := app.NewDaemon(core, cfg, logger)
			if err != nil {
				return err
			}
			return daemon.Run(ctx)
		},
	}

	// Prompts only make sense on a terminal.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}

// newLogger writes JSON to stderr, or human-readable lines when stderr is a
// terminal or the environment is development.
func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stderr
	if cfg.Development() || isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(cfg.Level()).With().Timestamp().Str("service", "productiviquest").Logger()
}
