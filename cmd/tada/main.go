package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetNoColor(true)
	}
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel

	// Hand the remaining args to the CLI runner.
	code := cli.Run(fs.Args(), cli.Options{
		Config: cfg,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: logging.New(os.Stderr, opts),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
