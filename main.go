// Copyright
// SPDX-License-Identifier: MIT
// mdsplit: split-pane markdown editor with a scroll-synced live preview
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"mdsplit/internal/config"
	"mdsplit/internal/logutils"
	"mdsplit/internal/render"
)

var (
	// Populated at build time via -ldflags.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}
	short := c
	if len(c) > 7 {
		short = c[:7]
	}
	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// globals holds the root flags, the config loaded in Before and the
// streams commands write to.
type globals struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Theme      string

	Config *config.Config

	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	app := newApp(&globals{Stdout: os.Stdout, Stderr: os.Stderr})

	exitCode := 0
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}
	os.Exit(exitCode)
}

// newApp builds the command tree. Flag destinations live in g, so every
// run needs a fresh tree.
func newApp(g *globals) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "mdsplit",
		Usage:     "Edit markdown with a live, scroll-synced preview",
		UsageText: "mdsplit [global options] [FILE]\n   mdsplit [global options] command [command options]",
		Description: `Opens FILE (or an empty document) in a split view: the editor on the left,
the rendered preview on the right. Scrolling either pane keeps the other at
the same relative position.

Press F1 inside the editor for key bindings.`,
		Version:   build(),
		Writer:    g.Stdout,
		ErrWriter: g.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MDSPLIT_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &g.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("MDSPLIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &g.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("MDSPLIT_LOG_FILE"),
				Value:       logutils.DefaultFile(),
				Destination: &g.LogFile,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "override the configured theme (dark, light)",
				Destination: &g.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(g.LogLevel, g.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(g.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if g.Theme != "" {
				cfg.Theme = g.Theme
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("--theme: %w", err)
				}
			}
			g.Config = cfg
			log.Debug().Str("config", g.ConfigPath).Str("theme", cfg.Theme).Msg("config loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 1 {
				return fmt.Errorf("expected at most one FILE, got %d. Run 'mdsplit --help' for usage", c.Args().Len())
			}
			return runEditor(g, c.Args().First())
		},
	}

	app.Commands = []*cli.Command{
		renderCmd(g),
		exportCmd(g),
		serveCmd(g),
		configCmd(g),
	}
	return app
}

// newHTML builds the HTML renderer from the loaded config.
func newHTML(g *globals) *render.HTML {
	return render.NewHTML(g.Config.Preview.CodeTheme)
}
