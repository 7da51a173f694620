package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"mdsplit/internal/config"
	"mdsplit/internal/document"
	"mdsplit/internal/httpx"
	"mdsplit/internal/proc"
	"mdsplit/internal/render"
	"mdsplit/internal/server"
	"mdsplit/internal/tui"
)

const defaultRenderWidth = 80

func runEditor(g *globals, file string) error {
	return tui.Run(tui.Options{
		Config: g.Config,
		Path:   document.ExpandPath(file),
		HTML:   newHTML(g),
		Logger: log.Logger,
	})
}

// requireFile returns the single FILE argument, expanded and loaded.
func requireFile(g *globals, c *cli.Command) (string, string, error) {
	if c.Args().Len() != 1 {
		return "", "", fmt.Errorf("%s needs exactly one FILE", c.Name)
	}
	path := document.ExpandPath(c.Args().First())
	files := document.NewFiles(g.Config.Files.Accept, g.Config.Files.SaveDir, g.Config.Files.NamePrefix)
	text, err := files.Load(path)
	if err != nil {
		return "", "", err
	}
	return path, text, nil
}

func renderCmd(g *globals) *cli.Command {
	var width int
	return &cli.Command{
		Name:      "render",
		Usage:     "Print FILE rendered for the terminal",
		UsageText: "mdsplit render [--width N] FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "wrap width (defaults to the terminal width)",
				Destination: &width,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_, text, err := requireFile(g, c)
			if err != nil {
				return err
			}
			theme, w := outputStyle(g.Stdout, g.Config.Theme)
			if width > 0 {
				w = width
			}
			out, err := render.NewTerminal().Render(text, theme, w)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			_, err = io.WriteString(g.Stdout, out)
			return err
		},
	}
}

// outputStyle picks the glamour theme and wrap width for w. Pipes and other
// non-terminal writers get the plain notty style.
func outputStyle(w io.Writer, theme string) (string, int) {
	f, ok := w.(*os.File)
	if !ok {
		return render.ThemeNoTTY, defaultRenderWidth
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return render.ThemeNoTTY, defaultRenderWidth
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		width = defaultRenderWidth
	}
	return theme, width
}

func exportCmd(g *globals) *cli.Command {
	var out string
	return &cli.Command{
		Name:      "export",
		Usage:     "Write FILE as a standalone HTML page",
		UsageText: "mdsplit export [--out PATH] FILE",
		Description: `Without --out the page is written next to FILE with an .html extension.
Use --out - to write to stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path, or - for stdout",
				Destination: &out,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path, text, err := requireFile(g, c)
			if err != nil {
				return err
			}
			page, err := newHTML(g).Document(filepath.Base(path), []byte(text), false)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			if out == "-" {
				_, err = g.Stdout.Write(page)
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
			}
			files := document.NewFiles(g.Config.Files.Accept, filepath.Dir(out), g.Config.Files.NamePrefix)
			if err := files.SaveAs(out, page); err != nil {
				return err
			}
			log.Info().Str("file", out).Msg("exported")
			fmt.Fprintln(g.Stderr, "wrote", out)
			return nil
		},
	}
}

func serveCmd(g *globals) *cli.Command {
	var (
		addr string
		open bool
	)
	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve FILE as HTML and reload the browser when it changes",
		UsageText: "mdsplit serve [--addr HOST:PORT] [--open] FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address; port 0 picks a free port (defaults to server.addr)",
				Sources:     cli.EnvVars("MDSPLIT_ADDR"),
				Destination: &addr,
			},
			&cli.BoolFlag{
				Name:        "open",
				Usage:       "open the page in the default browser",
				Destination: &open,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path, _, err := requireFile(g, c)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = g.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(path, newHTML(g), log.Logger)
			launcher := proc.NewLauncher(runtime.GOOS, log.Logger)
			err = srv.ListenAndServe(ctx, addr, func(url string) {
				fmt.Fprintf(g.Stderr, "Serving %s at %s (ctrl+c to stop)\n", filepath.Base(path), url)
				if open {
					go openWhenUp(ctx, g, launcher, url)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func openWhenUp(ctx context.Context, g *globals, l *proc.Launcher, url string) {
	if err := httpx.WaitUp(ctx, url, 5*time.Second); err != nil {
		log.Warn().Err(err).Msg("server not reachable")
		return
	}
	if err := l.OpenBrowser(url); err != nil {
		log.Warn().Err(err).Msg("open browser")
		fmt.Fprintln(g.Stderr, "could not open a browser:", err)
	}
}

func configCmd(g *globals) *cli.Command {
	var force bool
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or create the config file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default config to --config",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file", Destination: &force},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if _, err := os.Stat(g.ConfigPath); err == nil && !force {
						return fmt.Errorf("%s already exists (use --force to overwrite)", g.ConfigPath)
					}
					def := config.DefaultConfig()
					if err := config.Save(g.ConfigPath, &def); err != nil {
						return fmt.Errorf("write config: %w", err)
					}
					fmt.Fprintln(g.Stderr, "wrote", g.ConfigPath)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective config as YAML",
				Action: func(ctx context.Context, c *cli.Command) error {
					enc := yaml.NewEncoder(g.Stdout)
					enc.SetIndent(2)
					if err := enc.Encode(g.Config); err != nil {
						return err
					}
					return enc.Close()
				},
			},
		},
	}
}
