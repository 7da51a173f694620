// Package proc launches helper programs detached from the editor.
package proc

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Launcher starts short-lived helpers such as the system browser.
type Launcher struct {
	log  zerolog.Logger
	goos string
	// command builds the process; swapped in tests. It carries no context
	// so the browser outlives the command that opened it.
	command func(name string, args ...string) *exec.Cmd
}

// NewLauncher returns a Launcher for the given GOOS.
func NewLauncher(goos string, logger zerolog.Logger) *Launcher {
	return &Launcher{
		log:     logger.With().Str("cmp", "proc").Logger(),
		goos:    goos,
		command: exec.Command,
	}
}

// BrowserCommand returns the program and arguments that open url with the
// desktop's default handler.
func BrowserCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

// OpenBrowser starts the browser detached in its own process group and
// returns once it has been spawned. Its output is forwarded to the log.
func (l *Launcher) OpenBrowser(url string) error {
	name, args := BrowserCommand(l.goos, url)
	cmd := l.command(name, args...)
	cmd.SysProcAttr = newSysProcAttrForGroup()

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	l.log.Debug().Str("cmd", name).Int("pid", cmd.Process.Pid).Msg("browser started")

	go func() {
		l.pipeLogs(name, stderr)
		if err := cmd.Wait(); err != nil {
			l.log.Warn().Err(err).Str("cmd", name).Msg("browser exited")
		}
	}()
	return nil
}

func (l *Launcher) pipeLogs(name string, r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		l.log.Debug().Str("cmd", name).Msg(line)
	}
}
