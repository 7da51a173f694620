package proc

import (
	"bytes"
	"os/exec"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"http://x"}},
		{"freebsd", "xdg-open", []string{"http://x"}},
		{"darwin", "open", []string{"http://x"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "http://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := BrowserCommand(tt.goos, "http://x")
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestOpenBrowserForwardsOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var buf syncBuffer
	l := NewLauncher("linux", zerolog.New(&buf).Level(zerolog.DebugLevel))
	var gotName string
	var gotArgs []string
	l.command = func(name string, args ...string) *exec.Cmd {
		gotName, gotArgs = name, args
		return exec.Command("sh", "-c", "echo launched >&2")
	}

	require.NoError(t, l.OpenBrowser("http://127.0.0.1:1/"))
	assert.Equal(t, "xdg-open", gotName)
	assert.Equal(t, []string{"http://127.0.0.1:1/"}, gotArgs)
	assert.Eventually(t, func() bool { return bytes.Contains(buf.Bytes(), []byte("launched")) }, 2*time.Second, 10*time.Millisecond)
}

func TestBrowserIsNotTiedToContext(t *testing.T) {
	cmd := NewLauncher("linux", zerolog.Nop()).command("xdg-open", "http://x")
	assert.Nil(t, cmd.Cancel, "a cancelled serve context must not kill the browser")
	require.NotNil(t, newSysProcAttrForGroup())
}

func TestOpenBrowserMissingProgram(t *testing.T) {
	l := NewLauncher("linux", zerolog.Nop())
	l.command = func(_ string, _ ...string) *exec.Cmd {
		return exec.Command("/nonexistent/mdsplit-browser")
	}
	err := l.OpenBrowser("http://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open browser")
}
