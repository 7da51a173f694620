package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdsplit/internal/httpx"
	"mdsplit/internal/render"
)

func newTestServer(t *testing.T, body string) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return New(path, render.NewHTML(""), zerolog.Nop()), path
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readReload(t *testing.T, conn *websocket.Conn) reloadMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg reloadMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestServePage(t *testing.T) {
	s, _ := newTestServer(t, "# Hello\n\nworld")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<h1 id="hello">Hello</h1>`)
	assert.Contains(t, body, "<title>notes.md</title>")
	assert.Contains(t, body, "WebSocket")

	resp, body = get(t, ts.URL+"/raw")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "# Hello\n\nworld", body)

	resp, _ = get(t, ts.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServePageMissingFile(t *testing.T) {
	s, path := newTestServer(t, "x")
	require.NoError(t, os.Remove(path))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestReloadBroadcast(t *testing.T) {
	s, _ := newTestServer(t, "# a")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	a := dial(t, ts)
	b := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	s.Reload()

	assert.Equal(t, reloadMessage{Action: "reload", File: "notes.md"}, readReload(t, a))
	assert.Equal(t, "reload", readReload(t, b).Action)

	_ = a.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestReloadDropsStalledClient(t *testing.T) {
	s, _ := newTestServer(t, "# a")
	s.WriteTimeout = 20 * time.Millisecond
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	// This client never reads, so its socket buffers eventually fill.
	stalled := dial(t, ts)
	if tcp, ok := stalled.UnderlyingConn().(*net.TCPConn); ok {
		_ = tcp.SetReadBuffer(1024)
	}
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.mu.Lock()
	for c := range s.conns {
		if tcp, ok := c.UnderlyingConn().(*net.TCPConn); ok {
			_ = tcp.SetWriteBuffer(1024)
		}
	}
	s.mu.Unlock()

	deadline := time.Now().Add(20 * time.Second)
	for s.Clients() > 0 && time.Now().Before(deadline) {
		start := time.Now()
		s.Reload()
		require.True(t, time.Since(start) < time.Second, "reload waited past the write timeout")
	}
	require.Equal(t, 0, s.Clients())

	fresh := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.Reload()
	assert.Equal(t, "reload", readReload(t, fresh).Action)
}

func TestWatchTriggersReload(t *testing.T) {
	s, path := newTestServer(t, "# a")
	s.Debounce = 10 * time.Millisecond
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Watch(ctx))

	conn := dial(t, ts)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("# b"), 0o644))
	assert.Equal(t, "reload", readReload(t, conn).Action)
}

func TestListenAndServe(t *testing.T) {
	s, _ := newTestServer(t, "# served")

	ctx, cancel := context.WithCancel(context.Background())
	urls := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0", func(url string) { urls <- url })
	}()

	var url string
	select {
	case url = <-urls:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	assert.NotContains(t, url, ":0")

	require.NoError(t, httpx.WaitUp(ctx, url, 5*time.Second))
	body, err := httpx.Get(ctx, url+"/raw")
	require.NoError(t, err)
	assert.Equal(t, "# served", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
