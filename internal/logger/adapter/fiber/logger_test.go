package fiber_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/nulldns/subdns-portal/internal/logger/adapter/fiber"

	"github.com/nulldns/subdns-portal/internal/logger"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New()
	app.Use(adapter.New(cfg))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/fail", func(_ *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})

	return app
}

func fileConfig(dir string) adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			DisableCheckAlive: true,
			File: logger.LogFile{
				Enabled:   true,
				Path:      dir,
				AccessLog: "access.log",
			},
		},
		CheckAliveURI: "/checkalive",
	}
}

func readLines(t *testing.T, dir string) []accessLine {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(dir, "access.log"))
	if os.IsNotExist(err) {
		return nil
	}

	require.NoError(t, err)

	var lines []accessLine

	for _, l := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if l == "" {
			continue
		}

		var line accessLine
		require.NoError(t, json.Unmarshal([]byte(l), &line))
		lines = append(lines, line)
	}

	return lines
}

func TestNew_WritesAccessLine(t *testing.T) {
	dir := t.TempDir()
	app := newApp(fileConfig(dir))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?q=foo", http.NoBody), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	lines := readLines(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, http.StatusOK, lines[0].Status)
	assert.Equal(t, "/?q=foo", lines[0].URI)
	assert.Equal(t, fiber.MethodGet, lines[0].Method)
	assert.Equal(t, "example.com", lines[0].Host)
}

func TestNew_SkipsCheckAlive(t *testing.T) {
	dir := t.TempDir()
	app := newApp(fileConfig(dir))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/checkalive", http.NoBody), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, readLines(t, dir))
}

func TestNew_LogsChainErrorStatus(t *testing.T) {
	dir := t.TempDir()
	app := newApp(fileConfig(dir))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", http.NoBody), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	lines := readLines(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, fiber.StatusTeapot, lines[0].Status)
}

func TestNew_NextSkipsMiddleware(t *testing.T) {
	dir := t.TempDir()
	cfg := fileConfig(dir)
	cfg.Next = func(_ *fiber.Ctx) bool { return true }

	app := newApp(cfg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", http.NoBody), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Empty(t, resp.Header.Get("X-Performance"))
	assert.Empty(t, readLines(t, dir))
}
