// Package session binds every request to the backend session of its browser.
package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/portal"
)

const (
	localsController = "portal.controller"
	localsViewer     = "portal.viewer"
)

// Config of the session middleware.
type Config struct {
	// Client talks to the backend, its cookie name is read from the request.
	Client *backend.Client
	// Options of every per-request controller.
	Options portal.Options
	// Skip lists path prefixes served without a controller.
	Skip []string
}

// New returns the middleware creating the controller of each request from
// the backend session cookie. A request without cookie gets an anonymous one.
func New(cfg Config) fiber.Handler {
	if cfg.Client == nil {
		panic("session: backend client is nil")
	}

	return func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		for _, prefix := range cfg.Skip {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		sess := backend.Session(c.Cookies(cfg.Client.CookieName()))
		c.Locals(localsController, portal.New(cfg.Client.For(sess), cfg.Options))

		return c.Next()
	}
}

// Controller returns the controller of the request.
func Controller(c *fiber.Ctx) *portal.Controller {
	ctrl, ok := c.Locals(localsController).(*portal.Controller)
	if !ok {
		panic("session: middleware not installed")
	}

	return ctrl
}

// Viewer returns who is behind the request. The backend is asked once per
// request; a failed check counts as anonymous.
func Viewer(c *fiber.Ctx) portal.Viewer {
	if v, ok := c.Locals(localsViewer).(portal.Viewer); ok {
		return v
	}

	v, err := Controller(c).Identify(c.UserContext())
	if err != nil {
		log.Warn().Err(err).Msg("identity check failed")
	}

	c.Locals(localsViewer, v)

	return v
}

// Clear drops the backend session cookie from the browser.
func Clear(c *fiber.Ctx, client *backend.Client) {
	c.ClearCookie(client.CookieName())
}
