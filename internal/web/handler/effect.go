package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/portal"
	"github.com/nulldns/subdns-portal/internal/web/navigation"
	"github.com/nulldns/subdns-portal/internal/web/session"
)

// Paths of the views an effect can lead to.
const (
	PathHome    = RootPath
	PathDomains = RootPath + "domains"
	PathLogin   = RootPath + "login"
	PathAccount = RootPath + "account"
)

// PathOf returns the route of view.
func PathOf(view portal.View) string {
	switch view {
	case portal.ViewDomains:
		return PathDomains
	case portal.ViewAuth:
		return PathLogin
	case portal.ViewAccount:
		return PathAccount
	default:
		return PathHome
	}
}

// ViewOf parses the view named by a next parameter, ViewNone if unknown.
func ViewOf(name string) portal.View {
	switch v := portal.View(name); v {
	case portal.ViewHome, portal.ViewSearch, portal.ViewDomains, portal.ViewAccount:
		return v
	default:
		return portal.ViewNone
	}
}

// Apply answers a form post with a 303 to where eff leads, or to stay when
// the effect does not redirect. The notice and next view ride along in the query.
func Apply(c *fiber.Ctx, eff portal.Effect, stay string) error {
	target := stay
	if eff.Redirects() {
		target = PathOf(eff.Redirect)
	}

	q := url.Values{}
	if eff.Notice != "" {
		q.Set(QueryNotice, eff.Notice)
	}

	if eff.Next != portal.ViewNone {
		q.Set(QueryNext, string(eff.Next))
	}

	if len(q) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}

		target += sep + q.Encode()
	}

	return c.Redirect(target, fiber.StatusSeeOther)
}

// LogError logs err of an operation unless it is a rejected input.
func LogError(err error, op string) {
	if err == nil || portal.IsInputError(err) {
		return
	}

	log.Error().Err(err).Str("operation", op).Msg("portal operation failed")
}

// Render renders name inside the base layout with the data every page needs.
func Render(c *fiber.Ctx, cfg *config.Config, name string, nav *navigation.Context, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	if nav.Notice == "" {
		nav.WithNotice(c.Query(QueryNotice))
	}

	data["Navigation"] = nav
	data["Title"] = cfg.Title
	data["Viewer"] = session.Viewer(c)

	return c.Render(name, data, BaseLayout)
}

// StatusOf is the HTTP status of a page rendered after an operation.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case portal.IsInputError(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}
