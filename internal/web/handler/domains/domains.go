// Package domains serves the list of owned domains and their renewal.
package domains

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/portal"
	"github.com/nulldns/subdns-portal/internal/web/handler"
	"github.com/nulldns/subdns-portal/internal/web/navigation"
	"github.com/nulldns/subdns-portal/internal/web/session"
)

const (
	// Path is the owned-list route.
	Path = handler.PathDomains

	// TemplateName is the owned-list template.
	TemplateName = "domains/index"
)

// Service renders the owned list.
type Service struct {
	cfg    *config.Config
	client *backend.Client
}

var _ handler.Service = (*Service)(nil)

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, client *backend.Client) {
	if app == nil || cfg == nil || client == nil {
		log.Fatal().Msg(handler.ErrNilFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.client = client

	app.Get(Path, s.List)
	app.Post(Path+"/:sub/:zone/renew", s.Renew)
}

// List shows the owned domains, or an inline login prompt.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("내 도메인", "domains", "list").
		AddBreadcrumb("홈", handler.PathHome, false).
		AddBreadcrumb("내 도메인", Path, true)

	list, err := session.Controller(c).Owned(c.UserContext())
	handler.LogError(err, "owned domains")

	return handler.Render(c.Status(handler.StatusOf(err)), s.cfg, TemplateName, nav, fiber.Map{
		"List":     list,
		"LoginURL": s.client.LoginURL(),
	})
}

// Renew extends one domain. Whatever the outcome the list is loaded again.
func (s *Service) Renew(c *fiber.Ctx) error {
	sel := portal.Selection{SubDomain: c.Params("sub"), Zone: c.Params("zone")}

	eff, err := session.Controller(c).Renew(c.UserContext(), sel)
	handler.LogError(err, "renew")

	return handler.Apply(c, eff, Path)
}
