// Package search serves the home page and the subdomain search.
package search

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/web/handler"
	"github.com/nulldns/subdns-portal/internal/web/navigation"
	"github.com/nulldns/subdns-portal/internal/web/session"
)

const (
	// Path is the search route, the home page renders the empty form.
	Path = handler.RootPath + "search"

	// TemplateName is the search template.
	TemplateName = "search/index"

	// QueryParam holds the candidate subdomain.
	QueryParam = "q"
)

// Service renders the search page.
type Service struct {
	cfg *config.Config
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

	app.Get(handler.PathHome, s.Index)
	app.Get(Path, s.Search)
}

func nav() *navigation.Context {
	return navigation.NewContext("도메인 검색", "search", "index").
		AddBreadcrumb("홈", handler.PathHome, true)
}

// Index shows the empty search form.
func (s *Service) Index(c *fiber.Ctx) error {
	return handler.Render(c, s.cfg, TemplateName, nav(), fiber.Map{"Query": ""})
}

// Search shows the zones below which the query can be registered.
func (s *Service) Search(c *fiber.Ctx) error {
	query := c.Query(QueryParam)

	res, eff, err := session.Controller(c).Search(c.UserContext(), query)
	handler.LogError(err, "search")

	return handler.Render(c.Status(handler.StatusOf(err)), s.cfg, TemplateName, nav().WithNotice(eff.Notice), fiber.Map{
		"Query":  query,
		"Result": &res,
	})
}
