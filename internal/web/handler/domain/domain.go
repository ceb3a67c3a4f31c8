// Package domain serves the record editor of one subdomain.
package domain

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/portal"
	"github.com/nulldns/subdns-portal/internal/record"
	"github.com/nulldns/subdns-portal/internal/web/handler"
	"github.com/nulldns/subdns-portal/internal/web/navigation"
	"github.com/nulldns/subdns-portal/internal/web/session"
)

const (
	// Path is the editor route of sub.zone.
	Path = handler.RootPath + "domain/:sub/:zone"

	// TemplateName is the editor template.
	TemplateName = "domain/detail"
)

// Service provides the record editor.
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

	app.Get(Path, s.Show)
	app.Post(Path, s.Submit)
	app.Post(Path+"/delete", s.Delete)
}

// URL returns the editor link of sel.
func URL(sel portal.Selection, mode portal.Mode, recordType string) string {
	q := url.Values{}
	q.Set("mode", string(mode))

	if recordType != "" {
		q.Set("type", recordType)
	}

	return handler.RootPath + "domain/" + url.PathEscape(sel.SubDomain) + "/" + url.PathEscape(sel.Zone) + "?" + q.Encode()
}

func selection(c *fiber.Ctx) portal.Selection {
	return portal.Selection{SubDomain: c.Params("sub"), Zone: c.Params("zone")}
}

func nav(d portal.Detail) *navigation.Context {
	title := "신규 등록"
	if d.Mode == portal.ModeEdit {
		title = "레코드 수정"
	}

	return navigation.NewContext(title, "domains", "detail").
		AddBreadcrumb("홈", handler.PathHome, false).
		AddBreadcrumb("내 도메인", handler.PathDomains, false).
		AddBreadcrumb(d.FullDomain(), URL(d.Selection, d.Mode, ""), true)
}

func (s *Service) render(c *fiber.Ctx, d portal.Detail, notice string) error {
	return handler.Render(c, s.cfg, TemplateName, nav(d).WithNotice(notice), fiber.Map{
		"Detail": d,
		"Types":  record.Types,
	})
}

// Show opens the editor in the mode and with the record type of the query.
func (s *Service) Show(c *fiber.Ctx) error {
	mode := portal.ParseMode(c.Query("mode"))

	d, eff, err := session.Controller(c).OpenDetail(c.UserContext(), selection(c), mode)
	handler.LogError(err, "open detail")

	if eff.Redirects() {
		return handler.Apply(c, eff, handler.PathDomains)
	}

	if err != nil {
		return s.render(c.Status(handler.StatusOf(err)), d, eff.Notice)
	}

	recordType := c.Query("type")
	if recordType == "" {
		recordType = d.DefaultType()
	}

	return s.render(c, d.SelectType(recordType), eff.Notice)
}

// Submit stores the record of the form. A refused submission renders the
// editor again with the typed value kept.
func (s *Service) Submit(c *fiber.Ctx) error {
	var in portal.Submission
	if err := c.BodyParser(&in); err != nil {
		log.Debug().Err(err).Msg("invalid record form")
	}

	sel := selection(c)
	in.SubDomain, in.Zone = sel.SubDomain, sel.Zone

	eff, err := session.Controller(c).Submit(c.UserContext(), in)
	handler.LogError(err, "submit record")

	if eff.Redirects() {
		return handler.Apply(c, eff, handler.PathDomains)
	}

	d := portal.Detail{
		Selection: sel,
		Mode:      portal.ParseMode(c.FormValue("mode")),
		Records:   record.Map{},
	}.SelectType(in.Type).WithValue(in.Content)

	status := handler.StatusOf(err)
	if err == nil {
		status = fiber.StatusUnprocessableEntity
	}

	return s.render(c.Status(status), d, eff.Notice)
}

// Delete removes the subdomain and goes back to the owned list.
func (s *Service) Delete(c *fiber.Ctx) error {
	eff, err := session.Controller(c).Delete(c.UserContext(), selection(c))
	handler.LogError(err, "delete")

	return handler.Apply(c, eff, handler.PathDomains)
}
