// Package account serves login, logout and account deletion.
package account

import (
	"strings"

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
	// LogoutPath ends the session.
	LogoutPath = handler.RootPath + "logout"
	// LeavePath deletes the account.
	LeavePath = handler.PathAccount + "/leave"

	// TemplateLogin is the login template.
	TemplateLogin = "account/login"
	// TemplateAccount is the account template.
	TemplateAccount = "account/index"
)

// Service handles the session of the user.
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

	app.Get(handler.PathLogin, s.Login)
	app.Post(LogoutPath, s.Logout)
	app.Get(handler.PathAccount, s.Account)
	app.Post(LeavePath, s.Leave)
}

// Login links to the backend login. The login itself happens there, so the
// way back is an absolute link into the portal.
func (s *Service) Login(c *fiber.Ctx) error {
	nav := navigation.NewContext("로그인", "account", "login").
		AddBreadcrumb("홈", handler.PathHome, false).
		AddBreadcrumb("로그인", handler.PathLogin, true)

	var back string
	if next := handler.ViewOf(c.Query(handler.QueryNext)); next != portal.ViewNone {
		back = strings.TrimSuffix(s.cfg.Webserver.URL, "/") + handler.PathOf(next)
	}

	return handler.Render(c, s.cfg, TemplateLogin, nav, fiber.Map{
		"LoginURL": s.client.LoginURL(),
		"Back":     back,
	})
}

// Logout ends the session at the backend and drops its cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	eff, err := session.Controller(c).Logout(c.UserContext())
	handler.LogError(err, "logout")

	session.Clear(c, s.client)

	return handler.Apply(c, eff, handler.PathHome)
}

// Account shows the greeting and the leave form.
func (s *Service) Account(c *fiber.Ctx) error {
	nav := navigation.NewContext("내 정보", "account", "index").
		AddBreadcrumb("홈", handler.PathHome, false).
		AddBreadcrumb("내 정보", handler.PathAccount, true)

	return handler.Render(c, s.cfg, TemplateAccount, nav, fiber.Map{
		"LeavePhrase": session.Controller(c).LeavePhrase(),
	})
}

// Leave deletes the account once the confirmation phrase matches.
func (s *Service) Leave(c *fiber.Ctx) error {
	eff, err := session.Controller(c).Leave(c.UserContext(), c.FormValue("confirm"))
	handler.LogError(err, "leave")

	if eff.Done {
		session.Clear(c, s.client)
	}

	return handler.Apply(c, eff, handler.PathAccount)
}
