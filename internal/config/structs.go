package config

import (
	"time"

	"github.com/nulldns/subdns-portal/internal/logger"
)

const (
	// DefaultShutDownTime is the drain time in seconds before the http server stops.
	DefaultShutDownTime = 5

	// DefaultBackendTimeout bounds every call against the subdns REST API.
	DefaultBackendTimeout = 10 * time.Second

	// DefaultSessionCookie is the cookie the subdns backend keeps its session in.
	DefaultSessionCookie = "JSESSIONID"

	// DefaultLoginPath is the backend path starting the GitHub OAuth2 login.
	DefaultLoginPath = "/oauth2/authorization/github"

	// DefaultNearExpiryDays is the remaining-days threshold for the expiry warning.
	DefaultNearExpiryDays = 30

	// DefaultLeavePhrase must be typed verbatim before an account is deleted.
	DefaultLeavePhrase = "회원탈퇴"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Log       logger.Log
	Title     string
	Webserver Webserver
	Backend   Backend
	Portal    Portal
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
	CheckAliveURI  string // liveness probe path, not access logged
}

// Backend holds the settings of the subdns REST API the portal talks to.
type Backend struct {
	URL           string        // base url, e.g. https://nulldns.top
	Timeout       time.Duration // per request timeout
	SessionCookie string        // name of the backend session cookie
	LoginPath     string        // path of the OAuth2 login entry point
	Session       string        // session cookie value used by the CLI commands
}

// Portal holds user facing behavior settings.
type Portal struct {
	NearExpiryDays int    // fewer remaining days than this marks a domain as near expiry
	LeavePhrase    string // confirmation phrase for account deletion
}
