// Package daemon runs the portal web service until it is told to stop.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
	"github.com/nulldns/subdns-portal/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves the portal and blocks until a graceful shutdown finished.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().
		Str("addr", addr).
		Str("backend", d.cfg.Backend.URL).
		Msg("starting portal")

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	client, err := backend.New(cfg.Backend)
	if err != nil {
		return nil, errors.Wrap(err, "create backend client")
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, client),
	}, nil
}
