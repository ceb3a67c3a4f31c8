package portal

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/config"
)

// View names a page of the portal.
type View string

const (
	ViewNone    View = ""
	ViewHome    View = "home"
	ViewSearch  View = "search"
	ViewDetail  View = "detail"
	ViewDomains View = "domains"
	ViewAuth    View = "auth"
	ViewAccount View = "account"
)

// Effect is what the caller has to do after an operation.
type Effect struct {
	// Notice is shown to the user as is.
	Notice string
	// Redirect is the view to go to, ViewNone to stay.
	Redirect View
	// Next is the view to return to once Redirect is done with, e.g. after login.
	Next View
	// Done is set when the backend confirmed a change: a stored record,
	// a renewal, a deletion or a closed account.
	Done bool
}

// Redirects reports whether the effect leaves the current view.
func (e Effect) Redirects() bool {
	return e.Redirect != ViewNone
}

// Backend is the part of the REST API the controller uses.
// *backend.Conn implements it.
type Backend interface {
	Me(ctx context.Context) (backend.Result[backend.Identity], error)
	AvailableZones(ctx context.Context, subDomain string) (backend.Result[backend.Availability], error)
	Records(ctx context.Context, fullDomain string) (backend.Result[[]backend.Record], error)
	AddRecord(ctx context.Context, req backend.AddRecordRequest) (backend.Result[backend.Empty], error)
	MyDomains(ctx context.Context) (backend.Result[[]backend.OwnedDomain], error)
	Renew(ctx context.Context, subDomain, zone string) (backend.Result[backend.Empty], error)
	DeleteRecord(ctx context.Context, subDomain, zone string) (backend.Result[backend.Empty], error)
	Leave(ctx context.Context) (backend.Result[backend.Empty], error)
	Logout(ctx context.Context) (backend.Result[backend.Empty], error)
}

var _ Backend = (*backend.Conn)(nil)

// Options tune a Controller.
type Options struct {
	// NearExpiryDays is the remaining-days threshold below which an owned
	// domain is flagged as near expiry.
	NearExpiryDays int
	// LeavePhrase has to be typed exactly to delete the account.
	LeavePhrase string
	// Now returns the current time, time.Now if nil.
	Now func() time.Time
}

// OptionsFrom takes the options out of the portal settings.
func OptionsFrom(cfg config.Portal) Options {
	return Options{
		NearExpiryDays: cfg.NearExpiryDays,
		LeavePhrase:    cfg.LeavePhrase,
	}
}

// Controller runs the editor operations for one session.
type Controller struct {
	api       Backend
	opts      Options
	validator *validator.Validate
}

// New creates a Controller talking to api.
func New(api Backend, opts Options) *Controller {
	if opts.NearExpiryDays <= 0 {
		opts.NearExpiryDays = config.DefaultNearExpiryDays
	}

	if opts.LeavePhrase == "" {
		opts.LeavePhrase = config.DefaultLeavePhrase
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Controller{
		api:       api,
		opts:      opts,
		validator: validator.New(),
	}
}

// LeavePhrase returns the confirmation phrase Leave expects.
func (c *Controller) LeavePhrase() string {
	return c.opts.LeavePhrase
}
