package portal

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
)

const day = 24 * time.Hour

// OwnedDomain is one entry of the owned list.
type OwnedDomain struct {
	Selection
	// Expiration is zero when the backend has none.
	Expiration time.Time
	DaysLeft   int
	NearExpiry bool
}

// HasExpiration reports whether the domain expires at all.
func (o OwnedDomain) HasExpiration() bool {
	return !o.Expiration.IsZero()
}

// OwnedList is the owned-list view.
type OwnedList struct {
	Domains []OwnedDomain
	// LoginRequired asks for an inline login prompt instead of the list.
	LoginRequired bool
	// Message replaces the list when there is nothing to show.
	Message string
}

// Owned fetches the domains of the session user.
func (c *Controller) Owned(ctx context.Context) (OwnedList, error) {
	res, err := c.api.MyDomains(ctx)
	if err != nil {
		return OwnedList{Message: MsgTransport}, errors.Wrap(err, "owned domains")
	}

	switch res.Status {
	case backend.StatusOK:
	case backend.StatusUnauthorized:
		return OwnedList{LoginRequired: true, Message: MsgLoginRequired}, nil
	case backend.StatusNotFound:
		return OwnedList{Message: MsgNoDomains}, nil
	default:
		log.Warn().Int("status", res.Code).Str("message", res.Message).Msg("owned domains refused")
		return OwnedList{Message: MsgDomainsFailed}, nil
	}

	out := OwnedList{Domains: make([]OwnedDomain, 0, len(res.Value))}
	today := dateOf(c.opts.Now())

	for _, d := range res.Value {
		out.Domains = append(out.Domains, c.owned(d, today))
	}

	if len(out.Domains) == 0 {
		out.Message = MsgNoDomains
	}

	return out, nil
}

func (c *Controller) owned(d backend.OwnedDomain, today time.Time) OwnedDomain {
	o := OwnedDomain{
		Selection: Selection{SubDomain: d.SubDomain, Zone: d.Zone},
	}

	if d.ExpirationDate == nil || d.ExpirationDate.IsZero() {
		return o
	}

	o.Expiration = d.ExpirationDate.Time
	o.DaysLeft = int(dateOf(o.Expiration).Sub(today) / day)
	o.NearExpiry = o.DaysLeft < c.opts.NearExpiryDays

	return o
}

// dateOf drops the clock of t, keeping its calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Renew extends sel. Every outcome sends the user back to the owned list,
// a missing session through the login first.
func (c *Controller) Renew(ctx context.Context, sel Selection) (Effect, error) {
	if sel.Empty() {
		return Effect{Notice: ErrNoSelection.Error(), Redirect: ViewDomains}, ErrNoSelection
	}

	res, err := c.api.Renew(ctx, sel.SubDomain, sel.Zone)
	if err != nil {
		return Effect{Notice: MsgTransport, Redirect: ViewDomains}, errors.Wrap(err, "renew")
	}

	switch res.Status {
	case backend.StatusOK:
		return Effect{Notice: MsgRenewOK, Redirect: ViewDomains, Done: true}, nil
	case backend.StatusUnauthorized:
		return Effect{Notice: MsgLoginRequired, Redirect: ViewAuth, Next: ViewDomains}, nil
	case backend.StatusForbidden:
		return Effect{Notice: MsgRenewForbidden, Redirect: ViewDomains}, nil
	case backend.StatusNotFound:
		return Effect{Notice: MsgRenewNotFound, Redirect: ViewDomains}, nil
	default:
		return Effect{Notice: MsgRenewNotYet, Redirect: ViewDomains}, nil
	}
}

// Delete removes all records of sel and goes back to the owned list.
func (c *Controller) Delete(ctx context.Context, sel Selection) (Effect, error) {
	if sel.Empty() {
		return Effect{Notice: ErrNoSelection.Error(), Redirect: ViewDomains}, ErrNoSelection
	}

	res, err := c.api.DeleteRecord(ctx, sel.SubDomain, sel.Zone)
	if err != nil {
		return Effect{Notice: MsgTransport, Redirect: ViewDomains}, errors.Wrap(err, "delete")
	}

	switch res.Status {
	case backend.StatusOK:
		return Effect{Notice: MsgDeleteOK, Redirect: ViewDomains, Done: true}, nil
	case backend.StatusUnauthorized:
		return Effect{Notice: MsgLoginRequired, Redirect: ViewAuth, Next: ViewDomains}, nil
	case backend.StatusForbidden:
		return Effect{Notice: MsgDeleteForbidden, Redirect: ViewDomains}, nil
	case backend.StatusNotFound:
		return Effect{Notice: MsgDeleteNotFound, Redirect: ViewDomains}, nil
	default:
		notice := res.Message
		if notice == "" {
			notice = MsgDeleteFailed
		}

		return Effect{Notice: notice, Redirect: ViewDomains}, nil
	}
}
