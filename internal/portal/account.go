package portal

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
)

// Viewer is the user behind the session.
type Viewer struct {
	ID            string
	Authenticated bool
}

// Identify asks the backend who the session belongs to. Only a successful
// answer counts as authenticated.
func (c *Controller) Identify(ctx context.Context) (Viewer, error) {
	res, err := c.api.Me(ctx)
	if err != nil {
		return Viewer{}, errors.Wrap(err, "identify")
	}

	if !res.OK() {
		return Viewer{}, nil
	}

	return Viewer{ID: res.Value.ID, Authenticated: true}, nil
}

// Logout ends the session and goes home whatever the backend answers.
func (c *Controller) Logout(ctx context.Context) (Effect, error) {
	eff := Effect{Notice: MsgLoggedOut, Redirect: ViewHome}

	res, err := c.api.Logout(ctx)
	if err != nil {
		return eff, errors.Wrap(err, "logout")
	}

	if !res.OK() {
		log.Debug().Int("status", res.Code).Msg("logout answered with non-success")
	}

	return eff, nil
}

// Leave deletes the account. confirm has to equal the leave phrase exactly,
// otherwise no request is made.
func (c *Controller) Leave(ctx context.Context, confirm string) (Effect, error) {
	if confirm != c.opts.LeavePhrase {
		return Effect{Notice: ErrLeavePhrase.Error()}, ErrLeavePhrase
	}

	res, err := c.api.Leave(ctx)
	if err != nil {
		return Effect{Notice: MsgTransport, Redirect: ViewHome}, errors.Wrap(err, "leave")
	}

	switch res.Status {
	case backend.StatusOK:
		return Effect{Notice: MsgLeaveOK, Redirect: ViewHome, Done: true}, nil
	case backend.StatusUnauthorized:
		return Effect{Notice: MsgLoginRequired, Redirect: ViewAuth, Next: ViewAccount}, nil
	default:
		log.Warn().Int("status", res.Code).Str("message", res.Message).Msg("leave refused")
		return Effect{Notice: MsgLeaveFailed, Redirect: ViewHome}, nil
	}
}
