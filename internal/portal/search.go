package portal

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/record"
)

// Row is one zone of a search result.
type Row struct {
	SubDomain  string
	Zone       string
	FullDomain string
	// Available is the backend's canAdd.
	Available bool
	// Clickable rows open the detail view in new mode.
	Clickable bool
	Verdict   string
}

// SearchResult replaces the previous result wholesale.
type SearchResult struct {
	Query         string
	Authenticated bool
	Rows          []Row
}

// Search looks up below which zones input can be registered.
// Availability is asked first, the session afterwards.
func (c *Controller) Search(ctx context.Context, input string) (SearchResult, Effect, error) {
	sub := strings.TrimSpace(input)
	if sub == "" {
		return SearchResult{}, Effect{Notice: ErrEmptySubDomain.Error()}, ErrEmptySubDomain
	}

	out := SearchResult{Query: sub}

	res, err := c.api.AvailableZones(ctx, sub)
	if err != nil {
		return out, Effect{Notice: MsgTransport}, errors.Wrap(err, "search")
	}

	if !res.OK() {
		log.Debug().Str("query", sub).Int("status", res.Code).Msg("availability lookup refused")
		return out, Effect{Notice: MsgSearchFailed}, nil
	}

	viewer, err := c.Identify(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("identity check failed, searching anonymously")
	}

	out.Authenticated = viewer.Authenticated
	out.Rows = make([]Row, 0, len(res.Value.Zones))

	for _, z := range res.Value.Zones {
		out.Rows = append(out.Rows, newRow(sub, z.Name, z.CanAdd, viewer.Authenticated))
	}

	return out, Effect{}, nil
}

func newRow(sub, zone string, canAdd, authenticated bool) Row {
	row := Row{
		SubDomain:  sub,
		Zone:       zone,
		FullDomain: record.FullDomain(sub, zone),
		Available:  canAdd,
		Clickable:  canAdd && authenticated,
	}

	switch {
	case row.Clickable:
		row.Verdict = VerdictClickable
	case canAdd:
		row.Verdict = VerdictLogin
	default:
		row.Verdict = VerdictTaken
	}

	return row
}
