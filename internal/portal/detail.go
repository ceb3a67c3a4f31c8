package portal

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/backend"
	"github.com/nulldns/subdns-portal/internal/record"
)

// Mode is how the detail view was entered.
type Mode string

const (
	// ModeNew registers a subdomain that has no records yet.
	ModeNew Mode = "new"
	// ModeEdit loads the existing records first.
	ModeEdit Mode = "edit"
)

// ParseMode maps a query value onto a Mode, ModeNew for anything unknown.
func ParseMode(s string) Mode {
	if Mode(s) == ModeEdit {
		return ModeEdit
	}

	return ModeNew
}

// Selection is the subdomain and zone the detail view works on.
type Selection struct {
	SubDomain string
	Zone      string
}

// Empty reports whether part of the selection is missing.
func (s Selection) Empty() bool {
	return strings.TrimSpace(s.SubDomain) == "" || strings.TrimSpace(s.Zone) == ""
}

// FullDomain joins subdomain and zone.
func (s Selection) FullDomain() string {
	return record.FullDomain(s.SubDomain, s.Zone)
}

// Detail is the state of the record editor.
type Detail struct {
	Selection
	Mode    Mode
	Records record.Map

	// Type is the selected record type, Value its input.
	Type        string
	Value       string
	Placeholder string
	// Warning is a non-blocking remark on Value.
	Warning string
}

// OpenDetail enters the editor for sel. In edit mode the records of the full
// domain are fetched; a failure other than 401 and 403 leaves the editor
// empty as in new mode.
func (c *Controller) OpenDetail(ctx context.Context, sel Selection, mode Mode) (Detail, Effect, error) {
	if sel.Empty() {
		return Detail{}, Effect{Notice: ErrNoSelection.Error()}, ErrNoSelection
	}

	d := Detail{Selection: sel, Mode: mode, Records: record.Map{}}

	if mode != ModeEdit {
		return d, Effect{}, nil
	}

	res, err := c.api.Records(ctx, sel.FullDomain())
	if err != nil {
		return d, Effect{Notice: MsgTransport}, errors.Wrap(err, "open detail")
	}

	switch res.Status {
	case backend.StatusOK:
		entries := make([]record.Entry, 0, len(res.Value))
		for _, r := range res.Value {
			entries = append(entries, record.Entry{Type: r.Type, Content: r.Content})
		}

		d.Records = record.BuildMap(entries)
	case backend.StatusUnauthorized:
		return d, Effect{Notice: MsgLoginRequired, Redirect: ViewAuth, Next: ViewDomains}, nil
	case backend.StatusForbidden:
		return d, Effect{Notice: MsgDetailForbidden, Redirect: ViewDomains}, nil
	default:
		log.Debug().
			Str("domain", sel.FullDomain()).
			Int("status", res.Code).
			Msg("records unavailable, editing as new")
	}

	return d, Effect{}, nil
}

// SelectType switches the editor to recordType. The value is taken from the
// loaded records, or cleared when there is none of that type.
func (d Detail) SelectType(recordType string) Detail {
	d.Type = recordType
	d.Placeholder = record.Placeholder(recordType)

	return d.WithValue(d.Records.Lookup(recordType))
}

// WithValue sets the input and its warning.
func (d Detail) WithValue(value string) Detail {
	d.Value = value
	d.Warning = ""

	if err := record.Check(d.Type, value); err != nil {
		d.Warning = err.Error()
	}

	return d
}

// DefaultType is the type the editor opens with: the first loaded record, or A.
func (d Detail) DefaultType() string {
	if entries := d.Records.Sorted(); len(entries) > 0 {
		return entries[0].Type
	}

	return record.TypeA
}

// Submission is the record form.
type Submission struct {
	SubDomain string `form:"subDomain" json:"subDomain" validate:"required"`
	Zone      string `form:"zone" json:"zone" validate:"required"`
	Type      string `form:"type" json:"type" validate:"required"`
	Content   string `form:"content" json:"content" validate:"required"`
}

// Normalize trims every field.
func (s Submission) Normalize() Submission {
	return Submission{
		SubDomain: strings.TrimSpace(s.SubDomain),
		Zone:      strings.TrimSpace(s.Zone),
		Type:      strings.TrimSpace(s.Type),
		Content:   strings.TrimSpace(s.Content),
	}
}

// Submit stores one record. All four fields are required; a missing one is
// reported without calling the backend. A complete submission is posted
// exactly once and never retried.
func (c *Controller) Submit(ctx context.Context, in Submission) (Effect, error) {
	in = in.Normalize()

	if err := c.validate(in); err != nil {
		return Effect{Notice: err.Error()}, err
	}

	res, err := c.api.AddRecord(ctx, backend.AddRecordRequest{
		SubDomain: in.SubDomain,
		Zone:      in.Zone,
		Type:      in.Type,
		Content:   in.Content,
	})
	if err != nil {
		return Effect{Notice: MsgTransport}, errors.Wrap(err, "submit record")
	}

	if res.OK() {
		return Effect{Notice: MsgSubmitOK, Redirect: ViewDomains, Done: true}, nil
	}

	notice := res.Message
	if notice == "" {
		notice = MsgSubmitFailed
	}

	log.Info().
		Str("domain", record.FullDomain(in.SubDomain, in.Zone)).
		Str("type", in.Type).
		Int("status", res.Code).
		Msg("record submission refused")

	return Effect{Notice: notice}, nil
}

func (c *Controller) validate(in Submission) error {
	err := c.validator.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate submission")
	}

	// zone and subdomain come first so a missing selection wins over a missing value
	for _, field := range []string{"SubDomain", "Zone", "Type", "Content"} {
		for _, fe := range verrs {
			if fe.Field() == field {
				return missingField(field, in.Type)
			}
		}
	}

	return missingField(verrs[0].Field(), in.Type)
}
