package backend

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format of expiration dates.
const DateLayout = "2006-01-02"

// Date is a calendar date sent by the backend either as "2006-01-02"
// or as an RFC 3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "date must be a string")
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return errors.Wrapf(err, "unsupported date %q", s)
	}

	d.Time = t

	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(DateLayout))
}

// String returns the date in DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}
