// Package rfctime carries timestamps over JSON in RFC 3339 form.
package rfctime

import (
	"bytes"
	"encoding/json"
	"time"
)

// RFC3339 is a time.Time which marshals to an RFC 3339 date-time
// string with an explicit numeric offset, never "Z". Parsing accepts
// both forms.
type RFC3339 time.Time

// RFC3339DateTimeFormat renders the offset numerically, as registries
// we talk to expect.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05.999-07:00"

// ParseRFC3339DateTime parses an RFC 3339 date-time, "Z" allowed.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return RFC3339{}, err
	}
	return RFC3339(t), nil
}

func (t RFC3339) Time() time.Time {
	return time.Time(t)
}

// Equal compares instants, ignoring the timezone of the expression.
func (t *RFC3339) Equal(other *RFC3339) bool {
	if (t == nil) != (other == nil) {
		return false
	}
	return t == nil || t.Time().Equal(other.Time())
}

func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

func (t RFC3339) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRFC3339DateTime(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
