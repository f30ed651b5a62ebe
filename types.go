package risika

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when decoding a [Date].
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date supports unmarshalling dates returned by the Risika API.
// A null or empty date decodes to the zero value. Values in an unknown
// format are kept in Raw and still count as set.
type Date struct {
	time.Time
	Raw string
}

// IsZero reports whether no date was sent.
func (d Date) IsZero() bool {
	return d.Time.IsZero() && d.Raw == ""
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	if string(data) == "null" || string(data) == `""` {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.Raw = string(data)
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	d.Raw = s

	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (d Date) MarshalJSON() ([]byte, error) {
	switch {
	case !d.Time.IsZero():
		return d.Time.MarshalJSON()
	case d.Raw != "":
		return json.Marshal(d.Raw)
	default:
		return []byte("null"), nil
	}
}

// ID is an identifier the API sends either as a string or as a number.
type ID string

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())

	return nil
}

// Percent is an optional percentage. Valid is false when the API sent null
// or a value that is not a number.
type Percent struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// Numbers and numeric strings (optionally suffixed with "%") are accepted.
func (p *Percent) UnmarshalJSON(data []byte) error {
	*p = Percent{}
	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%")), 64)
		if err != nil {
			return nil
		}
		*p = Percent{Value: v, Valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode percent: %w", err)
	}
	*p = Percent{Value: v, Valid: true}

	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(p.Value)
}

// Document is a JSON object whose fields are decoded on demand.
type Document map[string]json.RawMessage

// Field decodes the named field into v.
// It returns [ErrMissingField] when the field is absent or null.
func (d Document) Field(name string, v any) error {
	raw, ok := d[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode field %s: %w", name, err)
	}

	return nil
}
