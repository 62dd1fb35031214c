package shared

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Int accepts a JSON number or a numeric string. Null and empty strings are
// treated as absent. Unparseable input is remembered so the validator can
// report it against the field.
type Int struct {
	Value int64
	Set   bool
	bad   bool
}

func (n *Int) UnmarshalJSON(data []byte) error {
	*n = Int{}
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.bad = true
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		n.Value, n.Set = v, true
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		n.Value, n.Set = int64(f), true
		return nil
	}
	n.bad = true
	return nil
}

func (n Int) Invalid() bool {
	return n.bad
}

func (n Int) Ptr() *int64 {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

func (n Int) IntPtr() *int {
	if !n.Set {
		return nil
	}
	v := int(n.Value)
	return &v
}

func NewInt(v int64) Int {
	return Int{Value: v, Set: true}
}

// Date accepts YYYY-MM-DD or RFC3339 strings. Null and empty strings are
// treated as absent.
type Date struct {
	Time time.Time
	Set  bool
	bad  bool
}

func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.bad = true
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		d.bad = true
		return nil
	}
	d.Time, d.Set = parsed, true
	return nil
}

func (d Date) Invalid() bool {
	return d.bad
}

func (d Date) Ptr() *time.Time {
	if !d.Set {
		return nil
	}
	t := d.Time
	return &t
}

// TrimmedPtr returns nil for nil input and a trimmed copy otherwise.
func TrimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// OptionalText maps blank strings to nil.
func OptionalText(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
