package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the zone-less timestamp layout the backend emits.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time decodes backend timestamps. The backend has no zone information, so
// values are interpreted as local time. A null or empty value is the zero
// Time. Numeric arrays ([2024,5,1,10,30,0]) are accepted as well.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", b, err)
		}
		return t.fromParts(parts)
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t *Time) fromParts(p []int) error {
	if len(p) < 3 {
		return fmt.Errorf("invalid timestamp parts %v", p)
	}
	v := make([]int, 7)
	copy(v, p)
	t.Time = time.Date(v[0], time.Month(v[1]), v[2], v[3], v[4], v[5], v[6], time.Local)
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(LocalDateTimeLayout))
}

// String renders the timestamp the way views show it, or "-" when unset.
func (t Time) String() string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
