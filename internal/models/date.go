package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date, which
// is what HTML date inputs submit. Plain dates are midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// OptionalDate tells an absent JSON key apart from an explicit null.
// Set is true whenever the key was present; Time is nil for null or "".
type OptionalDate struct {
	Set  bool
	Time *time.Time
}

func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	if bytes.Equal(data, []byte("null")) {
		d.Time = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	if s == "" {
		d.Time = nil
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = &t
	return nil
}

func (d OptionalDate) MarshalJSON() ([]byte, error) {
	if d.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}
