// Package month provides the calendar-month value type used for slot scheduling
// and group activity windows. Months always render zero-padded ("2024-06") so the
// string form stays usable as a stable map key.
package month

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01"

type Month struct {
	Year int
	Mon  time.Month
}

func Of(year int, mon time.Month) Month {
	return Month{Year: year, Mon: mon}
}

func FromTime(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

func Parse(value string) (Month, error) {
	parsed, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", value, err)
	}
	return FromTime(parsed), nil
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Mon == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// Compare returns -1, 0 or 1 ordering m against other chronologically.
func (m Month) Compare(other Month) int {
	a := m.Year*12 + int(m.Mon)
	b := other.Year*12 + int(other.Mon)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (m Month) Before(other Month) bool {
	return m.Compare(other) < 0
}

func (m Month) After(other Month) bool {
	return m.Compare(other) > 0
}

func (m Month) Next() Month {
	return m.AddMonths(1)
}

func (m Month) AddMonths(n int) Month {
	total := m.Year*12 + int(m.Mon) - 1 + n
	return Month{Year: total / 12, Mon: time.Month(total%12 + 1)}
}

// FirstDay returns midnight UTC on the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*m = Month{}
		return nil
	}
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Month) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return m.String(), nil
}

func (m *Month) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*m = Month{}
		return nil
	case string:
		parsed, err := Parse(value)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(value))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case time.Time:
		*m = FromTime(value)
		return nil
	default:
		return fmt.Errorf("scan month: unsupported type %T", src)
	}
}
