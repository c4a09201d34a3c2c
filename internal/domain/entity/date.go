package entity

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Date is a calendar day stored in a date column. It is held as midnight UTC
// of the day the client wrote, so the value echoed on write is the value read
// back. JSON input may be "2006-01-02" or an RFC 3339 timestamp; output is
// always an RFC 3339 instant at midnight UTC.
type Date datatypes.Date

func NewDate(y int, m time.Month, d int) Date {
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// dayOf keeps the calendar day as written, dropping the clock and the offset.
func dayOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) String() string { return time.Time(d).UTC().Format(dateLayout) }

func (Date) GormDataType() string { return "date" }

func (d *Date) Scan(value interface{}) error {
	var raw datatypes.Date
	if err := raw.Scan(value); err != nil {
		return err
	}
	*d = dayOf(time.Time(raw).UTC())
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return time.Time(dayOf(time.Time(d).UTC())), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).UTC().Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date: expected a string, got %s", b)
	}
	s := string(b[1 : len(b)-1])
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = dayOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("date: %q is neither %s nor RFC 3339", s, dateLayout)
	}
	*d = dayOf(t)
	return nil
}
