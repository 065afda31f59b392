package rfctime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Format string for date-time in RFC3339, disallowing Z as time-offset.
//
// Use it to stringify time.Time forcing timezone offset not to use "Z".
const RFC3339DateTimeFormat string = "2006-01-02T15:04:05.999-07:00"

// Format string for date-time in RFC3339, allowing Z as time-offset.
const RFC3339DateTimeFormatZ string = time.RFC3339Nano

// Layouts accepted from the server.
//
// The server writes naive datetimes (no offset) for most of its records,
// and sometimes separates date and time by a space.
const (
	dateNano       = "2006-01-02T15:04:05.999999999"
	dateNanoSpace  = "2006-01-02 15:04:05.999999999"
	dateNanoZSpace = "2006-01-02 15:04:05.999999999Z07:00"

	dateSec      = "2006-01-02T15:04:05"
	dateSecSpace = "2006-01-02 15:04:05"

	dateMin  = "2006-01-02T15:04"
	dateMinZ = "2006-01-02T15:04Z07:00"

	dateOnly = "2006-01-02"
)

// date-time in https://www.ietf.org/rfc/rfc3339.txt .
//
// Unmarshalling also accepts timestamps without offset. They are read as UTC.
type RFC3339 time.Time

func (rfctime RFC3339) Time() time.Time {
	return time.Time(rfctime)
}

func (rfctime RFC3339) Equal(other RFC3339) bool {
	return rfctime.Time().Equal(other.Time())
}

// get string expression, formatted by RFC3339DateTimeFormat.
func (t RFC3339) String() string {
	return time.Time(t).Format(RFC3339DateTimeFormat)
}

// Parse strict RFC3339 date-time.
func ParseRFC3339DateTime(s string) (RFC3339, error) {
	t, err := time.Parse(RFC3339DateTimeFormatZ, s)
	if err != nil {
		return *new(RFC3339), err
	}
	return RFC3339(t), nil
}

// Parse date-time written with or without offset.
//
// Timestamps without offset are interpreted in UTC, since the server stores
// them as UTC.
func ParseServerTime(s string) (RFC3339, error) {
	for _, format := range []string{RFC3339DateTimeFormatZ, dateNanoZSpace, dateMinZ} {
		if t, err := time.Parse(format, s); err == nil {
			return RFC3339(t), nil
		}
	}

	for _, format := range []string{
		dateNano, dateNanoSpace, dateSec, dateSecSpace, dateMin, dateOnly,
	} {
		if t, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return RFC3339(t), nil
		}
	}

	return RFC3339{}, fmt.Errorf("failed to parse %s as date-time", s)
}

// implement encoding/json.Marshaller
func (t RFC3339) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, t)), nil
}

// implement encoding/json.Unmarshaller
func (t *RFC3339) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ret, err := ParseServerTime(s)
	if err != nil {
		return err
	}

	*t = ret
	return nil
}
