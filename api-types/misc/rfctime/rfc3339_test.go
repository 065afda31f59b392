package rfctime_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/synthgen/synthctl/api-types/misc/rfctime"
)

func TestRFC3339(t *testing.T) {
	t.Run("it should fail to parse when passed wrong format", func(t *testing.T) {
		s := "2021/10/22 12:34:56 +07:00"
		if _, err := rfctime.ParseRFC3339DateTime(s); err == nil {
			t.Error("no error unexpectedly")
		}
		if _, err := rfctime.ParseServerTime(s); err == nil {
			t.Error("no error unexpectedly")
		}
	})

	t.Run("it can be marshalled into json", func(t *testing.T) {
		s := "2021-10-22T12:34:56+07:00"
		testee, err := rfctime.ParseRFC3339DateTime(s)
		if err != nil {
			t.Fatal(err)
		}

		actual, err := json.Marshal(testee)
		if err != nil {
			t.Fatal(err)
		}
		expected := fmt.Sprintf(`"%s"`, s)

		if string(actual) != expected {
			t.Errorf("unmatch: json marshall: (actual, expected) = (%s, %s)", actual, expected)
		}
	})

	t.Run("it do nothing when json.Unmarshall is passed null", func(t *testing.T) {
		expected := rfctime.RFC3339(time.Date(
			2022, 10, 11, 12, 13, 14, 0, time.UTC,
		))
		actual := expected
		if err := json.Unmarshal([]byte("null"), &actual); err != nil {
			t.Fatal(err)
		}

		if !actual.Equal(expected) {
			t.Errorf("updated by unmarshalling null, unexpectedly: %s", actual)
		}
	})
}

func TestParseServerTime(t *testing.T) {
	type When struct {
		expression string
	}
	type Then struct {
		expected time.Time
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			testee, err := rfctime.ParseServerTime(when.expression)
			if err != nil {
				t.Fatal(err)
			}
			if !testee.Time().Equal(then.expected) {
				t.Errorf("unmatch: (actual, expected) = (%s, %s)", testee, then.expected)
			}

			var fromJson rfctime.RFC3339
			if err := json.Unmarshal([]byte(`"`+when.expression+`"`), &fromJson); err != nil {
				t.Fatal(err)
			}
			if !fromJson.Time().Equal(then.expected) {
				t.Errorf("unmatch (json): (actual, expected) = (%s, %s)", fromJson, then.expected)
			}
		}
	}

	plus7 := time.FixedZone("+07:00", int((7 * time.Hour).Seconds()))

	t.Run("with offset", theory(
		When{expression: "2024-04-22T12:34:56.987654321+07:00"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 987654321, plus7)},
	))
	t.Run("with Z", theory(
		When{expression: "2024-04-22T12:34:56Z"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 0, time.UTC)},
	))
	t.Run("space separated with offset", theory(
		When{expression: "2024-04-22 12:34:56.5+07:00"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 500000000, plus7)},
	))
	t.Run("naive microseconds are UTC", theory(
		When{expression: "2024-04-22T12:34:56.123456"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 123456000, time.UTC)},
	))
	t.Run("naive seconds are UTC", theory(
		When{expression: "2024-04-22T12:34:56"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 0, time.UTC)},
	))
	t.Run("naive space separated are UTC", theory(
		When{expression: "2024-04-22 12:34:56"},
		Then{expected: time.Date(2024, 4, 22, 12, 34, 56, 0, time.UTC)},
	))
	t.Run("date only", theory(
		When{expression: "2024-04-22"},
		Then{expected: time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC)},
	))
}
