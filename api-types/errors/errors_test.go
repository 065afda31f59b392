package errors_test

import (
	"encoding/json"
	"testing"

	apierr "github.com/synthgen/synthctl/api-types/errors"
)

func TestErrorResponse_Unmarshal(t *testing.T) {
	type Then struct {
		text  string
		empty bool
	}

	theory := func(body string, then Then) func(*testing.T) {
		return func(t *testing.T) {
			var er apierr.ErrorResponse
			if err := json.Unmarshal([]byte(body), &er); err != nil {
				t.Fatal(err)
			}
			if got := er.Detail.String(); got != then.text {
				t.Errorf("detail: (actual, expected) = (%q, %q)", got, then.text)
			}
			if er.Detail.Empty() != then.empty {
				t.Errorf("empty: (actual, expected) = (%v, %v)", er.Detail.Empty(), then.empty)
			}
		}
	}

	t.Run("plain message", theory(
		`{"detail": "Dataset not found"}`,
		Then{text: "Dataset not found"},
	))
	t.Run("validation list", theory(
		`{"detail": [
			{"loc": ["body", "sample_size"], "msg": "ensure this value is greater than or equal to 100", "type": "value_error"},
			{"loc": ["query", 0], "msg": "field required", "type": "value_error.missing"}
		]}`,
		Then{text: "body.sample_size: ensure this value is greater than or equal to 100; query.0: field required"},
	))
	t.Run("no detail", theory(
		`{}`,
		Then{text: "", empty: true},
	))
	t.Run("object detail is kept raw", theory(
		`{"detail": {"reason": "x"}}`,
		Then{text: `{"reason": "x"}`},
	))
}
