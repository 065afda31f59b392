package rest_test

import (
	"testing"

	"github.com/synthgen/synthctl/cmd/synth/rest"
)

func TestMessageFor(t *testing.T) {
	messageFor := rest.MessageFor{
		rest.Status4xx: "request:3 is not found",
	}

	theory := func(status int, expected string) func(*testing.T) {
		return func(t *testing.T) {
			if actual := messageFor.Summary(status); actual != expected {
				t.Errorf("(actual, expected) = (%q, %q)", actual, expected)
			}
		}
	}

	t.Run("given class", theory(404, "request:3 is not found"))
	t.Run("missing 5xx", theory(502, "server failed to process the request (status 502)"))
	t.Run("missing 3xx", theory(304, "unexpected response from the server (status 304)"))
	t.Run("empty table", func(t *testing.T) {
		if actual := (rest.MessageFor{}).Summary(409); actual != "request is refused by the server (status 409)" {
			t.Errorf("actual: %q", actual)
		}
	})
}

func TestClassOf(t *testing.T) {
	for status, expected := range map[int]rest.StatusClass{
		200: rest.Status2xx, 204: rest.Status2xx,
		400: rest.Status4xx, 422: rest.Status4xx,
		500: rest.Status5xx, 503: rest.Status5xx,
	} {
		if actual := rest.ClassOf(status); actual != expected {
			t.Errorf("%d: (actual, expected) = (%d, %d)", status, actual, expected)
		}
	}
}
