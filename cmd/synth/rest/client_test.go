package rest_test

import (
	"context"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	sprof "github.com/synthgen/synthctl/cmd/synth/config/profiles"
	cerr "github.com/synthgen/synthctl/cmd/synth/errors"
	"github.com/synthgen/synthctl/cmd/synth/rest"
	"github.com/synthgen/synthctl/pkg/try"
)

func TestNewClient(t *testing.T) {
	t.Run("invalid profile is refused", func(t *testing.T) {
		_, err := rest.NewClient(&sprof.SynthProfile{ApiRoot: "not url"})
		if !errors.Is(err, sprof.ErrProfileInvalid) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("it trusts CA in profile", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		ca := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{
			Type: "CERTIFICATE", Bytes: server.Certificate().Raw,
		}))

		testee := try.To(rest.NewClient(&sprof.SynthProfile{
			ApiRoot: server.URL, Cert: sprof.Cert{CA: ca},
		})).OrFatal(t)

		if _, err := testee.ListRequests(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("without CA, TLS server is not trusted", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		testee := try.To(rest.NewClient(&sprof.SynthProfile{ApiRoot: server.URL})).OrFatal(t)
		_, err := testee.ListRequests(context.Background())
		if !errors.Is(err, cerr.ErrNetwork) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSend(t *testing.T) {
	t.Run("it sends bearer token and request id", func(t *testing.T) {
		var got *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 1, "user_id": 2, "full_name": "Alice"}`))
		}))
		defer server.Close()

		testee := try.To(rest.NewClient(
			&sprof.SynthProfile{ApiRoot: server.URL + "/"}, rest.WithToken("tkn"),
		)).OrFatal(t)

		prof := try.To(testee.GetProfile(context.Background())).OrFatal(t)
		if prof.FullName != "Alice" {
			t.Errorf("profile: %+v", prof)
		}

		if got.URL.Path != "/auth/profile" {
			t.Errorf("path: %s", got.URL.Path)
		}
		if a := got.Header.Get("Authorization"); a != "Bearer tkn" {
			t.Errorf("Authorization: %s", a)
		}
		if _, err := uuid.Parse(got.Header.Get("X-Request-Id")); err != nil {
			t.Errorf("X-Request-Id is not uuid: %q", got.Header.Get("X-Request-Id"))
		}
	})

	t.Run("it sends no Authorization without token", func(t *testing.T) {
		var got *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		testee := try.To(rest.NewClient(&sprof.SynthProfile{ApiRoot: server.URL})).OrFatal(t)
		try.To(testee.GetProfile(context.Background())).OrFatal(t)
		if _, ok := got.Header["Authorization"]; ok {
			t.Errorf("Authorization is sent: %s", got.Header.Get("Authorization"))
		}
	})

	t.Run("it does not send token to other hosts", func(t *testing.T) {
		var got *http.Request
		storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			w.Write([]byte("a,b\n1,2\n"))
		}))
		defer storage.Close()

		testee := try.To(rest.NewClient(
			&sprof.SynthProfile{ApiRoot: "http://api.invalid"}, rest.WithToken("tkn"),
		)).OrFatal(t)

		var content string
		err := testee.Fetch(context.Background(), storage.URL+"/signed/file.csv", func(r io.Reader, _ int64) error {
			b, err := io.ReadAll(r)
			content = string(b)
			return err
		})
		if err != nil {
			t.Fatal(err)
		}
		if content != "a,b\n1,2\n" {
			t.Errorf("content: %q", content)
		}
		if a := got.Header.Get("Authorization"); a != "" {
			t.Errorf("Authorization is sent: %s", a)
		}
	})

	t.Run("token goes only to the api origin and path", func(t *testing.T) {
		var got *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			w.Write([]byte("a,b\n"))
		}))
		defer server.Close()

		theory := func(apiRoot string, target string, sent bool) func(*testing.T) {
			return func(t *testing.T) {
				got = nil
				testee := try.To(rest.NewClient(
					&sprof.SynthProfile{ApiRoot: apiRoot}, rest.WithToken("tkn"),
				)).OrFatal(t)

				err := testee.Fetch(context.Background(), target, func(r io.Reader, _ int64) error {
					_, err := io.ReadAll(r)
					return err
				})
				if err != nil {
					t.Fatal(err)
				}
				if got == nil {
					t.Fatal("server is not requested")
				}
				if a := got.Header.Get("Authorization"); (a == "Bearer tkn") != sent {
					t.Errorf("Authorization: %q (should be sent? %v)", a, sent)
				}
			}
		}

		// api root is a string prefix of the server url, with another port.
		lookalike := server.URL[:len(server.URL)-1]
		t.Run("same origin, under api path", theory(server.URL+"/api", server.URL+"/api/files/1.csv", true))
		t.Run("same origin, api path is root", theory(server.URL, server.URL+"/files/1.csv", true))
		t.Run("port looks alike", theory(lookalike, server.URL+"/file.csv", false))
		t.Run("path looks alike", theory(server.URL+"/api", server.URL+"/api-storage/file.csv", false))
	})

	t.Run("401 calls the unauthorized handler for each response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Could not validate credentials"}`))
		}))
		defer server.Close()

		called := atomic.Int32{}
		testee := try.To(rest.NewClient(
			&sprof.SynthProfile{ApiRoot: server.URL},
			rest.WithToken("expired"),
			rest.WithUnauthorized(func() { called.Add(1) }),
		)).OrFatal(t)

		_, err1 := testee.ListRequests(context.Background())
		_, err2 := testee.ListDatasets(context.Background())
		for _, err := range []error{err1, err2} {
			if !errors.Is(err, cerr.ErrUnauthorized) {
				t.Errorf("unexpected error: %v", err)
			}
			if m := cerr.UserMessage(err); m != cerr.MessageUnauthorized {
				t.Errorf("message: %s", m)
			}
		}
		if c := called.Load(); c != 2 {
			t.Errorf("handler calls: (actual, expected) = (%d, %d)", c, 2)
		}
	})

	t.Run("no response is NETWORK_ERROR", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		api := server.URL
		server.Close()

		testee := try.To(rest.NewClient(&sprof.SynthProfile{ApiRoot: api})).OrFatal(t)
		_, err := testee.GetRequest(context.Background(), 1)
		if !errors.Is(err, cerr.ErrNetwork) {
			t.Errorf("unexpected error: %v", err)
		}
		if ae := cerr.Classify(err); ae.Code != cerr.NetworkError {
			t.Errorf("code: %s", ae.Code)
		}
	})
}

func TestErrorResponse(t *testing.T) {
	type When struct {
		status int
		body   string
	}
	type Then struct {
		code    cerr.Code
		message string
		summary string
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(when.status)
				w.Write([]byte(when.body))
			}))
			defer server.Close()

			testee := try.To(rest.NewClient(&sprof.SynthProfile{ApiRoot: server.URL})).OrFatal(t)
			_, err := testee.GetRequest(context.Background(), 42)
			if err == nil {
				t.Fatal("no error")
			}

			ae := cerr.Classify(err)
			if ae.Code != then.code {
				t.Errorf("code: (actual, expected) = (%s, %s)", ae.Code, then.code)
			}
			if ae.Message != then.message {
				t.Errorf("message: (actual, expected) = (%q, %q)", ae.Message, then.message)
			}

			var cui cerr.CUIError
			if !errors.As(err, &cui) {
				t.Fatalf("not CUIError: %T", err)
			}
			if cui.Summary() != then.summary {
				t.Errorf("summary: (actual, expected) = (%q, %q)", cui.Summary(), then.summary)
			}
			if !strings.Contains(err.Error(), then.message) {
				t.Errorf("message is not in error: %q", err.Error())
			}
		}
	}

	t.Run("400", theory(
		When{status: 400, body: `{"detail": "Request is not approved"}`},
		Then{code: cerr.BadRequest, message: "Request is not approved", summary: "request:42 is not found"},
	))
	t.Run("403", theory(
		When{status: 403, body: `{"detail": "Not enough permissions"}`},
		Then{code: cerr.Forbidden, message: cerr.MessageForbidden, summary: "request:42 is not found"},
	))
	t.Run("404", theory(
		When{status: 404, body: `{"detail": "Request not found"}`},
		Then{code: cerr.NotFound, message: cerr.MessageNotFound, summary: "request:42 is not found"},
	))
	t.Run("422", theory(
		When{status: 422, body: `{"detail": [{"loc": ["path", "request_id"], "msg": "value is not a valid integer", "type": "type_error.integer"}]}`},
		Then{code: cerr.ValidationError, message: "path.request_id: value is not a valid integer", summary: "request:42 is not found"},
	))
	t.Run("500", theory(
		When{status: 500, body: `Internal Server Error`},
		Then{code: cerr.ServerError, message: cerr.MessageServerError, summary: "server error on getting request"},
	))
	t.Run("503", theory(
		When{status: 503, body: ``},
		Then{code: cerr.UnknownServerError, message: "unexpected server error (status 503)", summary: "server error on getting request"},
	))
}
