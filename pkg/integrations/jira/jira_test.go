package jira

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/matzehuels/pkgutils/pkg/errors"
)

type mapStore map[string]string

func (m mapStore) Get(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", stderrors.New("missing key " + key)
	}
	return v, nil
}

var goodCreds = mapStore{
	EmailKey: "dev@example.com",
	TokenKey: "secret",
}

func reset(t *testing.T) {
	t.Helper()
	shared.mu.Lock()
	shared.client = nil
	shared.mu.Unlock()
	t.Cleanup(func() {
		shared.mu.Lock()
		shared.client = nil
		shared.mu.Unlock()
	})
}

// jiraServer answers /rest/api/2/myself for dev@example.com:secret only.
func jiraServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/myself" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "dev@example.com" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accountId": "abc123", "emailAddress": "dev@example.com", "displayName": "Dev"}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestNew(t *testing.T) {
	reset(t)
	server, calls := jiraServer(t)

	api, err := New(context.Background(), goodCreds, WithHost(server.URL))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if api.client == nil {
		t.Fatal("New() returned a handle without a client")
	}

	again, err := New(context.Background(), nil, WithHost("http://unused.invalid"))
	if err != nil {
		t.Fatalf("second New() error: %v", err)
	}
	if again.client != api.client {
		t.Error("second New() should reuse the shared client")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("credentials verified %d times, want 1", n)
	}
}

func TestNewConcurrent(t *testing.T) {
	reset(t)
	server, calls := jiraServer(t)

	var wg sync.WaitGroup
	clients := make([]*gojira.Client, 8)
	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			api, err := New(context.Background(), goodCreds, WithHost(server.URL))
			if err != nil {
				t.Errorf("New() error: %v", err)
				return
			}
			clients[i] = api.client
		}()
	}
	wg.Wait()

	for _, c := range clients[1:] {
		if c != clients[0] {
			t.Fatal("concurrent New() calls produced different clients")
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("credentials verified %d times, want 1", n)
	}
}

func TestNewFailures(t *testing.T) {
	server, _ := jiraServer(t)

	tests := []struct {
		name  string
		store CredentialStore
		host  string
	}{
		{"nil store", nil, server.URL},
		{"missing email", mapStore{TokenKey: "secret"}, server.URL},
		{"missing token", mapStore{EmailKey: "dev@example.com"}, server.URL},
		{"wrong token", mapStore{EmailKey: "dev@example.com", TokenKey: "nope"}, server.URL},
		{"bad host", goodCreds, "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset(t)
			api, err := New(context.Background(), tt.store, WithHost(tt.host))
			if api != nil {
				t.Error("New() returned a handle alongside an error")
			}
			if !errors.Is(err, errors.ErrCodeAuth) {
				t.Errorf("New() code = %v, want %v (%v)", errors.GetCode(err), errors.ErrCodeAuth, err)
			}
			if shared.client != nil {
				t.Error("failed New() left a shared client behind")
			}
		})
	}
}

func TestNewRetryAfterFailure(t *testing.T) {
	reset(t)
	server, calls := jiraServer(t)

	bad := mapStore{EmailKey: "dev@example.com", TokenKey: "wrong"}
	if _, err := New(context.Background(), bad, WithHost(server.URL)); err == nil {
		t.Fatal("New() with wrong token should fail")
	}
	if _, err := New(context.Background(), goodCreds, WithHost(server.URL)); err != nil {
		t.Fatalf("New() retry error: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("credentials verified %d times, want 2", n)
	}
}

func TestAccess(t *testing.T) {
	reset(t)
	server, _ := jiraServer(t)
	api, err := New(context.Background(), goodCreds, WithHost(server.URL))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		var got *gojira.Client
		err := api.Access(func(c *gojira.Client) error {
			got = c
			return nil
		})
		if err != nil {
			t.Fatalf("Access() error: %v", err)
		}
		if got != api.client {
			t.Error("Access() did not pass the shared client")
		}
	})

	t.Run("returned error", func(t *testing.T) {
		cause := stderrors.New("issue not found")
		err := api.Access(func(*gojira.Client) error { return cause })
		if !errors.Is(err, errors.ErrCodeCallback) {
			t.Errorf("Access() code = %v, want %v", errors.GetCode(err), errors.ErrCodeCallback)
		}
		if !stderrors.Is(err, cause) {
			t.Error("Access() should keep the callback error as cause")
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := api.Access(func(*gojira.Client) error { panic("boom") })
		if !errors.Is(err, errors.ErrCodeCallback) {
			t.Errorf("Access() code = %v, want %v", errors.GetCode(err), errors.ErrCodeCallback)
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("Access() error %q should mention the panic", err)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	reset(t)
	server, _ := jiraServer(t)
	api, err := New(context.Background(), goodCreds, WithHost(server.URL))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	user, err := api.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error: %v", err)
	}
	if user.AccountID != "abc123" || user.EmailAddress != "dev@example.com" {
		t.Errorf("CurrentUser() = %+v", user)
	}
}
