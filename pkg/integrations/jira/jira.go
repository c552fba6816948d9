package jira

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pkgutils/pkg/errors"
	"github.com/matzehuels/pkgutils/pkg/integrations"
)

// Host is the JIRA instance every API handle talks to.
const Host = "https://anaconda.atlassian.net/"

// Credential keys looked up in the [CredentialStore].
const (
	EmailKey = "user_info.email"
	TokenKey = "token.jira"
)

// CredentialStore resolves dotted configuration keys to secrets.
// The TOML store in pkg/config satisfies it.
type CredentialStore interface {
	Get(key string) (string, error)
}

// shared is the process-wide authenticated client. It stays nil until a
// construction succeeds.
var shared struct {
	mu     sync.Mutex
	client *gojira.Client
}

// API is a handle on the shared client.
type API struct {
	client *gojira.Client
	logger *log.Logger
}

type options struct {
	host      string
	transport http.RoundTripper
	logger    *log.Logger
}

// Option configures New.
type Option func(*options)

// WithHost points the client at a different JIRA base URL.
func WithHost(host string) Option {
	return func(o *options) { o.host = host }
}

// WithTransport sets the round tripper beneath basic auth.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithLogger sets the logger for connection and callback tracing.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a handle on the shared JIRA client, creating and verifying it
// on first use. Construction reads [EmailKey] and [TokenKey] from store and
// checks them with one request for the current user.
//
// Only the call that creates the client uses store and opts; later calls get
// the existing client. If construction fails nothing is kept, so the next
// call starts over. All failures have code [errors.ErrCodeAuth].
func New(ctx context.Context, store CredentialStore, opts ...Option) (*API, error) {
	o := options{host: Host, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	shared.mu.Lock()
	defer shared.mu.Unlock()

	if shared.client == nil {
		client, err := connect(ctx, store, o)
		if err != nil {
			return nil, err
		}
		shared.client = client
	}
	return &API{client: shared.client, logger: o.logger}, nil
}

func connect(ctx context.Context, store CredentialStore, o options) (*gojira.Client, error) {
	if store == nil {
		return nil, errors.New(errors.ErrCodeAuth, "no credential store configured")
	}
	email, err := store.Get(EmailKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuth, err, "failed to read JIRA user")
	}
	token, err := store.Get(TokenKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuth, err, "failed to read JIRA token")
	}

	tp := &gojira.BasicAuthTransport{
		Username:  email,
		Password:  token,
		Transport: o.transport,
	}
	httpClient := &http.Client{Transport: tp, Timeout: integrations.HTTPTimeout}

	client, err := gojira.NewClient(httpClient, o.host)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuth, err, "failed to create JIRA client")
	}

	o.logger.Debug("Verifying JIRA credentials", "host", o.host, "user", email)
	user, _, err := client.User.GetSelfWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuth, err, "failed to authenticate with JIRA")
	}
	o.logger.Debug("Connected to JIRA", "account", user.AccountID)
	return client, nil
}

// Access runs fn with the shared client. An error returned by fn, or a
// panic inside it, is reported as [errors.ErrCodeCallback].
func (a *API) Access(fn func(*gojira.Client) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("JIRA callback panicked", "panic", r)
			err = errors.Wrap(errors.ErrCodeCallback, fmt.Errorf("panic: %v", r), "JIRA callback failed")
		}
	}()

	if err := fn(a.client); err != nil {
		return errors.Wrap(errors.ErrCodeCallback, err, "JIRA callback failed")
	}
	return nil
}

// CurrentUser returns the account the shared client is authenticated as.
func (a *API) CurrentUser(ctx context.Context) (*gojira.User, error) {
	var user *gojira.User
	err := a.Access(func(c *gojira.Client) error {
		u, _, err := c.User.GetSelfWithContext(ctx)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
