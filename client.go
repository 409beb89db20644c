package ghaudit

import (
	"context"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultProfileCacheTTL is how long a fetched profile is reused.
const DefaultProfileCacheTTL = time.Hour

// Client runs user and license collection against a Provider.
// It serves as the main entry point of the package.
//
// Example usage:
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken("ghp_..."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := ghaudit.NewClient(provider, ghaudit.WithEnterprise("acme"))
//	snapshot, err := client.Collect(ctx)
type Client struct {
	provider Provider

	enterprise     string
	organizations  []string
	pageSize       int
	pacer          Pacer
	concurrency    int
	orgConcurrency int
	maxRetries     int
	retryInterval  time.Duration
	cacheTTL       time.Duration

	logger   *slog.Logger
	clock    func() time.Time
	progress ProgressFunc
}

// NewClient creates a new client with the specified provider.
// Without options, the client paces per-user fetches at DefaultDelay, works
// sequentially, retries retryable errors DefaultMaxRetries times and logs
// nothing.
func NewClient(provider Provider, opts ...Option) *Client {
	c := &Client{
		provider:       provider,
		pageSize:       DefaultPageSize,
		pacer:          NewRatePacer(DefaultDelay),
		concurrency:    1,
		orgConcurrency: 1,
		maxRetries:     DefaultMaxRetries,
		cacheTTL:       DefaultProfileCacheTTL,
		logger:         slog.New(slog.DiscardHandler),
		clock:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect runs one collection and returns the enterprise snapshot.
// A failure to list organizations or members aborts the run; license,
// collaborator and per-user failures are logged and absorbed.
func (c *Client) Collect(ctx context.Context) (*EnterpriseSnapshot, error) {
	if c.provider == nil {
		return nil, newConfigError("provider", "must not be nil")
	}

	return c.aggregator().Run(ctx)
}

// Enumerator returns an enumerator configured like the client's runs.
// This is an escape hatch for collecting a single organization.
func (c *Client) Enumerator() *Enumerator {
	var profiles *ttlcache.Cache[string, *UserData]
	if c.cacheTTL > 0 {
		profiles = ttlcache.New[string, *UserData](
			ttlcache.WithTTL[string, *UserData](c.cacheTTL),
		)
	}

	return &Enumerator{
		provider:    withRetry(c.provider, c.maxRetries, c.retryInterval),
		pacer:       c.pacer,
		pageSize:    c.pageSize,
		concurrency: c.concurrency,
		profiles:    profiles,
		logger:      c.logger,
	}
}

// Provider returns the underlying Provider.
func (c *Client) Provider() Provider {
	return c.provider
}

func (c *Client) aggregator() *Aggregator {
	include := make(map[string]bool, len(c.organizations))
	for _, org := range c.organizations {
		if org != "" {
			include[org] = true
		}
	}

	return &Aggregator{
		provider:       withRetry(c.provider, c.maxRetries, c.retryInterval),
		enumerator:     c.Enumerator(),
		enterprise:     c.enterprise,
		pageSize:       c.pageSize,
		orgConcurrency: c.orgConcurrency,
		include:        include,
		clock:          c.clock,
		progress:       c.progress,
		logger:         c.logger,
	}
}
