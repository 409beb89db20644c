package ghaudit

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithEnterprise sets the enterprise slug used for license data.
// Without it the run skips licensing and every user reports no license data.
func WithEnterprise(enterprise string) Option {
	return func(c *Client) {
		c.enterprise = enterprise
	}
}

// WithPacer sets the pacer used between per-user detail fetches.
func WithPacer(pacer Pacer) Option {
	return func(c *Client) {
		if pacer != nil {
			c.pacer = pacer
		}
	}
}

// WithDelay paces per-user detail fetches at one per delay.
// Zero disables pacing.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.pacer = NewRatePacer(delay)
	}
}

// WithConcurrency sets how many users of one organization are fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = max(n, 1)
	}
}

// WithOrganizationConcurrency sets how many organizations are collected at once.
func WithOrganizationConcurrency(n int) Option {
	return func(c *Client) {
		c.orgConcurrency = max(n, 1)
	}
}

// WithMaxRetries sets how often a retryable provider error is retried.
// Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = max(n, 0)
	}
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		c.retryInterval = d
	}
}

// WithProfileCacheTTL sets how long fetched profiles are reused across
// organizations. Zero disables the cache.
func WithProfileCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithOrganizations restricts the run to the named organizations.
func WithOrganizations(orgs ...string) Option {
	return func(c *Client) {
		c.organizations = orgs
	}
}

// WithPageSize overrides the per_page value of listing calls.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for the snapshot timestamp.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithProgress sets a callback invoked after each organization is collected.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}
