package ghaudit

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmgilman/go/errors"
)

// DefaultMaxRetries is the number of retries for retryable provider errors.
const DefaultMaxRetries = 3

// retryProvider decorates a Provider, retrying calls whose error is
// classified as retryable (rate limits, network failures, 5xx responses).
// Permanent errors are returned after the first attempt.
type retryProvider struct {
	next       Provider
	maxRetries uint64
	interval   time.Duration
}

// withRetry wraps p unless maxRetries is zero.
func withRetry(p Provider, maxRetries int, interval time.Duration) Provider {
	if maxRetries <= 0 {
		return p
	}
	return &retryProvider{next: p, maxRetries: uint64(maxRetries), interval: interval}
}

func (r *retryProvider) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if r.interval > 0 {
		b.InitialInterval = r.interval
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx)
}

// retry runs op under the retry policy and returns its last result.
// A context that ends between attempts is reported as CodeTimeout.
func retry[T any](ctx context.Context, r *retryProvider, op func() (T, error)) (T, error) {
	var result T
	err := backoff.Retry(func() error {
		v, err := op()
		if err != nil {
			if !errors.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}, r.policy(ctx))
	if err != nil && errors.GetCode(err) == errors.CodeUnknown &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		err = errors.Wrap(err, errors.CodeTimeout, "provider call interrupted while retrying")
	}
	return result, err
}

func (r *retryProvider) ListOrganizations(ctx context.Context, opts ListOptions) ([]*OrganizationData, error) {
	return retry(ctx, r, func() ([]*OrganizationData, error) {
		return r.next.ListOrganizations(ctx, opts)
	})
}

func (r *retryProvider) ListMembers(ctx context.Context, org string, opts ListOptions) ([]*UserData, error) {
	return retry(ctx, r, func() ([]*UserData, error) {
		return r.next.ListMembers(ctx, org, opts)
	})
}

func (r *retryProvider) ListOutsideCollaborators(ctx context.Context, org string, opts ListOptions) ([]*UserData, error) {
	return retry(ctx, r, func() ([]*UserData, error) {
		return r.next.ListOutsideCollaborators(ctx, org, opts)
	})
}

func (r *retryProvider) GetMembership(ctx context.Context, org, user string) (*MembershipData, error) {
	return retry(ctx, r, func() (*MembershipData, error) {
		return r.next.GetMembership(ctx, org, user)
	})
}

func (r *retryProvider) GetUser(ctx context.Context, user string) (*UserData, error) {
	return retry(ctx, r, func() (*UserData, error) {
		return r.next.GetUser(ctx, user)
	})
}

func (r *retryProvider) ListConsumedLicenses(ctx context.Context, enterprise string, opts ListOptions) ([]*ConsumedLicenseData, error) {
	return retry(ctx, r, func() ([]*ConsumedLicenseData, error) {
		return r.next.ListConsumedLicenses(ctx, enterprise, opts)
	})
}
