package ghaudit

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jmgilman/go/errors"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each organization has been collected.
// done counts finished organizations out of total; calls may arrive from
// several goroutines when organizations are collected in parallel.
type ProgressFunc func(done, total int, org string)

// Attribution records, for every account of a run, the organization its
// unique-user count is attributed to: the first organization it appears in
// when organizations are visited in sorted order.
type Attribution struct {
	first map[string]string
	order []string
}

// Attribute makes a single pass over orgs, which must already be sorted by
// name, and attributes each username to the first organization holding it.
func Attribute(orgs []OrganizationSnapshot) *Attribution {
	a := &Attribution{first: make(map[string]string)}
	for _, org := range orgs {
		for _, u := range org.Users {
			if _, seen := a.first[u.Username]; seen {
				continue
			}
			a.first[u.Username] = org.Name
			a.order = append(a.order, u.Username)
		}
	}
	return a
}

// OrganizationOf returns the organization username is attributed to.
func (a *Attribution) OrganizationOf(username string) (string, bool) {
	org, ok := a.first[username]
	return org, ok
}

// UniqueUsers returns the number of distinct usernames seen.
func (a *Attribution) UniqueUsers() int {
	return len(a.order)
}

// Usernames returns the distinct usernames in first-seen order.
func (a *Attribution) Usernames() []string {
	return slices.Clone(a.order)
}

// UniqueCount returns how many users of org are attributed to it.
func (a *Attribution) UniqueCount(org OrganizationSnapshot) int {
	n := 0
	for _, u := range org.Users {
		if a.first[u.Username] == org.Name {
			n++
		}
	}
	return n
}

// Aggregator drives a full collection run across every organization.
type Aggregator struct {
	provider       Provider
	enumerator     *Enumerator
	enterprise     string
	pageSize       int
	orgConcurrency int
	include        map[string]bool
	clock          func() time.Time
	progress       ProgressFunc
	logger         *slog.Logger
}

// Run collects every organization and returns the enterprise snapshot.
// Any mandatory failure aborts the run and no snapshot is returned.
func (a *Aggregator) Run(ctx context.Context) (*EnterpriseSnapshot, error) {
	licenses, err := BuildLicenseIndex(ctx, a.provider, a.enterprise, a.pageSize)
	switch {
	case err != nil:
		a.logger.Warn("license data unavailable, continuing without it", "enterprise", a.enterprise, "error", err)
		licenses = nil
	case a.enterprise == "":
		a.logger.Info("no enterprise configured, skipping license data")
	default:
		a.logger.Info("loaded license data", "enterprise", a.enterprise, "accounts", licenses.Len())
	}

	orgs, err := a.listOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("found organizations", "count", len(orgs))

	collected, err := a.collect(ctx, orgs, licenses)
	if err != nil {
		return nil, err
	}

	return Aggregate(collected, a.clock()), nil
}

// Aggregate sorts orgs alphabetically by name, attributes unique users and computes the
// enterprise totals. It must only be called once every organization has been
// collected.
func Aggregate(orgs []OrganizationSnapshot, generatedAt time.Time) *EnterpriseSnapshot {
	compare := loginOrder()
	slices.SortFunc(orgs, func(x, y OrganizationSnapshot) int {
		return compare(x.Name, y.Name)
	})

	attribution := Attribute(orgs)

	snap := &EnterpriseSnapshot{
		GeneratedAt:   generatedAt,
		Organizations: orgs,
	}
	for i := range orgs {
		orgs[i].UniqueUserCount = attribution.UniqueCount(orgs[i])
		snap.Summary.TotalUsers += orgs[i].UserCount
	}
	snap.Summary.TotalOrganizations = len(orgs)
	snap.Summary.TotalUniqueUsers = attribution.UniqueUsers()

	return snap
}

// listOrganizations pages through the organizations visible to the caller
// and applies the include filter.
func (a *Aggregator) listOrganizations(ctx context.Context) ([]*OrganizationData, error) {
	orgs, err := Paginate(ctx, a.pageSize, func(ctx context.Context, page int) ([]*OrganizationData, error) {
		return a.provider.ListOrganizations(ctx, ListOptions{Page: page, PerPage: a.pageSize})
	})
	if err != nil {
		return nil, wrapMandatoryError(err, "organizations", "", "failed to list organizations")
	}

	filtered := make([]*OrganizationData, 0, len(orgs))
	seen := make(map[string]bool, len(orgs))
	for _, org := range orgs {
		if org == nil || org.Login == "" || seen[org.Login] {
			continue
		}
		if len(a.include) > 0 && !a.include[org.Login] {
			continue
		}
		seen[org.Login] = true
		filtered = append(filtered, org)
	}

	if len(filtered) == 0 {
		err := errors.New(errors.CodeNotFound, "no organizations found, check the token permissions")
		return nil, errors.WithContext(err, "stage", "organizations")
	}

	return filtered, nil
}

// collect enumerates every organization. The first failure cancels the
// remaining work.
func (a *Aggregator) collect(ctx context.Context, orgs []*OrganizationData, licenses *LicenseIndex) ([]OrganizationSnapshot, error) {
	results := make([]OrganizationSnapshot, len(orgs))

	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.orgConcurrency)
	for i, org := range orgs {
		g.Go(func() error {
			a.logger.Info("processing organization", "organization", org.Login)

			snap, err := a.enumerator.Enumerate(gctx, org, licenses)
			if err != nil {
				a.logger.Error("failed to process organization", "organization", org.Login, "error", err)
				return err
			}
			results[i] = *snap

			a.logger.Info("collected organization", "organization", org.Login,
				"users", snap.UserCount, "members", snap.MemberCount,
				"outside_collaborators", snap.OutsideCollaboratorCount)
			if a.progress != nil {
				a.progress(int(done.Add(1)), len(orgs), org.Login)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
