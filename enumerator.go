package ghaudit

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jellydator/ttlcache/v3"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Enumerator collects one organization: its members and outside
// collaborators, their membership roles and profiles, and their license
// attributes.
//
// Only the member listing is mandatory. A failed collaborator listing
// leaves the organization without collaborators, and a failed membership or
// profile lookup leaves that one user with sentinel values.
type Enumerator struct {
	provider    Provider
	pacer       Pacer
	pageSize    int
	concurrency int
	profiles    *ttlcache.Cache[string, *UserData]
	logger      *slog.Logger
}

// Enumerate collects org. The returned snapshot has every count filled in
// except UniqueUserCount, which depends on the other organizations of the run.
func (e *Enumerator) Enumerate(ctx context.Context, org *OrganizationData, licenses *LicenseIndex) (*OrganizationSnapshot, error) {
	logger := e.logger.With("organization", org.Login)

	members, err := Paginate(ctx, e.pageSize, func(ctx context.Context, page int) ([]*UserData, error) {
		return e.provider.ListMembers(ctx, org.Login, ListOptions{Page: page, PerPage: e.pageSize})
	})
	if err != nil {
		return nil, wrapMandatoryError(err, "members", org.Login, "failed to list organization members")
	}
	members = uniqueUsers(members)

	collaborators, err := Paginate(ctx, e.pageSize, func(ctx context.Context, page int) ([]*UserData, error) {
		return e.provider.ListOutsideCollaborators(ctx, org.Login, ListOptions{Page: page, PerPage: e.pageSize})
	})
	if err != nil {
		logger.Warn("failed to list outside collaborators, continuing without them", "error", err)
		collaborators = nil
	}
	collaborators = withoutMembers(uniqueUsers(collaborators), members)

	logger.Debug("listed organization users", "members", len(members), "outside_collaborators", len(collaborators))

	// Each worker owns one slot, so the result order never depends on timing.
	records := make([]UserRecord, len(members)+len(collaborators))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, u := range members {
		g.Go(func() error {
			rec, err := e.collectMember(gctx, org.Login, u)
			if err != nil {
				return err
			}
			licenses.apply(&rec)
			records[i] = rec
			return nil
		})
	}
	for i, u := range collaborators {
		g.Go(func() error {
			rec, err := e.collectCollaborator(gctx, org.Login, u)
			if err != nil {
				return err
			}
			licenses.apply(&rec)
			records[len(members)+i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrapMandatoryError(err, "users", org.Login, "organization collection interrupted")
	}

	sortRecords(records)

	return newOrganizationSnapshot(org, records), nil
}

// collectMember builds the record of an organization member. The returned
// error is non-nil only when pacing was interrupted by ctx.
func (e *Enumerator) collectMember(ctx context.Context, org string, u *UserData) (UserRecord, error) {
	rec := newUserRecord(u, UserTypeMember)

	if err := e.pacer.Wait(ctx); err != nil {
		return rec, err
	}
	if role, ok := e.membershipRole(ctx, org, u.Login); ok {
		rec.Role = role
	}

	profile, ok, err := e.profile(ctx, org, u.Login)
	if err != nil {
		return rec, err
	}
	if ok {
		applyProfile(&rec, profile)
	}

	return rec, nil
}

// collectCollaborator builds the record of an outside collaborator.
// Collaborators have no membership, so only the profile is fetched.
func (e *Enumerator) collectCollaborator(ctx context.Context, org string, u *UserData) (UserRecord, error) {
	rec := newUserRecord(u, UserTypeOutsideCollaborator)
	rec.Role = RoleOutsideCollaborator

	profile, ok, err := e.profile(ctx, org, u.Login)
	if err != nil {
		return rec, err
	}
	if ok {
		applyProfile(&rec, profile)
	}

	return rec, nil
}

// membershipRole looks up the role of login in org.
func (e *Enumerator) membershipRole(ctx context.Context, org, login string) (Role, bool) {
	m, err := e.provider.GetMembership(ctx, org, login)
	if err != nil {
		e.logger.Warn("failed to get membership details", "organization", org, "user", login, "error", err)
		return "", false
	}
	if m == nil || m.Role == "" {
		return "", false
	}
	return Role(m.Role), true
}

// profile returns the public profile of login, from the cache when possible.
// Only the pacer can produce an error; a failed lookup reports ok == false.
func (e *Enumerator) profile(ctx context.Context, org, login string) (*UserData, bool, error) {
	if e.profiles != nil {
		if item := e.profiles.Get(login); item != nil {
			return item.Value(), true, nil
		}
	}

	if err := e.pacer.Wait(ctx); err != nil {
		return nil, false, err
	}

	u, err := e.provider.GetUser(ctx, login)
	if err != nil || u == nil {
		e.logger.Warn("failed to get user profile", "organization", org, "user", login, "error", err)
		return nil, false, nil
	}

	if e.profiles != nil {
		e.profiles.Set(login, u, ttlcache.DefaultTTL)
	}
	return u, true, nil
}

// newUserRecord returns a record holding sentinel values for everything the
// listing entry cannot provide.
func newUserRecord(u *UserData, userType UserType) UserRecord {
	return UserRecord{
		Username:    u.Login,
		DisplayName: u.Login,
		Role:        RoleUnknown,
		UserType:    userType,
		Company:     NotAvailable,
		Location:    NotAvailable,
		Email:       NotAvailable,
		ProfileURL:  u.HTMLURL,
		AvatarURL:   u.AvatarURL,
		License:     LicenseNoData,
		LicenseType: NoLicenseData,
	}
}

func applyProfile(rec *UserRecord, p *UserData) {
	rec.DisplayName = lo.CoalesceOrEmpty(p.Name, rec.Username)
	rec.Company = lo.CoalesceOrEmpty(p.Company, NotAvailable)
	rec.Location = lo.CoalesceOrEmpty(p.Location, NotAvailable)
	rec.Email = lo.CoalesceOrEmpty(p.Email, NotAvailable)
	if rec.ProfileURL == "" {
		rec.ProfileURL = p.HTMLURL
	}
	if rec.AvatarURL == "" {
		rec.AvatarURL = p.AvatarURL
	}
}

// uniqueUsers drops nil entries, entries without a login and repeated logins.
func uniqueUsers(users []*UserData) []*UserData {
	users = lo.Filter(users, func(u *UserData, _ int) bool {
		return u != nil && u.Login != ""
	})
	return lo.UniqBy(users, func(u *UserData) string {
		return u.Login
	})
}

// withoutMembers removes collaborators that are also members; membership
// takes precedence.
func withoutMembers(collaborators, members []*UserData) []*UserData {
	isMember := lo.SliceToMap(members, func(u *UserData) (string, struct{}) {
		return u.Login, struct{}{}
	})
	return lo.Filter(collaborators, func(u *UserData, _ int) bool {
		_, ok := isMember[u.Login]
		return !ok
	})
}

func sortRecords(records []UserRecord) {
	compare := loginOrder()
	slices.SortFunc(records, func(a, b UserRecord) int {
		return compare(a.Username, b.Username)
	})
}

// newOrganizationSnapshot fills in the per-organization counts.
func newOrganizationSnapshot(org *OrganizationData, records []UserRecord) *OrganizationSnapshot {
	snap := &OrganizationSnapshot{
		Name:        org.Login,
		DisplayName: lo.CoalesceOrEmpty(org.Name, org.Login),
		Description: lo.CoalesceOrEmpty(org.Description, "No description"),
		URL:         org.HTMLURL,
		Users:       records,
	}

	snap.MemberCount = lo.CountBy(records, func(r UserRecord) bool { return r.UserType == UserTypeMember })
	snap.OutsideCollaboratorCount = len(records) - snap.MemberCount
	snap.UserCount = len(records)
	snap.VisualStudioLicenseCount = lo.CountBy(records, func(r UserRecord) bool { return r.License == LicenseVisualStudio })
	snap.EnterpriseLicenseCount = lo.CountBy(records, func(r UserRecord) bool { return r.License == LicenseEnterprise })
	snap.UnknownLicenseCount = snap.UserCount - snap.VisualStudioLicenseCount - snap.EnterpriseLicenseCount

	return snap
}
