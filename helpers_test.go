package ghaudit_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/jmgilman/go/ghaudit/mocks"
)

// fakeOrg describes one organization served by fakeEnterprise.
type fakeOrg struct {
	login         string
	name          string
	members       []string
	collaborators []string
	roles         map[string]string

	membersErr       error
	collaboratorsErr error
}

// fakeEnterprise is an in-memory GitHub used to drive a ProviderMock.
// Profiles are generated for every login unless listed in profileErrs.
type fakeEnterprise struct {
	orgs        []fakeOrg
	licenses    []*ghaudit.ConsumedLicenseData
	licensesErr error

	membershipErrs map[string]error
	profileErrs    map[string]error

	profileCalls atomic.Int32
}

func (f *fakeEnterprise) org(login string) (fakeOrg, bool) {
	for _, o := range f.orgs {
		if o.login == login {
			return o, true
		}
	}
	return fakeOrg{}, false
}

func (f *fakeEnterprise) provider(t *testing.T) *mocks.ProviderMock {
	t.Helper()

	return &mocks.ProviderMock{
		ListOrganizationsFunc: func(_ context.Context, opts ghaudit.ListOptions) ([]*ghaudit.OrganizationData, error) {
			all := make([]*ghaudit.OrganizationData, len(f.orgs))
			for i, o := range f.orgs {
				all[i] = &ghaudit.OrganizationData{
					ID:      int64(i + 1),
					Login:   o.login,
					Name:    o.name,
					HTMLURL: "https://github.com/" + o.login,
				}
			}
			return page(all, opts), nil
		},
		ListMembersFunc: func(_ context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
			o, ok := f.org(org)
			if !ok {
				return nil, errors.New(errors.CodeNotFound, "organization not found")
			}
			if o.membersErr != nil {
				return nil, o.membersErr
			}
			return page(listing(o.members), opts), nil
		},
		ListOutsideCollaboratorsFunc: func(_ context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
			o, _ := f.org(org)
			if o.collaboratorsErr != nil {
				return nil, o.collaboratorsErr
			}
			return page(listing(o.collaborators), opts), nil
		},
		GetMembershipFunc: func(_ context.Context, org, user string) (*ghaudit.MembershipData, error) {
			if err := f.membershipErrs[user]; err != nil {
				return nil, err
			}
			o, _ := f.org(org)
			role := o.roles[user]
			if role == "" {
				role = "member"
			}
			return &ghaudit.MembershipData{Organization: org, User: user, Role: role, State: "active"}, nil
		},
		GetUserFunc: func(_ context.Context, user string) (*ghaudit.UserData, error) {
			f.profileCalls.Add(1)
			if err := f.profileErrs[user]; err != nil {
				return nil, err
			}
			return profile(user), nil
		},
		ListConsumedLicensesFunc: func(_ context.Context, _ string, opts ghaudit.ListOptions) ([]*ghaudit.ConsumedLicenseData, error) {
			if f.licensesErr != nil {
				return nil, f.licensesErr
			}
			return page(f.licenses, opts), nil
		},
	}
}

// page returns the slice of items selected by opts.
func page[T any](items []T, opts ghaudit.ListOptions) []T {
	start := (opts.Page - 1) * opts.PerPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+opts.PerPage, len(items))
	return items[start:end]
}

// listing returns the short user form returned by listing endpoints.
func listing(logins []string) []*ghaudit.UserData {
	users := make([]*ghaudit.UserData, len(logins))
	for i, login := range logins {
		users[i] = &ghaudit.UserData{
			ID:        int64(i + 1),
			Login:     login,
			HTMLURL:   "https://github.com/" + login,
			AvatarURL: "https://avatars.example.com/" + login,
		}
	}
	return users
}

func profile(login string) *ghaudit.UserData {
	return &ghaudit.UserData{
		Login:     login,
		Name:      "Name of " + login,
		Company:   "Company of " + login,
		Location:  "Location of " + login,
		Email:     login + "@example.com",
		HTMLURL:   "https://github.com/" + login,
		AvatarURL: "https://avatars.example.com/" + login,
	}
}

func usernames(users []ghaudit.UserRecord) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names
}

func findUser(t *testing.T, users []ghaudit.UserRecord, login string) ghaudit.UserRecord {
	t.Helper()

	for _, u := range users {
		if u.Username == login {
			return u
		}
	}
	t.Fatalf("user %q not found", login)
	return ghaudit.UserRecord{}
}

// testClient returns a client with pacing, retries and caching disabled.
func testClient(provider ghaudit.Provider, opts ...ghaudit.Option) *ghaudit.Client {
	base := []ghaudit.Option{
		ghaudit.WithPacer(ghaudit.NoPacer),
		ghaudit.WithMaxRetries(0),
		ghaudit.WithProfileCacheTTL(0),
	}
	return ghaudit.NewClient(provider, append(base, opts...)...)
}
