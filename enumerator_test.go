package ghaudit_test

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeOrg() *ghaudit.OrganizationData {
	return &ghaudit.OrganizationData{ID: 1, Login: "acme", Name: "Acme Corp", HTMLURL: "https://github.com/acme"}
}

func TestEnumerator_Enumerate(t *testing.T) {
	t.Parallel()

	f := &fakeEnterprise{orgs: []fakeOrg{{
		login:         "acme",
		members:       []string{"bob", "alice"},
		collaborators: []string{"carol"},
		roles:         map[string]string{"alice": "admin"},
	}}}
	licenses := ghaudit.NewLicenseIndex([]*ghaudit.ConsumedLicenseData{
		{Login: "alice", LicenseType: "enterprise", VisualStudioSubscriptionUser: true},
		{Login: "bob", LicenseType: "enterprise"},
	})

	snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), licenses)

	require.NoError(t, err)
	assert.Equal(t, "acme", snap.Name)
	assert.Equal(t, "Acme Corp", snap.DisplayName)
	assert.Equal(t, "No description", snap.Description)
	assert.Equal(t, "https://github.com/acme", snap.URL)
	assert.Equal(t, []string{"alice", "bob", "carol"}, usernames(snap.Users))

	assert.Equal(t, ghaudit.UserRecord{
		Username:                     "alice",
		DisplayName:                  "Name of alice",
		Role:                         ghaudit.RoleAdmin,
		UserType:                     ghaudit.UserTypeMember,
		Company:                      "Company of alice",
		Location:                     "Location of alice",
		Email:                        "alice@example.com",
		ProfileURL:                   "https://github.com/alice",
		AvatarURL:                    "https://avatars.example.com/alice",
		License:                      ghaudit.LicenseVisualStudio,
		LicenseType:                  "enterprise",
		VisualStudioSubscriptionUser: true,
	}, snap.Users[0])

	bob := findUser(t, snap.Users, "bob")
	assert.Equal(t, ghaudit.RoleMember, bob.Role)
	assert.Equal(t, ghaudit.LicenseEnterprise, bob.License)

	carol := findUser(t, snap.Users, "carol")
	assert.Equal(t, ghaudit.RoleOutsideCollaborator, carol.Role)
	assert.Equal(t, ghaudit.UserTypeOutsideCollaborator, carol.UserType)
	assert.Equal(t, ghaudit.LicenseNoData, carol.License)
	assert.Equal(t, ghaudit.NoLicenseData, carol.LicenseType)

	assert.Equal(t, 3, snap.UserCount)
	assert.Equal(t, 2, snap.MemberCount)
	assert.Equal(t, 1, snap.OutsideCollaboratorCount)
	assert.Equal(t, 1, snap.VisualStudioLicenseCount, "visual studio is not double counted as enterprise")
	assert.Equal(t, 1, snap.EnterpriseLicenseCount)
	assert.Equal(t, 1, snap.UnknownLicenseCount)
	assert.Zero(t, snap.UniqueUserCount, "unique count is filled in by the aggregation")
}

func TestEnumerator_PerUserFailures(t *testing.T) {
	t.Parallel()

	t.Run("membership failure keeps the profile", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{
			orgs:           []fakeOrg{{login: "acme", members: []string{"alice", "bob"}}},
			membershipErrs: map[string]error{"alice": errors.New(errors.CodeNotFound, "membership not found")},
		}

		snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, snap.UserCount)
		alice := findUser(t, snap.Users, "alice")
		assert.Equal(t, ghaudit.RoleUnknown, alice.Role)
		assert.Equal(t, "Name of alice", alice.DisplayName)
		assert.Equal(t, "Company of alice", alice.Company)
	})

	t.Run("profile failure keeps the role", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{
			orgs:        []fakeOrg{{login: "acme", members: []string{"alice"}, roles: map[string]string{"alice": "admin"}}},
			profileErrs: map[string]error{"alice": errors.New(errors.CodeForbidden, "blocked")},
		}

		snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		require.Len(t, snap.Users, 1)
		alice := snap.Users[0]
		assert.Equal(t, ghaudit.RoleAdmin, alice.Role)
		assert.Equal(t, "alice", alice.DisplayName)
		assert.Equal(t, ghaudit.NotAvailable, alice.Company)
		assert.Equal(t, ghaudit.NotAvailable, alice.Location)
		assert.Equal(t, ghaudit.NotAvailable, alice.Email)
		assert.Equal(t, "https://github.com/alice", alice.ProfileURL)
	})

	t.Run("both failures still emit the user", func(t *testing.T) {
		t.Parallel()

		boom := errors.New(errors.CodeNetwork, "connection reset")
		f := &fakeEnterprise{
			orgs:           []fakeOrg{{login: "acme", members: []string{"alice"}}},
			membershipErrs: map[string]error{"alice": boom},
			profileErrs:    map[string]error{"alice": boom},
		}

		snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		require.Len(t, snap.Users, 1)
		assert.Equal(t, ghaudit.RoleUnknown, snap.Users[0].Role)
		assert.Equal(t, ghaudit.NotAvailable, snap.Users[0].Email)
		assert.Equal(t, ghaudit.LicenseNoData, snap.Users[0].License)
	})

	t.Run("empty profile fields become sentinels", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{orgs: []fakeOrg{{login: "acme", members: []string{"alice"}}}}
		provider := f.provider(t)
		provider.GetUserFunc = func(context.Context, string) (*ghaudit.UserData, error) {
			return &ghaudit.UserData{Login: "alice", Company: "Acme"}, nil
		}

		snap, err := testClient(provider).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		alice := snap.Users[0]
		assert.Equal(t, "alice", alice.DisplayName)
		assert.Equal(t, "Acme", alice.Company)
		assert.Equal(t, ghaudit.NotAvailable, alice.Location)
		assert.Equal(t, ghaudit.NotAvailable, alice.Email)
	})
}

func TestEnumerator_Collaborators(t *testing.T) {
	t.Parallel()

	t.Run("listing failure is tolerated", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{orgs: []fakeOrg{{
			login:            "acme",
			members:          []string{"alice"},
			collaborators:    []string{"carol"},
			collaboratorsErr: errors.New(errors.CodeForbidden, "must be an organization owner"),
		}}}

		snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, usernames(snap.Users))
		assert.Zero(t, snap.OutsideCollaboratorCount)
	})

	t.Run("membership takes precedence", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{orgs: []fakeOrg{{
			login:         "acme",
			members:       []string{"alice", "bob"},
			collaborators: []string{"bob", "carol"},
		}}}
		provider := f.provider(t)

		snap, err := testClient(provider).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob", "carol"}, usernames(snap.Users))
		assert.Equal(t, ghaudit.UserTypeMember, findUser(t, snap.Users, "bob").UserType)
		assert.Equal(t, 2, snap.MemberCount)
		assert.Equal(t, 1, snap.OutsideCollaboratorCount)
		assert.Len(t, provider.GetMembershipCalls(), 2, "collaborators have no membership lookup")
	})

	t.Run("repeated listing entries collapse", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{orgs: []fakeOrg{{login: "acme", members: []string{"alice", "alice", ""}}}}

		snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, usernames(snap.Users))
	})
}

func TestEnumerator_MemberListingFailure(t *testing.T) {
	t.Parallel()

	f := &fakeEnterprise{orgs: []fakeOrg{{
		login:      "acme",
		membersErr: errors.New(errors.CodeUnauthorized, "bad credentials"),
	}}}
	provider := f.provider(t)

	snap, err := testClient(provider).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

	assert.Nil(t, snap)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))

	var platformErr errors.PlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, "acme", platformErr.Context()["organization"])
	assert.Equal(t, "members", platformErr.Context()["stage"])
	assert.Empty(t, provider.GetUserCalls())
}

func TestEnumerator_DeterministicOrder(t *testing.T) {
	t.Parallel()

	members := []string{"zed", "mallory", "bob", "yvonne", "alice", "trent", "dave", "eve"}
	f := &fakeEnterprise{orgs: []fakeOrg{{
		login:         "acme",
		members:       members,
		collaborators: []string{"walter", "carol"},
	}}}
	provider := f.provider(t)
	// Later users answer first.
	provider.GetUserFunc = func(_ context.Context, user string) (*ghaudit.UserData, error) {
		if i := slices.Index(members, user); i >= 0 {
			time.Sleep(time.Duration(len(members)-i) * time.Millisecond)
		}
		return profile(user), nil
	}

	snap, err := testClient(provider, ghaudit.WithConcurrency(8)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"alice", "bob", "carol", "dave", "eve", "mallory", "trent", "walter", "yvonne", "zed",
	}, usernames(snap.Users))
}

func TestEnumerator_MixedCaseOrder(t *testing.T) {
	t.Parallel()

	f := &fakeEnterprise{orgs: []fakeOrg{{
		login:         "acme",
		members:       []string{"Bob", "alice", "Carol"},
		collaborators: []string{"dave", "Aaron"},
	}}}

	snap, err := testClient(f.provider(t)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"Aaron", "alice", "Bob", "Carol", "dave"}, usernames(snap.Users))
}

func TestEnumerator_Pacing(t *testing.T) {
	t.Parallel()

	t.Run("paces every per-user fetch", func(t *testing.T) {
		t.Parallel()

		var waits atomic.Int32
		pacer := ghaudit.PacerFunc(func(context.Context) error {
			waits.Add(1)
			return nil
		})
		f := &fakeEnterprise{orgs: []fakeOrg{{
			login:         "acme",
			members:       []string{"alice", "bob"},
			collaborators: []string{"carol"},
		}}}

		_, err := testClient(f.provider(t), ghaudit.WithPacer(pacer)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		// Membership and profile per member, profile per collaborator.
		assert.Equal(t, int32(5), waits.Load())
	})

	t.Run("pacer failure aborts the organization", func(t *testing.T) {
		t.Parallel()

		pacer := ghaudit.PacerFunc(func(context.Context) error {
			return context.Canceled
		})
		f := &fakeEnterprise{orgs: []fakeOrg{{login: "acme", members: []string{"alice"}}}}

		snap, err := testClient(f.provider(t), ghaudit.WithPacer(pacer)).Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		assert.Nil(t, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rate pacer spaces fetches", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{orgs: []fakeOrg{{login: "acme", members: []string{"alice", "bob"}}}}
		client := ghaudit.NewClient(f.provider(t),
			ghaudit.WithDelay(10*time.Millisecond),
			ghaudit.WithMaxRetries(0),
		)

		start := time.Now()
		_, err := client.Enumerator().Enumerate(context.Background(), acmeOrg(), nil)

		require.NoError(t, err)
		// Four paced fetches with a burst of one.
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})
}

func TestEnumerator_ProfileCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ttl       time.Duration
		wantCalls int32
	}{
		{name: "cached across organizations", ttl: time.Hour, wantCalls: 2},
		{name: "cache disabled", ttl: 0, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeEnterprise{orgs: []fakeOrg{
				{login: "acme", members: []string{"alice", "bob"}},
				{login: "beta", members: []string{"bob"}},
			}}
			enumerator := testClient(f.provider(t), ghaudit.WithProfileCacheTTL(tt.ttl)).Enumerator()

			_, err := enumerator.Enumerate(context.Background(), &ghaudit.OrganizationData{Login: "acme"}, nil)
			require.NoError(t, err)
			beta, err := enumerator.Enumerate(context.Background(), &ghaudit.OrganizationData{Login: "beta"}, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCalls, f.profileCalls.Load())
			assert.Equal(t, "Name of bob", beta.Users[0].DisplayName)
		})
	}
}
