package ghaudit_test

import (
	"context"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/jmgilman/go/ghaudit/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseEntry_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry ghaudit.LicenseEntry
		want  ghaudit.LicenseKind
	}{
		{
			name:  "visual studio subscription wins over enterprise",
			entry: ghaudit.LicenseEntry{LicenseType: "enterprise", VisualStudioSubscriptionUser: true},
			want:  ghaudit.LicenseVisualStudio,
		},
		{
			name:  "visual studio subscription without license type",
			entry: ghaudit.LicenseEntry{VisualStudioSubscriptionUser: true},
			want:  ghaudit.LicenseVisualStudio,
		},
		{
			name:  "enterprise only",
			entry: ghaudit.LicenseEntry{LicenseType: "enterprise"},
			want:  ghaudit.LicenseEnterprise,
		},
		{
			name:  "unrecognized license type",
			entry: ghaudit.LicenseEntry{LicenseType: "seat"},
			want:  ghaudit.LicenseNoData,
		},
		{
			name:  "empty entry",
			entry: ghaudit.LicenseEntry{},
			want:  ghaudit.LicenseNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.entry.Kind())
		})
	}
}

func TestNewLicenseIndex(t *testing.T) {
	t.Parallel()

	idx := ghaudit.NewLicenseIndex([]*ghaudit.ConsumedLicenseData{
		{Login: "alice", LicenseType: "enterprise", VisualStudioSubscriptionUser: true, MemberRoles: []string{"acme:Owner"}},
		{Login: "", LicenseType: "enterprise"},
		nil,
		{Login: "bob", LicenseType: "enterprise"},
	})

	assert.Equal(t, 2, idx.Len())

	alice, ok := idx.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, ghaudit.LicenseVisualStudio, alice.Kind())
	assert.Equal(t, []string{"acme:Owner"}, alice.MemberRoles)

	_, ok = idx.Lookup("")
	assert.False(t, ok, "entries without a login are skipped")

	_, ok = idx.Lookup("carol")
	assert.False(t, ok)
}

func TestLicenseIndex_Nil(t *testing.T) {
	t.Parallel()

	var idx *ghaudit.LicenseIndex

	_, ok := idx.Lookup("alice")
	assert.False(t, ok)
	assert.Zero(t, idx.Len())
}

func TestBuildLicenseIndex(t *testing.T) {
	t.Parallel()

	t.Run("no enterprise skips licensing", func(t *testing.T) {
		t.Parallel()

		provider := &mocks.ProviderMock{}

		idx, err := ghaudit.BuildLicenseIndex(context.Background(), provider, "", ghaudit.DefaultPageSize)

		require.NoError(t, err)
		assert.Nil(t, idx)
		assert.Empty(t, provider.ListConsumedLicensesCalls())
	})

	t.Run("pages through the feed", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{licenses: []*ghaudit.ConsumedLicenseData{
			{Login: "alice", LicenseType: "enterprise"},
			{Login: "bob", LicenseType: "enterprise"},
			{Login: "carol", LicenseType: "enterprise", VisualStudioSubscriptionUser: true},
		}}
		provider := f.provider(t)

		idx, err := ghaudit.BuildLicenseIndex(context.Background(), provider, "acme-ent", 2)

		require.NoError(t, err)
		assert.Equal(t, 3, idx.Len())
		calls := provider.ListConsumedLicensesCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, "acme-ent", calls[0].Enterprise)
		assert.Equal(t, ghaudit.ListOptions{Page: 2, PerPage: 2}, calls[1].Opts)
	})

	t.Run("failure is reported with the enterprise", func(t *testing.T) {
		t.Parallel()

		f := &fakeEnterprise{licensesErr: errors.New(errors.CodeForbidden, "missing read:enterprise scope")}

		idx, err := ghaudit.BuildLicenseIndex(context.Background(), f.provider(t), "acme-ent", ghaudit.DefaultPageSize)

		assert.Nil(t, idx)
		require.Error(t, err)
		assert.Equal(t, errors.CodeForbidden, errors.GetCode(err))

		var platformErr errors.PlatformError
		require.True(t, errors.As(err, &platformErr))
		assert.Equal(t, "acme-ent", platformErr.Context()["enterprise"])
	})
}
