package ghaudit

import (
	"context"

	"github.com/jmgilman/go/errors"
)

// LicenseEntry is the licensing state of one account as reported by the
// enterprise consumed-license feed.
type LicenseEntry struct {
	Login                        string
	LicenseType                  string
	VisualStudioSubscriptionUser bool
	VisualStudioLicenseStatus    string
	MemberRoles                  []string
	EnterpriseRoles              []string
}

// Kind classifies the entry. A Visual Studio subscription wins over a plain
// enterprise license when both are reported.
func (e LicenseEntry) Kind() LicenseKind {
	switch {
	case e.VisualStudioSubscriptionUser:
		return LicenseVisualStudio
	case e.LicenseType == string(LicenseEnterprise):
		return LicenseEnterprise
	default:
		return LicenseNoData
	}
}

// LicenseIndex maps account logins to license entries.
// It is built once per run and only read afterwards. A nil *LicenseIndex is
// valid and reports no data for every login.
type LicenseIndex struct {
	entries map[string]LicenseEntry
}

// NewLicenseIndex builds an index from feed entries. Entries without a
// linked account login are skipped.
func NewLicenseIndex(items []*ConsumedLicenseData) *LicenseIndex {
	idx := &LicenseIndex{entries: make(map[string]LicenseEntry, len(items))}
	for _, item := range items {
		if item == nil || item.Login == "" {
			continue
		}
		idx.entries[item.Login] = LicenseEntry{
			Login:                        item.Login,
			LicenseType:                  item.LicenseType,
			VisualStudioSubscriptionUser: item.VisualStudioSubscriptionUser,
			VisualStudioLicenseStatus:    item.VisualStudioLicenseStatus,
			MemberRoles:                  item.MemberRoles,
			EnterpriseRoles:              item.EnterpriseRoles,
		}
	}
	return idx
}

// Lookup returns the entry for login.
func (idx *LicenseIndex) Lookup(login string) (LicenseEntry, bool) {
	if idx == nil {
		return LicenseEntry{}, false
	}
	e, ok := idx.entries[login]
	return e, ok
}

// Len returns the number of indexed accounts.
func (idx *LicenseIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// BuildLicenseIndex pages through the consumed-license feed of enterprise.
// An empty enterprise skips licensing and returns a nil index without
// making any call. A fetch failure is returned to the caller, which decides
// whether to continue without license data.
func BuildLicenseIndex(ctx context.Context, provider Provider, enterprise string, pageSize int) (*LicenseIndex, error) {
	if enterprise == "" {
		return nil, nil
	}

	items, err := Paginate(ctx, pageSize, func(ctx context.Context, page int) ([]*ConsumedLicenseData, error) {
		return provider.ListConsumedLicenses(ctx, enterprise, ListOptions{Page: page, PerPage: pageSize})
	})
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.GetCode(err), "failed to list consumed licenses", map[string]interface{}{
			"enterprise": enterprise,
		})
	}

	return NewLicenseIndex(items), nil
}

// apply merges the license attributes for rec.Username into rec.
func (idx *LicenseIndex) apply(rec *UserRecord) {
	entry, ok := idx.Lookup(rec.Username)
	if !ok {
		rec.License = LicenseNoData
		rec.LicenseType = NoLicenseData
		return
	}

	rec.License = entry.Kind()
	rec.LicenseType = entry.LicenseType
	if rec.LicenseType == "" {
		rec.LicenseType = NoLicenseData
	}
	rec.VisualStudioSubscriptionUser = entry.VisualStudioSubscriptionUser
}
