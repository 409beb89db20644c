package ghaudit

import "context"

//go:generate go run github.com/matryer/moq@latest -out mocks/provider.go -pkg mocks . Provider

// Provider defines the read-only GitHub operations the collection pipeline needs.
// Implementations include the go-github backed provider in providers/sdk and the
// gh CLI backed provider in providers/cli.
//
// All list methods return a single page selected by opts. Callers drive
// pagination themselves (see Paginate) so that the termination rule is the
// same for every backend.
//
// Errors returned by implementations are PlatformErrors carrying one of the
// ErrCode* codes, so callers can tell permission problems from missing
// resources and retryable failures.
type Provider interface {
	// Organization operations

	// ListOrganizations lists organizations visible to the authenticated caller.
	ListOrganizations(ctx context.Context, opts ListOptions) ([]*OrganizationData, error)

	// ListMembers lists the members of an organization.
	// Returns ErrCodeNotFound if the organization doesn't exist.
	ListMembers(ctx context.Context, org string, opts ListOptions) ([]*UserData, error)

	// ListOutsideCollaborators lists outside collaborators of an organization.
	// Returns ErrCodePermissionDenied if the caller is not an organization owner.
	ListOutsideCollaborators(ctx context.Context, org string, opts ListOptions) ([]*UserData, error)

	// GetMembership retrieves the membership of user in org.
	// Returns ErrCodeNotFound if the user is not a member.
	GetMembership(ctx context.Context, org, user string) (*MembershipData, error)

	// User operations

	// GetUser retrieves the public profile of a user.
	GetUser(ctx context.Context, user string) (*UserData, error)

	// Enterprise operations

	// ListConsumedLicenses lists the consumed-license entries of an enterprise.
	// Requires an enterprise admin token with the read:enterprise scope.
	ListConsumedLicenses(ctx context.Context, enterprise string, opts ListOptions) ([]*ConsumedLicenseData, error)
}
