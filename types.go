package ghaudit

import "time"

// NotAvailable is the sentinel used for profile fields that could not be
// fetched or were empty.
const NotAvailable = "N/A"

// NoLicenseData is the raw license type reported for users without an entry
// in the license index.
const NoLicenseData = "no data"

// Role is a user's role within an organization.
type Role string

const (
	// RoleAdmin is an organization owner.
	RoleAdmin Role = "admin"

	// RoleMember is a regular organization member.
	RoleMember Role = "member"

	// RoleOutsideCollaborator is an account with repository access only.
	RoleOutsideCollaborator Role = "outside_collaborator"

	// RoleUnknown is used when the membership detail could not be fetched.
	RoleUnknown Role = "unknown"
)

// UserType distinguishes organization members from outside collaborators.
type UserType string

const (
	// UserTypeMember marks a user that came from the member listing.
	UserTypeMember UserType = "member"

	// UserTypeOutsideCollaborator marks a user that came from the outside collaborator listing.
	UserTypeOutsideCollaborator UserType = "outside_collaborator"
)

// LicenseKind describes which enterprise license a user consumes.
type LicenseKind string

const (
	// LicenseNoData means the license index had no entry for the user.
	LicenseNoData LicenseKind = "no-data"

	// LicenseEnterprise is a plain GitHub Enterprise seat.
	LicenseEnterprise LicenseKind = "enterprise"

	// LicenseVisualStudio is a GitHub Enterprise seat bundled with a Visual Studio subscription.
	LicenseVisualStudio LicenseKind = "visual-studio-subscription"
)

// ListOptions specifies pagination for list operations.
type ListOptions struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// OrganizationData contains organization information from the provider.
type OrganizationData struct {
	// Identification
	ID    int64  `json:"id"`
	Login string `json:"login"`

	// Metadata
	Name        string `json:"name"`
	Description string `json:"description"`

	// URL
	HTMLURL string `json:"html_url"`
}

// UserData contains account information from the provider.
// Listing endpoints only populate the identification and URL fields;
// GetUser populates the profile fields as well.
type UserData struct {
	// Identification
	ID    int64  `json:"id"`
	Login string `json:"login"`

	// Profile
	Name     string `json:"name"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Email    string `json:"email"`

	// URLs
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

// MembershipData contains a user's membership in an organization.
type MembershipData struct {
	Organization string `json:"organization"`
	User         string `json:"user"`
	Role         string `json:"role"`
	State        string `json:"state"`
}

// ConsumedLicenseData is one entry of the enterprise consumed-license feed.
type ConsumedLicenseData struct {
	Login                        string   `json:"github_com_login"`
	Name                         string   `json:"github_com_name"`
	LicenseType                  string   `json:"license_type"`
	VisualStudioSubscriptionUser bool     `json:"visual_studio_subscription_user"`
	VisualStudioLicenseStatus    string   `json:"visual_studio_license_status"`
	MemberRoles                  []string `json:"github_com_member_roles"`
	EnterpriseRoles              []string `json:"github_com_enterprise_roles"`
}

// UserRecord is one user as seen from one organization.
type UserRecord struct {
	// Identification
	Username    string   `json:"username" yaml:"username"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Role        Role     `json:"role" yaml:"role"`
	UserType    UserType `json:"userType" yaml:"userType"`

	// Profile
	Company  string `json:"company" yaml:"company"`
	Location string `json:"location" yaml:"location"`
	Email    string `json:"email" yaml:"email"`

	// URLs
	ProfileURL string `json:"profileUrl" yaml:"profileUrl"`
	AvatarURL  string `json:"avatarUrl" yaml:"avatarUrl"`

	// Licensing
	License                      LicenseKind `json:"license" yaml:"license"`
	LicenseType                  string      `json:"licenseType" yaml:"licenseType"`
	VisualStudioSubscriptionUser bool        `json:"visualStudioSubscriptionUser" yaml:"visualStudioSubscriptionUser"`
}

// OrganizationSnapshot is the collected state of one organization.
type OrganizationSnapshot struct {
	// Metadata
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`

	// Counts
	UserCount                int `json:"userCount" yaml:"userCount"`
	MemberCount              int `json:"memberCount" yaml:"memberCount"`
	OutsideCollaboratorCount int `json:"outsideCollaboratorCount" yaml:"outsideCollaboratorCount"`
	VisualStudioLicenseCount int `json:"visualStudioLicenseCount" yaml:"visualStudioLicenseCount"`
	EnterpriseLicenseCount   int `json:"githubEnterpriseLicenseCount" yaml:"githubEnterpriseLicenseCount"`
	UnknownLicenseCount      int `json:"unknownLicenseCount" yaml:"unknownLicenseCount"`
	UniqueUserCount          int `json:"uniqueUserCount" yaml:"uniqueUserCount"`

	// Members and outside collaborators, sorted by username.
	Users []UserRecord `json:"users" yaml:"users"`
}

// Summary holds the enterprise-wide totals.
type Summary struct {
	TotalOrganizations int `json:"totalOrganizations" yaml:"totalOrganizations"`
	TotalUsers         int `json:"totalUsers" yaml:"totalUsers"`
	TotalUniqueUsers   int `json:"totalUniqueUsers" yaml:"totalUniqueUsers"`
}

// EnterpriseSnapshot is the complete result of one collection run.
type EnterpriseSnapshot struct {
	GeneratedAt   time.Time              `json:"generatedAt" yaml:"generatedAt"`
	Summary       Summary                `json:"summary" yaml:"summary"`
	Organizations []OrganizationSnapshot `json:"organizations" yaml:"organizations"`
}
