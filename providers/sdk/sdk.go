// Package sdk provides a ghaudit provider implementation using the go-github SDK.
//
// This package implements the ghaudit.Provider interface by wrapping the
// github.com/google/go-github/v67 SDK. Token authentication goes through an
// oauth2 static token source, and GitHub Enterprise Server is supported
// through WithBaseURL.
package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v67/github"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"golang.org/x/oauth2"
)

// SDKProvider implements ghaudit.Provider using the go-github SDK.
type SDKProvider struct {
	client *github.Client
}

// NewSDKProvider creates a provider using the GitHub SDK.
//
// Example with token authentication:
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken("ghp_..."))
//
// Example against GitHub Enterprise Server:
//
//	provider, err := sdk.NewSDKProvider(
//	    sdk.WithToken("ghp_..."),
//	    sdk.WithBaseURL("https://github.example.com/api/v3/"),
//	)
func NewSDKProvider(opts ...Option) (*SDKProvider, error) {
	cfg := &config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// If no client was provided, create a default one
	if cfg.client == nil {
		if cfg.token == "" {
			err := errors.New(errors.CodeInvalidConfig, "either token or client must be provided")
			return nil, errors.WithContext(err, "field", "token or client")
		}

		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.token})
		cfg.client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	if cfg.baseURL != "" {
		client, err := cfg.client.WithEnterpriseURLs(cfg.baseURL, cfg.baseURL)
		if err != nil {
			wrapped := errors.Wrap(err, errors.CodeInvalidConfig, "invalid base URL")
			return nil, errors.WithContext(wrapped, "field", "base_url")
		}
		cfg.client = client
	}

	return &SDKProvider{
		client: cfg.client,
	}, nil
}

// config holds configuration for SDKProvider.
type config struct {
	client  *github.Client
	token   string
	baseURL string
}

// Option configures the SDK provider.
type Option func(*config) error

// WithToken sets the authentication token for the SDK provider.
func WithToken(token string) Option {
	return func(cfg *config) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidConfig, "token cannot be empty")
			return errors.WithContext(err, "field", "token")
		}
		cfg.token = token
		return nil
	}
}

// WithClient sets a custom GitHub client for the SDK provider.
// This allows full control over the HTTP client configuration,
// authentication, and other advanced settings.
func WithClient(client *github.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			err := errors.New(errors.CodeInvalidInput, "client cannot be nil")
			return errors.WithContext(err, "field", "client")
		}
		cfg.client = client
		return nil
	}
}

// WithBaseURL points the provider at a GitHub Enterprise Server API.
// An empty URL keeps the public API.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		cfg.baseURL = baseURL
		return nil
	}
}

// Client returns the underlying go-github client.
func (s *SDKProvider) Client() *github.Client {
	return s.client
}

// Organization operations

// ListOrganizations lists organizations visible to the authenticated user.
func (s *SDKProvider) ListOrganizations(ctx context.Context, opts ghaudit.ListOptions) ([]*ghaudit.OrganizationData, error) {
	orgs, resp, err := s.client.Organizations.List(ctx, "", &github.ListOptions{
		Page:    opts.Page,
		PerPage: opts.PerPage,
	})
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to list organizations")
	}

	result := make([]*ghaudit.OrganizationData, len(orgs))
	for i, org := range orgs {
		result[i] = s.convertOrganization(org)
	}

	return result, nil
}

// ListMembers lists the members of an organization.
func (s *SDKProvider) ListMembers(ctx context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
	users, resp, err := s.client.Organizations.ListMembers(ctx, org, &github.ListMembersOptions{
		ListOptions: github.ListOptions{
			Page:    opts.Page,
			PerPage: opts.PerPage,
		},
	})
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to list organization members")
	}

	return s.convertUsers(users), nil
}

// ListOutsideCollaborators lists outside collaborators of an organization.
func (s *SDKProvider) ListOutsideCollaborators(ctx context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
	users, resp, err := s.client.Organizations.ListOutsideCollaborators(ctx, org, &github.ListOutsideCollaboratorsOptions{
		ListOptions: github.ListOptions{
			Page:    opts.Page,
			PerPage: opts.PerPage,
		},
	})
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to list outside collaborators")
	}

	return s.convertUsers(users), nil
}

// GetMembership retrieves the membership of user in org.
func (s *SDKProvider) GetMembership(ctx context.Context, org, user string) (*ghaudit.MembershipData, error) {
	m, resp, err := s.client.Organizations.GetOrgMembership(ctx, user, org)
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to get organization membership")
	}

	return &ghaudit.MembershipData{
		Organization: org,
		User:         user,
		Role:         m.GetRole(),
		State:        m.GetState(),
	}, nil
}

// User operations

// GetUser retrieves the public profile of a user.
func (s *SDKProvider) GetUser(ctx context.Context, user string) (*ghaudit.UserData, error) {
	u, resp, err := s.client.Users.Get(ctx, user)
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to get user")
	}

	return s.convertUser(u), nil
}

// Enterprise operations

// consumedLicenses is the response body of the consumed-licenses endpoint.
type consumedLicenses struct {
	TotalSeatsConsumed  int                            `json:"total_seats_consumed"`
	TotalSeatsPurchased int                            `json:"total_seats_purchased"`
	Users               []*ghaudit.ConsumedLicenseData `json:"users"`
}

// ListConsumedLicenses lists the consumed-license entries of an enterprise.
// go-github has no typed method for this endpoint, so the request is built
// with the client's own NewRequest and Do.
func (s *SDKProvider) ListConsumedLicenses(ctx context.Context, enterprise string, opts ghaudit.ListOptions) ([]*ghaudit.ConsumedLicenseData, error) {
	u := fmt.Sprintf("enterprises/%s/consumed-licenses", url.PathEscape(enterprise))
	query := url.Values{}
	if opts.PerPage > 0 {
		query.Set("per_page", fmt.Sprint(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", fmt.Sprint(opts.Page))
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := s.client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to build consumed licenses request")
	}

	var body consumedLicenses
	resp, err := s.client.Do(ctx, req, &body)
	if err != nil {
		return nil, s.wrapError(err, resp, "failed to list consumed licenses")
	}

	return body.Users, nil
}

// convertOrganization converts a go-github Organization to OrganizationData.
func (s *SDKProvider) convertOrganization(org *github.Organization) *ghaudit.OrganizationData {
	if org == nil {
		return nil
	}

	data := &ghaudit.OrganizationData{
		ID:          org.GetID(),
		Login:       org.GetLogin(),
		Name:        org.GetName(),
		Description: org.GetDescription(),
		HTMLURL:     org.GetHTMLURL(),
	}

	// The user organization listing returns the short form without html_url
	if data.HTMLURL == "" && data.Login != "" {
		data.HTMLURL = "https://github.com/" + data.Login
	}

	return data
}

// convertUsers converts a slice of go-github Users.
func (s *SDKProvider) convertUsers(users []*github.User) []*ghaudit.UserData {
	result := make([]*ghaudit.UserData, len(users))
	for i, u := range users {
		result[i] = s.convertUser(u)
	}
	return result
}

// convertUser converts a go-github User to UserData.
func (s *SDKProvider) convertUser(u *github.User) *ghaudit.UserData {
	if u == nil {
		return nil
	}

	return &ghaudit.UserData{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		Company:   u.GetCompany(),
		Location:  u.GetLocation(),
		Email:     u.GetEmail(),
		HTMLURL:   u.GetHTMLURL(),
		AvatarURL: u.GetAvatarURL(),
	}
}

// wrapError wraps go-github errors with appropriate error codes.
func (s *SDKProvider) wrapError(err error, resp *github.Response, message string) error {
	if err == nil {
		return nil
	}

	// Extract status code from response
	statusCode := 0
	if resp != nil && resp.Response != nil {
		statusCode = resp.StatusCode
	}

	// Try to get status code from ErrorResponse
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		statusCode = ghErr.Response.StatusCode
	}

	// Primary and secondary rate limits are reported as 403s
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return errors.Wrap(err, errors.CodeRateLimit, message)
	}

	if statusCode != 0 {
		return ghaudit.WrapHTTPError(err, statusCode, message)
	}

	// Fallback to network error for unknown errors
	return errors.Wrap(err, errors.CodeNetwork, message)
}
