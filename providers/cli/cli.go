//nolint:contextcheck // Context is properly passed via CommandWrapper.WithContext() but linter cannot verify
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/exec"
	"github.com/jmgilman/go/ghaudit"
)

// Option configures the CLI provider.
type Option func(*CLIProvider) error

// CLIProvider implements ghaudit.Provider using the gh CLI.
// Every operation is a `gh api` call, so authentication and the target host
// are inherited from the gh configuration (GH_TOKEN, GH_HOST, gh auth login).
type CLIProvider struct {
	wrapper *exec.CommandWrapper
}

// NewCLIProvider creates a provider using the gh CLI.
// Uses the workspace exec module for command execution.
//
// Example:
//
//	provider, err := cli.NewCLIProvider()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewCLIProvider(opts ...Option) (*CLIProvider, error) {
	// Default executor
	executor := exec.New(exec.WithInheritEnv())

	provider := &CLIProvider{
		wrapper: exec.NewWrapper(executor, "gh"),
	}

	// Apply options (can override the wrapper)
	for _, opt := range opts {
		if err := opt(provider); err != nil {
			return nil, err
		}
	}

	// Verify gh is installed and authenticated
	result, err := provider.wrapper.Run("auth", "status")
	if err != nil {
		return nil, wrapAuthError(err, result)
	}

	return provider, nil
}

// WithExecutor sets a custom executor for the CLI provider.
// This is primarily useful for testing with a mock executor.
func WithExecutor(executor exec.Executor) Option {
	return func(p *CLIProvider) error {
		if executor == nil {
			err := errors.New(errors.CodeInvalidInput, "executor cannot be nil")
			return errors.WithContext(err, "field", "executor")
		}
		p.wrapper = exec.NewWrapper(executor, "gh")
		return nil
	}
}

// WithToken passes an explicit token to gh through GH_TOKEN instead of the
// stored gh credentials.
func WithToken(token string) Option {
	return func(p *CLIProvider) error {
		if token == "" {
			err := errors.New(errors.CodeInvalidConfig, "token cannot be empty")
			return errors.WithContext(err, "field", "token")
		}
		p.wrapper.WithEnv(map[string]string{"GH_TOKEN": token})
		return nil
	}
}

// ListOrganizations lists organizations visible to the authenticated user.
func (c *CLIProvider) ListOrganizations(ctx context.Context, opts ghaudit.ListOptions) ([]*ghaudit.OrganizationData, error) {
	var apiResp []struct {
		ID          int64  `json:"id"`
		Login       string `json:"login"`
		Description string `json:"description"`
	}
	if err := c.api(ctx, withPage("user/orgs", opts), &apiResp, "failed to list organizations"); err != nil {
		return nil, err
	}

	result := make([]*ghaudit.OrganizationData, len(apiResp))
	for i, org := range apiResp {
		result[i] = &ghaudit.OrganizationData{
			ID:          org.ID,
			Login:       org.Login,
			Description: org.Description,
			HTMLURL:     "https://github.com/" + org.Login,
		}
	}

	return result, nil
}

// ListMembers lists the members of an organization.
func (c *CLIProvider) ListMembers(ctx context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
	var users []*ghaudit.UserData
	path := withPage(fmt.Sprintf("orgs/%s/members", url.PathEscape(org)), opts)
	if err := c.api(ctx, path, &users, "failed to list organization members"); err != nil {
		return nil, err
	}
	return users, nil
}

// ListOutsideCollaborators lists outside collaborators of an organization.
func (c *CLIProvider) ListOutsideCollaborators(ctx context.Context, org string, opts ghaudit.ListOptions) ([]*ghaudit.UserData, error) {
	var users []*ghaudit.UserData
	path := withPage(fmt.Sprintf("orgs/%s/outside_collaborators", url.PathEscape(org)), opts)
	if err := c.api(ctx, path, &users, "failed to list outside collaborators"); err != nil {
		return nil, err
	}
	return users, nil
}

// GetMembership retrieves the membership of user in org.
func (c *CLIProvider) GetMembership(ctx context.Context, org, user string) (*ghaudit.MembershipData, error) {
	var apiResp struct {
		Role  string `json:"role"`
		State string `json:"state"`
	}
	path := fmt.Sprintf("orgs/%s/memberships/%s", url.PathEscape(org), url.PathEscape(user))
	if err := c.api(ctx, path, &apiResp, "failed to get organization membership"); err != nil {
		return nil, err
	}

	return &ghaudit.MembershipData{
		Organization: org,
		User:         user,
		Role:         apiResp.Role,
		State:        apiResp.State,
	}, nil
}

// GetUser retrieves the public profile of a user.
func (c *CLIProvider) GetUser(ctx context.Context, user string) (*ghaudit.UserData, error) {
	var data ghaudit.UserData
	if err := c.api(ctx, "users/"+url.PathEscape(user), &data, "failed to get user"); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListConsumedLicenses lists the consumed-license entries of an enterprise.
func (c *CLIProvider) ListConsumedLicenses(ctx context.Context, enterprise string, opts ghaudit.ListOptions) ([]*ghaudit.ConsumedLicenseData, error) {
	var apiResp struct {
		Users []*ghaudit.ConsumedLicenseData `json:"users"`
	}
	path := withPage(fmt.Sprintf("enterprises/%s/consumed-licenses", url.PathEscape(enterprise)), opts)
	if err := c.api(ctx, path, &apiResp, "failed to list consumed licenses"); err != nil {
		return nil, err
	}
	return apiResp.Users, nil
}

// api runs `gh api <path>` and decodes the JSON response into target.
func (c *CLIProvider) api(ctx context.Context, path string, target interface{}, message string) error {
	result, err := c.wrapper.Clone().WithContext(ctx).Run("api", "-H", "Accept: application/vnd.github+json", path)
	if err != nil {
		return c.wrapCLIError(err, result, message)
	}

	return c.parseJSON(result, target)
}

// withPage appends the pagination query to an API path.
func withPage(path string, opts ghaudit.ListOptions) string {
	query := url.Values{}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// parseJSON unmarshals JSON from result stdout into the target.
func (c *CLIProvider) parseJSON(result *exec.Result, target interface{}) error {
	if err := json.Unmarshal([]byte(result.Stdout), target); err != nil {
		wrappedErr := errors.Wrap(err, errors.CodeInvalidInput, "failed to parse JSON response")
		wrappedErr = errors.WithContext(wrappedErr, "stdout", result.Stdout)
		return wrappedErr
	}
	return nil
}

// getErrorCodeFromResult maps gh exit codes and `gh api` error output to
// error codes. gh api prints "gh: <message> (HTTP <status>)" on failure.
func (c *CLIProvider) getErrorCodeFromResult(result *exec.Result) errors.ErrorCode {
	stderr := strings.ToLower(result.Stderr)

	switch {
	case strings.Contains(stderr, "(http 404)"), strings.Contains(stderr, "not found"):
		return errors.CodeNotFound
	case strings.Contains(stderr, "(http 401)"), strings.Contains(stderr, "bad credentials"),
		strings.Contains(stderr, "unauthorized"), strings.Contains(stderr, "authentication"):
		return errors.CodeUnauthorized
	case strings.Contains(stderr, "rate limit"), strings.Contains(stderr, "(http 429)"):
		return errors.CodeRateLimit
	case strings.Contains(stderr, "(http 403)"), strings.Contains(stderr, "forbidden"),
		strings.Contains(stderr, "permission denied"):
		return errors.CodeForbidden
	case strings.Contains(stderr, "(http 5"):
		return errors.CodeNetwork
	}

	if result.ExitCode == 4 {
		return errors.CodeUnauthorized
	}
	return errors.CodeExecutionFailed
}

// wrapCLIError wraps CLI execution errors with appropriate error types.
func (c *CLIProvider) wrapCLIError(err error, result *exec.Result, message string) error {
	if err == nil {
		return nil
	}

	// Default to execution failed
	code := errors.CodeExecutionFailed

	if result != nil {
		code = c.getErrorCodeFromResult(result)
	}

	wrappedErr := errors.Wrap(err, code, message)

	// Include stderr in error details if available
	if result != nil && result.Stderr != "" {
		wrappedErr = errors.WithContext(wrappedErr, "stderr", result.Stderr)
		wrappedErr = errors.WithContext(wrappedErr, "exit_code", result.ExitCode)
	}

	return wrappedErr
}

// wrapAuthError wraps authentication errors from gh CLI.
func wrapAuthError(err error, result *exec.Result) error {
	authErr := errors.Wrap(err, errors.CodeUnauthorized, "gh CLI not authenticated")
	authErr = errors.WithContext(authErr, "hint", "Run 'gh auth login' to authenticate")
	if result != nil && result.Stderr != "" {
		authErr = errors.WithContext(authErr, "stderr", result.Stderr)
	}
	return authErr
}
