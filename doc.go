// Package ghaudit collects user and license inventory from a GitHub
// Enterprise account.
//
// A run lists the organizations visible to the token, enumerates the members
// and outside collaborators of each one together with their membership role,
// public profile and enterprise license, and aggregates the result into an
// EnterpriseSnapshot. The snapshot is the hand-off to the report package,
// which renders it as markdown.
//
// # Architecture
//
//  1. Provider abstracts the GitHub API. providers/sdk uses go-github,
//     providers/cli shells out to the gh CLI.
//  2. Paginate drives every listing call with the same termination rule:
//     stop after the first page shorter than the page size.
//  3. BuildLicenseIndex turns the enterprise consumed-license feed into a
//     lookup by login.
//  4. Enumerator collects one organization.
//  5. Aggregator runs the Enumerator for every organization, sorts the
//     results and attributes each user to the first organization (by name)
//     it appears in, which yields the unique-user counts.
//
// # Failure Policy
//
// Failures are tiered. Listing organizations or the members of any
// organization is mandatory: the run fails and no snapshot is produced.
// License data and outside collaborators are best effort: a failure is
// logged and the run continues without them. A failed membership or profile
// lookup only affects that user, who is kept with role "unknown" and "N/A"
// profile fields.
//
// Errors are PlatformErrors from github.com/jmgilman/go/errors. Errors
// classified as retryable (rate limits, network errors, 5xx responses) are
// retried with exponential backoff before any of the above applies.
//
// # Usage
//
//	provider, err := sdk.NewSDKProvider(sdk.WithToken(os.Getenv("GITHUB_TOKEN")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := ghaudit.NewClient(provider,
//	    ghaudit.WithEnterprise("acme"),
//	    ghaudit.WithConcurrency(4),
//	    ghaudit.WithLogger(slog.Default()),
//	)
//
//	snapshot, err := client.Collect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(snapshot.Summary.TotalUniqueUsers)
//
// # Concurrency
//
// Users within an organization, and organizations themselves, may be
// collected in parallel (WithConcurrency, WithOrganizationConcurrency). The
// output order never depends on timing: users and organizations are sorted
// and the unique-user attribution runs only after all data is collected.
package ghaudit
