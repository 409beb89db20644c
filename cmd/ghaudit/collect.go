package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/jmgilman/go/ghaudit/internal/config"
	"github.com/jmgilman/go/ghaudit/internal/progress"
	"github.com/jmgilman/go/ghaudit/providers/cli"
	"github.com/jmgilman/go/ghaudit/providers/sdk"
	"github.com/jmgilman/go/ghaudit/report"
	"github.com/spf13/cobra"
)

func newCollectCommand(global *globalOptions) *cobra.Command {
	var noReport bool

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect every organization and write the snapshot and report",
		Long: `Collect lists the organizations visible to the token and collects their
users, roles, profiles and license attributes. On success the snapshot is
written to the configured output path (YAML when it ends in .yaml or .yml,
JSON otherwise) and the markdown report to the configured report path.

A failure to list organizations or members aborts the run without writing
any file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if noReport {
				cfg.Report = ""
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			return runCollect(cmd.Context(), cfg, provider, logger, progress.NewReporter(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().BoolVar(&noReport, "no-report", false, "write the snapshot only")

	return cmd
}

// newProvider builds the Provider selected by the configuration.
func newProvider(cfg *config.Config) (ghaudit.Provider, error) {
	switch cfg.Provider {
	case config.ProviderCLI:
		return cli.NewCLIProvider(cli.WithToken(cfg.Token))
	case config.ProviderSDK:
		return sdk.NewSDKProvider(sdk.WithToken(cfg.Token), sdk.WithBaseURL(cfg.APIURL))
	default:
		err := errors.Newf(errors.CodeInvalidConfig, "unknown provider %q", cfg.Provider)
		return nil, errors.WithContext(err, "field", "provider")
	}
}

// clientOptions maps the configuration onto client options.
func clientOptions(cfg *config.Config, logger *slog.Logger, reporter progress.Reporter) []ghaudit.Option {
	opts := []ghaudit.Option{
		ghaudit.WithEnterprise(cfg.Enterprise),
		ghaudit.WithDelay(cfg.Delay),
		ghaudit.WithConcurrency(cfg.Concurrency),
		ghaudit.WithOrganizationConcurrency(cfg.OrgConcurrency),
		ghaudit.WithMaxRetries(cfg.MaxRetries),
		ghaudit.WithProfileCacheTTL(cfg.CacheTTL),
		ghaudit.WithOrganizations(cfg.Organizations...),
		ghaudit.WithLogger(logger),
	}
	if reporter != nil {
		opts = append(opts, ghaudit.WithProgress(reporter.Update))
	}
	return opts
}

// runCollect runs one collection and writes its artifacts. Nothing is
// written unless the collection succeeds.
func runCollect(ctx context.Context, cfg *config.Config, provider ghaudit.Provider, logger *slog.Logger, reporter progress.Reporter) error {
	client := ghaudit.NewClient(provider, clientOptions(cfg, logger, reporter)...)

	logger.Info("starting collection", "enterprise", cfg.Enterprise, "provider", string(cfg.Provider))

	snap, err := client.Collect(ctx)
	if reporter != nil {
		reporter.Finish()
	}
	if err != nil {
		logger.Error("collection failed", "error", err)
		return err
	}

	if err := writeSnapshot(cfg.Output, snap); err != nil {
		return err
	}
	logger.Info("wrote snapshot", "path", cfg.Output)

	if cfg.Report != "" {
		if err := writeAtomically(cfg.Report, func(w io.Writer) error {
			return report.Render(w, snap)
		}); err != nil {
			return err
		}
		logger.Info("wrote report", "path", cfg.Report)
	}

	logger.Info("collection complete",
		"organizations", snap.Summary.TotalOrganizations,
		"users", snap.Summary.TotalUsers,
		"unique_users", snap.Summary.TotalUniqueUsers)

	return nil
}
