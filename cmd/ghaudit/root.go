package main

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmgilman/go/ghaudit/internal/config"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ghaudit",
		Short: "Inventory users and license consumption across a GitHub Enterprise",
		Long: `ghaudit lists every organization visible to the token, collects the members
and outside collaborators of each one, enriches them with profile and
enterprise license data, and writes a JSON or YAML snapshot together with a
markdown report.

Configuration is read from the config file, a .env file and the environment
(GITHUB_TOKEN, GITHUB_ENTERPRISE and GHAUDIT_* variables).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "ghaudit.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newCollectCommand(opts))
	cmd.AddCommand(newRenderCommand(opts))

	return cmd
}

// loadConfig loads and validates the configuration.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the run logger. Every record carries the run_id of this
// invocation.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With("run_id", uuid.NewString()), nil
}
