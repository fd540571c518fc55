package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/predict-dashboard-service/internal/adapter/predictapi"
	"github.com/couchcryptid/predict-dashboard-service/internal/config"
	"github.com/couchcryptid/predict-dashboard-service/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// Metrics register with the default registry, so they are built once per process.
var cliMetrics = sync.OnceValue(observability.NewMetrics)

type rootOptions struct {
	apiURL  string
	timeout string
	debug   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Assess demand, crisis and priority predictions from the command line",
		Long: `predict talks to the prediction inference API the same way the dashboard does.

Form values are validated before any request is sent. When the API is
unreachable or answers in an unrecognized shape, the built-in sample data is
shown instead and marked as degraded.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", sharedcfg.EnvOrDefault("PREDICT_API_URL", "http://localhost:8000"), "Inference API base URL")
	flags.StringVar(&opts.timeout, "timeout", sharedcfg.EnvOrDefault("PREDICT_TIMEOUT", "10s"), "Per-request timeout")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newAssessCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newFallbackCommand(opts))

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := "warn"
	if o.debug {
		level = "debug"
	}
	return observability.NewTextLogger(cmd.ErrOrStderr(), level)
}

// client validates --api and --timeout and builds the inference client.
func (o *rootOptions) client(cmd *cobra.Command) (*predictapi.Client, error) {
	base, err := config.ParseBaseURL(o.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid --api: %w", err)
	}
	timeout, err := config.ParseTimeout(o.timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid --timeout: %w", err)
	}
	return predictapi.NewClient(base, timeout, o.logger(cmd), cliMetrics()), nil
}
