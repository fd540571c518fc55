package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// upstream is the part of the inference client the contract check exercises.
type upstream interface {
	Health(ctx context.Context) error
	Predict(ctx context.Context, req domain.PredictionRequest) (domain.RawResponse, error)
}

// checkResult is one check against the inference API.
type checkResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Detail   string        `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

type checkReport struct {
	API     string        `json:"api"`
	Passed  bool          `json:"passed"`
	Results []checkResult `json:"results"`
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the inference API is up and answers in a recognized shape",
		Long: `Check that the inference API is up and answers in a recognized shape.

Calls /health and sends the sample form for every kind, concurrently. A
prediction passes when its response normalizes; sample data never counts
as a pass.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			client, err := root.client(cmd)
			if err != nil {
				return err
			}

			report := checkReport{API: root.apiURL, Results: runChecks(cmd.Context(), client, clockwork.NewRealClock())}
			report.Passed = true
			failed := 0
			for _, r := range report.Results {
				if !r.Passed {
					report.Passed = false
					failed++
				}
			}

			if output == outputJSON {
				err = writeJSON(cmd.OutOrStdout(), report)
			} else {
				err = writeCheckReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			if !report.Passed {
				return &FailureError{Message: fmt.Sprintf("contract check failed: %d of %d checks", failed, len(report.Results))}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text | json")
	return cmd
}

// runChecks checks health and every kind concurrently. Results keep a fixed
// order: health first, then kinds in dashboard order.
func runChecks(ctx context.Context, api upstream, clock clockwork.Clock) []checkResult {
	results := make([]checkResult, 1+len(domain.Kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = timeCheck(clock, "health", func() (string, error) {
			return "", api.Health(gctx)
		})
		return nil
	})
	for i, kind := range domain.Kinds {
		g.Go(func() error {
			results[i+1] = timeCheck(clock, "predict/"+string(kind), func() (string, error) {
				return checkKind(gctx, api, kind)
			})
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func timeCheck(clock clockwork.Clock, name string, fn func() (string, error)) checkResult {
	start := clock.Now()
	detail, err := fn()
	r := checkResult{Name: name, Passed: err == nil, Detail: detail, Duration: clock.Since(start)}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func checkKind(ctx context.Context, api upstream, kind domain.Kind) (string, error) {
	req, err := domain.BuildRequest(kind, sampleForm(kind))
	if err != nil {
		return "", err
	}
	raw, err := api.Predict(ctx, req)
	if err != nil {
		return "", err
	}
	result, err := domain.Normalize(kind, raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", result.Tier, strconv.FormatFloat(result.PrimaryMetric, 'f', -1, 64)), nil
}

func writeCheckReport(w io.Writer, report checkReport) error {
	fmt.Fprintf(w, "=== Inference API Contract Check (%s) ===\n\n", report.API)
	for _, r := range report.Results {
		status := "\033[32mPASS\033[0m"
		if !r.Passed {
			status = "\033[31mFAIL\033[0m"
		}
		fmt.Fprintf(w, "  %-20s %s  %s\n", r.Name, status, r.Detail)
	}

	for _, r := range report.Results {
		if r.Passed {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n  %s\n", r.Name, r.Error)
	}

	if report.Passed {
		_, err := fmt.Fprintln(w, "\nAll checks passed.")
		return err
	}
	_, err := fmt.Fprintln(w, "\nCheck FAILED.")
	return err
}
