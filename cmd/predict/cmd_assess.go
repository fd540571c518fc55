package main

import (
	"fmt"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
	"github.com/spf13/cobra"
)

type assessOptions struct {
	sets   []string
	file   string
	sample bool
	output string
	strict bool
}

func newAssessCommand(root *rootOptions) *cobra.Command {
	opts := &assessOptions{}
	cmd := &cobra.Command{
		Use:   "assess <demand|crisis|priority>",
		Short: "Run one prediction and print the classified result",
		Long: `Run one prediction and print the classified result.

Form values come from --sample, then --file (YAML or JSON), then each --set,
later sources overriding earlier ones:

  predict assess crisis --sample --set district=Pune --set month=7
  predict assess demand --file demand.yaml --output json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "Form value as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML or JSON file of form values")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "Start from the built-in sample form")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text | json")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when sample data is shown instead of a live result")
	return cmd
}

func runAssess(cmd *cobra.Command, root *rootOptions, opts *assessOptions, arg string) error {
	kind, err := domain.ParseKind(arg)
	if err != nil {
		return err
	}
	if err := checkOutput(opts.output); err != nil {
		return err
	}
	form, err := buildForm(kind, opts.sample, opts.file, opts.sets)
	if err != nil {
		return err
	}
	client, err := root.client(cmd)
	if err != nil {
		return err
	}

	predictor := pipeline.NewPredictor(client, root.logger(cmd), cliMetrics())
	a, err := predictor.Assess(cmd.Context(), kind, form)
	if err != nil {
		return err
	}
	if err := writeAssessment(cmd.OutOrStdout(), a, opts.output); err != nil {
		return err
	}

	if opts.strict && a.Degraded {
		return &FailureError{Message: fmt.Sprintf("%s assessment degraded: %s", kind, a.Cause)}
	}
	return nil
}

func kindNames() []string {
	names := make([]string, len(domain.Kinds))
	for i, k := range domain.Kinds {
		names[i] = string(k)
	}
	return names
}
