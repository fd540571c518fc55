package main

import (
	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
	"github.com/spf13/cobra"
)

func newFallbackCommand(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:       "fallback <demand|crisis|priority>",
		Short:     "Print the sample data shown when the inference API is unavailable",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}
			if err := checkOutput(output); err != nil {
				return err
			}
			a, err := pipeline.NewPredictor(nil, root.logger(cmd), cliMetrics()).Fallback(kind)
			if err != nil {
				return err
			}
			return writeAssessment(cmd.OutOrStdout(), a, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text | json")
	return cmd
}
