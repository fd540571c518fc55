package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func checkOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	}
	return fmt.Errorf("unknown --output %q (want text or json)", format)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeAssessment(w io.Writer, a pipeline.Assessment, format string) error {
	if format == outputJSON {
		return writeJSON(w, a)
	}

	r := a.Result
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "kind:\t%s\n", r.Kind)
	if a.District != "" {
		fmt.Fprintf(tw, "district:\t%s\n", a.District)
	}
	fmt.Fprintf(tw, "tier:\t%s (%s)\n", r.Tier, r.Origin)
	fmt.Fprintf(tw, "score:\t%s\n", strconv.FormatFloat(r.PrimaryMetric, 'f', -1, 64))
	fmt.Fprintf(tw, "bar:\t%.0f%% %s\n", a.Presentation.BarPercent, a.Presentation.ColorToken)
	if r.Confidence != nil {
		fmt.Fprintf(tw, "confidence:\t%.2f\n", *r.Confidence)
	}
	if r.Meta.DaysUntilCrisis != nil {
		fmt.Fprintf(tw, "days until crisis:\t%d\n", *r.Meta.DaysUntilCrisis)
	}
	if r.Meta.AffectedPopulation != nil {
		fmt.Fprintf(tw, "affected population:\t%d\n", *r.Meta.AffectedPopulation)
	}
	if r.Meta.Trend != "" {
		fmt.Fprintf(tw, "trend:\t%s\n", r.Meta.Trend)
	}
	for _, name := range slices.Sorted(maps.Keys(r.Components)) {
		fmt.Fprintf(tw, "%s:\t%s (%.0f%%)\n", name,
			strconv.FormatFloat(r.Components[name], 'f', -1, 64), a.ComponentBars[name])
	}
	if r.Recommendation != "" {
		fmt.Fprintf(tw, "recommendation:\t%s\n", r.Recommendation)
	}
	if a.Degraded {
		fmt.Fprintf(tw, "notice:\t%s\n", a.Notice)
	}
	return tw.Flush()
}
