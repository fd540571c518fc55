package main

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// sampleForms are known-good inputs, used by check and by assess --sample.
var sampleForms = map[domain.Kind]domain.Form{
	domain.KindDemand: {
		"district": "Mumbai", "service_type": "Ambulance_Emergency", "month": 7,
		"day_of_week": 1, "is_weekend": 0, "is_monsoon": 1, "population_factor": 2.5,
		"urban_ratio": 1.0, "demand_lag_7days": 45, "demand_lag_30days": 42,
		"resource_utilization_rate": 0.75, "complaint_rate": 0.15, "response_time_minutes": 16.5,
	},
	domain.KindCrisis: {
		"district": "Mumbai", "month": 4, "is_monsoon": 0, "population_factor": 2.5,
		"demand_requests": 150, "pending_requests": 90, "citizen_complaints": 18,
		"response_time_hours": 72, "demand_lag_7days": 140, "demand_lag_30days": 100,
		"resolution_rate": 0.3,
	},
	domain.KindPriority: {
		"domain": "Health", "district": "Mumbai", "issue_type": "Hospital_Bed_ICU",
		"requests": 120, "complaints": 15, "response_time": 48, "is_monsoon": 0,
		"population_factor": 2.5,
	},
}

func sampleForm(kind domain.Kind) domain.Form {
	return maps.Clone(sampleForms[kind])
}

// readFormFile loads form values from a YAML or JSON mapping.
func readFormFile(path string) (domain.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	return parseFormDocument(data)
}

func parseFormDocument(data []byte) (domain.Form, error) {
	var form domain.Form
	if err := yaml.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("form file must be a mapping of field to value: %w", err)
	}
	if form == nil {
		form = domain.Form{}
	}
	return form, nil
}

// parseSet reads one key=value override. The value is typed the way YAML
// would type it, so month=4 is a number and district=Mumbai is text.
func parseSet(pair string) (string, any, error) {
	key, raw, ok := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("--set %q: expected key=value", pair)
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return key, raw, nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return key, raw, nil
	}
	return key, v, nil
}

// buildForm layers the sample form, then the file, then each --set.
func buildForm(kind domain.Kind, useSample bool, file string, sets []string) (domain.Form, error) {
	form := domain.Form{}
	if useSample {
		form = sampleForm(kind)
	}
	if file != "" {
		fromFile, err := readFormFile(file)
		if err != nil {
			return nil, err
		}
		maps.Copy(form, fromFile)
	}
	for _, pair := range sets {
		key, v, err := parseSet(pair)
		if err != nil {
			return nil, err
		}
		form[key] = v
	}
	return form, nil
}
