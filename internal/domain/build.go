package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Form holds raw dashboard form values keyed by API field name. Values may be
// JSON numbers, numeric strings, booleans (flags) or text.
type Form map[string]any

type fieldType int

const (
	fieldText fieldType = iota
	fieldInteger
	fieldNumber
	fieldFlag
	fieldEnum
)

// fieldRule documents the accepted type and range of one request field.
type fieldRule struct {
	name     string
	typ      fieldType
	min, max float64
	options  []string
	def      any // non-nil makes the field optional
}

func text(name string) fieldRule { return fieldRule{name: name, typ: fieldText} }

func integer(name string, lo, hi float64) fieldRule {
	return fieldRule{name: name, typ: fieldInteger, min: lo, max: hi}
}

// Counts stop at MaxInt32 so every accepted value fits an int on the wire.
func count(name string) fieldRule { return integer(name, 0, math.MaxInt32) }

func number(name string, lo, hi float64) fieldRule {
	return fieldRule{name: name, typ: fieldNumber, min: lo, max: hi}
}

func nonNegative(name string) fieldRule { return number(name, 0, math.Inf(1)) }

func rate(name string) fieldRule { return number(name, 0, 1) }

func flag(name string) fieldRule { return fieldRule{name: name, typ: fieldFlag, min: 0, max: 1} }

func enum(name string, options ...string) fieldRule {
	return fieldRule{name: name, typ: fieldEnum, options: options}
}

func (r fieldRule) withDefault(v any) fieldRule {
	r.def = v
	return r
}

// Population factor bounds match the dashboard slider.
const (
	minPopulationFactor = 1.0
	maxPopulationFactor = 2.5
)

// Priority domains and severity levels accepted by the scoring engine.
var (
	PriorityDomains = []string{"Health", "Infrastructure", "PublicSafety"}
	SeverityLevels  = []string{"Critical", "High", "Medium", "Low"}
)

var requestRules = map[Kind][]fieldRule{
	KindDemand: {
		text("district"),
		text("service_type"),
		integer("month", 1, 12),
		integer("day_of_week", 0, 6),
		flag("is_weekend"),
		flag("is_monsoon"),
		number("population_factor", minPopulationFactor, maxPopulationFactor),
		rate("urban_ratio"),
		nonNegative("demand_lag_7days"),
		nonNegative("demand_lag_30days"),
		rate("resource_utilization_rate"),
		rate("complaint_rate"),
		nonNegative("response_time_minutes"),
	},
	KindCrisis: {
		text("district"),
		integer("month", 1, 12),
		flag("is_monsoon"),
		number("population_factor", minPopulationFactor, maxPopulationFactor),
		count("demand_requests"),
		count("pending_requests"),
		count("citizen_complaints"),
		nonNegative("response_time_hours"),
		nonNegative("demand_lag_7days"),
		nonNegative("demand_lag_30days"),
		rate("resolution_rate"),
	},
	KindPriority: {
		enum("domain", PriorityDomains...),
		text("district"),
		text("issue_type"),
		count("requests"),
		count("complaints"),
		nonNegative("response_time"),
		flag("is_monsoon"),
		number("population_factor", minPopulationFactor, maxPopulationFactor),
		rate("resolution_rate").withDefault(0.7),
		enum("severity_level", SeverityLevels...).withDefault("Medium"),
	},
}

// BuildRequest validates raw form values for kind and returns the typed
// request. Every missing, mistyped or out-of-range field is reported in a
// single *ValidationError; nothing is coerced into range.
func BuildRequest(kind Kind, form Form) (PredictionRequest, error) {
	rules, ok := requestRules[kind]
	if !ok {
		return nil, fmt.Errorf("build request: unknown prediction kind %q", kind)
	}

	verr := &ValidationError{Kind: kind}
	clean := make(map[string]any, len(rules))
	for _, rule := range rules {
		v, problem := rule.check(form[rule.name])
		if problem != "" {
			verr.add(rule.name, problem)
			continue
		}
		clean[rule.name] = v
	}
	if !verr.empty() {
		verr.sort()
		return nil, verr
	}

	switch kind {
	case KindDemand:
		var req DemandRequest
		return decodeRequest(clean, &req)
	case KindCrisis:
		var req CrisisRequest
		return decodeRequest(clean, &req)
	default:
		var req PriorityRequest
		return decodeRequest(clean, &req)
	}
}

func decodeRequest[T DemandRequest | CrisisRequest | PriorityRequest](clean map[string]any, out *T) (PredictionRequest, error) {
	if err := mapstructure.Decode(clean, out); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return any(*out).(PredictionRequest), nil
}

// check returns the normalized value, or a user-facing problem description.
func (r fieldRule) check(raw any) (any, string) {
	if isAbsent(raw) {
		if r.def != nil {
			return r.def, ""
		}
		return nil, "is required"
	}

	switch r.typ {
	case fieldText:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be text"
		}
		return strings.TrimSpace(s), ""

	case fieldEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be text"
		}
		for _, opt := range r.options {
			if strings.EqualFold(strings.TrimSpace(s), opt) {
				return opt, ""
			}
		}
		return nil, "must be one of " + strings.Join(r.options, ", ")

	case fieldFlag:
		if b, ok := raw.(bool); ok {
			if b {
				return 1, ""
			}
			return 0, ""
		}
		f, ok := toNumber(raw)
		if !ok || (f != 0 && f != 1) {
			return nil, "must be 0 or 1"
		}
		return int(f), ""

	case fieldInteger:
		f, ok := toNumber(raw)
		if !ok || f != math.Trunc(f) {
			return nil, "must be a whole number"
		}
		if problem := r.outOfRange(f); problem != "" {
			return nil, problem
		}
		return int(f), ""

	default:
		f, ok := toNumber(raw)
		if !ok {
			return nil, "must be a number"
		}
		if problem := r.outOfRange(f); problem != "" {
			return nil, problem
		}
		return f, ""
	}
}

func (r fieldRule) outOfRange(f float64) string {
	if f >= r.min && f <= r.max {
		return ""
	}
	if math.IsInf(r.max, 1) {
		return "must be at least " + formatBound(r.min)
	}
	return fmt.Sprintf("must be between %s and %s", formatBound(r.min), formatBound(r.max))
}

func formatBound(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toNumber accepts the numeric shapes a form or JSON decoder can produce.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
