// Package domain models the three governance predictions shown on the
// dashboard and the pure steps applied to each of them.
//
// # Prediction Kinds
//
//	demand    next-week service demand for a district (request count)
//	crisis    probability that a district enters a service crisis (0-1)
//	priority  multi-criteria urgency score for an open issue (0-10)
//
// # Request Validation
//
// Form values arrive loosely typed (numbers, numeric strings, booleans for
// flags). [BuildRequest] checks every field against a documented range table
// and reports all offenders at once in a [ValidationError]. Values are never
// clamped into range; an out-of-range month is an error, not month 12.
//
// # Response Shapes
//
// The inference API has answered in two shapes over time:
//
//	flat:    {"predicted_demand": 58, "trend": "increasing", ...}
//	nested:  {"success": true, "prediction": {"predicted_demand": 58, ...}}
//
// Priority results may also be nested under "priority", and older backends
// use alert_level / crisis_predicted / affected_population_estimate /
// recommendations[] in place of the current names. [Normalize] accepts all of
// them and produces the same [PredictionResult] for equivalent payloads.
//
// # Tiers
//
// Scores are classified into LOW, MEDIUM, HIGH and CRITICAL by [Classify]
// using inclusive lower bounds:
//
//	crisis:   >=0.8 critical | >=0.6 high | >=0.4 medium | else low
//	priority: >=8   critical | >=6   high | >=4   medium | else low
//	demand:   >=240 critical | >=180 high | >=120 medium | else low
//
// When the upstream payload carries its own tier label (risk_level,
// alert_level, priority_level) and it names a known tier, the label wins.
//
// # Fallback
//
// [Fallback] returns one fixed sample result per kind, marked
// Origin "fallback". The templates are literal data: no randomness and no
// timestamps, so the dashboard shows identical numbers on every outage.
package domain
