package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tier is the ordered severity/priority classification shown on the dashboard.
// The zero value means "not yet classified" and never leaves the normalizer
// or the fallback synthesizer.
type Tier int

const (
	TierUnset Tier = iota
	TierLow
	TierMedium
	TierHigh
	TierCritical
)

var tierNames = map[Tier]string{
	TierLow:      "LOW",
	TierMedium:   "MEDIUM",
	TierHigh:     "HIGH",
	TierCritical: "CRITICAL",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "UNSET"
}

// ParseTier maps an upstream label such as "high" or "CRITICAL" to a Tier.
func ParseTier(label string) (Tier, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "LOW":
		return TierLow, true
	case "MEDIUM":
		return TierMedium, true
	case "HIGH":
		return TierHigh, true
	case "CRITICAL":
		return TierCritical, true
	default:
		return TierUnset, false
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode tier: %w", err)
	}
	parsed, ok := ParseTier(s)
	if !ok {
		return fmt.Errorf("unknown tier %q", s)
	}
	*t = parsed
	return nil
}
