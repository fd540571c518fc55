package domain

import (
	"fmt"
	"strings"
)

// Kind identifies one of the three prediction flows. The value doubles as the
// URL path segment of the inference endpoint.
type Kind string

const (
	KindDemand   Kind = "demand"
	KindCrisis   Kind = "crisis"
	KindPriority Kind = "priority"
)

// Kinds lists every supported prediction kind in dashboard order.
var Kinds = []Kind{KindDemand, KindCrisis, KindPriority}

// ParseKind resolves a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown prediction kind %q", s)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDemand, KindCrisis, KindPriority:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }
