package domain

import "math"

// PresentationEncoding is the visual form of a result: a semantic color
// token, a bar width and a two-stop gradient. It is derived, never stored.
type PresentationEncoding struct {
	ColorToken    string   `json:"color_token"`
	BarPercent    float64  `json:"bar_percent"`
	GradientStops []string `json:"gradient_stops"`
}

// Palette maps tiers to color tokens for one dashboard page. Pages do not
// share a palette: crisis renders LOW as "health" while priority uses a plain
// "outline" badge.
type Palette struct {
	Colors map[Tier]string
}

var palettes = map[Kind]Palette{
	KindCrisis: {Colors: map[Tier]string{
		TierCritical: "destructive",
		TierHigh:     "secondary",
		TierMedium:   "default",
		TierLow:      "health",
	}},
	KindPriority: {Colors: map[Tier]string{
		TierCritical: "destructive",
		TierHigh:     "secondary",
		TierMedium:   "default",
		TierLow:      "outline",
	}},
	KindDemand: {Colors: map[Tier]string{
		TierCritical: "destructive",
		TierHigh:     "secondary",
		TierMedium:   "default",
		TierLow:      "health",
	}},
}

// gradientBase is shared by all pages.
var gradientBase = map[Tier]string{
	TierCritical: "destructive",
	TierHigh:     "secondary",
	TierMedium:   "primary",
	TierLow:      "health",
}

const mutedToken = "muted"

// PaletteFor returns the page palette for kind.
func PaletteFor(kind Kind) Palette {
	return palettes[kind]
}

// Encode derives the visual encoding of a score on a scale of [0, scaleMax].
// Bar width is clamped to [0, 100] because upstream scores are not guaranteed
// to respect their documented bounds.
func (p Palette) Encode(tier Tier, score, scaleMax float64) PresentationEncoding {
	color, ok := p.Colors[tier]
	if !ok {
		color = mutedToken
	}
	enc := PresentationEncoding{
		ColorToken: color,
		BarPercent: BarPercent(score, scaleMax),
	}
	if base, ok := gradientBase[tier]; ok {
		enc.GradientStops = []string{base, base + "/70"}
	} else {
		enc.GradientStops = []string{mutedToken, mutedToken}
	}
	return enc
}

// Present encodes a result on its kind's palette and nominal scale.
func Present(r PredictionResult) PresentationEncoding {
	return PaletteFor(r.Kind).Encode(r.Tier, r.PrimaryMetric, ScaleMax(r.Kind))
}

// BarPercent returns score as a percentage of scaleMax, clamped to [0, 100].
func BarPercent(score, scaleMax float64) float64 {
	if scaleMax <= 0 || math.IsNaN(score) || math.IsNaN(scaleMax) {
		return 0
	}
	pct := score / scaleMax * 100
	return math.Max(0, math.Min(100, pct))
}

// ComponentBars converts named sub-scores into clamped bar percentages.
func ComponentBars(components map[string]float64, scaleMax float64) map[string]float64 {
	if len(components) == 0 {
		return nil
	}
	out := make(map[string]float64, len(components))
	for name, v := range components {
		out[name] = BarPercent(v, scaleMax)
	}
	return out
}
