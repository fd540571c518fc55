package main

import (
	"math"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
)

const modelVersion = "mock-1.0"

// Field names follow the inference backend, so both response shapes carry
// the backend's own aliases (alert_level, crisis_predicted, ...).

type demandPrediction struct {
	District        string  `json:"district"`
	ServiceType     string  `json:"service_type"`
	PredictedDemand int     `json:"predicted_demand"`
	ConfidenceLevel string  `json:"confidence_level"`
	ConfidenceScore float64 `json:"confidence_score"`
	Trend           string  `json:"trend"`
	Recommendation  string  `json:"recommendation"`
	ModelVersion    string  `json:"model_version"`
}

type crisisPrediction struct {
	District                   string   `json:"district"`
	CrisisPredicted            bool     `json:"crisis_predicted"`
	Probability                float64  `json:"probability"`
	AlertLevel                 string   `json:"alert_level"`
	DaysUntilCrisis            *int     `json:"days_until_crisis"`
	AffectedPopulationEstimate int      `json:"affected_population_estimate"`
	Recommendations            []string `json:"recommendations"`
	ModelVersion               string   `json:"model_version"`
}

type priorityComponents struct {
	Urgency              int `json:"urgency"`
	Impact               int `json:"impact"`
	ResourceAvailability int `json:"resource_availability"`
	CitizenSentiment     int `json:"citizen_sentiment"`
}

type priorityResult struct {
	District       string             `json:"district"`
	Domain         string             `json:"domain"`
	IssueType      string             `json:"issue_type"`
	PriorityScore  float64            `json:"priority_score"`
	Components     priorityComponents `json:"components"`
	Recommendation string             `json:"recommendation"`
}

var crisisActions = []string{
	"Deploy mobile water tankers immediately",
	"Issue public advisory via SMS/WhatsApp",
	"Coordinate with nearby wards for water sharing",
	"Increase water treatment plant capacity",
}

// predictDemand blends the two demand lags, leaning toward the recent one,
// then scales for season and population.
func predictDemand(r domain.DemandRequest) demandPrediction {
	trend := r.DemandLag7Days - r.DemandLag30Days
	base := 0.7*r.DemandLag7Days + 0.3*r.DemandLag30Days + 0.5*trend
	scale := 1 + 0.15*float64(r.IsMonsoon) + 0.05*float64(r.IsWeekend)
	scale *= 0.8 + 0.2*r.PopulationFactor
	predicted := int(math.Round(math.Max(0, base*scale)))

	p := demandPrediction{
		District:        r.District,
		ServiceType:     r.ServiceType,
		PredictedDemand: predicted,
		ConfidenceLevel: "Medium",
		ConfidenceScore: 0.7,
		Trend:           "Stable",
		ModelVersion:    modelVersion,
	}
	if math.Abs(trend) < 10 {
		p.ConfidenceLevel, p.ConfidenceScore = "High", 0.9
	}
	switch {
	case trend > 0:
		p.Trend = "Increasing"
		p.Recommendation = "Pre-position additional staff for the coming week"
	case trend < 0:
		p.Trend = "Decreasing"
		p.Recommendation = "Current staffing is sufficient"
	default:
		p.Recommendation = "Maintain current allocation"
	}
	return p
}

// predictCrisis scores backlog, complaints, slow response, unresolved work
// and a rising trend into a probability.
func predictCrisis(r domain.CrisisRequest) crisisPrediction {
	pendingRatio := float64(r.PendingRequests) / float64(r.DemandRequests+1)
	trendRatio := (r.DemandLag7Days - r.DemandLag30Days) / (r.DemandLag30Days + 1)

	score := 0.35*math.Min(pendingRatio, 1) +
		0.2*math.Min(float64(r.CitizenComplaints)/20, 1) +
		0.2*math.Min(r.ResponseTimeHours/96, 1) +
		0.15*(1-r.ResolutionRate) +
		0.1*math.Min(math.Max(trendRatio, 0), 1)
	probability := math.Round(math.Min(math.Max(score, 0), 1)*1000) / 1000

	p := crisisPrediction{
		District:                   r.District,
		CrisisPredicted:            probability >= 0.5,
		Probability:                probability,
		AlertLevel:                 alertLevel(probability),
		AffectedPopulationEstimate: int(float64(r.DemandRequests) * r.PopulationFactor * 100),
		Recommendations:            []string{},
		ModelVersion:               modelVersion,
	}
	if p.CrisisPredicted {
		days := 7
		p.DaysUntilCrisis = &days
		p.Recommendations = crisisActions
	}
	return p
}

func alertLevel(probability float64) string {
	switch {
	case probability > 0.8:
		return "CRITICAL"
	case probability > 0.6:
		return "HIGH"
	case probability > 0.4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// scorePriority is the weighted engine:
// urgency 0.4, impact 0.3, resource availability 0.2, sentiment 0.1.
func scorePriority(r domain.PriorityRequest) priorityResult {
	resolved := float64(int(float64(r.Requests) * r.ResolutionRate))
	pending := float64(int(float64(r.Requests) * (1 - r.ResolutionRate)))
	requests := float64(r.Requests)

	c := priorityComponents{
		Urgency:              urgencyScore(r, pending),
		Impact:               impactScore(requests * r.PopulationFactor * 100),
		ResourceAvailability: resourceScore(r.Domain, resolved/(requests+1)),
		CitizenSentiment:     sentimentScore(r.Complaints),
	}
	score := float64(c.Urgency)*0.4 + float64(c.Impact)*0.3 +
		float64(c.ResourceAvailability)*0.2 + float64(c.CitizenSentiment)*0.1
	score = math.Round(score*100) / 100

	recommendation := "Normal priority queue"
	switch {
	case score > 7.5:
		recommendation = "Immediate action required"
	case score > 6.0:
		recommendation = "Schedule within 24 hours"
	}

	return priorityResult{
		District:       r.District,
		Domain:         r.Domain,
		IssueType:      r.IssueType,
		PriorityScore:  score,
		Components:     c,
		Recommendation: recommendation,
	}
}

func urgencyScore(r domain.PriorityRequest, pending float64) int {
	var u int
	switch r.Domain {
	case "Health":
		u = 7
		if r.Requests > 80 {
			u += 2
		}
		if r.ResponseTime > 30 {
			u++
		}
	case "Infrastructure":
		u = 5
		if pending/float64(r.Requests+1) > 0.5 {
			u += 3
		}
		if r.IsMonsoon == 1 {
			u += 2
		}
	default:
		u = 8
		switch r.SeverityLevel {
		case "Critical":
			u = 10
		case "High":
			u = 9
		}
	}
	return min(10, u)
}

func impactScore(affected float64) int {
	switch {
	case affected > 50000:
		return 10
	case affected > 20000:
		return 8
	case affected > 10000:
		return 6
	case affected > 5000:
		return 4
	default:
		return 2
	}
}

func resourceScore(domainName string, ratio float64) int {
	if domainName == "Infrastructure" {
		switch {
		case ratio > 0.8:
			return 8
		case ratio > 0.5:
			return 5
		default:
			return 2
		}
	}
	switch {
	case ratio > 0.9:
		return 9
	case ratio > 0.7:
		return 6
	default:
		return 3
	}
}

func sentimentScore(complaints int) int {
	switch {
	case complaints > 10:
		return 10
	case complaints > 7:
		return 8
	case complaints > 5:
		return 6
	case complaints > 3:
		return 4
	default:
		return 2
	}
}
