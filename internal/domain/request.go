package domain

// PredictionRequest is the validated body of one inference call. It is
// implemented only by DemandRequest, CrisisRequest and PriorityRequest; each
// marshals to the exact JSON body the inference API expects.
type PredictionRequest interface {
	Kind() Kind
	// Area is the district the request concerns, used for logging and event keys.
	Area() string
	sealed()
}

// DemandRequest asks for next-week service demand in a district.
type DemandRequest struct {
	District                string  `json:"district" mapstructure:"district"`
	ServiceType             string  `json:"service_type" mapstructure:"service_type"`
	Month                   int     `json:"month" mapstructure:"month"`
	DayOfWeek               int     `json:"day_of_week" mapstructure:"day_of_week"` // 0 = Monday
	IsWeekend               int     `json:"is_weekend" mapstructure:"is_weekend"`
	IsMonsoon               int     `json:"is_monsoon" mapstructure:"is_monsoon"`
	PopulationFactor        float64 `json:"population_factor" mapstructure:"population_factor"`
	UrbanRatio              float64 `json:"urban_ratio" mapstructure:"urban_ratio"`
	DemandLag7Days          float64 `json:"demand_lag_7days" mapstructure:"demand_lag_7days"`
	DemandLag30Days         float64 `json:"demand_lag_30days" mapstructure:"demand_lag_30days"`
	ResourceUtilizationRate float64 `json:"resource_utilization_rate" mapstructure:"resource_utilization_rate"`
	ComplaintRate           float64 `json:"complaint_rate" mapstructure:"complaint_rate"`
	ResponseTimeMinutes     float64 `json:"response_time_minutes" mapstructure:"response_time_minutes"`
}

// CrisisRequest asks whether a district is heading into a service crisis.
type CrisisRequest struct {
	District          string  `json:"district" mapstructure:"district"`
	Month             int     `json:"month" mapstructure:"month"`
	IsMonsoon         int     `json:"is_monsoon" mapstructure:"is_monsoon"`
	PopulationFactor  float64 `json:"population_factor" mapstructure:"population_factor"`
	DemandRequests    int     `json:"demand_requests" mapstructure:"demand_requests"`
	PendingRequests   int     `json:"pending_requests" mapstructure:"pending_requests"`
	CitizenComplaints int     `json:"citizen_complaints" mapstructure:"citizen_complaints"`
	ResponseTimeHours float64 `json:"response_time_hours" mapstructure:"response_time_hours"`
	DemandLag7Days    float64 `json:"demand_lag_7days" mapstructure:"demand_lag_7days"`
	DemandLag30Days   float64 `json:"demand_lag_30days" mapstructure:"demand_lag_30days"`
	ResolutionRate    float64 `json:"resolution_rate" mapstructure:"resolution_rate"`
}

// PriorityRequest asks for a 0-10 priority score for an open issue.
type PriorityRequest struct {
	Domain           string  `json:"domain" mapstructure:"domain"`
	District         string  `json:"district" mapstructure:"district"`
	IssueType        string  `json:"issue_type" mapstructure:"issue_type"`
	Requests         int     `json:"requests" mapstructure:"requests"`
	Complaints       int     `json:"complaints" mapstructure:"complaints"`
	ResponseTime     float64 `json:"response_time" mapstructure:"response_time"`
	IsMonsoon        int     `json:"is_monsoon" mapstructure:"is_monsoon"`
	PopulationFactor float64 `json:"population_factor" mapstructure:"population_factor"`
	ResolutionRate   float64 `json:"resolution_rate" mapstructure:"resolution_rate"`
	SeverityLevel    string  `json:"severity_level" mapstructure:"severity_level"`
}

func (DemandRequest) Kind() Kind   { return KindDemand }
func (CrisisRequest) Kind() Kind   { return KindCrisis }
func (PriorityRequest) Kind() Kind { return KindPriority }

func (r DemandRequest) Area() string   { return r.District }
func (r CrisisRequest) Area() string   { return r.District }
func (r PriorityRequest) Area() string { return r.District }

func (DemandRequest) sealed()   {}
func (CrisisRequest) sealed()   {}
func (PriorityRequest) sealed() {}
