package issuemap

const (
	UrgencyHigh   = "HIGH"
	UrgencyMedium = "MEDIUM"
	UrgencyLow    = "LOW"

	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusResolved = "RESOLVED"
)

// Weight is the visual treatment of a marker circle. Radius is in meters.
type Weight struct {
	Radius        float64 `json:"radius"`
	FillColor     string  `json:"fillColor"`
	StrokeColor   string  `json:"strokeColor"`
	FillOpacity   float64 `json:"fillOpacity"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	StrokeWeight  int     `json:"strokeWeight"`
}

var weights = map[string]Weight{
	UrgencyHigh:   {Radius: 200, FillColor: "#ef4444", StrokeColor: "#dc2626", FillOpacity: 0.6, StrokeOpacity: 0.8, StrokeWeight: 2},
	UrgencyMedium: {Radius: 150, FillColor: "#f59e0b", StrokeColor: "#d97706", FillOpacity: 0.5, StrokeOpacity: 0.7, StrokeWeight: 2},
	UrgencyLow:    {Radius: 100, FillColor: "#10b981", StrokeColor: "#059669", FillOpacity: 0.4, StrokeOpacity: 0.6, StrokeWeight: 1},
}

// neutralWeight is used for missing or unrecognised urgency levels.
var neutralWeight = Weight{Radius: 125, FillColor: "#6b7280", StrokeColor: "#4b5563", FillOpacity: 0.4, StrokeOpacity: 0.6, StrokeWeight: 1}

// WeightFor looks up the marker weight for an urgency level. Matching is
// exact, so "high" gets the neutral weight.
func WeightFor(urgency string) Weight {
	if w, ok := weights[urgency]; ok {
		return w
	}
	return neutralWeight
}
