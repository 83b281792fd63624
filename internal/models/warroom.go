package models

// ThreatScenario is one adversarial analysis result. Type is an open tag
// ("COMPETITOR", "BLACK SWAN", "REGULATORY", ...), not a fixed enum: the
// generator is free to label threats however it sees fit.
type ThreatScenario struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Protocol string `json:"protocol"`
}
