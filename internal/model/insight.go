package model

// Insight is the advice produced for a transaction snapshot.
// It lives in memory only and is replaced wholesale on refresh.
type Insight struct {
	Summary     string   `json:"summary"`
	Tips        []string `json:"tips"`
	HealthScore int      `json:"healthScore"`
}
