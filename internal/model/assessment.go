package model

// FeatureSummary carries aggregate on-chain activity statistics for an
// address. The backend computes them; this client only displays them.
type FeatureSummary struct {
	TxCount               int      `json:"tx_count"`
	UniqueCounterparties  *int     `json:"unique_counterparties,omitempty"`
	TotalValueSentETH     *float64 `json:"total_value_sent_eth,omitempty"`
	TotalValueReceivedETH *float64 `json:"total_value_received_eth,omitempty"`
}

// RiskAssessment is the scoring backend's response for a single address.
// Pointer fields distinguish "absent" from a literal zero; absent sub-scores
// are rendered as a placeholder, never as 0.
type RiskAssessment struct {
	Address        string          `json:"address"`
	RiskScore      float64         `json:"risk_score"`
	RiskLabel      string          `json:"risk_label"`
	MLRawScore     *float64        `json:"ml_raw_score,omitempty"`
	HeuristicScore *float64        `json:"heuristic_score,omitempty"`
	Flags          []string        `json:"flags"`
	IsSanctioned   bool            `json:"is_sanctioned"`
	FeatureSummary *FeatureSummary `json:"feature_summary,omitempty"`
}

// Normalize fills the documented defaults for fields the backend may omit.
// All defaulting happens here, in one place, so the renderer can trust the
// struct as-is: missing risk_score stays 0, missing risk_label becomes
// "Unknown", missing is_sanctioned stays false. Optional sub-scores and
// counterparty counts keep their nil state for the renderer's placeholder.
func (a *RiskAssessment) Normalize() {
	if a.RiskLabel == "" {
		a.RiskLabel = "Unknown"
	}
	if a.RiskScore < 0 {
		a.RiskScore = 0
	}
	if a.RiskScore > 100 {
		a.RiskScore = 100
	}
}

// SentETH returns the total sent value, defaulting to 0 when absent.
func (f *FeatureSummary) SentETH() float64 {
	if f == nil || f.TotalValueSentETH == nil {
		return 0
	}
	return *f.TotalValueSentETH
}

// ReceivedETH returns the total received value, defaulting to 0 when absent.
func (f *FeatureSummary) ReceivedETH() float64 {
	if f == nil || f.TotalValueReceivedETH == nil {
		return 0
	}
	return *f.TotalValueReceivedETH
}
