package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FullPayload(t *testing.T) {
	payload := `{
		"address": "0xABCDEF0123456789ABCDEF0123456789ABCDEF01",
		"risk_score": 82,
		"risk_label": "High Risk",
		"ml_raw_score": 0.91,
		"heuristic_score": 64,
		"flags": ["mixer_interaction", "darknet_market"],
		"is_sanctioned": true,
		"feature_summary": {
			"tx_count": 12,
			"unique_counterparties": 4,
			"total_value_sent_eth": 1.5,
			"total_value_received_eth": 0.25
		}
	}`

	var a RiskAssessment
	require.NoError(t, json.Unmarshal([]byte(payload), &a))
	a.Normalize()

	assert.Equal(t, 82.0, a.RiskScore)
	require.NotNil(t, a.MLRawScore)
	assert.Equal(t, 0.91, *a.MLRawScore)
	require.NotNil(t, a.HeuristicScore)
	assert.Equal(t, 64.0, *a.HeuristicScore)
	assert.Equal(t, []string{"mixer_interaction", "darknet_market"}, a.Flags)

	require.NotNil(t, a.FeatureSummary)
	assert.Equal(t, 12, a.FeatureSummary.TxCount)
	require.NotNil(t, a.FeatureSummary.UniqueCounterparties)
	assert.Equal(t, 4, *a.FeatureSummary.UniqueCounterparties)
	assert.Equal(t, 1.5, a.FeatureSummary.SentETH())
	assert.Equal(t, 0.25, a.FeatureSummary.ReceivedETH())
}

func TestNormalize_Defaults(t *testing.T) {
	var a RiskAssessment
	require.NoError(t, json.Unmarshal([]byte(`{"address": "0x1"}`), &a))
	a.Normalize()

	assert.Equal(t, 0.0, a.RiskScore, "missing risk_score defaults to 0")
	assert.Equal(t, "Unknown", a.RiskLabel, "missing risk_label defaults to Unknown")
	assert.False(t, a.IsSanctioned)
	assert.Nil(t, a.MLRawScore, "missing sub-score stays absent, not 0")
	assert.Nil(t, a.FeatureSummary)
}

func TestNormalize_ClampsScore(t *testing.T) {
	a := RiskAssessment{RiskScore: 140}
	a.Normalize()
	assert.Equal(t, 100.0, a.RiskScore)

	a = RiskAssessment{RiskScore: -3}
	a.Normalize()
	assert.Equal(t, 0.0, a.RiskScore)
}

func TestFeatureSummary_NilReceivers(t *testing.T) {
	var fs *FeatureSummary
	assert.Equal(t, 0.0, fs.SentETH())
	assert.Equal(t, 0.0, fs.ReceivedETH())
}
