// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticMarket(t *testing.T) {
	tests := []struct {
		disease string
		tam     float64
		need    int
		label   string
	}{
		{"Alzheimer", 7.8, 85, "high"},
		{"Breast Cancer", 20.0, 60, "medium"},
		{"Sepsis", 3.0, 55, "medium"},
		{"breast cancer", 3.0, 55, "medium"},
	}
	for _, tc := range tests {
		t.Run(tc.disease, func(t *testing.T) {
			got := Static{}.Market(tc.disease)
			assert.Equal(t, tc.tam, got.TAMUSDBillions)
			assert.Equal(t, tc.need, got.UnmetNeedScore)
			assert.Equal(t, tc.label, got.UnmetNeedLabel)
		})
	}
}

func TestStaticPatent(t *testing.T) {
	short := Static{}.Patent("aspirin", "Pain")
	assert.Equal(t, 40, short.RiskScore)
	assert.Equal(t, "medium", short.RiskLabel)
	assert.NotEmpty(t, short.Notes)

	boundary := Static{}.Patent("metformin", "Pain")
	assert.Equal(t, 40, boundary.RiskScore)

	long := Static{}.Patent("atorvastatin", "Sepsis")
	assert.Equal(t, 60, long.RiskScore)
	assert.Equal(t, "medium", long.RiskLabel)
}

func TestRiskLabel(t *testing.T) {
	assert.Equal(t, "low", riskLabel(0))
	assert.Equal(t, "low", riskLabel(34))
	assert.Equal(t, "medium", riskLabel(35))
	assert.Equal(t, "medium", riskLabel(69))
	assert.Equal(t, "high", riskLabel(70))
}

func TestStaticRegulatory(t *testing.T) {
	got := Static{}.Regulatory("metformin", "Breast Cancer")
	assert.Equal(t, "505(b)(2)", got.Pathway)
	assert.Equal(t, "Existing safety data may support expedited development.", got.Notes)
}

func TestBundle(t *testing.T) {
	b := Bundle(Static{}, "metformin", "Breast Cancer")
	assert.Equal(t, 20.0, b.Market.TAMUSDBillions)
	assert.Equal(t, 40, b.Patent.RiskScore)
	assert.Equal(t, "505(b)(2)", b.Regulatory.Pathway)
}
