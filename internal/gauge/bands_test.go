package gauge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor_Boundaries(t *testing.T) {
	tests := []struct {
		value  float64
		expect Band
	}{
		{0, BandCool},
		{49.9, BandCool},
		{50.0, BandWarning},
		{62.5, BandWarning},
		{74.9, BandWarning},
		{75.0, BandCritical},
		{100, BandCritical},
	}

	for _, tt := range tests {
		t.Run(tt.expect.String(), func(t *testing.T) {
			got := BandFor(tt.value, DefaultWarningThreshold, DefaultCriticalThreshold)
			assert.Equal(t, tt.expect, got, "value=%v", tt.value)
		})
	}
}

func TestBandFor_CustomThresholds(t *testing.T) {
	assert.Equal(t, BandCool, BandFor(59, 60, 90))
	assert.Equal(t, BandWarning, BandFor(60, 60, 90))
	assert.Equal(t, BandCritical, BandFor(90, 60, 90))
}

func TestBand_String(t *testing.T) {
	assert.Equal(t, "cool", BandCool.String())
	assert.Equal(t, "warning", BandWarning.String())
	assert.Equal(t, "critical", BandCritical.String())
	assert.Equal(t, "unknown", Band(99).String())
}
