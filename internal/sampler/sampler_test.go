package sampler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiledeck/tiledeck/internal/errors"
)

// flakySampler fails until primed, then returns a fixed value.
type flakySampler struct {
	value float64
	err   error
	calls int
}

func (s *flakySampler) Kind() string { return "CPU_TEMP" }

func (s *flakySampler) Sample(ctx context.Context) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.value, nil
}

func TestCached_PropagatesErrorBeforeFirstReading(t *testing.T) {
	inner := &flakySampler{err: errors.New(errors.ErrSampler, "unavailable", "")}
	c := NewCached(inner)

	_, err := c.Sample(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSampler))
}

func TestCached_ReusesLastGoodReading(t *testing.T) {
	inner := &flakySampler{value: 61.2}
	c := NewCached(inner)

	value, err := c.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 61.2, value)

	inner.err = errors.New(errors.ErrSampler, "sensor lost", "")
	value, err = c.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 61.2, value)
}

func TestCached_UpdatesCacheOnRecovery(t *testing.T) {
	inner := &flakySampler{value: 61.2}
	c := NewCached(inner)

	_, err := c.Sample(context.Background())
	require.NoError(t, err)

	inner.value = 70.8
	value, err := c.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 70.8, value)

	inner.err = errors.New(errors.ErrSampler, "sensor lost", "")
	value, err = c.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 70.8, value)
}

func TestCached_Kind(t *testing.T) {
	c := NewCached(&flakySampler{})
	assert.Equal(t, "CPU_TEMP", c.Kind())
}

func TestParseMilliCelsius(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		expect float64
		ok     bool
	}{
		{"typical", "54000\n", 54.0, true},
		{"fractional degree", "54500", 54.5, true},
		{"below zero", "-3000", -3.0, true},
		{"garbage", "not-a-number", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMilliCelsius(tt.raw)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParseNvidiaSMITemp(t *testing.T) {
	tests := []struct {
		name   string
		output string
		expect float64
		ok     bool
	}{
		{"single gpu", "62\n", 62, true},
		{"multi gpu uses first", "62\n71\n", 62, true},
		{"whitespace", "  55  \n", 55, true},
		{"no devices", "No devices were found", 0, false},
		{"empty", "", 0, false},
		{"garbage", "N/A", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNvidiaSMITemp(tt.output)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrSampler))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}
