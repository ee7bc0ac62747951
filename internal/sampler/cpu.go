package sampler

import (
	"context"
	"strconv"
	"strings"

	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

// cpuTemp reads the CPU package temperature. The actual read is
// platform-specific; see cpu_linux.go and friends.
type cpuTemp struct{}

// NewCPUTemp returns the CPU temperature sampler for this platform.
func NewCPUTemp() Sampler {
	return cpuTemp{}
}

func (cpuTemp) Kind() string {
	return protocol.MetricCPUTemp
}

func (cpuTemp) Sample(ctx context.Context) (float64, error) {
	return readCPUTemp(ctx)
}

// parseMilliCelsius parses a sysfs temperature value in millidegrees
// Celsius (the unit used by /sys/class/thermal and hwmon temp*_input).
func parseMilliCelsius(raw string) (float64, error) {
	milli, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrSampler,
			"Unparseable sensor value", "")
	}
	return float64(milli) / 1000.0, nil
}
