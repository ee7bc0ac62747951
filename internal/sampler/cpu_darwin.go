package sampler

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tiledeck/tiledeck/internal/errors"
)

// readCPUTemp reads the CPU die temperature via powermetrics, which needs
// root on macOS. Unprivileged runs surface a SAMPLER error and the
// dispatcher falls back to the cached reading (or omits the response).
func readCPUTemp(ctx context.Context) (float64, error) {
	out, err := exec.CommandContext(ctx,
		"powermetrics", "--samplers", "smc", "-n", "1", "-i", "1").Output()
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrSampler,
			"Cannot run powermetrics",
			"powermetrics requires root; run the plugin with sudo")
	}
	return parsePowermetricsCPUTemp(string(out))
}

// parsePowermetricsCPUTemp extracts the die temperature from powermetrics
// smc sampler output, e.g. "CPU die temperature: 54.21 C".
func parsePowermetricsCPUTemp(output string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "CPU die temperature:") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "CPU die temperature:"))
		if len(fields) == 0 {
			continue
		}
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		return value, nil
	}
	return 0, errors.New(errors.ErrSampler,
		"No CPU die temperature in powermetrics output", "")
}
