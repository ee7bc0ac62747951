package sampler

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tiledeck/tiledeck/internal/errors"
	"github.com/tiledeck/tiledeck/internal/protocol"
)

// gpuTemp reads the GPU core temperature via nvidia-smi. Hosts without an
// NVIDIA GPU (or without the tool on PATH) get a SAMPLER error, which the
// dispatcher turns into an omitted response.
type gpuTemp struct{}

// NewGPUTemp returns the GPU temperature sampler.
func NewGPUTemp() Sampler {
	return gpuTemp{}
}

func (gpuTemp) Kind() string {
	return protocol.MetricGPUTemp
}

func (gpuTemp) Sample(ctx context.Context) (float64, error) {
	out, err := exec.CommandContext(ctx,
		"nvidia-smi", "--query-gpu=temperature.gpu", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrSampler,
			"Cannot run nvidia-smi",
			"Check that an NVIDIA GPU is present and nvidia-smi is on PATH")
	}
	return parseNvidiaSMITemp(string(out))
}

// parseNvidiaSMITemp parses nvidia-smi CSV output. Multi-GPU hosts report
// one line per device; the first device is used.
func parseNvidiaSMITemp(output string) (float64, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return 0, errors.New(errors.ErrSampler, "Empty nvidia-smi output", "")
	}

	lowerOutput := strings.ToLower(output)
	if strings.Contains(lowerOutput, "no devices") ||
		strings.Contains(lowerOutput, "not found") ||
		strings.Contains(lowerOutput, "failed") {
		return 0, errors.New(errors.ErrSampler, "No NVIDIA GPU detected", "")
	}

	first := output
	if idx := strings.IndexByte(output, '\n'); idx >= 0 {
		first = output[:idx]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrSampler,
			"Unparseable nvidia-smi temperature", "")
	}
	return value, nil
}
