//go:build !linux && !darwin

package sampler

import (
	"context"
	"runtime"

	"github.com/tiledeck/tiledeck/internal/errors"
)

// readCPUTemp is not implemented on this platform.
func readCPUTemp(ctx context.Context) (float64, error) {
	return 0, errors.New(errors.ErrSampler,
		"CPU temperature sampling is not supported on "+runtime.GOOS,
		"Run the plugin on linux or darwin")
}
