package sampler

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tiledeck/tiledeck/internal/errors"
)

// Sysfs roots scanned for a CPU temperature sensor. Overridable for tests.
var (
	thermalRoot = "/sys/class/thermal"
	hwmonRoot   = "/sys/class/hwmon"
)

// Thermal zone types that report the CPU package temperature, in order of
// preference. Zones vary by platform: x86_pkg_temp on Intel, distinct
// names on ARM SoCs.
var cpuZoneTypes = []string{"x86_pkg_temp", "cpu_thermal", "cpu-thermal", "soc_thermal"}

// Hwmon chip names that expose CPU temperatures.
var cpuHwmonNames = []string{"coretemp", "k10temp", "zenpower", "cpu_thermal"}

// readCPUTemp reads the CPU temperature from sysfs. It prefers a matching
// thermal zone and falls back to hwmon chips; both report millidegrees.
func readCPUTemp(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if value, err := readThermalZone(); err == nil {
		return value, nil
	}

	if value, err := readHwmon(); err == nil {
		return value, nil
	}

	return 0, errors.New(errors.ErrSampler,
		"No CPU temperature sensor found",
		"Check that /sys/class/thermal or /sys/class/hwmon expose a CPU sensor")
}

// readThermalZone scans thermal zones for a CPU-typed zone, falling back to
// thermal_zone0 when no zone advertises a CPU type.
func readThermalZone() (float64, error) {
	zones, err := filepath.Glob(filepath.Join(thermalRoot, "thermal_zone*"))
	if err != nil || len(zones) == 0 {
		return 0, errors.New(errors.ErrSampler, "No thermal zones available", "")
	}

	var fallback string
	for _, zone := range zones {
		typeRaw, err := os.ReadFile(filepath.Join(zone, "type"))
		if err != nil {
			continue
		}
		zoneType := strings.TrimSpace(string(typeRaw))
		if fallback == "" {
			fallback = zone
		}
		for _, want := range cpuZoneTypes {
			if zoneType == want {
				return readTempFile(filepath.Join(zone, "temp"))
			}
		}
	}

	if fallback == "" {
		return 0, errors.New(errors.ErrSampler, "No readable thermal zone", "")
	}
	return readTempFile(filepath.Join(fallback, "temp"))
}

// readHwmon scans hwmon chips for a known CPU sensor chip and reads its
// first temperature input.
func readHwmon() (float64, error) {
	chips, err := filepath.Glob(filepath.Join(hwmonRoot, "hwmon*"))
	if err != nil {
		return 0, errors.New(errors.ErrSampler, "No hwmon chips available", "")
	}

	for _, chip := range chips {
		nameRaw, err := os.ReadFile(filepath.Join(chip, "name"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(nameRaw))
		for _, want := range cpuHwmonNames {
			if name == want {
				return readTempFile(filepath.Join(chip, "temp1_input"))
			}
		}
	}

	return 0, errors.New(errors.ErrSampler, "No CPU hwmon chip found", "")
}

func readTempFile(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrSampler,
			"Cannot read temperature sensor", "Check sensor file permissions")
	}
	return parseMilliCelsius(string(raw))
}
