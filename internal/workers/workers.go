package workers

import (
	"os"
	"runtime"
	"strconv"
)

// EnvOverride names the environment variable that fixes the worker count.
const EnvOverride = "GALLERY_WORKERS"

// Count returns multiplier workers per schedulable CPU, at least one and at
// most limit (0 for no cap). A positive GALLERY_WORKERS value replaces the
// computed count but is still capped by limit.
func Count(multiplier float64, limit int) int {
	n := 0
	if override, err := strconv.Atoi(os.Getenv(EnvOverride)); err == nil && override > 0 {
		n = override
	} else {
		// GOMAXPROCS follows the cgroup CPU quota.
		n = int(float64(runtime.GOMAXPROCS(0)) * multiplier)
	}

	if n < 1 {
		n = 1
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n
}

// ForIO sizes a pool whose workers mostly wait on the filesystem: two per CPU.
func ForIO(limit int) int {
	return Count(2.0, limit)
}
