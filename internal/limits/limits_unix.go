//go:build unix

package limits

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// OpenFileLimit returns the soft RLIMIT_NOFILE of the current process.
func OpenFileLimit() (int, error) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, fmt.Errorf("failed to read open file limit: %w", err)
	}
	if rl.Cur > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(rl.Cur), nil
}
