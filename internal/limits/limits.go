// Package limits derives how many set files may be open during one scan.
package limits

import "fmt"

// FallbackOpenFiles is used where the open-file limit cannot be probed.
const FallbackOpenFiles = 256

// OutputCapacity returns how many output files can be open at once given the
// process open-file limit and the handles reserved for standard streams, the
// original file and logging.
func OutputCapacity(limit, reserved int) (int, error) {
	capacity := limit - reserved
	if capacity < 1 {
		return 0, fmt.Errorf("open file limit %d leaves no room for output files after reserving %d", limit, reserved)
	}
	return capacity, nil
}

// Resolve returns the output capacity: the configured maximum when positive,
// otherwise the probed OS limit minus reserved.
func Resolve(configured, reserved int) (int, error) {
	if configured > 0 {
		return configured, nil
	}
	limit, err := OpenFileLimit()
	if err != nil {
		return 0, err
	}
	return OutputCapacity(limit, reserved)
}
