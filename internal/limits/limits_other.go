//go:build !unix

package limits

// OpenFileLimit returns FallbackOpenFiles on platforms without rlimits.
func OpenFileLimit() (int, error) {
	return FallbackOpenFiles, nil
}
