//go:build !darwin

package writer

// PlatformPolicy returns the write policy suited to the current platform.
func PlatformPolicy() Policy {
	return Unbounded
}
