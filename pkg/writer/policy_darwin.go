//go:build darwin

package writer

// PlatformPolicy returns the write policy suited to the current platform.
// Apple socket send buffers are small enough that large single writes can
// fail, so Bytes payloads are chunked here.
func PlatformPolicy() Policy {
	return Chunked
}
