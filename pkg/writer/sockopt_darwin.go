//go:build darwin

package writer

import (
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// disableSIGPIPE sets SO_NOSIGPIPE on the connection's socket so a write to
// a peer-closed connection returns EPIPE instead of raising SIGPIPE.
// Connections that expose no raw socket are left alone.
func disableSIGPIPE(conn net.Conn) error {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return fmt.Errorf("raw connection: %w", err)
	}
	var optErr error
	if err := raw.Control(func(fd uintptr) {
		optErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
	}); err != nil {
		return fmt.Errorf("control: %w", err)
	}
	if optErr != nil {
		return fmt.Errorf("set SO_NOSIGPIPE: %w", optErr)
	}
	return nil
}
