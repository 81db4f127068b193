//go:build !darwin

package writer

import "net"

// disableSIGPIPE does nothing off Apple platforms; the option only exists
// there and the Go runtime already keeps socket SIGPIPE off the process.
func disableSIGPIPE(net.Conn) error {
	return nil
}
