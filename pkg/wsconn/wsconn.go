// Package wsconn adapts a WebSocket connection to the writer.Conn contract.
// Writes accumulate into the current binary message; Flush emits it as one
// frame, so each writer flush maps to one WebSocket message on the wire.
package wsconn

import (
	"context"
	"fmt"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Conn buffers writes into a client-side binary WebSocket message.
type Conn struct {
	w *wsutil.Writer
}

// Client wraps an established client-side connection.
func Client(nc net.Conn) *Conn {
	return &Conn{w: wsutil.NewWriter(nc, ws.StateClientSide, ws.OpBinary)}
}

// Write appends p to the message being assembled.
func (c *Conn) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

// Flush sends the assembled message as a frame and blocks until it has been
// handed to the underlying connection.
func (c *Conn) Flush() error {
	return c.w.Flush()
}

// Dial connects to a ws:// or wss:// URL and returns the flush adapter
// together with the raw connection, which callers still need for
// socket-level configuration and for closing.
func Dial(ctx context.Context, url string) (*Conn, net.Conn, error) {
	nc, _, _, err := ws.Dial(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return Client(nc), nc, nil
}
