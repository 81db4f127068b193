// Package byteship appends heterogeneous payloads to an already-open network
// connection with Apple-safe write semantics: SIGPIPE suppressed at the
// socket, and large buffers chunked on platforms with constrained send
// buffers.
//
// Example usage:
//
//	conn, err := net.Dial("tcp", "localhost:9000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w, err := byteship.New(conn, byteship.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w.ConfigureForApple()
//
//	if !w.Append(byteship.Text("PING")) {
//	    // failure details went to the logger; the connection is suspect
//	}
package byteship

import (
	"net"

	"github.com/diwesta/byteship/pkg/log"
	"github.com/diwesta/byteship/pkg/writer"
)

// Writer appends payloads to one externally-owned connection.
// See the writer package for the full contract.
type Writer = writer.Writer

// Payload is the closed set of shapes Append accepts.
type Payload = writer.Payload

// The three payload variants.
type (
	// Text is a message framed with the Terminator on the wire.
	Text = writer.Text

	// Bytes is a pre-materialized buffer, written per the chunking policy.
	Bytes = writer.Bytes

	// Stream is a live, single-pass byte sequence.
	Stream = writer.Stream
)

// Policy controls how Bytes payloads are written.
type Policy = writer.Policy

// Option configures optional behavior of a Writer.
type Option = writer.Option

// Logger is the structured logging capability byteship reports failures to.
type Logger = log.Logger

// Terminator marks the end of a Text payload on the wire.
const Terminator = writer.Terminator

// New wraps an already-open connection in a Writer.
func New(conn net.Conn, opts ...Option) (*Writer, error) {
	return writer.New(conn, opts...)
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger Logger) Option {
	return writer.WithLogger(logger)
}

// WithPolicy sets the write policy for Bytes payloads. Defaults to
// writer.PlatformPolicy().
func WithPolicy(p Policy) Option {
	return writer.WithPolicy(p)
}

// PlatformPolicy returns the write policy suited to the current platform.
func PlatformPolicy() Policy {
	return writer.PlatformPolicy()
}
