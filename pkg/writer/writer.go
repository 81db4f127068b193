package writer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"time"

	"github.com/diwesta/byteship/pkg/log"
)

// Terminator marks the end of a Text payload on the wire. It is never
// appended to Bytes or Stream payloads.
const Terminator = "\r\n\r\n"

// ErrNoConnection is returned by New when neither a net.Conn nor a
// replacement transport via WithConn is provided.
var ErrNoConnection = errors.New("byteship: connection required")

// streamReadSize is the group buffer used when draining a Stream payload.
const streamReadSize = 32 * 1024

// Conn is the flushable transport a Writer issues writes against.
// *bufio.Writer satisfies it, as does wsconn.Conn.
type Conn interface {
	io.Writer

	// Flush blocks until buffered output has been handed to the transport,
	// surfacing any pending write error.
	Flush() error
}

// Writer appends payloads to one externally-owned connection. It never
// dials or closes the connection and holds no state across calls beyond
// its policy and logger. Serializing concurrent Append calls on the same
// connection is the caller's responsibility.
type Writer struct {
	sock   net.Conn // nil when the transport was injected via WithConn
	conn   Conn
	policy Policy
	logger log.Logger
}

// Option configures optional behavior of a Writer.
type Option func(*Writer)

// WithLogger sets the logger failures are reported to.
// If not provided, diagnostics are discarded.
func WithLogger(logger log.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithPolicy sets the write policy for Bytes payloads.
// If not provided, PlatformPolicy() is used.
func WithPolicy(p Policy) Option {
	return func(w *Writer) {
		w.policy = p
	}
}

// WithConn substitutes the transport writes are issued against, in place of
// the buffered writer New wraps around the net.Conn. Use it for transports
// with their own flush semantics (websocket messages) or for test doubles.
func WithConn(c Conn) Option {
	return func(w *Writer) {
		w.conn = c
	}
}

// New creates a Writer over an already-open connection. The conn may be nil
// when WithConn supplies the transport; otherwise writes go through a
// bufio.Writer around it. Returns ErrNoConnection when there is nothing to
// write to.
func New(conn net.Conn, opts ...Option) (*Writer, error) {
	w := &Writer{
		sock:   conn,
		policy: PlatformPolicy(),
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.conn == nil {
		if conn == nil {
			return nil, ErrNoConnection
		}
		w.conn = bufio.NewWriter(conn)
	}
	return w, nil
}

// ConfigureForApple disables SIGPIPE delivery for writes on the connection's
// socket, so writing to a peer-closed connection fails with an ordinary
// error instead of terminating the process. Call it once, right after the
// connection is obtained and before the first Append; calling it late does
// not protect earlier writes. It does nothing on non-Apple platforms or on
// connections without a raw socket (net.Pipe, websocket adapters).
func (w *Writer) ConfigureForApple() {
	if w.sock == nil {
		return
	}
	if err := disableSIGPIPE(w.sock); err != nil {
		w.logger.Warn("socket option not applied", log.Err(err))
	}
}

// Append writes one payload to the connection. It returns true only after
// every write and the final flush completed; false on any failure or on an
// unsupported payload. Errors never escape: the detail and the failure
// stack go to the logger at warning level. There is no partial-success
// signal; after a false the connection is typically unusable.
func (w *Writer) Append(p Payload) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Warn("append panicked",
				log.Any("panic", r),
				log.String("stack", string(debug.Stack())))
			ok = false
		}
	}()

	var err error
	switch v := p.(type) {
	case Text:
		err = w.writeText(string(v))
	case Bytes:
		err = w.writeBytes(v)
	case Stream:
		err = w.writeStream(v.R)
	default:
		w.logger.Warn("unsupported payload", log.String("type", fmt.Sprintf("%T", p)))
		return false
	}
	if err != nil {
		w.logger.Warn("append failed",
			log.Err(err),
			log.String("stack", string(debug.Stack())))
		return false
	}
	return true
}

func (w *Writer) writeText(s string) error {
	msg := make([]byte, 0, len(s)+len(Terminator))
	msg = append(msg, s...)
	msg = append(msg, Terminator...)
	if _, err := w.conn.Write(msg); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return w.flush()
}

func (w *Writer) writeBytes(b []byte) error {
	if !w.policy.chunked() {
		if _, err := w.conn.Write(b); err != nil {
			return fmt.Errorf("write buffer: %w", err)
		}
		return w.flush()
	}
	for off := 0; off < len(b); off += w.policy.ChunkSize {
		if off > 0 && w.policy.PacingDelay > 0 {
			time.Sleep(w.policy.PacingDelay)
		}
		end := off + w.policy.ChunkSize
		if end > len(b) {
			end = len(b)
		}
		if _, err := w.conn.Write(b[off:end]); err != nil {
			return fmt.Errorf("write segment at %d: %w", off, err)
		}
		// Flush per segment so a dead peer surfaces at the offending
		// segment instead of being buffered behind later writes.
		if err := w.flush(); err != nil {
			return fmt.Errorf("segment at %d: %w", off, err)
		}
	}
	return nil
}

func (w *Writer) writeStream(r io.Reader) error {
	if r == nil {
		return errors.New("nil stream reader")
	}
	buf := make([]byte, streamReadSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := w.conn.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write stream: %w", werr)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("read stream: %w", rerr)
		}
	}
	return w.flush()
}

func (w *Writer) flush() error {
	if err := w.conn.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
