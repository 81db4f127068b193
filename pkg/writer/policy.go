package writer

import "time"

const (
	// DefaultChunkSize bounds a single segment write on platforms with
	// constrained socket send buffers.
	DefaultChunkSize = 100_000

	// DefaultPacingDelay is the pause between consecutive segment writes.
	// It is a cooperative yield to reduce burst pressure on the transport,
	// not a rate limit.
	DefaultPacingDelay = 10 * time.Millisecond
)

// Policy controls how Append writes a Bytes payload. A positive ChunkSize
// splits the buffer into segments of at most that many bytes, each written,
// flushed, and followed by PacingDelay before the next. A zero ChunkSize
// writes the whole buffer in one write with one flush.
type Policy struct {
	ChunkSize   int
	PacingDelay time.Duration
}

// Chunked is the policy for platforms where oversized single writes can
// exceed the socket send buffer.
var Chunked = Policy{ChunkSize: DefaultChunkSize, PacingDelay: DefaultPacingDelay}

// Unbounded writes a Bytes payload as a single write.
var Unbounded = Policy{}

func (p Policy) chunked() bool {
	return p.ChunkSize > 0
}
