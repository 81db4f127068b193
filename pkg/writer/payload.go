package writer

import "io"

// Payload is the closed set of shapes Append accepts. The three variants are
// Text, Bytes, and Stream; the writer decides its write policy from the
// variant, not from the payload contents.
type Payload interface {
	payload()
}

// Text is a text message. Append writes it as one logical write of the text
// followed by Terminator, then flushes.
type Text string

// Bytes is a pre-materialized buffer. Append writes it according to the
// Writer's Policy, with no terminator.
type Bytes []byte

// Stream is a live, single-pass byte sequence. Append writes each group as
// the reader produces it, with no terminator, and flushes once after the
// reader is exhausted. The sequence itself is expected to delimit the
// message.
type Stream struct {
	R io.Reader
}

func (Text) payload()   {}
func (Bytes) payload()  {}
func (Stream) payload() {}
