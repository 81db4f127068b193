// Package writer appends heterogeneous payloads to a single open network
// connection.
//
// A Writer accepts three payload shapes: a Text message (framed with a fixed
// terminator), a Stream of bytes produced incrementally, and a Bytes buffer
// already held in memory. Buffers are written according to an injected
// Policy: on Apple platforms, whose sockets have small send buffers, large
// buffers are split into bounded segments with a flush and a short pacing
// pause between them; elsewhere the buffer goes out as one write.
//
// # Usage
//
//	w, err := writer.New(conn, writer.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	w.ConfigureForApple()
//
//	if !w.Append(writer.Text("PING")) {
//	    // the connection is likely unusable; details went to the logger
//	}
//
// Append never returns or raises an error. It reports false on any failure
// and routes the detail to the injected logger at warning level. Callers
// that need a structured protocol build it on top; the writer adds no
// framing beyond the Text terminator.
//
// The Writer does not serialize concurrent Append calls on one connection;
// interleaving them is the caller's responsibility.
package writer
