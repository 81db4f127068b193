package wsconn_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/gobwas/ws/wsutil"

	"github.com/diwesta/byteship/pkg/writer"
	"github.com/diwesta/byteship/pkg/wsconn"
)

func TestConnImplementsWriterConn(t *testing.T) {
	var _ writer.Conn = (*wsconn.Conn)(nil)
}

func TestFlushEmitsOneBinaryMessage(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	conn := wsconn.Client(client)

	errCh := make(chan error, 1)
	go func() {
		if _, err := conn.Write([]byte("hel")); err != nil {
			errCh <- err
			return
		}
		if _, err := conn.Write([]byte("lo")); err != nil {
			errCh <- err
			return
		}
		errCh <- conn.Flush()
	}()

	msg, err := wsutil.ReadClientBinary(server)
	if err != nil {
		t.Fatalf("server read error: %v", err)
	}
	if !bytes.Equal(msg, []byte("hello")) {
		t.Errorf("server received %q, want %q", msg, "hello")
	}
	if err := <-errCh; err != nil {
		t.Fatalf("client write/flush error: %v", err)
	}
}

func TestWriterAppendOverWebSocket(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	w, err := writer.New(client, writer.WithConn(wsconn.Client(client)), writer.WithPolicy(writer.Unbounded))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	done := make(chan bool, 1)
	go func() {
		done <- w.Append(writer.Text("PING"))
	}()

	msg, err := wsutil.ReadClientBinary(server)
	if err != nil {
		t.Fatalf("server read error: %v", err)
	}
	if string(msg) != "PING\r\n\r\n" {
		t.Errorf("server received %q, want %q", msg, "PING\r\n\r\n")
	}
	if !<-done {
		t.Error("Append returned false")
	}
}
