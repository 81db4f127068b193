package byteship_test

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/diwesta/byteship"
	"github.com/diwesta/byteship/pkg/writer"
)

// ExampleNew demonstrates appending a text message to a connection.
func ExampleNew() {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go io.Copy(io.Discard, server)

	w, err := byteship.New(client)
	if err != nil {
		fmt.Printf("failed to create writer: %v\n", err)
		return
	}
	w.ConfigureForApple()

	fmt.Println(w.Append(byteship.Text("PING")))
	// Output: true
}

func TestNewWithoutConnection(t *testing.T) {
	if _, err := byteship.New(nil); !errors.Is(err, writer.ErrNoConnection) {
		t.Fatalf("New(nil) error = %v, want writer.ErrNoConnection", err)
	}
}
