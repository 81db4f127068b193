package tail

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFollowMissingFile(t *testing.T) {
	if _, err := Follow(filepath.Join(t.TempDir(), "absent.log")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFollowReadsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.log")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r, err := Follow(path)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	defer r.Close()

	buf := make([]byte, 5)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(buf) != "hello" {
		t.Errorf("read %q, want %q", string(buf), "hello")
	}
}

func TestFollowReadsAppendedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("first"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Follow(path)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}
	defer r.Close()

	buf := make([]byte, 5)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("read existing content: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		f.WriteString("second")
	}()

	appended := make([]byte, 6)
	if _, err := io.ReadFull(r, appended); err != nil {
		t.Fatalf("read appended content: %v", err)
	}
	if string(appended) != "second" {
		t.Errorf("read %q, want %q", string(appended), "second")
	}
}

func TestCloseUnblocksRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r, err := Follow(path)
	if err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		_, readErr := r.Read(make([]byte, 1))
		errCh <- readErr
	}()

	time.Sleep(50 * time.Millisecond)
	if err := r.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	select {
	case readErr := <-errCh:
		if readErr != io.EOF {
			t.Errorf("Read returned %v, want io.EOF", readErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Read did not unblock after Close")
	}
}
