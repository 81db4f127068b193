// Package tail follows a file as it grows, exposing appended bytes as an
// io.Reader. It is the natural producer of a writer.Stream payload: open a
// follower, hand it to Append, and close it to end the message.
package tail

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Reader streams a file's current contents and then blocks for appended
// data, signalled by filesystem write events. Read returns io.EOF only
// after Close.
type Reader struct {
	f       *os.File
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// Follow opens path and starts watching it for appends.
func Follow(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		f.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Reader{
		f:       f,
		watcher: watcher,
		done:    make(chan struct{}),
	}, nil
}

// Read fills p with the next available bytes, blocking at end-of-file until
// the file grows or the Reader is closed.
func (r *Reader) Read(p []byte) (int, error) {
	for {
		n, err := r.f.Read(p)
		if n > 0 {
			return n, nil
		}
		if err != nil && err != io.EOF {
			select {
			case <-r.done:
				return 0, io.EOF
			default:
			}
			return 0, err
		}

		select {
		case <-r.done:
			return 0, io.EOF
		case _, ok := <-r.watcher.Events:
			if !ok {
				return 0, io.EOF
			}
			// Any event on the file is a cue to retry the read.
		case werr, ok := <-r.watcher.Errors:
			if !ok {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("watch: %w", werr)
		}
	}
}

// Close stops following the file. Pending and subsequent Reads return
// io.EOF.
func (r *Reader) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		err = r.watcher.Close()
		r.f.Close()
	})
	return err
}
