// Copyright 2016 Michael Carlberg & contributors (polybar)

package ipc

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
)

// Fifo is the legacy named-pipe IPC fallback (§4.8), grounded on the
// original ipc.hpp's deprecated "fifo" member. Unlike a socket, a FIFO has
// no notion of concurrent connections: once a writer closes it, reads
// return EOF and Fifo reopens it for the next writer.
type Fifo struct {
	path    string
	handler func(Message)
	done    chan struct{}
}

// ListenFifo creates path as a named pipe via mkfifo(2) and starts reading
// it in the background.
func ListenFifo(path string, handler func(Message)) (*Fifo, error) {
	_ = os.Remove(path)
	if err := unix.Mkfifo(path, 0o600); err != nil {
		return nil, err
	}
	f := &Fifo{path: path, handler: handler, done: make(chan struct{})}
	go f.loop()
	return f, nil
}

func (f *Fifo) loop() {
	for {
		select {
		case <-f.done:
			return
		default:
		}

		file, err := os.OpenFile(f.path, os.O_RDONLY, os.ModeNamedPipe)
		if err != nil {
			return
		}
		f.readAll(file)
		file.Close()
	}
}

func (f *Fifo) readAll(file *os.File) {
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if msg, ok := Parse(scanner.Text()); ok {
			f.handler(msg)
		}
	}
}

// Close stops the read loop and removes the FIFO. A reopen currently
// blocked in OpenFile waiting for a writer is released by removing the
// path out from under it only once a writer connects; callers tear down
// Fifo as part of process exit, where this is acceptable.
func (f *Fifo) Close() error {
	close(f.done)
	return os.Remove(f.path)
}
