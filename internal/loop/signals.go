// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package loop

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// wakeupPipe lets any goroutine (a signal handler, a module worker) wake
// the loop's select() without it having its own fd, by writing one byte
// that select observes as read-ready.
type wakeupPipe struct {
	r, w int
}

func newWakeupPipe() (*wakeupPipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, err
	}
	return &wakeupPipe{r: fds[0], w: fds[1]}, nil
}

func (p *wakeupPipe) wake() {
	unix.Write(p.w, []byte{0})
}

func (p *wakeupPipe) drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(p.r, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (p *wakeupPipe) close() {
	unix.Close(p.r)
	unix.Close(p.w)
}

// SignalState tracks the terminate/reload flags SIGINT/SIGQUIT/SIGTERM and
// SIGUSR1 set (§4.6 cancellation). SIGALRM is reserved for internal
// self-wakeup and otherwise ignored; SIGPIPE is blocked process-wide so a
// closed X11/IPC connection surfaces as an ordinary write error instead of
// killing the process.
type SignalState struct {
	terminate bool
	reload    bool

	ch   chan os.Signal
	pipe *wakeupPipe
}

// WatchSignals installs handlers for SIGINT/SIGQUIT/SIGTERM/SIGUSR1/SIGALRM,
// blocks SIGPIPE, and returns a SignalState that a Loop polls after each
// wakeup-pipe read.
func WatchSignals(pipe *wakeupPipe) *SignalState {
	signal.Ignore(syscall.SIGPIPE)

	ch := make(chan os.Signal, 8)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM,
		syscall.SIGUSR1, syscall.SIGALRM)

	s := &SignalState{ch: ch, pipe: pipe}
	go s.watch()
	return s
}

func (s *SignalState) watch() {
	for sig := range s.ch {
		switch sig {
		case syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM:
			s.terminate = true
		case syscall.SIGUSR1:
			s.terminate = true
			s.reload = true
		case syscall.SIGALRM:
			// internal self-wakeup only; no flag to set.
		}
		if s.pipe != nil {
			s.pipe.wake()
		}
	}
}

// Terminate reports whether a terminating signal was received.
func (s *SignalState) Terminate() bool { return s.terminate }

// Reload reports whether the termination should re-exec argv afterwards.
func (s *SignalState) Reload() bool { return s.reload }

// Stop removes the signal handlers.
func (s *SignalState) Stop() {
	signal.Stop(s.ch)
	close(s.ch)
}
