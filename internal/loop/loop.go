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
	"time"

	"golang.org/x/sys/unix"
)

// Dispatcher is what the bar controller (C9) provides so Loop can stay
// ignorant of X11/rendering/IPC details, mirroring gobar's single-select
// main loop where the body of each case is a plain method call
// (bar.Draw(text)) rather than loop-owned logic.
type Dispatcher interface {
	// Render draws the current combined module output.
	Render()
	// Input handles a click/scroll payload routed from the X connection or
	// the IPC endpoint.
	Input(payload string)
	// AnyModulesRunning reports whether at least one module host is still
	// active, consulted on Check to decide whether to exit.
	AnyModulesRunning() bool
}

// ExtraFD is a file descriptor the loop should also watch for readability
// (the X connection, the IPC listener, an inotify fd), along with the
// callback to run when it becomes readable.
type ExtraFD struct {
	FD uintptr
	On func()
}

// Loop is the event loop (C6): single-threaded, cooperative, woken only by
// select() over the wakeup pipe and any ExtraFDs.
type Loop struct {
	dispatcher Dispatcher
	queue      *Queue
	out        *OutputThrottle
	in         *InputThrottle
	pipe       *wakeupPipe
	sig        *SignalState
	extra      []ExtraFD

	onReload func() error
}

// NewLoop constructs a Loop. outputLimit/outputWindow configure
// throttle-output/throttle-output-for; inputWindow configures
// throttle-input-for. onReload, if non-nil, is invoked after a
// SIGUSR1-triggered shutdown completes, and should re-exec the process.
func NewLoop(d Dispatcher, outputLimit int, outputWindow time.Duration, inputWindow time.Duration, onReload func() error) (*Loop, error) {
	pipe, err := newWakeupPipe()
	if err != nil {
		return nil, err
	}
	return &Loop{
		dispatcher: d,
		queue:      NewQueue(),
		out:        NewOutputThrottle(outputLimit, outputWindow),
		in:         NewInputThrottle(inputWindow),
		pipe:       pipe,
		sig:        WatchSignals(pipe),
		onReload:   onReload,
	}, nil
}

// Watch registers an additional fd for Run's select loop.
func (l *Loop) Watch(fd ExtraFD) {
	l.extra = append(l.extra, fd)
}

// Enqueue posts ev onto the queue and wakes the loop. Safe to call from any
// goroutine.
func (l *Loop) Enqueue(ev Event) {
	l.queue.Push(ev)
	l.pipe.wake()
}

// Run blocks, processing events until a terminating signal is observed (or
// a Quit event is enqueued directly, e.g. by a test), then stops.
func (l *Loop) Run() error {
	for {
		if l.sig.Terminate() {
			break
		}
		if err := l.waitReadable(); err != nil {
			return err
		}
		l.pipe.drain()
		l.drainExtra()
		l.drainQueue()
	}
	reload := l.sig.Reload()
	l.sig.Stop()
	l.pipe.close()
	if reload && l.onReload != nil {
		return l.onReload()
	}
	return nil
}

func (l *Loop) waitReadable() error {
	fds := make([]int, 0, 1+len(l.extra))
	fds = append(fds, l.pipe.r)
	for _, e := range l.extra {
		fds = append(fds, int(e.FD))
	}

	var set unix.FdSet
	maxFd := 0
	for _, fd := range fds {
		set.Bits[fd/64] |= 1 << (uint(fd) % 64)
		if fd > maxFd {
			maxFd = fd
		}
	}
	// Poll on a bounded timeout rather than blocking forever, so queued
	// events enqueued racily right before select (and thus missing the
	// pipe wakeup) are still picked up promptly.
	timeout := unix.Timeval{Sec: 1}
	_, err := unix.Select(maxFd+1, &set, nil, nil, &timeout)
	if err != nil && err != unix.EINTR {
		return err
	}
	return nil
}

func (l *Loop) drainExtra() {
	for _, e := range l.extra {
		if e.On != nil {
			e.On()
		}
	}
}

// drainQueue pops and dispatches queued events, applying output coalescing
// to Update/Check and rate-limiting to Input. Input and Quit are never
// throttled by the batch cap (§5 "Throttling may drop UPDATEs but never
// INPUT, QUIT, or CHECK"); only the number of Update/Check events absorbed
// in one pass is bounded by throttle-output, so a flood of Updates can't
// starve the registered extra fds indefinitely. Any events left queued
// when the cap is hit re-wake the pipe so the next Run iteration picks
// them up immediately instead of waiting out select's timeout.
func (l *Loop) drainQueue() {
	now := time.Now
	absorbed := 0
	for {
		ev, ok := l.queue.Pop()
		if !ok {
			return
		}
		switch ev.Type {
		case Update, Check:
			if l.out.Limit > 0 && absorbed >= l.out.Limit {
				l.queue.Push(ev)
				l.pipe.wake()
				return
			}
			absorbed++
			if l.out.Admit(now(), ev.Flag) {
				l.dispatcher.Render()
			}
			if ev.Type == Check && !l.dispatcher.AnyModulesRunning() {
				l.sig.terminate = true
			}
		case Input:
			l.out.Interrupt()
			if l.in.Admit(now()) {
				l.dispatcher.Input(ev.Payload)
			}
		case Quit:
			l.out.Interrupt()
			l.sig.terminate = true
			l.sig.reload = ev.Flag
			return
		}
	}
}
