// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"os"
	osexec "os/exec"
	"syscall"

	"github.com/polybar/polybar-go/internal/ipc"
)

// Reloader re-execs the process in place on a SIGUSR1-triggered reload,
// preserving the pid (and therefore the IPC socket path, Property 5).
// Grounded on bar/run.go's pause/resume signal handling generalized from
// "suspend modules" to "tear down and re-exec".
type Reloader struct {
	// Argv0 and Args are what gets re-exec'd; tests substitute a fake exec
	// func instead of actually replacing the process image.
	Argv0 string
	Args  []string
	Env   []string

	// exec defaults to syscall.Exec; overridden in tests.
	exec func(argv0 string, argv []string, envv []string) error
}

// NewReloader captures the current process's argv/env for a future re-exec.
func NewReloader() *Reloader {
	return &Reloader{
		Argv0: os.Args[0],
		Args:  os.Args,
		Env:   os.Environ(),
		exec:  syscall.Exec,
	}
}

// Exec replaces the current process image with the same argv/env. Because
// syscall.Exec preserves the pid, SocketPath(pid) computed before and after
// this call are equal by construction — Property 5 needs no special-casing,
// it falls out of re-exec-in-place rather than any explicit state transfer.
func (r *Reloader) Exec() error {
	argv0, err := lookPath(r.Argv0)
	if err != nil {
		return err
	}
	return r.exec(argv0, r.Args, r.Env)
}

func lookPath(name string) (string, error) {
	if path, err := osexec.LookPath(name); err == nil {
		return path, nil
	}
	return name, nil
}

// SocketPathForPID is a thin wrapper so callers (and tests) can assert
// Property 5 without reaching into internal/ipc directly.
func SocketPathForPID(runtimeDir string, pid int) string {
	return ipc.SocketPath(runtimeDir, pid)
}
