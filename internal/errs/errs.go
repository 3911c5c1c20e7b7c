// Copyright 2016 Michael Carlberg & contributors (polybar)

// Package errs is the two-case error taxonomy from §7: Fatal errors abort
// startup, everything else is logged and the owning entity degrades in
// place.
package errs

import "fmt"

// Fatal marks an error that must terminate the process: configuration
// errors, bad bar geometry, missing fonts, or the X connection closing.
// Ordinary errors use the unwrapped stdlib error type and are handled by
// logging + local recovery.
type Fatal struct {
	// Stage names the startup phase that failed, e.g. "config", "screen",
	// "font".
	Stage string
	Err   error
}

func (f *Fatal) Error() string {
	return fmt.Sprintf("%s: %v", f.Stage, f.Err)
}

func (f *Fatal) Unwrap() error {
	return f.Err
}

// Wrap builds a Fatal for the given startup stage.
func Wrap(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Fatal{Stage: stage, Err: err}
}
