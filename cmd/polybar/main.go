// Copyright 2016 Michael Carlberg & contributors (polybar)

// Command polybar is the status bar daemon's entry point: flag parsing via
// the standard library (no cobra — gobar's main, the one *-relevant CLI in
// the example pack, parses its own flags the same minimal way) plus
// delegation to internal/barctl for everything else.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/polybar/polybar-go/internal/barctl"
	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/errs"
	"github.com/polybar/polybar-go/internal/plog"
	"github.com/spf13/afero"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("polybar", flag.ContinueOnError)

	var (
		configPath = fs.String("config", "", "path to the config file (short: -c)")
		logLevel   = fs.String("log", "info", "log verbosity: info, debug, trace (short: -l)")
		pipePath   = fs.String("pipe", "", "legacy named-FIFO path override (short: -p)")
		dumpKey    = fs.String("dump", "", "print the named bar/<name> config value and exit (short: -d)")
		printExec  = fs.Bool("print-exec", false, "print the launch command and exit (short: -x)")
		printWM    = fs.Bool("print-wmname", false, "print the bar window's WM_NAME and exit (short: -w)")
		writeback  = fs.Bool("writeback", false, "write formatted frames to stdout instead of drawing them")
	)
	fs.StringVar(configPath, "c", "", "shorthand for -config")
	fs.StringVar(logLevel, "l", "info", "shorthand for -log")
	fs.StringVar(pipePath, "p", "", "shorthand for -pipe")
	fs.StringVar(dumpKey, "d", "", "shorthand for -dump")
	fs.BoolVar(printExec, "x", false, "shorthand for -print-exec")
	fs.BoolVar(printWM, "w", false, "shorthand for -print-wmname")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: polybar [OPTIONS] <bar_name>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if printExec != nil && *printExec {
		fmt.Println(filepath.Join(os.Args[0]))
		return 0
	}

	barName := fs.Arg(0)
	if barName == "" {
		fmt.Fprintln(os.Stderr, "polybar: missing <bar_name>")
		fs.Usage()
		return 2
	}

	path := resolveConfigPath(*configPath)

	if *dumpKey != "" {
		return dump(path, barName, *dumpKey)
	}

	if *printWM {
		fmt.Println("polybar-" + barName)
		return 0
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}

	ctrl, err := barctl.Bootstrap(barctl.BootstrapOptions{
		ConfigPath: path,
		BarName:    barName,
		LogLevel:   plog.Level(*logLevel),
		RuntimeDir: runtimeDir,
		PipePath:   *pipePath,
		Writeback:  *writeback,
	})
	if err != nil {
		return reportFatal(err)
	}
	defer ctrl.Close()

	if err := ctrl.Run(); err != nil {
		return reportFatal(err)
	}
	return 0
}

func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "polybar", "config")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "polybar", "config")
}

func dump(path, barName, key string) int {
	cfg, err := config.Load(afero.NewOsFs(), path)
	if err != nil {
		return reportFatal(errs.Wrap("config", err))
	}
	v, ok := cfg.Get("bar/"+barName, key)
	if !ok {
		fmt.Fprintf(os.Stderr, "polybar: bar/%s.%s not set\n", barName, key)
		return 1
	}
	fmt.Println(v)
	return 0
}

func reportFatal(err error) int {
	fmt.Fprintln(os.Stderr, "polybar:", err)
	return 1
}
