// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"os"

	"github.com/jezek/xgbutil"
	"github.com/spf13/afero"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/errs"
	"github.com/polybar/polybar-go/internal/fontadapter"
	"github.com/polybar/polybar-go/internal/loop"
	"github.com/polybar/polybar-go/internal/module"
	"github.com/polybar/polybar-go/internal/plog"
	"github.com/polybar/polybar-go/internal/render"
	"github.com/polybar/polybar-go/internal/tray"
)

// BootstrapOptions is the subset of cmd/polybar's flags Bootstrap needs.
type BootstrapOptions struct {
	ConfigPath string
	BarName    string
	LogLevel   plog.Level
	LogPath    string
	RuntimeDir string
	PipePath   string
	Writeback  bool
}

// loopBox lets module broadcast closures be built before the Loop they
// enqueue onto exists (NewController can't build the Loop until it has a
// Dispatcher, and the Dispatcher needs the already-built Hosts): Bootstrap
// builds hosts against box.broadcast, constructs the Controller, then binds
// box.l to the Loop NewController just created.
type loopBox struct{ l *loop.Loop }

func (b *loopBox) broadcast() {
	if b.l != nil {
		b.l.Enqueue(loop.Event{Type: loop.Update})
	}
}

// Bootstrap performs the full real-X11 composition root: logger, config,
// screen geometry, tray, renderer, ipc (via NewController), modules, ready
// to Run. It is the production counterpart to tests constructing a
// Controller from fakes via NewController(Deps{...}) directly.
func Bootstrap(opts BootstrapOptions) (*Controller, error) {
	logger := plog.New(opts.LogLevel, opts.LogPath)

	cfg, err := config.Load(afero.NewOsFs(), opts.ConfigPath)
	if err != nil {
		return nil, errs.Wrap("config", err)
	}

	settings, err := LoadSettings(cfg, opts.BarName)
	if err != nil {
		return nil, errs.Wrap("config", err)
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errs.Wrap("x11-connect", err)
	}

	geom, screenHeight, err := ResolveGeometry(xu, settings, settings.Monitor)
	if err != nil {
		return nil, errs.Wrap("screen", err)
	}

	win, err := CreateWindow(xu, geom, settings.Position, screenHeight)
	if err != nil {
		return nil, errs.Wrap("window", err)
	}
	if err := win.SetName("polybar-" + opts.BarName); err != nil {
		logger.Component("barctl").WithError(err).Debug("setting WM_NAME failed")
	}

	faces, err := loadFonts(cfg, "bar/"+opts.BarName)
	if err != nil {
		return nil, errs.Wrap("font", err)
	}
	fonts, err := fontadapter.New(faces)
	if err != nil {
		return nil, errs.Wrap("font", err)
	}

	pixmap := draw.NewPixmap(geom.Width, geom.Height, fonts)
	flusher := NewXFlusher(xu, win.ID(), geom.Width, geom.Height)
	renderer := render.New(pixmap, geom.Width, settings.Defaults)

	// X11 "screens" (distinct from Xinerama/RandR monitor heads) are a
	// legacy multihead mechanism essentially unused since the 2000s; every
	// modern setup is one screen with N monitor heads, so screen 0 is
	// correct for the _NET_SYSTEM_TRAY_S<screen> atom name.
	trayBinding, err := tray.NewXConn(xu, 0)
	if err != nil {
		return nil, errs.Wrap("tray", err)
	}
	trayMgr := tray.NewManager(trayBinding, tray.Window(win.ID()), geom.Height, geom.Height, 0)
	selection := tray.NewSelection(trayBinding, tray.Window(win.ID()))

	box := &loopBox{}
	hosts, err := buildHosts(cfg, settings, box.broadcast)
	if err != nil {
		return nil, errs.Wrap("module", err)
	}

	c, err := NewController(Deps{
		Log:       logger,
		Cfg:       cfg,
		Settings:  settings,
		XU:        xu,
		Win:       win,
		Pixmap:    pixmap,
		Flusher:   flusher,
		Renderer:  renderer,
		TrayMgr:   trayMgr,
		Selection: selection,
		Hosts:     hosts,

		RuntimeDir: opts.RuntimeDir,
		Pid:        os.Getpid(),
		ConfigPath: opts.ConfigPath,
		PipePath:   opts.PipePath,
		Writeback:  opts.Writeback,
	})
	if err != nil {
		return nil, err
	}
	box.l = c.loop
	return c, nil
}

// buildHosts constructs one Host per name referenced by the bar's module
// lists (left/center/right, deduplicated), wiring each to broadcast.
func buildHosts(cfg *config.Config, settings Settings, broadcast func()) ([]*module.Host, error) {
	seen := map[string]bool{}
	var hosts []*module.Host
	for _, group := range [][]string{settings.ModulesLeft, settings.ModulesCenter, settings.ModulesRight} {
		for _, name := range group {
			if seen[name] {
				continue
			}
			seen[name] = true
			h, err := BuildModule(cfg, name, broadcast)
			if err != nil {
				return nil, err
			}
			hosts = append(hosts, h)
		}
	}
	return hosts, nil
}

// loadFonts resolves "font-0", "font-1", ... into faces. Loading arbitrary
// TTF/OTF files is the externally-supplied capability §4.2 carves out
// (draw.FontSet is the injected boundary); this repo ships a single
// fixed-width basicfont.Face7x13 for every configured slot. A production
// deployment swaps loadFonts for one backed by golang.org/x/image/font/opentype
// against real font files without touching internal/draw or internal/render.
func loadFonts(cfg *config.Config, section string) ([]font.Face, error) {
	names := cfg.List(section, "font")
	n := len(names)
	if n == 0 {
		n = 1
	}
	faces := make([]font.Face, n)
	for i := range faces {
		faces[i] = basicfont.Face7x13
	}
	return faces, nil
}
