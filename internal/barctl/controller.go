// Copyright 2016 Michael Carlberg & contributors (polybar)

// Package barctl is the bar controller (C9): the composition root that
// wires logger, config, screen geometry, tray, renderer, IPC, modules, and
// the event loop into one running bar, structurally grounded on
// bar/run.go's construct-then-Run() shape (I3Bar assembled field by field,
// then handed to a single blocking Run call).
package barctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/jezek/xgbutil"
	"github.com/sirupsen/logrus"

	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/errs"
	"github.com/polybar/polybar-go/internal/ipc"
	"github.com/polybar/polybar-go/internal/loop"
	"github.com/polybar/polybar-go/internal/module"
	"github.com/polybar/polybar-go/internal/plog"
	"github.com/polybar/polybar-go/internal/render"
	"github.com/polybar/polybar-go/internal/tags"
	"github.com/polybar/polybar-go/internal/tray"
)

// Controller owns every live resource one running bar instance holds, and
// is the loop.Dispatcher the event loop (C6) drives.
type Controller struct {
	log      *logrus.Entry
	cfg      *config.Config
	settings Settings

	xu  *xgbutil.XUtil
	win *Window

	pixmap   *draw.Pixmap
	flusher  *XFlusher
	renderer *render.Renderer

	trayMgr   *tray.Manager
	selection *tray.Selection

	click    *ClickDispatcher
	reloader *Reloader

	endpoint    *ipc.Endpoint
	fifo        *ipc.Fifo
	configWatch *ConfigWatcher

	hosts       []*module.Host
	hostsByName map[string]*module.Host

	loop *loop.Loop

	writeback bool
	hidden    bool
}

// Deps is everything already constructed that NewController wires together.
// Bootstrap (bootstrap.go) builds a Deps from a config file path plus a real
// X connection; tests construct one directly from fakes.
type Deps struct {
	Log      *plog.Logger
	Cfg      *config.Config
	Settings Settings

	XU  *xgbutil.XUtil
	Win *Window

	Pixmap   *draw.Pixmap
	Flusher  *XFlusher
	Renderer *render.Renderer

	TrayMgr   *tray.Manager
	Selection *tray.Selection

	Hosts []*module.Host

	RuntimeDir string
	Pid        int

	// ConfigPath, if non-empty, is watched (§4.6 "Config watch") so an edit
	// schedules the same terminate+reload SIGUSR1 triggers.
	ConfigPath string

	// PipePath, if non-empty, also starts the legacy named-FIFO endpoint
	// at this path (the "-p/--pipe" override; settings.PipePath from the
	// config's own "pipe" key is used when this is empty).
	PipePath string

	// Writeback, when true, makes Render print each frame to stdout
	// (newline-separated, §6 "Stdout writeback mode") instead of pushing
	// pixels to the window, for piping into lemonbar or similar.
	Writeback bool
}

// NewController wires d into a running Controller's static structure
// (everything except starting the modules and entering the loop, which Run
// does). Construction order follows SPEC_FULL.md's composition root:
// logger, config, screen, tray, renderer, ipc, modules, loop.
func NewController(d Deps) (*Controller, error) {
	c := &Controller{
		log:       d.Log.Component("barctl"),
		cfg:       d.Cfg,
		settings:  d.Settings,
		xu:        d.XU,
		win:       d.Win,
		pixmap:    d.Pixmap,
		flusher:   d.Flusher,
		renderer:  d.Renderer,
		trayMgr:   d.TrayMgr,
		selection: d.Selection,
		reloader:  NewReloader(),
		writeback: d.Writeback,
	}

	c.click = NewClickDispatcher(c.renderer.Actions(), d.Settings.Fallbacks, d.Settings.DoubleClickInterval)

	c.hosts = d.Hosts
	c.hostsByName = make(map[string]*module.Host, len(d.Hosts))
	for _, h := range d.Hosts {
		c.hostsByName[h.Name] = h
	}

	endpoint, err := ipc.Listen(ipc.SocketPath(d.RuntimeDir, d.Pid), c.handleIPC)
	if err != nil {
		return nil, errs.Wrap("ipc", err)
	}
	c.endpoint = endpoint

	if pipePath := firstNonEmpty(d.PipePath, d.Settings.PipePath); pipePath != "" {
		fifo, err := ipc.ListenFifo(pipePath, c.handleIPC)
		if err != nil {
			c.log.WithError(err).Warn("starting legacy FIFO endpoint failed")
		} else {
			c.fifo = fifo
		}
	}

	l, err := loop.NewLoop(c, d.Settings.ThrottleOutput, d.Settings.ThrottleOutputFor, d.Settings.ThrottleInputFor, c.reloader.Exec)
	if err != nil {
		return nil, errs.Wrap("loop", err)
	}
	c.loop = l

	if d.ConfigPath != "" {
		cw, err := WatchConfig(d.ConfigPath, func() {
			c.loop.Enqueue(loop.Event{Type: loop.Quit, Flag: true})
		})
		if err != nil {
			c.log.WithError(err).Warn("watching config file failed")
		} else {
			c.configWatch = cw
		}
	}

	return c, nil
}

// Run starts every module host, notifies systemd (a no-op when not running
// under one), and blocks in the event loop until terminated.
func (c *Controller) Run() error {
	if c.selection != nil {
		if err := c.selection.Acquire(); err != nil {
			c.log.WithError(err).Warn("acquiring tray selection failed")
		} else if c.trayMgr != nil {
			fg := c.settings.Defaults.Fg
			colors := tray.UniformColors(fg.R(), fg.G(), fg.B())
			if err := c.trayMgr.Activate(colors); err != nil {
				c.log.WithError(err).Debug("setting tray colors/orientation failed")
			}
		}
	}
	if err := c.startXEventPump(); err != nil {
		c.log.WithError(err).Warn("starting X event pump failed")
	}

	for _, h := range c.hosts {
		if err := h.Start(); err != nil {
			c.log.WithError(err).Warnf("module %q failed to start", h.Name)
		}
	}

	if err := NotifyReady(); err != nil {
		c.log.WithError(err).Debug("sd_notify READY failed")
	}

	c.Render()

	err := c.loop.Run()

	if nerr := NotifyStopping(); nerr != nil {
		c.log.WithError(nerr).Debug("sd_notify STOPPING failed")
	}
	return err
}

// Close tears down every owned resource. Safe to call after Run returns.
func (c *Controller) Close() {
	for _, h := range c.hosts {
		h.Stop()
	}
	if c.selection != nil {
		c.selection.Release()
	}
	if c.endpoint != nil {
		_ = c.endpoint.Close()
	}
	if c.fifo != nil {
		_ = c.fifo.Close()
	}
	if c.configWatch != nil {
		c.configWatch.Close()
	}
	if c.trayMgr != nil {
		for _, cl := range c.trayMgr.Clients() {
			_ = c.trayMgr.Undock(cl.Win)
		}
	}
	if c.win != nil {
		c.win.Destroy()
	}
}

// Render implements loop.Dispatcher: it asks every module for its current
// content, parses it into the tag element stream (C1), and draws one frame
// (C2-C4), flushing the result to the real window.
func (c *Controller) Render() {
	frames := []render.Frame{
		c.buildFrame(tags.AlignLeft, c.settings.ModulesLeft),
		c.buildFrame(tags.AlignCenter, c.settings.ModulesCenter),
		c.buildFrame(tags.AlignRight, c.settings.ModulesRight),
	}

	c.renderer.Begin()
	c.renderer.Draw(frames...)
	c.renderer.End()

	if c.writeback {
		writebackPrint(frames)
		return
	}

	if c.flusher != nil && !c.hidden {
		if err := c.flusher.Flush(c.pixmap); err != nil {
			c.log.WithError(err).Warn("flushing frame to window failed")
		}
	}
}

func writebackPrint(frames []render.Frame) {
	var b strings.Builder
	for _, f := range frames {
		for _, el := range f.Elements {
			if !el.IsTag {
				b.WriteString(el.Text)
			}
		}
	}
	fmt.Println(b.String())
}

func (c *Controller) buildFrame(align tags.Alignment, names []string) render.Frame {
	var els []tags.Element
	for _, name := range names {
		h := c.hostsByName[name]
		if h == nil {
			continue
		}
		parsed, diags := tags.Parse(h.Contents())
		for _, d := range diags {
			c.log.Warnf("module %q: %s", name, d.Message)
		}
		els = append(els, parsed...)
	}
	return render.Frame{Alignment: align, Elements: els}
}

// Input implements loop.Dispatcher: payload is handed to every module in
// turn (the first to report it consumed wins, e.g. a custom/script module
// re-running itself on click), falling back to running payload as a shell
// command the way a bare "%{A:cmd:}" fallback-click target does.
func (c *Controller) Input(payload string) {
	for _, h := range c.hosts {
		if h.Input(payload) {
			return
		}
	}
	runShell(payload)
}

// AnyModulesRunning implements loop.Dispatcher.
func (c *Controller) AnyModulesRunning() bool {
	for _, h := range c.hosts {
		if h.Running() {
			return true
		}
	}
	return false
}

// Click dispatches an X ButtonPress at pixel x on button btn, translating it
// through the double-click timer and fallback map before feeding whatever
// payload results into the loop exactly like an IPC "action:" message would.
func (c *Controller) Click(btn tags.Button, x int, now time.Time) {
	res := c.click.Dispatch(btn, x, now)
	if res.Matched {
		c.loop.Enqueue(loop.Event{Type: loop.Input, Payload: res.Payload})
	} else {
		c.log.Warnf("no action block or fallback for button %d at x=%d", btn, x)
	}
}

func (c *Controller) handleIPC(msg ipc.Message) {
	switch msg.Kind {
	case ipc.Cmd:
		c.handleCommand(msg.Command)
	case ipc.Hook:
		if h := c.hostsByName[msg.Module]; h != nil {
			h.Broadcast()
		}
	case ipc.Action:
		c.loop.Enqueue(loop.Event{Type: loop.Input, Payload: msg.Payload})
	}
}

func (c *Controller) handleCommand(cmd ipc.Command) {
	switch cmd {
	case ipc.CommandQuit:
		c.loop.Enqueue(loop.Event{Type: loop.Quit, Flag: false})
	case ipc.CommandRestart:
		c.loop.Enqueue(loop.Event{Type: loop.Quit, Flag: true})
	case ipc.CommandHide:
		c.setHidden(true)
	case ipc.CommandShow:
		c.setHidden(false)
	case ipc.CommandToggle:
		c.setHidden(!c.hidden)
	}
}

func (c *Controller) setHidden(hidden bool) {
	if c.win == nil || hidden == c.hidden {
		return
	}
	var err error
	if hidden {
		err = c.win.Hide()
	} else {
		err = c.win.Show()
	}
	if err != nil {
		c.log.WithError(err).Warnf("setting window hidden=%v failed", hidden)
		return
	}
	c.hidden = hidden

	if c.trayMgr != nil {
		c.trayMgr.SetHidden(hidden)
		if !hidden {
			c.reflowTray()
		}
	}
}

// reflowTray recomputes the tray's layout, repositions its docked clients,
// and reserves the resulting width from the renderer so the next Render
// call leaves that strip alone (§4.7 / C4 "reserved strip of the bar").
// Called after Dock/Undock/SetMapped change which clients are embedded or
// visible.
func (c *Controller) reflowTray() {
	if c.trayMgr == nil {
		return
	}
	width, err := c.trayMgr.Reflow()
	if err != nil {
		c.log.WithError(err).Warn("repositioning tray clients failed")
	}
	c.renderer.Reserve(c.settings.TrayPosition, width)
	c.loop.Enqueue(loop.Event{Type: loop.Update})
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func runShell(payload string) {
	if payload == "" {
		return
	}
	cmd := shellCommand(payload)
	_ = cmd.Start()
}
