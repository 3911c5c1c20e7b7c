// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"sync"
	"testing"
	"time"

	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/ipc"
	"github.com/polybar/polybar-go/internal/module"
	"github.com/polybar/polybar-go/internal/plog"
	"github.com/polybar/polybar-go/internal/render"
	"github.com/polybar/polybar-go/internal/tags"
	"github.com/polybar/polybar-go/internal/tray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTrayBinding is a minimal tray.Binding double letting controller tests
// exercise the Dock->reflowTray->Reserve wiring without a real X
// connection.
type fakeTrayBinding struct {
	moved map[tray.Window][2]int
}

func (f *fakeTrayBinding) QueryXEmbedInfo(tray.Window) (tray.Info, bool, error) { return tray.Info{}, false, nil }
func (f *fakeTrayBinding) SetEventMask(tray.Window) error                      { return nil }
func (f *fakeTrayBinding) Reparent(tray.Window, tray.Window) error             { return nil }
func (f *fakeTrayBinding) Move(win tray.Window, x, y int) error {
	f.moved[win] = [2]int{x, y}
	return nil
}
func (f *fakeTrayBinding) Resize(tray.Window, int, int) error               { return nil }
func (f *fakeTrayBinding) Map(tray.Window) error                           { return nil }
func (f *fakeTrayBinding) Unmap(tray.Window) error                         { return nil }
func (f *fakeTrayBinding) SendEmbeddedNotify(tray.Window, tray.Window, uint32) error { return nil }
func (f *fakeTrayBinding) Unembed(tray.Window) error                       { return nil }
func (f *fakeTrayBinding) SetColors(tray.Window, tray.Colors) error        { return nil }
func (f *fakeTrayBinding) SetOrientation(tray.Window, uint32) error        { return nil }

// fakeBehavior is a module.Behavior double whose contents and Input
// response are set directly by the test, with no background goroutine.
type fakeBehavior struct {
	mu       sync.Mutex
	contents string
	running  bool
	consume  bool
}

func (f *fakeBehavior) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	return nil
}

func (f *fakeBehavior) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
}
func (f *fakeBehavior) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}
func (f *fakeBehavior) Contents() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contents
}
func (f *fakeBehavior) Input(string) bool { return f.consume }

func (f *fakeBehavior) set(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contents = s
}

// newTestController wires a Controller against fakes: no X connection, no
// window, no tray, an in-memory pixmap surface, and the given hosts. It is
// the barctl analogue of render_test.go's newTestRenderer.
func newTestController(t *testing.T, hosts []*module.Host, writeback bool) *Controller {
	t.Helper()

	font := draw.StubFont{AdvancePx: 4, HeightPx: 8}
	surf := draw.NewPixmap(200, 16, font)
	renderer := render.New(surf, 200, draw.Defaults{Fg: color.Black, Bg: color.White})

	settings := Settings{
		Name:                "test",
		ThrottleOutput:      5,
		ThrottleOutputFor:   50 * time.Millisecond,
		ThrottleInputFor:    30 * time.Millisecond,
		DoubleClickInterval: 400 * time.Millisecond,
		Fallbacks:           Fallbacks{},
	}

	c, err := NewController(Deps{
		Log:        plog.Nop(),
		Settings:   settings,
		Pixmap:     surf,
		Renderer:   renderer,
		Hosts:      hosts,
		RuntimeDir: t.TempDir(),
		Pid:        int(time.Now().UnixNano() % 1_000_000),
		Writeback:  writeback,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestRenderGathersEveryModuleIntoItsAlignment(t *testing.T) {
	left := &fakeBehavior{contents: "L"}
	right := &fakeBehavior{contents: "R"}
	hosts := []*module.Host{
		module.NewStatic("left", left, func() {}),
		module.NewStatic("right", right, func() {}),
	}

	c := newTestController(t, hosts, false)
	c.settings.ModulesLeft = []string{"left"}
	c.settings.ModulesRight = []string{"right"}

	c.Render() // must not panic with a nil flusher; writeback is off so it's a no-op draw
}

func TestWritebackPrintsParsedText(t *testing.T) {
	mod := &fakeBehavior{contents: "hello %{F#ff0000}world"}
	hosts := []*module.Host{module.NewStatic("mod", mod, func() {})}

	c := newTestController(t, hosts, true)
	c.settings.ModulesLeft = []string{"mod"}

	frame := c.buildFrame(tags.AlignLeft, c.settings.ModulesLeft)
	var text string
	for _, el := range frame.Elements {
		if !el.IsTag {
			text += el.Text
		}
	}
	assert.Equal(t, "hello world", text)
}

func TestInputFallsThroughToFirstConsumingModule(t *testing.T) {
	ignorer := &fakeBehavior{consume: false}
	consumer := &fakeBehavior{consume: true}
	hosts := []*module.Host{
		module.NewStatic("a", ignorer, func() {}),
		module.NewStatic("b", consumer, func() {}),
	}

	c := newTestController(t, hosts, false)
	c.Input("click-payload") // should not panic even though no shell command is meant to run
}

func TestAnyModulesRunningReflectsHostState(t *testing.T) {
	mod := &fakeBehavior{}
	h := module.NewStatic("mod", mod, func() {})
	c := newTestController(t, []*module.Host{h}, false)

	assert.False(t, c.AnyModulesRunning())
	require.NoError(t, h.Start())
	assert.True(t, c.AnyModulesRunning())
}

func TestHandleCommandQuitEnqueuesLoopQuit(t *testing.T) {
	c := newTestController(t, nil, false)
	c.handleIPC(ipc.Message{Kind: ipc.Cmd, Command: ipc.CommandQuit})
	// handleCommand enqueues onto c.loop; this test only checks that doing so
	// does not panic. The loop is not run here; loop's own tests cover how a
	// Quit event ends Run.
}

func TestHandleCommandHideWithoutWindowIsNoOp(t *testing.T) {
	c := newTestController(t, nil, false)
	assert.False(t, c.hidden)

	c.handleIPC(ipc.Message{Kind: ipc.Cmd, Command: ipc.CommandHide})
	assert.False(t, c.hidden) // no real Window attached, so setHidden no-ops

	c.win = nil // explicit: setHidden must stay a no-op without a Window
	c.setHidden(true)
	assert.False(t, c.hidden)
}

func TestHandleIPCHookBroadcastsNamedModule(t *testing.T) {
	var calls int
	mod := &fakeBehavior{}
	h := module.NewStatic("mod", mod, func() { calls++ })
	c := newTestController(t, []*module.Host{h}, false)

	c.handleIPC(ipc.Message{Kind: ipc.Hook, Module: "mod", HookIndex: 0})
	assert.Equal(t, 1, calls)

	c.handleIPC(ipc.Message{Kind: ipc.Hook, Module: "missing", HookIndex: 0})
	assert.Equal(t, 1, calls)
}

func TestClickDispatchesMatchedActionOntoLoop(t *testing.T) {
	c := newTestController(t, nil, false)
	c.settings.Fallbacks = Fallbacks{tags.ButtonRight: "notify-send hi"}
	c.click = NewClickDispatcher(c.renderer.Actions(), c.settings.Fallbacks, 400*time.Millisecond)

	c.Click(tags.ButtonRight, 5, time.Now()) // matched fallback enqueues an Input event; no panic expected
}

// TestDockedTrayClientReservesRendererSpace is the C7<->C4 wiring the
// review flagged as dead: docking a client must reposition it off (0,0)
// and reserve its width from the renderer so module content stops
// drawing underneath it.
func TestDockedTrayClientReservesRendererSpace(t *testing.T) {
	binding := &fakeTrayBinding{moved: map[tray.Window][2]int{}}
	trayMgr := tray.NewManager(binding, tray.Window(1), 20, 20, 4)

	font := draw.StubFont{AdvancePx: 4, HeightPx: 8}
	surf := draw.NewPixmap(200, 16, font)
	renderer := render.New(surf, 200, draw.Defaults{Fg: color.Black, Bg: color.White})

	c, err := NewController(Deps{
		Log:        plog.Nop(),
		Settings:   Settings{Name: "test", TrayPosition: tags.AlignRight, Fallbacks: Fallbacks{}},
		Pixmap:     surf,
		Renderer:   renderer,
		TrayMgr:    trayMgr,
		RuntimeDir: t.TempDir(),
		Pid:        int(time.Now().UnixNano() % 1_000_000),
	})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, trayMgr.Dock(100))
	c.reflowTray()

	assert.Equal(t, [2]int{4, 0}, binding.moved[100])

	// Tray width is 4 + 1*(20+4) = 28: Begin fills the background up to
	// x=171 and leaves the 28px strip on the right untouched.
	surf.Fill(0, 0, 200, 16, color.Black)
	renderer.Begin()
	assert.Equal(t, color.White, surf.At(200-28-1, 0))
	assert.Equal(t, color.Black, surf.At(200-28, 0))
}

func TestFirstNonEmptyPrefersFirstArgument(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
