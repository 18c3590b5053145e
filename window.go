package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
	"github.com/pthm-cable/antfarm/renderer"
	"github.com/pthm-cable/antfarm/ui"
)

// window is the raylib host: arena on the left, panels on the right.
type window struct {
	g   *game.Game
	cfg *config.Config

	cam        *camera.Camera
	background *renderer.BackgroundRenderer
	arena      *renderer.ArenaRenderer
	controls   *ui.ControlsPanel
	hud        *ui.HUD
	inspector  *ui.Inspector
	perfPanel  *ui.PerfPanel

	screenW, screenH int32
	arenaW           int32
	status           game.Status
	showPerf         bool
}

func runWindow(g *game.Game, cfg *config.Config, maxTicks int64) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Ant Farm")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := newWindow(g, cfg)
	for !rl.WindowShouldClose() {
		w.handleInput()
		g.Update(float64(rl.GetFrameTime()))
		g.RecordFrame()
		w.draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

func newWindow(g *game.Game, cfg *config.Config) *window {
	w := &window{
		g:          g,
		cfg:        cfg,
		screenW:    int32(cfg.Screen.Width),
		screenH:    int32(cfg.Screen.Height),
		background: renderer.NewBackgroundRenderer(11, 17, 32, 100),
		arena:      renderer.NewArenaRenderer(cfg),
	}
	w.arenaW = w.screenW - int32(cfg.Screen.PanelWidth)
	w.cam = camera.New(float64(w.arenaW), float64(w.screenH), cfg.Arena.Width, cfg.Arena.Height)

	panelX := w.arenaW
	panelW := int32(cfg.Screen.PanelWidth)
	w.controls = ui.NewControlsPanel(panelX, 0, panelW, cfg)
	w.hud = ui.NewHUD(panelX, 0, panelW)
	w.inspector = ui.NewInspector(panelX, 0, panelW, cfg)
	w.perfPanel = ui.NewPerfPanel(10, 10)

	g.SetStatusHook(func(s game.Status) { w.status = s })
	return w
}

// handleResize checks for window resize and propagates new dimensions.
func (w *window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w.screenW = int32(rl.GetScreenWidth())
	w.screenH = int32(rl.GetScreenHeight())
	w.arenaW = w.screenW - int32(w.cfg.Screen.PanelWidth)
	if w.arenaW < 100 {
		w.arenaW = 100
	}
	w.cam.Resize(float64(w.arenaW), float64(w.screenH))
}

func (w *window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		w.toggle()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		w.addFood()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		w.pulse()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		w.showPerf = !w.showPerf
	}
	if rl.IsKeyPressed(rl.KeyC) {
		w.g.ClearSelection()
	}

	w.handleCameraInput()

	// Clicks on the panel belong to raygui
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && int32(mouse.X) < w.arenaW {
		if x, y, inside := w.cam.ScreenToWorld(float64(mouse.X), float64(mouse.Y)); inside {
			w.g.Select(x, y)
		}
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (w *window) handleCameraInput() {
	panSpeed := 8.0 // screen pixels per frame

	if rl.IsKeyDown(rl.KeyRight) {
		w.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		w.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.cam.Pan(0, -panSpeed)
	}

	if mouse := rl.GetMousePosition(); int32(mouse.X) < w.arenaW {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			w.cam.ZoomBy(1 + float64(wheel)*0.1)
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		w.cam.Reset()
	}
}

func (w *window) toggle() {
	if w.g.Running() {
		w.g.Pause()
	} else {
		w.g.Start()
	}
}

func (w *window) addFood() {
	if err := w.g.AddFood(w.cfg.Food.SpawnCount); err != nil {
		w.status = game.Status{Label: "Error", Detail: err.Error(), State: game.StatusInfo}
	}
}

func (w *window) pulse() {
	if err := w.g.PulseTrail(w.cfg.Pheromone.PulseCount); err != nil {
		w.status = game.Status{Label: "Error", Detail: err.Error(), State: game.StatusInfo}
	}
}

func (w *window) apply(act ui.Actions) {
	if act.TimeScaleChanged {
		w.g.SetTimeScale(act.TimeScale)
	}
	if act.Toggle {
		w.toggle()
	}
	if act.Reset {
		err := w.g.Configure(w.controls.Ants, w.controls.Food, w.controls.DepositInterval, w.g.TimeScale())
		if err != nil {
			w.status = game.Status{Label: "Error", Detail: err.Error(), State: game.StatusInfo}
		}
	}
	if act.AddFood {
		w.addFood()
	}
	if act.PulseTrail {
		w.pulse()
	}
}

func (w *window) draw() {
	snap := w.g.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 2, G: 6, B: 23, A: 255})

	rl.BeginScissorMode(0, 0, w.arenaW, w.screenH)
	w.background.Draw(w.cam)
	w.arena.Draw(&snap, w.cam)
	rl.EndScissorMode()

	// Panels stack top to bottom
	y := int32(0)
	w.hud.SetPosition(w.arenaW, y)
	y = w.hud.Draw(ui.HUDData{
		Tick:         snap.Tick,
		SimTime:      snap.SimTime,
		Ants:         len(snap.Ants),
		Food:         len(snap.Food),
		Pheromones:   len(snap.Pheromones),
		Stock:        snap.Colony.Stock,
		Running:      snap.Running,
		TimeScale:    snap.TimeScale,
		MaxTimeScale: w.cfg.Clock.MaxTimeScale,
		FPS:          rl.GetFPS(),
		Status:       w.status,
	})

	w.controls.SetPosition(w.arenaW, y)
	w.controls.SyncTimeScale(snap.TimeScale)
	act, y := w.controls.Draw(snap.Running)

	w.inspector.SetPosition(w.arenaW, y)
	in, ok := w.g.Selected()
	w.inspector.Draw(in, ok)

	if w.showPerf {
		w.perfPanel.Draw(ui.PerfPanelData{Stats: w.g.PerfStats(), Registry: w.g.Registry()})
	}

	rl.EndDrawing()

	// Actions change the world, so they run after the frame is drawn
	if act.Any() {
		w.apply(act)
	}
}
