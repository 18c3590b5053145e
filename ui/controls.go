package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/config"
)

// Actions reports what the user asked for during one frame.
type Actions struct {
	Reset      bool // reconfigure with the slider values
	Toggle     bool // start or pause
	AddFood    bool
	PulseTrail bool

	TimeScaleChanged bool
	TimeScale        float64
}

// Any reports whether any action was requested.
func (a Actions) Any() bool {
	return a.Reset || a.Toggle || a.AddFood || a.PulseTrail || a.TimeScaleChanged
}

// ControlsPanel renders the arena setup sliders and the run buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	Ants            int
	Food            int
	DepositInterval float64
	TimeScale       float64

	maxTimeScale float64
}

// NewControlsPanel creates a controls panel seeded from the configured defaults.
func NewControlsPanel(x, y, width int32, cfg *config.Config) *ControlsPanel {
	return &ControlsPanel{
		renderer:        NewRenderer(),
		x:               x,
		y:               y,
		width:           width,
		Ants:            cfg.Population.Ants,
		Food:            cfg.Population.Food,
		DepositInterval: cfg.Pheromone.DepositInterval,
		TimeScale:       cfg.ClampTimeScale(cfg.Clock.TimeScale),
		maxTimeScale:    cfg.Clock.MaxTimeScale,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// SyncTimeScale mirrors a time scale changed elsewhere (keyboard) into the slider.
func (c *ControlsPanel) SyncTimeScale(v float64) {
	c.TimeScale = v
}

// Draw renders the panel and returns the requested actions and the next free Y.
func (c *ControlsPanel) Draw(running bool) (Actions, int32) {
	var act Actions
	r := c.renderer
	padding := r.Theme.Padding
	x := float32(c.x + padding)
	w := float32(c.width - padding*2)
	sliderW := w - 60

	r.DrawPanel(c.x, c.y, c.width, 300)
	y := float32(c.y + padding)

	rl.DrawText("Arena", int32(x), int32(y), 16, rl.White)
	y += 24

	// Sliders: population and deposit interval only apply on reset
	rl.DrawText("Ants", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	ants := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 16}, "", "", float32(c.Ants), 0, 500)
	c.Ants = int(ants)
	rl.DrawText(fmt.Sprintf("%d", c.Ants), int32(x+sliderW+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	y += 24

	rl.DrawText("Food sources", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	food := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 16}, "", "", float32(c.Food), 0, 60)
	c.Food = int(food)
	rl.DrawText(fmt.Sprintf("%d", c.Food), int32(x+sliderW+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	y += 24

	rl.DrawText("Deposit interval (s)", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	interval := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 16}, "", "", float32(c.DepositInterval), 0, 10)
	c.DepositInterval = math.Round(float64(interval)*10) / 10
	rl.DrawText(fmt.Sprintf("%.1f", c.DepositInterval), int32(x+sliderW+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	y += 24

	// Time scale applies live. The slider works on log10 so 1x..1440x stays usable.
	rl.DrawText("Time scale", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	// Compare against the clamped value the slider reports back for sub-1x scales.
	top := float32(math.Log10(c.maxTimeScale))
	shown := min(max(float32(math.Log10(c.TimeScale)), 0), top)
	logScale := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 16}, "", "",
		shown, 0, top)
	if scale, moved := sliderTimeScale(shown, logScale); moved {
		c.TimeScale = scale
		act.TimeScaleChanged = true
		act.TimeScale = scale
	}
	rl.DrawText(fmt.Sprintf("x%g", c.TimeScale), int32(x+sliderW+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	y += 30

	half := (w - 10) / 2
	toggleText := "Start"
	if running {
		toggleText = "Pause"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, toggleText) {
		act.Toggle = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 28}, "Reset") {
		act.Reset = true
	}
	y += 36

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, "Add food") {
		act.AddFood = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 28}, "Pulse trail") {
		act.PulseTrail = true
	}
	y += 36

	return act, int32(y)
}

// sliderTimeScale maps the log10 slider value back to a whole time scale.
// An untouched slider reports no change, so scales set from the keyboard or
// config (0.5x, 2.5x) survive a redraw.
func sliderTimeScale(shown, slider float32) (float64, bool) {
	if slider == shown {
		return 0, false
	}
	return max(1, math.Round(math.Pow(10, float64(slider)))), true
}
