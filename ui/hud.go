package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/game"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// HUDData holds all the data needed to render the summary panel.
type HUDData struct {
	Tick         int64
	SimTime      float64
	Ants         int
	Food         int
	Pheromones   int
	Stock        float64
	Running      bool
	TimeScale    float64
	MaxTimeScale float64
	FPS          int32
	Status       game.Status
}

// HUD renders the summary panel and status line.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (h *HUD) SetPosition(x, y int32) {
	h.x = x
	h.y = y
}

// Draw renders the HUD and returns the next free Y.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	x := h.x + padding

	r.DrawPanel(h.x, h.y, h.width, r.Theme.LineHeight*9+padding*2)
	y := h.y + padding

	y = r.DrawSectionHeader(x, y, "Colony")
	y = r.DrawLabelValue(x, y, "Ants", fmt.Sprintf("%d", data.Ants))
	y = r.DrawLabelValue(x, y, "Food", fmt.Sprintf("%d", data.Food))
	y = r.DrawLabelValue(x, y, "Pheromones", fmt.Sprintf("%d", data.Pheromones))
	y = r.DrawLabelValue(x, y, "Stock", fmt.Sprintf("%.0f", data.Stock))
	y = r.DrawLabelValue(x, y, "Sim time", FormatDuration(data.SimTime))
	y = r.DrawLabelValue(x, y, "Time scale", fmt.Sprintf("x%.0f (max %.0f)", data.TimeScale, data.MaxTimeScale))
	y = r.DrawLabelValue(x, y, "Tick / FPS", fmt.Sprintf("%d / %d", data.Tick, data.FPS))

	rl.DrawText(statusLine(data.Status), x, y, r.Theme.FontSize, h.statusColor(data.Status.State))
	y += r.Theme.LineHeight

	return y + padding
}

func (h *HUD) statusColor(s game.StatusState) rl.Color {
	switch s {
	case game.StatusRunning:
		return h.renderer.Theme.StatusRunning
	case game.StatusPaused:
		return h.renderer.Theme.StatusPaused
	case game.StatusInfo:
		return h.renderer.Theme.StatusInfo
	}
	return h.renderer.Theme.StatusReady
}

func statusLine(s game.Status) string {
	if s.Label == "" {
		return ""
	}
	if s.Detail == "" {
		return s.Label
	}
	return s.Label + ": " + s.Detail
}

// FormatDuration renders simulated seconds as d/h/m/s.
func FormatDuration(sec float64) string {
	d := time.Duration(sec * float64(time.Second))
	days := int(d.Hours()) / 24
	d -= time.Duration(days) * 24 * time.Hour
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, d.Truncate(time.Second))
	}
	return d.Truncate(time.Second).String()
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phases first.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Tick phases", x, y, 14, rl.White)
	y += 18

	rl.DrawText(fmt.Sprintf("Avg tick: %s", data.Stats.AvgTick.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 14

	for _, ph := range data.Stats.Slowest() {
		pct := data.Stats.Pct(ph)
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		name := ph.String()
		if data.Registry != nil {
			name = data.Registry.GetName(ph)
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %8s %5.1f%%", name, data.Stats.Avg(ph).Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
