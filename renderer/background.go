package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
)

// BackgroundRenderer draws the arena floor and a faint reference grid.
type BackgroundRenderer struct {
	floor    rl.Color
	grid     rl.Color
	gridStep float64 // arena units between grid lines
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(baseR, baseG, baseB uint8, gridStep float64) *BackgroundRenderer {
	return &BackgroundRenderer{
		floor:    rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		grid:     rl.Color{R: baseR + 12, G: baseG + 14, B: baseB + 18, A: 255},
		gridStep: gridStep,
	}
}

// Draw fills the arena area of the viewport and overlays the grid.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(cam.X-cam.WorldW/2, cam.Y-cam.WorldH/2)
	w := cam.WorldW * cam.Zoom
	h := cam.WorldH * cam.Zoom
	rl.DrawRectangle(int32(x0), int32(y0), int32(w), int32(h), b.floor)

	if b.gridStep <= 0 || b.gridStep*cam.Zoom < 8 {
		return
	}
	for gx := b.gridStep; gx < cam.WorldW; gx += b.gridStep {
		sx, _ := cam.WorldToScreen(gx, cam.Y)
		if sx < x0 || sx > x0+w {
			continue
		}
		rl.DrawLine(int32(sx), int32(y0), int32(sx), int32(y0+h), b.grid)
	}
	for gy := b.gridStep; gy < cam.WorldH; gy += b.gridStep {
		_, sy := cam.WorldToScreen(cam.X, gy)
		if sy < y0 || sy > y0+h {
			continue
		}
		rl.DrawLine(int32(x0), int32(sy), int32(x0+w), int32(sy), b.grid)
	}
}
