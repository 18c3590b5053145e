// Package renderer draws arena snapshots with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
)

// faintHealth is the health under which an ant is drawn pale regardless of its mode.
const faintHealth = 15

// Palette holds the arena colors.
type Palette struct {
	PathMarker   rl.Color
	FoodMarker   rl.Color
	ColonyFill   rl.Color
	ColonyStroke rl.Color
	FoodFill     rl.Color
	FoodStroke   rl.Color
	AntHealthy   rl.Color
	AntWeakened  rl.Color
	AntCarrying  rl.Color
	AntFaint     rl.Color
	Selection    rl.Color
}

// DefaultPalette returns the default arena colors.
func DefaultPalette() Palette {
	return Palette{
		PathMarker:   rl.Color{R: 126, G: 214, B: 255, A: 255},
		FoodMarker:   rl.Color{R: 255, G: 180, B: 120, A: 255},
		ColonyFill:   rl.Color{R: 51, G: 65, B: 85, A: 255},
		ColonyStroke: rl.Color{R: 34, G: 211, B: 238, A: 255},
		FoodFill:     rl.Color{R: 163, G: 230, B: 53, A: 255},
		FoodStroke:   rl.Color{R: 217, G: 249, B: 157, A: 255},
		AntHealthy:   rl.Color{R: 34, G: 211, B: 238, A: 255},
		AntWeakened:  rl.Color{R: 245, G: 158, B: 11, A: 255},
		AntCarrying:  rl.Color{R: 239, G: 68, B: 68, A: 255},
		AntFaint:     rl.Color{R: 248, G: 250, B: 252, A: 255},
		Selection:    rl.Color{R: 224, G: 242, B: 254, A: 255},
	}
}

// ArenaRenderer draws pheromones, the colony, food and ants.
type ArenaRenderer struct {
	Palette Palette
	cfg     *config.Config
}

// NewArenaRenderer creates an arena renderer for the given config.
func NewArenaRenderer(cfg *config.Config) *ArenaRenderer {
	return &ArenaRenderer{Palette: DefaultPalette(), cfg: cfg}
}

// Draw renders one snapshot in painter's order: markers, colony, food, ants, selection.
func (r *ArenaRenderer) Draw(s *game.Snapshot, cam *camera.Camera) {
	for i := range s.Pheromones {
		r.drawPheromone(&s.Pheromones[i], cam)
	}
	r.drawColony(&s.Colony, cam)
	for i := range s.Food {
		r.drawFood(&s.Food[i], cam)
	}
	for i := range s.Ants {
		r.drawAnt(&s.Ants[i], cam)
	}
	r.drawSelection(s, cam)
}

func (r *ArenaRenderer) drawPheromone(p *game.PheromoneView, cam *camera.Camera) {
	radius := r.cfg.Derived.PheromoneRadius
	var alpha float64
	var color rl.Color
	if p.FromFood {
		alpha = math.Min(0.95, 0.55+p.Intensity*0.4)
		color = r.Palette.FoodMarker
		radius = (radius + 3) * 0.9
	} else {
		alpha = math.Min(0.35, 0.18+p.Intensity*0.25)
		color = r.Palette.PathMarker
		radius = (radius + 1.5) * 0.6
	}
	if !cam.IsVisible(p.Pos.X, p.Pos.Y, radius) {
		return
	}
	sx, sy := cam.WorldToScreen(p.Pos.X, p.Pos.Y)
	rl.DrawCircleV(vec(sx, sy), float32(radius*cam.Zoom), rl.Fade(color, float32(alpha)))
}

func (r *ArenaRenderer) drawColony(c *game.ColonyView, cam *camera.Camera) {
	sx, sy := cam.WorldToScreen(c.Pos.X, c.Pos.Y)
	radius := float32(c.Radius * cam.Zoom)
	rl.DrawPoly(vec(sx, sy), 6, radius, 0, r.Palette.ColonyFill)
	rl.DrawPolyLinesEx(vec(sx, sy), 6, radius, 0, 2, r.Palette.ColonyStroke)
}

func (r *ArenaRenderer) drawFood(f *game.FoodView, cam *camera.Camera) {
	// Half-width of the diamond grows with the remaining quantity
	half := r.cfg.Derived.FoodRadius + math.Min(8, f.Quantity/8)
	if !cam.IsVisible(f.Pos.X, f.Pos.Y, half*math.Sqrt2) {
		return
	}
	sx, sy := cam.WorldToScreen(f.Pos.X, f.Pos.Y)
	radius := float32(half * math.Sqrt2 * cam.Zoom)
	rl.DrawPoly(vec(sx, sy), 4, radius, 0, r.Palette.FoodFill)
	rl.DrawPolyLinesEx(vec(sx, sy), 4, radius, 0, 1, r.Palette.FoodStroke)
}

// AntColor picks the ant color by priority: faint, carrying or trailing, weakened, healthy.
func (r *ArenaRenderer) AntColor(a *game.AntView) rl.Color {
	var c rl.Color
	switch {
	case a.Health < faintHealth:
		c = r.Palette.AntFaint
	case a.FoodTrail || a.Carrying > 0:
		c = r.Palette.AntCarrying
	case a.Condition == components.ConditionWeakened:
		c = r.Palette.AntWeakened
	default:
		c = r.Palette.AntHealthy
	}
	if a.State == components.StateResting {
		c = rl.Fade(c, 0.35)
	}
	return c
}

func (r *ArenaRenderer) drawAnt(a *game.AntView, cam *camera.Camera) {
	length := r.cfg.Ant.Length
	if !cam.IsVisible(a.Pos.X, a.Pos.Y, length) {
		return
	}
	sx, sy := cam.WorldToScreen(a.Pos.X, a.Pos.Y)

	hx, hy := a.Heading.X, a.Heading.Y
	if hx == 0 && hy == 0 {
		hx = 1
	}
	// Perpendicular to the heading
	px, py := -hy, hx

	half := length / 2 * cam.Zoom
	side := r.cfg.Ant.Width / 1.2 * cam.Zoom

	tip := vec(sx+hx*half, sy+hy*half)
	left := vec(sx-hx*half+px*side, sy-hy*half+py*side)
	right := vec(sx-hx*half-px*side, sy-hy*half-py*side)

	// raylib wants counter-clockwise vertices in screen space (y down)
	rl.DrawTriangle(tip, right, left, r.AntColor(a))
}

func (r *ArenaRenderer) drawSelection(s *game.Snapshot, cam *camera.Camera) {
	x, y, ok := SelectionPos(s)
	if !ok {
		return
	}
	sx, sy := cam.WorldToScreen(x, y)
	radius := float32(12 * cam.Zoom)
	rl.DrawRing(vec(sx, sy), radius-1, radius+1, 0, 360, 36, r.Palette.Selection)
}

// SelectionPos finds the arena position of the selected entity in the snapshot.
func SelectionPos(s *game.Snapshot) (x, y float64, ok bool) {
	sel := s.Selected
	switch sel.Kind {
	case game.KindColony:
		return s.Colony.Pos.X, s.Colony.Pos.Y, true
	case game.KindAnt:
		for i := range s.Ants {
			if s.Ants[i].ID == sel.ID {
				return s.Ants[i].Pos.X, s.Ants[i].Pos.Y, true
			}
		}
	case game.KindFood:
		for i := range s.Food {
			if s.Food[i].ID == sel.ID {
				return s.Food[i].Pos.X, s.Food[i].Pos.Y, true
			}
		}
	case game.KindPheromone:
		for i := range s.Pheromones {
			if s.Pheromones[i].ID == sel.ID {
				return s.Pheromones[i].Pos.X, s.Pheromones[i].Pos.Y, true
			}
		}
	}
	return 0, 0, false
}

func vec(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(x), Y: float32(y)}
}
