// Package termview renders the arena as a character grid with tcell and
// maps keys and mouse clicks onto game actions.
package termview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/game"
)

// Glyphs used for arena cells.
const (
	GlyphPathMarker = '.'
	GlyphFoodMarker = ':'
	GlyphColony     = '#'
	GlyphFood       = '*'
	GlyphSelection  = '@'
)

// statusRows is the number of rows reserved under the arena.
const statusRows = 2

// View draws a game onto a tcell screen.
// Terminal cells are about twice as tall as wide, so the camera works on a
// viewport of cols x 2*rows and each row covers two camera units.
type View struct {
	screen tcell.Screen
	game   *game.Game
	cam    *camera.Camera
	status game.Status

	width, height int
}

// New creates a view over screen and hooks the game's status reports.
func New(screen tcell.Screen, g *game.Game) *View {
	b := g.Bounds()
	v := &View{screen: screen, game: g}
	v.width, v.height = screen.Size()
	v.cam = camera.New(float64(v.width), float64(v.arenaRows()*2), b.Width, b.Height)
	g.SetStatusHook(func(s game.Status) { v.status = s })
	return v
}

// Status returns the last status reported by the game.
func (v *View) Status() game.Status {
	return v.status
}

func (v *View) arenaRows() int {
	rows := v.height - statusRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Resize picks up the current screen size.
func (v *View) Resize() {
	v.width, v.height = v.screen.Size()
	v.cam.Resize(float64(v.width), float64(v.arenaRows()*2))
	v.cam.Reset()
}

// cellOf maps an arena point to a cell. ok is false outside the arena rows.
func (v *View) cellOf(x, y float64) (cx, cy int, ok bool) {
	sx, sy := v.cam.WorldToScreen(x, y)
	cx = int(sx)
	cy = int(sy / 2)
	if sx < 0 || sy < 0 || cx >= v.width || cy >= v.arenaRows() {
		return 0, 0, false
	}
	return cx, cy, true
}

// worldOf maps a cell center back to the arena.
func (v *View) worldOf(cx, cy int) (x, y float64, ok bool) {
	return v.cam.ScreenToWorld(float64(cx)+0.5, (float64(cy)+0.5)*2)
}

// HandleEvent applies one input event. It returns false when the user asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	cfg := v.game.Config()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
		default:
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if v.game.Running() {
				v.game.Pause()
			} else {
				v.game.Start()
			}
		case 'r':
			err := v.game.Configure(cfg.Population.Ants, cfg.Population.Food, v.game.DepositInterval(), v.game.TimeScale())
			if err != nil {
				slog.Error("reset failed", "error", err)
			}
		case 'f':
			if err := v.game.AddFood(cfg.Food.SpawnCount); err != nil {
				slog.Error("add food failed", "error", err)
			}
		case 'p':
			if err := v.game.PulseTrail(cfg.Pheromone.PulseCount); err != nil {
				slog.Error("pulse trail failed", "error", err)
			}
		case '+', '=':
			v.game.SetTimeScale(v.game.TimeScale() * 2)
		case '-':
			v.game.SetTimeScale(v.game.TimeScale() / 2)
		case 'c':
			v.game.ClearSelection()
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return true
		}
		cx, cy := ev.Position()
		if cy >= v.arenaRows() {
			return true
		}
		if x, y, inside := v.worldOf(cx, cy); inside {
			v.game.Select(x, y)
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.Resize()
	}
	return true
}

// Draw renders the arena and the status rows.
func (v *View) Draw() {
	s := v.game.Snapshot()
	v.screen.Clear()

	for i := range s.Pheromones {
		p := &s.Pheromones[i]
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(126, 214, 255)).Dim(true)
		glyph := GlyphPathMarker
		if p.FromFood {
			style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 180, 120))
			glyph = GlyphFoodMarker
		}
		v.put(p.Pos.X, p.Pos.Y, glyph, style)
	}

	v.drawColony(&s.Colony)

	foodStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(163, 230, 53)).Bold(true)
	for i := range s.Food {
		v.put(s.Food[i].Pos.X, s.Food[i].Pos.Y, GlyphFood, foodStyle)
	}

	for i := range s.Ants {
		a := &s.Ants[i]
		v.put(a.Pos.X, a.Pos.Y, AntGlyph(a.Heading.X, a.Heading.Y), antStyle(a))
	}

	if x, y, ok := selectionPos(&s); ok {
		v.put(x, y, GlyphSelection, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))
	}

	v.drawStatus(&s)
	v.screen.Show()
}

func (v *View) put(x, y float64, glyph rune, style tcell.Style) {
	if cx, cy, ok := v.cellOf(x, y); ok {
		v.screen.SetContent(cx, cy, glyph, nil, style)
	}
}

func (v *View) drawColony(c *game.ColonyView) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(34, 211, 238)).Background(tcell.NewRGBColor(51, 65, 85))
	cx, cy, ok := v.cellOf(c.Pos.X, c.Pos.Y)
	if !ok {
		return
	}
	// Radius in cells on each axis; at least the center cell is drawn
	rx := int(c.Radius * v.cam.Zoom)
	ry := int(c.Radius * v.cam.Zoom / 2)
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if rx > 0 && ry > 0 {
				nx := float64(dx) / float64(rx)
				ny := float64(dy) / float64(ry)
				if nx*nx+ny*ny > 1 {
					continue
				}
			}
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= v.width || y >= v.arenaRows() {
				continue
			}
			v.screen.SetContent(x, y, GlyphColony, nil, style)
		}
	}
}

func (v *View) drawStatus(s *game.Snapshot) {
	row := v.arenaRows()
	state := "Paused"
	if s.Running {
		state = "Running"
	}
	line := fmt.Sprintf("%s x%.0f | ants %d food %d pheromones %d | stock %.0f | t=%.0fs",
		state, s.TimeScale, len(s.Ants), len(s.Food), len(s.Pheromones), s.Colony.Stock, s.SimTime)
	if v.status.Label != "" {
		line += " | " + v.status.Label
	}
	if in, ok := v.game.Selected(); ok {
		line += " | " + describe(in)
	}
	v.text(0, row, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	v.text(0, row+1, "space start/pause  r reset  f food  p pulse  +/- speed  click select  c clear  q quit",
		tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	if y >= v.height {
		return
	}
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// AntGlyph returns an arrow for the dominant heading axis.
func AntGlyph(hx, hy float64) rune {
	ax, ay := hx, hy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax == 0 && ay == 0:
		return 'o'
	case ax >= ay && hx > 0:
		return '>'
	case ax >= ay:
		return '<'
	case hy > 0:
		return 'v'
	default:
		return '^'
	}
}

func antStyle(a *game.AntView) tcell.Style {
	var c tcell.Color
	switch {
	case a.Health < 15:
		c = tcell.NewRGBColor(248, 250, 252)
	case a.FoodTrail || a.Carrying > 0:
		c = tcell.NewRGBColor(239, 68, 68)
	case a.Condition == components.ConditionWeakened:
		c = tcell.NewRGBColor(245, 158, 11)
	default:
		c = tcell.NewRGBColor(34, 211, 238)
	}
	style := tcell.StyleDefault.Foreground(c)
	if a.State == components.StateResting {
		style = style.Dim(true)
	}
	return style
}

func selectionPos(s *game.Snapshot) (x, y float64, ok bool) {
	sel := s.Selected
	switch sel.Kind {
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

func describe(in game.Inspection) string {
	switch in.Kind {
	case game.KindColony:
		return fmt.Sprintf("colony stock %.1f", in.Colony.Stock)
	case game.KindAnt:
		return fmt.Sprintf("ant #%d %s %s health %.1f carrying %.1f",
			in.Ant.ID, in.Ant.State, in.Ant.Condition, in.Ant.Health, in.Ant.Carrying)
	case game.KindFood:
		return fmt.Sprintf("food #%d qty %.1f ttl %.0fs", in.Food.ID, in.Food.Quantity, in.Food.TimeToLive)
	case game.KindPheromone:
		return fmt.Sprintf("pheromone #%d %s intensity %.3f", in.Pheromone.ID, in.Pheromone.Kind, in.Pheromone.Intensity)
	}
	return ""
}

// Run drives the game at the given frame interval until ctx is done or
// the user quits. The screen must already be initialized.
func Run(ctx context.Context, screen tcell.Screen, g *game.Game, frame time.Duration) error {
	v := New(screen, g)
	screen.EnableMouse()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case now := <-ticker.C:
			g.Update(now.Sub(last).Seconds())
			g.RecordFrame()
			last = now
			v.Draw()
		}
	}
}
