package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
)

// Inspector renders the details of the selected entity.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	cfg      *config.Config
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32, cfg *config.Config) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		cfg:      cfg,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspection, or a hint when nothing is selected.
func (ins *Inspector) Draw(in game.Inspection, ok bool) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	x := ins.x + padding
	contentWidth := ins.width - padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, r.Theme.LineHeight*11+padding*2)
	y := ins.y + padding

	if !ok {
		rl.DrawText("Click an ant, food or pheromone", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return y + r.Theme.LineHeight + padding
	}

	switch in.Kind {
	case game.KindColony:
		y = r.DrawSectionHeader(x, y, "Colony")
		y = r.DrawLabelValue(x, y, "Position", fmtPos(in.Colony.Pos.X, in.Colony.Pos.Y))
		y = r.DrawLabelValue(x, y, "Stock", fmt.Sprintf("%.1f units", in.Colony.Stock))
		y = r.DrawLabelValue(x, y, "Capture radius", fmt.Sprintf("%.1f mm", in.Colony.Radius))

	case game.KindAnt:
		a := in.Ant
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("Ant #%d", a.ID))
		y = r.DrawLabelValue(x, y, "Role", a.Role.String())
		y = r.DrawLabelValue(x, y, "State", a.State.String())
		y = r.DrawLabelValue(x, y, "Condition", a.Condition.String())
		y = r.DrawHealthBar(x, y, "Health", a.Health, ins.cfg.Ant.MaxHealth, contentWidth)
		y = r.DrawLabelValue(x, y, "Carrying", fmt.Sprintf("%.1f / %.0f", a.Carrying, ins.cfg.Ant.CarryCapacity))
		y = r.DrawLabelValue(x, y, "Position", fmtPos(a.Pos.X, a.Pos.Y))
		y = r.DrawLabelValue(x, y, "Age", FormatDuration(in.Lifetime.AgeSec))
		y = r.DrawLabelValue(x, y, "Trips", fmt.Sprintf("%d (%.1f delivered)", in.Lifetime.Trips, in.Lifetime.Delivered))

	case game.KindFood:
		f := in.Food
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("Food #%d", f.ID))
		y = r.DrawLabelValue(x, y, "Kind", f.Kind.String())
		y = r.DrawLabelValue(x, y, "Quantity", fmt.Sprintf("%.1f", f.Quantity))
		y = r.DrawLabelValue(x, y, "Time to live", fmt.Sprintf("%.1f s", f.TimeToLive))
		y = r.DrawLabelValue(x, y, "Position", fmtPos(f.Pos.X, f.Pos.Y))

	case game.KindPheromone:
		p := in.Pheromone
		y = r.DrawSectionHeader(x, y, fmt.Sprintf("Pheromone #%d", p.ID))
		y = r.DrawLabelValue(x, y, "Kind", p.Kind.String())
		y = r.DrawLabelValue(x, y, "From food", fmt.Sprintf("%t", p.FromFood))
		y = r.DrawLabelValue(x, y, "Strength", fmt.Sprintf("%.2f", p.Strength))
		y = r.DrawLabelValue(x, y, "Intensity", fmt.Sprintf("%.3f", p.Intensity))
		y = r.DrawLabelValue(x, y, "Position", fmtPos(p.Pos.X, p.Pos.Y))
	}

	return y + padding
}

func fmtPos(x, y float64) string {
	return fmt.Sprintf("(%.1f, %.1f)", x, y)
}
