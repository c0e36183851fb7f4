package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Preset  string
	Formula string

	X, Y         float64
	Height       float64
	GradX, GradY float64
	Tick         int

	LearningRate   float64
	StepsPerSecond int
	State          string

	HasReference bool
	RefX, RefY   float64
	RefValue     float64
	DistToMin    float64

	LastMilestone string
	MarkerColor   rl.Color
	FPS           int32
}

// GradNorm returns the gradient length.
func (d HUDData) GradNorm() float64 {
	return math.Hypot(d.GradX, d.GradY)
}

func hud(data any) HUDData {
	return data.(HUDData)
}

// hudPanel describes the readout panel in the top right corner.
var hudPanel = PanelDescriptor{
	ID:     "descent",
	Width:  250,
	Anchor: AnchorTopRight,
	Sections: []SectionDescriptor{
		{
			ID:    "surface",
			Title: "Surface",
			Fields: []FieldDescriptor{
				{ID: "preset", Label: "Preset", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Preset }},
				{ID: "formula", Label: "f(x,y)", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Formula }},
			},
		},
		{
			ID:    "position",
			Title: "Position",
			Fields: []FieldDescriptor{
				{ID: "tick", Label: "Tick", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d (%s)", hud(d).Tick, hud(d).State)
				}},
				{ID: "xy", Label: "(x, y)", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("(%.4f, %.4f)", hud(d).X, hud(d).Y)
				}},
				{ID: "height", Label: "f", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.6g", hud(d).Height)
				}},
				{ID: "color", Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return hud(d).MarkerColor }},
			},
		},
		{
			ID:    "gradient",
			Title: "Gradient",
			Fields: []FieldDescriptor{
				{ID: "gx", Label: "df/dx", Widget: WidgetCenteredBar, Range: FieldRange{Min: -10, Max: 10},
					Getter: func(d any) float32 { return float32(hud(d).GradX) }},
				{ID: "gy", Label: "df/dy", Widget: WidgetCenteredBar, Range: FieldRange{Min: -10, Max: 10},
					Getter: func(d any) float32 { return float32(hud(d).GradY) }},
				{ID: "norm", Label: "|grad|", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.4g", hud(d).GradNorm())
				}},
			},
		},
		{
			ID:    "params",
			Title: "Parameters",
			Fields: []FieldDescriptor{
				{ID: "lr", Label: "Rate", Widget: WidgetText, Format: "%.4f",
					Getter: func(d any) float32 { return float32(hud(d).LearningRate) }},
				{ID: "sps", Label: "Steps/s", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%d", hud(d).StepsPerSecond)
				}},
			},
		},
		{
			ID:      "reference",
			Title:   "Reference minimum",
			Visible: func(d any) bool { return hud(d).HasReference },
			Fields: []FieldDescriptor{
				{ID: "ref", Label: "At", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("(%.4f, %.4f)", hud(d).RefX, hud(d).RefY)
				}},
				{ID: "refval", Label: "f", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.6g", hud(d).RefValue)
				}},
				{ID: "dist", Label: "Distance", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("%.4g", hud(d).DistToMin)
				}},
			},
		},
		{
			ID:      "milestone",
			Visible: func(d any) bool { return hud(d).LastMilestone != "" },
			Fields: []FieldDescriptor{
				{ID: "last", Label: "Milestone", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).LastMilestone }},
			},
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	bounds   rl.Rectangle
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the readout panel.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	h.bounds = h.renderer.DrawPanelDescriptor(hudPanel, data, screenW, screenH, 10)
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), screenW-70, screenH-20, 14, rl.Gray)
}

// Contains reports whether a screen point is over the readout panel.
func (h *HUD) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, h.bounds)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds frame timing for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	Phases   []string // display order
	Total    time.Duration
}

// PerfPanel renders the frame timing panel.
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

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range data.Phases {
		avg := data.PhaseAvg[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
