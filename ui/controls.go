package ui

import (
	"fmt"
	"math"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is what the control panel shows this frame.
type ControlState struct {
	Presets        []string
	PresetIndex    int
	LearningRate   float64
	MinLR, MaxLR   float64
	StepsPerSecond int
	MinSPS, MaxSPS int
	Running        bool
}

// ControlEvents reports what the user changed this frame. Zero value means
// nothing changed.
type ControlEvents struct {
	PresetChanged       bool
	PresetIndex         int
	LearningRateChanged bool
	LearningRate        float64
	StepsChanged        bool
	StepsPerSecond      int
	Restart             bool
	TogglePause         bool
	ResetCamera         bool
	Overlay             OverlayID // toggled overlay, "" if none
}

// Any reports whether any event fired.
func (e ControlEvents) Any() bool {
	return e != ControlEvents{}
}

// ControlPanel renders the left-side raygui panel: preset selector, learning
// rate and tick rate sliders, playback buttons and overlay toggles.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

const (
	controlRowHeight = 24
	presetRowHeight  = 22
)

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel, so clicks there
// are not treated as surface picks.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible || c.height == 0 {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds())
}

func (c *ControlPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
}

// Draw renders the panel and returns the events triggered this frame.
func (c *ControlPanel) Draw(state ControlState, overlays *OverlayRegistry) ControlEvents {
	var ev ControlEvents
	if !c.visible {
		return ev
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := float32(c.width - padding*2)

	c.height = c.measure(state, overlays)
	r.DrawPanel(c.x, c.y, c.width, c.height)

	px := float32(c.x + padding)
	y := float32(c.y + padding)

	rl.DrawText("Gradient Descent", int32(px), int32(y), 16, rl.White)
	y += float32(lineHeight + 6)

	// Preset selector
	rl.DrawText("Surface", int32(px), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(lineHeight)
	active := gui.ToggleGroup(
		rl.Rectangle{X: px, Y: y, Width: inner, Height: presetRowHeight - 2},
		strings.Join(state.Presets, "\n"),
		int32(state.PresetIndex),
	)
	if int(active) != state.PresetIndex && int(active) >= 0 && int(active) < len(state.Presets) {
		ev.PresetChanged = true
		ev.PresetIndex = int(active)
	}
	y += float32(presetRowHeight*len(state.Presets) + 6)

	// Learning rate, on a log scale
	rl.DrawText("Descent", int32(px), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(lineHeight)
	rl.DrawText(fmt.Sprintf("Learning rate  %.4f", state.LearningRate), int32(px), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	lo, hi := math.Log10(state.MinLR), math.Log10(state.MaxLR)
	cur := float32(math.Log10(state.LearningRate))
	next := gui.SliderBar(
		rl.Rectangle{X: px + 36, Y: y, Width: inner - 72, Height: 16},
		fmt.Sprintf("%g", state.MinLR), fmt.Sprintf("%g", state.MaxLR),
		cur, float32(lo), float32(hi),
	)
	if next != cur {
		ev.LearningRateChanged = true
		ev.LearningRate = SliderToRate(next, state.MinLR, state.MaxLR)
	}
	y += float32(controlRowHeight)

	// Tick rate
	rl.DrawText(fmt.Sprintf("Steps / second  %d", state.StepsPerSecond), int32(px), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(lineHeight)
	sps := gui.SliderBar(
		rl.Rectangle{X: px + 36, Y: y, Width: inner - 72, Height: 16},
		fmt.Sprintf("%d", state.MinSPS), fmt.Sprintf("%d", state.MaxSPS),
		float32(state.StepsPerSecond), float32(state.MinSPS), float32(state.MaxSPS),
	)
	if n := int(math.Round(float64(sps))); n != state.StepsPerSecond {
		ev.StepsChanged = true
		ev.StepsPerSecond = n
	}
	y += float32(controlRowHeight + 4)

	// Playback
	half := (inner - 8) / 2
	if gui.Button(rl.Rectangle{X: px, Y: y, Width: half, Height: 26}, "Restart [R]") {
		ev.Restart = true
	}
	if gui.Button(rl.Rectangle{X: px + half + 8, Y: y, Width: half, Height: 26}, toggleText(state.Running, "Pause [Space]", "Resume [Space]")) {
		ev.TogglePause = true
	}
	y += 32
	if gui.Button(rl.Rectangle{X: px, Y: y, Width: inner, Height: 22}, "Reset camera [Home]") {
		ev.ResetCamera = true
	}
	y += 30

	// Overlays by category
	if overlays != nil {
		for _, category := range overlays.Categories() {
			rl.DrawText(categoryLabel(category), int32(px), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
			y += float32(lineHeight)
			for _, desc := range overlays.ByCategory(category) {
				if c.drawToggle(int32(px), int32(y), desc, overlays.IsEnabled(desc.ID), int32(inner)) {
					ev.Overlay = desc.ID
				}
				y += float32(lineHeight)
			}
			y += 4
		}
	}

	return ev
}

func (c *ControlPanel) measure(state ControlState, overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	h := t.Padding*2 + t.LineHeight + 6
	h += t.LineHeight + int32(presetRowHeight*len(state.Presets)) + 6
	h += t.LineHeight + 2*(t.LineHeight+controlRowHeight) + 4
	h += 32 + 30
	if overlays != nil {
		for _, category := range overlays.Categories() {
			h += t.LineHeight*int32(1+len(overlays.ByCategory(category))) + 4
		}
	}
	return h
}

// drawToggle draws a single overlay toggle line and reports whether it was clicked.
func (c *ControlPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}

	row := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(rl.GetMousePosition(), row)
}

// SliderToRate maps a log10 slider position back to a learning rate in [lo, hi].
func SliderToRate(pos float32, lo, hi float64) float64 {
	lr := math.Pow(10, float64(pos))
	return math.Min(math.Max(lr, lo), hi)
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "surface":
		return "Surface"
	case "descent":
		return "Descent"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
