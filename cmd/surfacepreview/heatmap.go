package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/surface"
)

// Heatmap is a top-down rendering of a preset, one pixel per grid vertex.
// Row 0 is the top of the image, which is the domain's YMax edge.
type Heatmap struct {
	Size   int
	Pixels []color.RGBA
	Mesh   *surface.Mesh
}

// NewHeatmap samples the preset on a size x size vertex grid.
func NewHeatmap(p field.Preset, size int, pal surface.Palette) (*Heatmap, error) {
	d, err := surface.FromPreset(p, size-1)
	if err != nil {
		return nil, err
	}
	m, err := surface.Sample(p.Func, d, p.HeightScale, pal)
	if err != nil {
		return nil, err
	}

	h := &Heatmap{
		Size:   size,
		Pixels: make([]color.RGBA, size*size),
		Mesh:   m,
	}
	for j := 0; j < size; j++ {
		row := size - 1 - j
		for i := 0; i < size; i++ {
			v := m.Vertices[j*size+i]
			r, g, b := v.Color.Clamped().RGB255()
			if !isFinite(v.Height) {
				r, g, b = 0, 0, 0
			}
			h.Pixels[row*size+i] = color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return h, nil
}

// ToPixel maps a domain point to image coordinates. ok is false for points
// outside the domain or non-finite points.
func (h *Heatmap) ToPixel(pt field.Point) (px, py float32, ok bool) {
	d := h.Mesh.Domain
	if !pt.IsFinite() || !d.Contains(pt.X, pt.Y) {
		return 0, 0, false
	}
	last := float64(h.Size - 1)
	px = float32((pt.X - d.XMin) / (d.XMax - d.XMin) * last)
	py = float32((d.YMax - pt.Y) / (d.YMax - d.YMin) * last)
	return px, py, true
}

// DescentPath runs ticks steps from the preset start and returns every
// position visited, start included. It stops early at a non-finite position.
func DescentPath(p field.Preset, params descent.Params, ticks int) ([]field.Point, error) {
	st, err := descent.NewStepper(p.Func, p.Start, params)
	if err != nil {
		return nil, err
	}
	path := make([]field.Point, 0, ticks+1)
	path = append(path, st.Position())
	for range ticks {
		s := st.Step()
		path = append(path, s.To)
		if !s.To.IsFinite() {
			break
		}
	}
	return path, nil
}

// Image returns the heatmap with the path plotted as small white dots.
func (h *Heatmap) Image(path []field.Point) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, h.Size, h.Size))
	for i, c := range h.Pixels {
		img.SetRGBA(i%h.Size, i/h.Size, c)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, pt := range path {
		px, py, ok := h.ToPixel(pt)
		if !ok {
			continue
		}
		cx, cy := int(px+0.5), int(py+0.5)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				img.SetRGBA(cx+dx, cy+dy, white)
			}
		}
	}
	return img
}

// WritePNG encodes the heatmap and path to path.
func (h *Heatmap) WritePNG(file string, path []field.Point) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, h.Image(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
