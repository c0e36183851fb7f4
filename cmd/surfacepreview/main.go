// Surface preview tool - top-down heatmap of a field preset with the
// descent path for a chosen learning rate.
//
// Usage: go run ./cmd/surfacepreview
//
//	go run ./cmd/surfacepreview -preset rosenbrock -png out.png
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/descent/config"
	"github.com/pthm-cable/descent/descent"
	"github.com/pthm-cable/descent/field"
	"github.com/pthm-cable/descent/surface"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

// PreviewParams holds the slider state.
type PreviewParams struct {
	PresetIndex  int
	LearningRate float64
	Ticks        int
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	presetName := flag.String("preset", "", "Preset to show (empty = use config)")
	pngPath := flag.String("png", "", "Write the heatmap to this PNG file and exit")
	ticks := flag.Int("ticks", 300, "Descent steps drawn on the heatmap")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	name := cfg.Preset
	if *presetName != "" {
		name = *presetName
	}
	idx := field.Index(name)
	if idx < 0 {
		log.Fatalf("unknown preset %q", name)
	}

	pc := cfg.Surface.Palette
	pal, err := surface.ParsePalette(pc.Low, pc.Mid, pc.High)
	if err != nil {
		log.Fatalf("invalid palette: %v", err)
	}

	params := PreviewParams{
		PresetIndex:  idx,
		LearningRate: cfg.Descent.LearningRate,
		Ticks:        *ticks,
	}

	if *pngPath != "" {
		if err := exportPNG(*pngPath, params, pal, cfg.Descent.GradientStep); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Heatmap saved to: %s\n", *pngPath)
		return
	}

	preview(params, pal, cfg)
}

func descentParams(lr, gradientStep float64) descent.Params {
	p := descent.DefaultParams()
	p.LearningRate = lr
	p.GradientStep = gradientStep
	return p
}

func exportPNG(file string, params PreviewParams, pal surface.Palette, gradientStep float64) error {
	p := field.Presets()[params.PresetIndex]
	h, err := NewHeatmap(p, gridSize, pal)
	if err != nil {
		return err
	}
	path, err := DescentPath(p, descentParams(params.LearningRate, gradientStep), params.Ticks)
	if err != nil {
		return err
	}
	return h.WritePNG(file, path)
}

func preview(params PreviewParams, pal surface.Palette, cfg *config.Config) {
	rl.InitWindow(windowWidth, windowHeight, "Surface Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	presets := field.Presets()
	minLR, maxLR := cfg.Descent.MinLearningRate, cfg.Descent.MaxLearningRate

	var heat *Heatmap
	var path []field.Point
	needsRegen := true
	needsPath := true

	for !rl.WindowShouldClose() {
		preset := presets[params.PresetIndex]

		if needsRegen {
			h, err := NewHeatmap(preset, gridSize, pal)
			if err != nil {
				log.Fatalf("sampling %s: %v", preset.Name, err)
			}
			heat = h
			rl.UpdateTexture(texture, heat.Pixels)
			needsRegen = false
			needsPath = true
		}
		if needsPath {
			p, err := DescentPath(preset, descentParams(params.LearningRate, cfg.Descent.GradientStep), params.Ticks)
			if err != nil {
				log.Fatalf("descending %s: %v", preset.Name, err)
			}
			path = p
			needsPath = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		drawPath(heat, path)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		end := path[len(path)-1]
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.4g  Max: %.4g", heat.Mesh.Min, heat.Mesh.Max), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("End: (%.4f, %.4f)  f = %.5g", end.X, end.Y, preset.Func(end.X, end.Y)), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(preset.Formula, 15, statsY+40, 16, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Surface Preview", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Preset", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 40, Height: 24}, "<") {
			params.PresetIndex = (params.PresetIndex + len(presets) - 1) % len(presets)
			needsRegen = true
		}
		rl.DrawText(preset.Name, int32(panelX+55), int32(panelY+4), 16, rl.DarkGray)
		if gui.Button(rl.Rectangle{X: panelX + 200, Y: panelY, Width: 40, Height: 24}, ">") {
			params.PresetIndex = (params.PresetIndex + 1) % len(presets)
			needsRegen = true
		}
		panelY += 40

		// Learning rate slider, log scale
		rl.DrawText("Learning rate (log scale)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		logLR := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			fmt.Sprintf("%g", minLR), fmt.Sprintf("%g", maxLR),
			float32(math.Log10(params.LearningRate)), float32(math.Log10(minLR)), float32(math.Log10(maxLR)),
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.LearningRate), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if lr := math.Pow(10, float64(logLR)); math.Abs(lr-params.LearningRate) > 1e-9 {
			params.LearningRate = cfg.Descent.ClampLearningRate(lr)
			needsPath = true
		}
		panelY += 35

		rl.DrawText("Ticks", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTicks := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "2000",
			float32(params.Ticks), 1, 2000,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Ticks), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newTicks) != params.Ticks {
			params.Ticks = int(newTicks)
			needsPath = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params.LearningRate = cfg.Descent.LearningRate
			params.Ticks = 300
			needsPath = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Export PNG") {
			file := preset.Name + ".png"
			if err := heat.WritePNG(file, path); err != nil {
				log.Printf("export failed: %v", err)
			} else {
				log.Printf("heatmap saved to %s", file)
			}
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			fmt.Sprintf("preset: %s", preset.Name),
			"descent:",
			fmt.Sprintf("  learning_rate: %.5f", params.LearningRate),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fmt.Sprintf("preset: %s\ndescent:\n  learning_rate: %.5f", preset.Name, params.LearningRate))
		}

		rl.EndDrawing()
	}
}

// drawPath overlays the descent path on the preview rectangle.
func drawPath(h *Heatmap, path []field.Point) {
	scale := float32(previewSize) / float32(h.Size-1)
	var prev rl.Vector2
	havePrev := false
	for _, pt := range path {
		px, py, ok := h.ToPixel(pt)
		if !ok {
			havePrev = false
			continue
		}
		cur := rl.Vector2{X: 10 + px*scale, Y: 10 + py*scale}
		if havePrev {
			rl.DrawLineEx(prev, cur, 2, rl.White)
		}
		prev, havePrev = cur, true
	}
	if px, py, ok := h.ToPixel(path[0]); ok {
		rl.DrawCircleV(rl.Vector2{X: 10 + px*scale, Y: 10 + py*scale}, 5, rl.Blue)
	}
	if px, py, ok := h.ToPixel(path[len(path)-1]); ok {
		rl.DrawCircleV(rl.Vector2{X: 10 + px*scale, Y: 10 + py*scale}, 5, rl.Red)
	}
}
