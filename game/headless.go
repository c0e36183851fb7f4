package game

import (
	"context"
	"errors"
	"log/slog"
)

// RunHeadless steps on a wall-clock timer without a window until ctx is
// cancelled or maxTicks updates have been applied (0 = unlimited). A
// cancelled context is not reported as an error.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int) error {
	g.maxTicks = maxTicks
	defer func() { g.maxTicks = 0 }()

	p := g.stepper.Start()
	params := g.stepper.Params()
	slog.Info("starting headless run",
		"preset", g.preset.Name,
		"start_x", p.X,
		"start_y", p.Y,
		"learning_rate", params.LearningRate,
		"steps_per_second", params.StepsPerSecond,
		"max_ticks", maxTicks,
	)

	err := g.ticker.Run(ctx)
	g.flushTelemetry(true)

	pos := g.stepper.Position()
	slog.Info("headless run finished",
		"tick", g.Tick(),
		"x", pos.X,
		"y", pos.Y,
		"height", g.stepper.Field()(pos.X, pos.Y),
	)

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
