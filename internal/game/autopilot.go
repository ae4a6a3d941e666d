package game

import (
	"math"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/encounter"
)

// steerDeadZone is how close in x the autopilot gets before it stops moving.
const steerDeadZone = 2.0

// Autopilot returns a deterministic input for the next frame: fire held,
// steering under the nearest live enemy.
func (w *World) Autopilot() core.InputFrame {
	w.mu.Lock()
	defer w.mu.Unlock()

	in := core.NewInputFrame()
	in.Set(core.ActionFire)

	px := w.player.Position().X
	target, ok := w.nearestEnemyX(px)
	if !ok {
		return in
	}
	switch {
	case target < px-steerDeadZone:
		in.Set(core.ActionLeft)
	case target > px+steerDeadZone:
		in.Set(core.ActionRight)
	}
	return in
}

// nearestEnemyX returns the x of the live enemy closest to x.
func (w *World) nearestEnemyX(x float64) (float64, bool) {
	cur, ok := w.seq.Current()
	if !ok {
		return 0, false
	}
	switch e := cur.(type) {
	case *encounter.Roster:
		best, found := 0.0, false
		for _, o := range e.Enemies() {
			if o.IsKilled() {
				continue
			}
			ox := o.Position().X
			if !found || math.Abs(ox-x) < math.Abs(best-x) {
				best, found = ox, true
			}
		}
		return best, found
	case *encounter.Scripted:
		if e.Remaining() == 0 {
			return 0, false
		}
		return e.Position().X, true
	}
	return 0, false
}

// RunHeadless steps the world with the autopilot until it finishes or
// maxFrames have run, and returns the result.
func RunHeadless(w *World, maxFrames int) Result {
	for i := 0; i < maxFrames && !w.Finished(); i++ {
		w.Step(w.Autopilot())
	}
	return w.Result()
}
