package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/encounter"
)

// Fallback glyphs for empty templates
const (
	PlayerChar     = 'A'
	OrbChar        = 'O'
	BossChar       = 'W'
	ProjectileChar = '*'
)

// glyph returns the first rune of a template, or def when it is empty.
func glyph(template string, def rune) rune {
	if r, _ := utf8.DecodeRuneInString(template); r != utf8.RuneError {
		return r
	}
	return def
}

func projectileColor(k bullet.Kind) core.Color {
	switch {
	case k.PlayerOwned():
		return core.ColorPlayerShot
	case k == bullet.BossBullet:
		return core.ColorBossShot
	default:
		return core.ColorOrbShot
	}
}

// viewport maps world units onto the screen area below the HUD row.
type viewport struct {
	w, h int
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(p.X / core.ArenaWidth * float64(v.w-1))
	y := 1 + int(p.Y/core.ArenaHeight*float64(v.h-2))
	return x, y
}

// Render draws the arena and a one-line HUD. The screen is pre-cleared.
func (w *World) Render(dst *core.Screen) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dst.Width() < 2 || dst.Height() < 3 {
		return
	}
	vp := viewport{w: dst.Width(), h: dst.Height()}

	w.pool.ForEachAlive(func(k bullet.Kind, pr bullet.Projectile) {
		if !pr.Visible {
			return
		}
		x, y := vp.cell(pr.Pos)
		dst.SetColor(x, y, glyph(w.pool.Template(k), ProjectileChar), projectileColor(k))
	})

	var bossHealth string
	if cur, ok := w.seq.Current(); ok {
		switch e := cur.(type) {
		case *encounter.Roster:
			for _, o := range e.Enemies() {
				if !o.Visible() || o.IsKilled() {
					continue
				}
				x, y := vp.cell(o.Position())
				dst.SetColor(x, y, glyph(o.Template(), OrbChar), core.ColorOrb)
			}
		case *encounter.Scripted:
			if e.Visible() {
				x, y := vp.cell(e.Position())
				color := core.ColorBoss
				if e.Enraged() {
					color = core.ColorBossEnraged
				}
				dst.SetColor(x, y, glyph(e.Template(), BossChar), color)
				bossHealth = fmt.Sprintf("  Boss %d", e.Health())
			}
		}
	}

	if w.player.Visible() {
		x, y := vp.cell(w.player.Position())
		dst.SetColor(x, y, glyph(w.player.Template(), PlayerChar), core.ColorPlayer)
	}

	wave := "-"
	if cur, ok := w.seq.Current(); ok {
		wave = fmt.Sprintf("%d/%d %s", w.seq.Index()+1, w.seq.Len(), cur.Name())
	}
	hud := fmt.Sprintf("Score %d  Wave %s  Hits %d%s", w.seq.Score(), wave, w.player.HitsTaken(), bossHealth)
	dst.DrawText(0, 0, hud)
}
