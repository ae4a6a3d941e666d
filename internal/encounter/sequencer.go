package encounter

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// Sequencer runs encounters in order, one at a time.
// The index only grows; once it passes the last encounter the sequencer
// is drained for good.
type Sequencer struct {
	encounters []Encounter
	index      int
	started    bool

	// Set the first time the current encounter is seen as ended
	endedAt     int64
	endCaptured bool

	logger *log.Logger
}

// NewSequencer creates a sequencer over encounters. Nothing is active
// until Start or the first Tick.
func NewSequencer(encounters []Encounter, logger *log.Logger) *Sequencer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sequencer{
		encounters: encounters,
		logger:     logger,
	}
}

// Start activates the first encounter. Calling it again has no effect.
func (s *Sequencer) Start(now int64) {
	if s.started {
		return
	}
	s.started = true
	if s.Drained() {
		s.reportDrained(now)
		return
	}
	s.activate(s.index, now)
}

// activate makes encounter i the only active one.
func (s *Sequencer) activate(i int, now int64) {
	for j, e := range s.encounters {
		if j == i {
			e.Activate(now)
		} else {
			e.Deactivate()
		}
	}
	s.logger.Info("encounter started", "index", i, "name", s.encounters[i].Name(), "at_ms", now)
}

// Tick advances the current encounter and handles the end delay.
// Ticks on a drained sequencer do nothing.
func (s *Sequencer) Tick(f Frame) {
	if !s.started {
		s.Start(f.Now)
	}
	if s.Drained() {
		return
	}

	cur := s.encounters[s.index]
	if !cur.Ended() {
		cur.Tick(f)
		if !cur.Ended() {
			return
		}
	}

	if !s.endCaptured {
		s.endedAt = f.Now
		s.endCaptured = true
		s.logger.Info("encounter ended",
			"index", s.index,
			"name", cur.Name(),
			"at_ms", f.Now,
			"kills", cur.Kills(),
			"remaining", cur.Remaining(),
		)
	}

	if f.Now-s.endedAt >= cur.EndDelay() {
		s.advance(f.Now)
	}
}

// advance retires the current encounter and activates the next one.
func (s *Sequencer) advance(now int64) {
	s.encounters[s.index].Deactivate()
	s.index++
	s.endCaptured = false
	s.endedAt = 0

	if s.index < len(s.encounters) {
		s.activate(s.index, now)
		return
	}
	s.reportDrained(now)
}

func (s *Sequencer) reportDrained(now int64) {
	s.logger.Info("no more encounters", "count", len(s.encounters), "at_ms", now)
}

// HitEnemy forwards a player bullet to the current encounter.
func (s *Sequencer) HitEnemy(pos core.Vec2, radius float64) bool {
	cur, ok := s.Current()
	if !ok {
		return false
	}
	return cur.HitEnemy(pos, radius)
}

// Current returns the encounter at the current index, if any.
func (s *Sequencer) Current() (Encounter, bool) {
	if s.index < 0 || s.index >= len(s.encounters) {
		return nil, false
	}
	return s.encounters[s.index], true
}

// Drained reports whether every encounter has been consumed.
func (s *Sequencer) Drained() bool {
	return s.index >= len(s.encounters)
}

// Index returns the current encounter index.
func (s *Sequencer) Index() int { return s.index }

// Len returns the number of encounters.
func (s *Sequencer) Len() int { return len(s.encounters) }

// Encounters returns all encounters in order. Callers must not modify the slice.
func (s *Sequencer) Encounters() []Encounter { return s.encounters }

// EndedAt returns the captured end time of the current encounter.
// ok is false until the current encounter has been seen as ended.
func (s *Sequencer) EndedAt() (ms int64, ok bool) {
	return s.endedAt, s.endCaptured
}

// Kills sums destroyed enemies across all encounters.
func (s *Sequencer) Kills() int {
	total := 0
	for _, e := range s.encounters {
		total += e.Kills()
	}
	return total
}

// Score sums points across all encounters.
func (s *Sequencer) Score() int {
	total := 0
	for _, e := range s.encounters {
		total += e.Score()
	}
	return total
}

// Cleared returns how many encounters ended with no enemies remaining.
func (s *Sequencer) Cleared() int {
	cleared := 0
	for _, e := range s.encounters {
		if e.Ended() && e.Remaining() == 0 {
			cleared++
		}
	}
	return cleared
}
