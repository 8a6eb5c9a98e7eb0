package game

import (
	"context"
	"time"

	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/clock"
)

// DefaultFPS is the target frame rate of a Loop
const DefaultFPS = 60

// LoopConfig configures a Loop
type LoopConfig struct {
	Game  *Game
	Clock clock.Clock // defaults to the real clock
	FPS   int         // defaults to DefaultFPS
}

// Validate validates the config
func (cfg *LoopConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Game == nil {
		vb.RequiredField("Game")
	}
	if cfg.FPS < 0 {
		vb.Field("FPS", "must not be negative")
	}
	return vb.Build()
}

// Loop drives a Game at a fixed frame rate from a clock. Callers poll Frame
// as often as they like; frames shorter than the target are skipped and the
// leftover time carries into the next frame.
type Loop struct {
	game   *Game
	clock  clock.Clock
	frame  time.Duration
	last   time.Time
	paused bool
}

// NewLoop creates a loop whose baseline is the clock's current time
func NewLoop(cfg *LoopConfig) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	l := &Loop{
		game:  cfg.Game,
		clock: cfg.Clock,
	}
	if l.clock == nil {
		l.clock = clock.New()
	}
	fps := cfg.FPS
	if fps == 0 {
		fps = DefaultFPS
	}
	l.frame = time.Second / time.Duration(fps)
	l.last = l.clock.Now()
	return l, nil
}

// FrameDuration is the target time between frames
func (l *Loop) FrameDuration() time.Duration {
	return l.frame
}

// Frame advances the game by the time since the last frame when at least one
// frame duration has passed. It reports whether the game was updated.
func (l *Loop) Frame(ctx context.Context) bool {
	if l.paused || l.game.IsGameOver() {
		return false
	}

	now := l.clock.Now()
	delta := now.Sub(l.last)
	if delta < l.frame {
		return false
	}

	l.last = now.Add(-(delta % l.frame))
	l.game.Update(ctx, delta.Seconds())
	return true
}

// Pause stops frames until Resume
func (l *Loop) Pause() {
	l.paused = true
}

// Resume restarts frames from now so the paused time is not simulated
func (l *Loop) Resume() {
	l.paused = false
	l.last = l.clock.Now()
}

// Restart starts the game over and the frame baseline with it, so neither
// the game-over screen nor a pause is simulated in the next frame
func (l *Loop) Restart(ctx context.Context) error {
	if err := l.game.Restart(ctx); err != nil {
		return err
	}
	l.paused = false
	l.last = l.clock.Now()
	return nil
}

// Paused reports whether the loop is paused
func (l *Loop) Paused() bool {
	return l.paused
}
