// Package match runs tower defense matches. Each match ticks its frame loop
// on its own goroutine; commands and ticks take the match lock so the game
// has a single writer at a time.
package match

//go:generate mockgen -destination=mock/mock_service.go -package=matchmock github.com/KirkDiggler/tower-defense/internal/orchestrators/match Service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/tower-defense/internal/config"
	"github.com/KirkDiggler/tower-defense/internal/engine/effects"
	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/pkg/clock"
	"github.com/KirkDiggler/tower-defense/internal/pkg/idgen"
	inventoryrepo "github.com/KirkDiggler/tower-defense/internal/repositories/inventory"
)

// Service defines the interface for match operations
type Service interface {
	// CreateMatch starts a match and its frame loop
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error)

	// GetSnapshot returns a copy of the current match state
	GetSnapshot(ctx context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error)

	// ListMatches summarizes running matches, oldest first
	ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error)

	// Upgrade buys one tower upgrade
	Upgrade(ctx context.Context, input *UpgradeInput) (*UpgradeOutput, error)

	// SetSpeed sets or cycles the speed multiplier
	SetSpeed(ctx context.Context, input *SetSpeedInput) (*SetSpeedOutput, error)

	// Pause stops the frame loop
	Pause(ctx context.Context, input *PauseInput) (*PauseOutput, error)

	// Resume restarts the frame loop without simulating the paused time
	Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error)

	// Restart starts the match over with the same seed
	Restart(ctx context.Context, input *RestartInput) (*RestartOutput, error)

	// EditInventory applies an inventory edit
	EditInventory(ctx context.Context, input *EditInventoryInput) (*EditInventoryOutput, error)

	// EndMatch stops a match and forgets it
	EndMatch(ctx context.Context, input *EndMatchInput) (*EndMatchOutput, error)
}

// Config holds the dependencies for the match orchestrator
type Config struct {
	Rules       *config.Config           // defaults to config.Defaults()
	Effects     *effects.Catalog         // defaults to the built-in catalog
	Repository  inventoryrepo.Repository // persists standard inventories; nil keeps them in memory
	IDGenerator idgen.Generator
	Clock       clock.Clock   // defaults to the real clock
	Roller      dice.Roller   // defaults to dice.DefaultRoller per game
	FPS         int           // defaults to game.DefaultFPS
	Tick        time.Duration // how often loops are polled; defaults to a quarter frame
	MaxMatches  int           // 0 is unlimited
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.FPS < 0 {
		vb.Field("FPS", "must not be negative")
	}
	if c.Tick < 0 {
		vb.Field("Tick", "must not be negative")
	}
	if c.MaxMatches < 0 {
		vb.Field("MaxMatches", "must not be negative")
	}
	if c.Rules != nil {
		if err := c.Rules.Validate(); err != nil {
			vb.Field("Rules", err.Error())
		}
	}
	return vb.Build()
}

type orchestrator struct {
	rules      *config.Config
	effects    *effects.Catalog
	repo       inventoryrepo.Repository
	idGen      idgen.Generator
	clock      clock.Clock
	roller     dice.Roller
	fps        int
	tick       time.Duration
	maxMatches int

	mu       sync.RWMutex
	sessions map[string]*session
}

// session is one running match
type session struct {
	id        string
	ownerID   string
	createdAt time.Time

	mu   sync.Mutex
	game *game.Game
	loop *game.Loop

	cancel context.CancelFunc
	done   chan struct{}
}

// Orchestrator is the Service plus lifecycle control for the process
type Orchestrator interface {
	Service

	// Close ends every match
	Close(ctx context.Context)
}

// NewOrchestrator creates a new match orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		rules:      cfg.Rules,
		effects:    cfg.Effects,
		repo:       cfg.Repository,
		idGen:      cfg.IDGenerator,
		clock:      cfg.Clock,
		roller:     cfg.Roller,
		fps:        cfg.FPS,
		tick:       cfg.Tick,
		maxMatches: cfg.MaxMatches,
		sessions:   make(map[string]*session),
	}
	if o.rules == nil {
		o.rules = config.Defaults()
	}
	if o.effects == nil {
		o.effects = effects.Default()
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.fps == 0 {
		o.fps = game.DefaultFPS
	}
	if o.tick == 0 {
		o.tick = time.Second / time.Duration(o.fps) / 4
	}
	return o, nil
}

// CreateMatch starts a match and its frame loop
func (o *orchestrator) CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	mode := input.Mode
	if mode == "" {
		mode = game.ModeStandard
	}
	rules, err := o.rules.Rules(mode)
	if err != nil {
		return nil, err
	}

	o.mu.RLock()
	count := len(o.sessions)
	o.mu.RUnlock()
	if o.maxMatches > 0 && count >= o.maxMatches {
		return nil, errors.ResourceExhaustedf("match limit of %d reached", o.maxMatches)
	}

	gameCfg := &game.Config{
		Seed:    input.Seed,
		Rules:   rules,
		Effects: o.effects,
		Roller:  o.roller,
		Bus:     newEventBus(),
	}
	if mode == game.ModeStandard && o.repo != nil && input.OwnerID != "" {
		gameCfg.Repository = o.repo
		gameCfg.OwnerID = input.OwnerID
	}

	g, err := game.New(ctx, gameCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create game")
	}
	loop, err := game.NewLoop(&game.LoopConfig{Game: g, Clock: o.clock, FPS: o.fps})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create frame loop")
	}

	matchID := o.idGen.Generate()
	runCtx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:        matchID,
		ownerID:   input.OwnerID,
		createdAt: o.clock.Now(),
		game:      g,
		loop:      loop,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	o.mu.Lock()
	o.sessions[matchID] = s
	o.mu.Unlock()

	go o.run(runCtx, s)

	slog.Info("match created",
		"match_id", matchID,
		"mode", mode,
		"seed", g.Seed(),
		"owner_id", input.OwnerID)

	return &CreateMatchOutput{
		MatchID:  matchID,
		Snapshot: g.Snapshot(),
	}, nil
}

// run polls the frame loop until the match ends
func (o *orchestrator) run(ctx context.Context, s *session) {
	defer close(s.done)

	ticker := time.NewTicker(o.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.loop.Frame(ctx)
			s.mu.Unlock()
		}
	}
}

// GetSnapshot returns a copy of the current match state
func (o *orchestrator) GetSnapshot(_ context.Context, input *GetSnapshotInput) (*GetSnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &GetSnapshotOutput{
		Snapshot: s.game.Snapshot(),
		Paused:   s.loop.Paused(),
	}, nil
}

// ListMatches summarizes running matches, oldest first
func (o *orchestrator) ListMatches(_ context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	sessions := make([]*session, 0, len(o.sessions))
	for _, s := range o.sessions {
		if input.OwnerID == "" || s.ownerID == input.OwnerID {
			sessions = append(sessions, s)
		}
	}
	o.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].createdAt.Equal(sessions[j].createdAt) {
			return sessions[i].id < sessions[j].id
		}
		return sessions[i].createdAt.Before(sessions[j].createdAt)
	})

	out := &ListMatchesOutput{Matches: make([]Summary, 0, len(sessions))}
	for _, s := range sessions {
		out.Matches = append(out.Matches, s.summary())
	}
	return out, nil
}

func (s *session) summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		MatchID:   s.id,
		OwnerID:   s.ownerID,
		Mode:      s.game.Mode(),
		Seed:      s.game.Seed(),
		Wave:      s.game.Wave(),
		Lives:     s.game.Lives(),
		Gold:      s.game.Gold(),
		GameOver:  s.game.IsGameOver(),
		Paused:    s.loop.Paused(),
		CreatedAt: s.createdAt,
	}
}

// Upgrade buys one tower upgrade
func (o *orchestrator) Upgrade(_ context.Context, input *UpgradeInput) (*UpgradeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var applied bool
	switch input.Stat {
	case entities.StatDamage:
		applied = s.game.UpgradeDamage()
	case entities.StatRange:
		applied = s.game.UpgradeRange()
	case entities.StatAttackSpeed:
		applied = s.game.UpgradeSpeed()
	default:
		return nil, errors.InvalidArgumentf("unknown upgrade stat %q", input.Stat)
	}

	return &UpgradeOutput{
		Applied:  applied,
		Snapshot: s.game.Snapshot(),
	}, nil
}

// SetSpeed sets or cycles the speed multiplier
func (o *orchestrator) SetSpeed(_ context.Context, input *SetSpeedInput) (*SetSpeedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Cycle {
		return &SetSpeedOutput{Speed: s.game.CycleSpeed()}, nil
	}
	if err := s.game.SetSpeed(input.Multiplier); err != nil {
		return nil, err
	}
	return &SetSpeedOutput{Speed: s.game.Speed()}, nil
}

// Pause stops the frame loop
func (o *orchestrator) Pause(_ context.Context, input *PauseInput) (*PauseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.loop.Pause()
	s.mu.Unlock()
	return &PauseOutput{}, nil
}

// Resume restarts the frame loop without simulating the paused time
func (o *orchestrator) Resume(_ context.Context, input *ResumeInput) (*ResumeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.loop.Resume()
	s.mu.Unlock()
	return &ResumeOutput{}, nil
}

// Restart starts the match over with the same seed
func (o *orchestrator) Restart(ctx context.Context, input *RestartInput) (*RestartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loop.Restart(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to restart match %s", s.id)
	}

	return &RestartOutput{Snapshot: s.game.Snapshot()}, nil
}

// EditInventory applies an inventory edit
func (o *orchestrator) EditInventory(ctx context.Context, input *EditInventoryInput) (*EditInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	s, err := o.session(input.MatchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.EditInventory(ctx, input.Op); err != nil {
		return nil, err
	}

	snap := s.game.Snapshot()
	return &EditInventoryOutput{
		Inventory: snap.Inventory,
		Tower:     snap.Tower,
	}, nil
}

// EndMatch stops a match and forgets it
func (o *orchestrator) EndMatch(_ context.Context, input *EndMatchInput) (*EndMatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	o.mu.Lock()
	s, ok := o.sessions[input.MatchID]
	delete(o.sessions, input.MatchID)
	o.mu.Unlock()
	if !ok {
		return nil, errors.NotFoundf("match %s not found", input.MatchID)
	}

	snap := o.stop(s)
	slog.Info("match ended",
		"match_id", s.id,
		"wave", snap.Wave,
		"game_over", snap.GameOver)

	return &EndMatchOutput{Snapshot: snap}, nil
}

// Close ends every match
func (o *orchestrator) Close(_ context.Context) {
	o.mu.Lock()
	sessions := o.sessions
	o.sessions = make(map[string]*session)
	o.mu.Unlock()

	for _, s := range sessions {
		o.stop(s)
	}
	slog.Info("match orchestrator closed", "matches", len(sessions))
}

// stop halts the session goroutine and returns the final state
func (o *orchestrator) stop(s *session) *game.Snapshot {
	s.cancel()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (o *orchestrator) session(matchID string) (*session, error) {
	if matchID == "" {
		return nil, errors.InvalidArgument("match ID is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, ok := o.sessions[matchID]
	if !ok {
		return nil, errors.NotFoundf("match %s not found", matchID)
	}
	return s, nil
}

// newEventBus creates a match bus that logs game events
func newEventBus() events.EventBus {
	bus := events.NewBus()
	for _, eventType := range game.AllEvents {
		bus.SubscribeFunc(eventType, 0, logEvent)
	}
	return bus
}

func logEvent(_ context.Context, e events.Event) error {
	wave, _ := e.Context().Get(game.KeyWave)
	slog.Debug("game event",
		"event_type", e.Type(),
		"wave", wave)
	return nil
}
