package httpapi

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jejutic/tg_vampires/pkg/config"
	"github.com/jejutic/tg_vampires/pkg/game"
	"github.com/jejutic/tg_vampires/pkg/logger"
)

// Store keeps the sessions served over HTTP
type Store struct {
	rules    config.GameConfig
	log      *slog.Logger
	opts     []game.Option
	sessions map[uuid.UUID]*tableSession
	mu       sync.RWMutex
}

// NewStore creates an empty store. opts are applied to every engine.
func NewStore(rules config.GameConfig, log *slog.Logger, opts ...game.Option) *Store {
	return &Store{
		rules:    rules,
		log:      log,
		opts:     opts,
		sessions: make(map[uuid.UUID]*tableSession),
	}
}

// Create starts a session in SETUP
func (s *Store) Create() *tableSession {
	ts := newTableSession(s.rules, s.log, s.opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[ts.engine.ID()] = ts
	return ts
}

// Get retrieves a session by id
func (s *Store) Get(id uuid.UUID) (*tableSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, exists := s.sessions[id]
	return ts, exists
}

// Delete removes a session and disconnects its subscribers
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	ts, exists := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if exists {
		ts.close()
	}
	return exists
}

// Len returns the number of sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close ends every session
func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*tableSession)
	s.mu.Unlock()

	for _, ts := range sessions {
		ts.close()
	}
}

// tableSession is one engine with its pacing timer and subscribers.
// mu serializes every use of the engine.
type tableSession struct {
	mu     sync.Mutex
	rules  config.GameConfig
	engine *game.Engine
	timer  game.PhaseTimer
	hub    *hub
}

func newTableSession(rules config.GameConfig, log *slog.Logger, opts ...game.Option) *tableSession {
	id := uuid.New()
	ts := &tableSession{
		rules: rules,
		hub:   newHub(logger.WithSession(logger.WithComponent(log, "hub"), id.String())),
	}
	opts = append([]game.Option{game.WithSessionID(id), game.WithLogger(log)}, opts...)
	ts.engine = game.NewEngine(ts, opts...)
	return ts
}

func (ts *tableSession) close() {
	ts.timer.Disarm()
	ts.hub.close()
}

// view must be called with ts.mu held
func (ts *tableSession) view() sessionView {
	v := sessionView{
		ID:    ts.engine.ID(),
		State: ts.engine.State(),
	}
	if settings, ok := ts.engine.Settings(); ok {
		v.Settings = &settings
	}
	if active, ok := ts.engine.ActivePlayer(); ok {
		v.Active = &active
	}
	return v
}

func (ts *tableSession) durationOf(phase game.Phase) time.Duration {
	switch phase {
	case game.Day:
		return ts.rules.DayDuration
	case game.DayVoteResult:
		return ts.rules.VoteResultDuration
	default:
		return 0
	}
}

func (ts *tableSession) HandlePhaseChanged(e game.PhaseChangedEvent) {
	ts.timer.Disarm()
	if d := ts.durationOf(e.To); d > 0 && ts.engine.Phase() == e.To {
		ts.timer.ArmProceed(d, ts.engine, &ts.mu)
	}
	ts.hub.broadcast(wsMessage{Type: "phase_changed", Data: e})
}

func (ts *tableSession) HandleStateChanged(e game.StateChangedEvent) {
	ts.hub.broadcast(wsMessage{Type: "state_changed", Data: e})
}

func (ts *tableSession) HandleRejected(e game.RejectedEvent) {
	ts.hub.broadcast(wsMessage{Type: "rejected", Data: rejectedView{
		Action:   e.Action,
		PlayerID: e.PlayerID,
		Error:    e.Err.Error(),
	}})
}

func (ts *tableSession) HandleWin(e game.WinEvent) {
	ts.hub.broadcast(wsMessage{Type: "win", Data: e.Result})
}
