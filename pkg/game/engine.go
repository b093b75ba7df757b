package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/jejutic/tg_vampires/pkg/logger"
)

// Engine is one game session on one shared device. It is not safe for
// concurrent use: callers serialize access, the game itself is strictly
// turn based.
type Engine struct {
	id       uuid.UUID
	log      *slog.Logger
	eOutput  EventOutput
	shuffle  func(n int, swap func(i, j int))
	settings *Settings // nil until configured

	state   GameState
	active  int          // NoTarget iff nobody is expected to act
	voted   map[int]bool // day voters, abstentions included
	pending []func()     // events waiting for the current operation to finish
}

// Option customizes an Engine
type Option func(*Engine)

// WithShuffle replaces the role-card permutation, rand.Shuffle by default
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(e *Engine) {
		e.shuffle = shuffle
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithSessionID(id uuid.UUID) Option {
	return func(e *Engine) {
		e.id = id
	}
}

// NewEngine returns an engine in SETUP reporting to eOutput. A nil eOutput
// discards events.
func NewEngine(eOutput EventOutput, opts ...Option) *Engine {
	if eOutput == nil {
		eOutput = nopOutput{}
	}
	e := &Engine{
		id:      uuid.New(),
		log:     logger.Nop(),
		eOutput: eOutput,
		shuffle: rand.Shuffle,
		state:   newGameState(),
		active:  NoTarget,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.WithSession(logger.WithComponent(e.log, "engine"), e.id.String())
	return e
}

// ID returns the session id of e
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Configure validates s for the following games. premium unlocks the
// extended roles.
func (e *Engine) Configure(s Settings, premium bool) (Settings, error) {
	if e.state.CurrentPhase != Setup {
		return Settings{}, e.refuse("configure", ErrWrongPhase)
	}

	validated, err := Configure(s, premium)
	if err != nil {
		e.log.Warn("settings rejected", "error", err)
		return Settings{}, err
	}
	e.settings = &validated
	e.log.Info("settings configured",
		"players", validated.PlayerCount,
		"vampires", validated.Count(Vampire),
		"premium", premium,
	)
	return validated.clone(), nil
}

// Settings returns the configured settings, if any
func (e *Engine) Settings() (Settings, bool) {
	if e.settings == nil {
		return Settings{}, false
	}
	return e.settings.clone(), true
}

// StartGame deals the role-cards to the first PlayerCount names, seating
// them in input order, and starts the first night.
func (e *Engine) StartGame(names []string) (GameState, error) {
	const action = "start game"
	if e.state.CurrentPhase != Setup {
		return GameState{}, e.refuse(action, ErrWrongPhase)
	}
	if e.settings == nil {
		return GameState{}, e.refuse(action, ErrNotConfigured)
	}

	seated, err := validNames(names, e.settings.PlayerCount)
	if err != nil {
		e.log.Warn("names rejected", "error", err)
		return GameState{}, err
	}

	roles := CreateRoles(*e.settings, e.shuffle)
	e.state = newGameState()
	e.state.Players = CreateRoster(seated, roles)
	e.state.CurrentDay = 1
	e.voted = nil
	e.log.Info("game started", "players", len(e.state.Players))

	e.startNight()
	e.flush()
	return e.State(), nil
}

func validNames(names []string, playerCount int) ([]string, error) {
	if len(names) < playerCount {
		return nil, newConfigError("names", "%d names given, %d players expected", len(names), playerCount)
	}

	seated := make([]string, playerCount)
	seen := make(map[string]bool, playerCount)
	for i := range seated {
		name := strings.TrimSpace(names[i])
		switch {
		case name == "":
			return nil, newConfigError("names", "name #%d is empty", i+1)
		case seen[strings.ToLower(name)]:
			return nil, newConfigError("names", "name %q is already taken", name)
		}
		seen[strings.ToLower(name)] = true
		seated[i] = name
	}
	return seated, nil
}

// Proceed advances the game the way the "next" button of the current
// phase does.
func (e *Engine) Proceed() error {
	const action = "proceed"
	switch phase := e.state.CurrentPhase; phase {
	case NightResult:
		e.advanceNightResult()
	case Day:
		e.startVoting()
	case DayVoteResult:
		if e.state.AccusedID != NoTarget {
			e.startJudgement()
		} else {
			e.transition(VoteResult)
		}
	case VoteResult:
		e.finishDay()
	case GameOver:
		e.reset()
	case Setup, Night, Voting, Judgement:
		return e.refuse(action, ErrWrongPhase)
	default:
		panic(fmt.Sprintf("unhandled phase %s", phase))
	}
	e.flush()
	return nil
}

// ProceedIf proceeds only if the game is still in phase on day. Timers use
// it so that an expiry racing a manual proceed does nothing.
func (e *Engine) ProceedIf(phase Phase, day int) error {
	if e.state.CurrentPhase != phase || e.state.CurrentDay != day {
		e.log.Debug("stale proceed ignored",
			"expected_phase", phase, "expected_day", day,
			"phase", e.state.CurrentPhase, "day", e.state.CurrentDay,
		)
		return reject("proceed", ErrStalePhase)
	}
	return e.Proceed()
}

// ResetGame drops the current game and returns to SETUP. Settings are kept.
func (e *Engine) ResetGame() {
	e.reset()
	e.flush()
}

func (e *Engine) reset() {
	from := e.state.CurrentPhase
	e.state = newGameState()
	e.active = NoTarget
	e.voted = nil
	if from != Setup {
		e.pending = append(e.pending, func() {
			e.eOutput.HandlePhaseChanged(PhaseChangedEvent{From: from, To: Setup})
		})
	}
	e.log.Info("game reset", "from", from)
}

// State returns a copy of the current game state
func (e *Engine) State() GameState {
	return e.state.Clone()
}

func (e *Engine) Phase() Phase {
	return e.state.CurrentPhase
}

// ActivePlayer returns the player expected to act, if any
func (e *Engine) ActivePlayer() (Player, bool) {
	if e.active == NoTarget {
		return Player{}, false
	}
	return e.state.Players.FindByID(e.active)
}

// HasVoted iff player id has voted or abstained today
func (e *Engine) HasVoted(id int) bool {
	return e.voted[id]
}

func (e *Engine) transition(to Phase) {
	from := e.state.CurrentPhase
	if !from.CanTransitionTo(to) {
		panic(fmt.Sprintf("illegal transition %s -> %s", from, to))
	}
	e.state.CurrentPhase = to
	day := e.state.CurrentDay
	e.pending = append(e.pending, func() {
		e.eOutput.HandlePhaseChanged(PhaseChangedEvent{From: from, To: to, Day: day})
	})
	e.log.Info("phase changed", "from", from, "to", to, "day", day)
}

func (e *Engine) gameOver(result GameResult) {
	e.state.GameResult = &result
	e.active = NoTarget
	e.transition(GameOver)
	e.pending = append(e.pending, func() {
		e.eOutput.HandleWin(WinEvent{Result: result})
	})
	e.log.Info("game over", "winner", result.WinningRole, "survivors", len(result.Survivors))
}

func (e *Engine) refuse(action string, reason error) error {
	err := reject(action, reason)
	e.log.Warn("action rejected", "action", action, "player", e.active, "reason", reason.Error())
	e.eOutput.HandleRejected(RejectedEvent{
		Action:   action,
		PlayerID: e.active,
		Err:      err,
	})
	return err
}

func (e *Engine) flush() {
	pending := e.pending
	e.pending = nil
	for _, emit := range pending {
		emit()
	}

	var active *Player
	if player, ok := e.ActivePlayer(); ok {
		active = &player
	}
	e.eOutput.HandleStateChanged(StateChangedEvent{
		State:  e.State(),
		Active: active,
	})
}
