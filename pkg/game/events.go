package game

// EventOutput receives everything happening in an engine. Handlers are
// called synchronously after the operation that caused them has finished
// mutating the game, so it is safe to read the engine from them.
type EventOutput interface {
	HandleStateChanged(StateChangedEvent)
	HandlePhaseChanged(PhaseChangedEvent)
	HandleRejected(RejectedEvent)
	HandleWin(WinEvent)
}

// StateChangedEvent is emitted after every accepted mutation
type StateChangedEvent struct {
	State  GameState `json:"state"`
	Active *Player   `json:"active_player"` // nil when nobody is expected to act
}

type PhaseChangedEvent struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
	Day  int   `json:"day"`
}

type RejectedEvent struct {
	Action   string `json:"action"`
	PlayerID int    `json:"player_id"` // active player at the time, NoTarget if none
	Err      error  `json:"-"`
}

type WinEvent struct {
	Result GameResult `json:"result"`
}

type nopOutput struct{}

func (nopOutput) HandleStateChanged(StateChangedEvent) {}
func (nopOutput) HandlePhaseChanged(PhaseChangedEvent) {}
func (nopOutput) HandleRejected(RejectedEvent)         {}
func (nopOutput) HandleWin(WinEvent)                   {}
