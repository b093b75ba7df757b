package game

// NightVisit is a recorded move of a player to another player's home
type NightVisit struct {
	VisitorID int `json:"visitor_id"`
	TargetID  int `json:"target_id"`
}

// SheriffInvestigation is what the sheriff learned about a target
type SheriffInvestigation struct {
	Day       int         `json:"day"`
	SheriffID int         `json:"sheriff_id"`
	TargetID  int         `json:"target_id"`
	Status    GuiltStatus `json:"status"`
}

// WatcherObservation lists who visited the watched player, in visit order
type WatcherObservation struct {
	Day        int   `json:"day"`
	WatcherID  int   `json:"watcher_id"`
	TargetID   int   `json:"target_id"`
	VisitorIDs []int `json:"visitor_ids"`
}

// GameResult is filled once the game is over
type GameResult struct {
	WinningRole    Role     `json:"winning_role"`
	WinningFaction Faction  `json:"winning_faction"`
	Survivors      []Player `json:"survivors"`
}

// GameState is the full snapshot of a game. Ids that may be absent hold
// NoTarget.
type GameState struct {
	Players      Roster `json:"players"`
	CurrentPhase Phase  `json:"current_phase"`
	CurrentDay   int    `json:"current_day"`

	// cleared every night
	VampireTarget      int          `json:"vampire_target"`
	DoctorTarget       int          `json:"doctor_target"`
	SerialKillerTarget int          `json:"serial_killer_target"`
	SheriffTarget      int          `json:"sheriff_target"`
	WatcherTarget      int          `json:"watcher_target"`
	NightVisits        []NightVisit `json:"night_visits"`

	LastNightDeaths []int `json:"last_night_deaths"`

	// cleared every day
	VotingResults map[int]int `json:"voting_results"`
	AccusedID     int         `json:"accused_id"`

	// cleared every judgement
	JudgementVotes map[int]bool `json:"judgement_votes"`

	// whole-game history
	SheriffResults []SheriffInvestigation `json:"sheriff_results"`
	WatcherResults []WatcherObservation   `json:"watcher_results"`

	LastEliminated int         `json:"last_eliminated"`
	GameResult     *GameResult `json:"game_result"`
}

func newGameState() GameState {
	s := GameState{
		CurrentPhase:   Setup,
		AccusedID:      NoTarget,
		LastEliminated: NoTarget,
		VotingResults:  make(map[int]int),
		JudgementVotes: make(map[int]bool),
	}
	s.clearNight()
	return s
}

func (s *GameState) clearNight() {
	s.VampireTarget = NoTarget
	s.DoctorTarget = NoTarget
	s.SerialKillerTarget = NoTarget
	s.SheriffTarget = NoTarget
	s.WatcherTarget = NoTarget
	s.NightVisits = nil
}

// Clone returns a deep copy of s
func (s GameState) Clone() GameState {
	c := s
	c.Players = s.Players.Clone()
	c.NightVisits = append([]NightVisit(nil), s.NightVisits...)
	c.LastNightDeaths = append([]int(nil), s.LastNightDeaths...)

	c.VotingResults = make(map[int]int, len(s.VotingResults))
	for id, cnt := range s.VotingResults {
		c.VotingResults[id] = cnt
	}
	c.JudgementVotes = make(map[int]bool, len(s.JudgementVotes))
	for id, guilty := range s.JudgementVotes {
		c.JudgementVotes[id] = guilty
	}

	c.SheriffResults = append([]SheriffInvestigation(nil), s.SheriffResults...)
	c.WatcherResults = nil
	for _, o := range s.WatcherResults {
		o.VisitorIDs = append([]int(nil), o.VisitorIDs...)
		c.WatcherResults = append(c.WatcherResults, o)
	}
	if s.GameResult != nil {
		result := *s.GameResult
		result.Survivors = append([]Player(nil), s.GameResult.Survivors...)
		c.GameResult = &result
	}
	return c
}
