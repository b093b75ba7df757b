package game

import "fmt"

// Phase represents the state of the game flow
type Phase int

const (
	Setup Phase = iota
	Night
	NightResult
	Day
	Voting
	DayVoteResult
	Judgement
	VoteResult
	GameOver
)

var phaseToName = [...]string{
	Setup:         "SETUP",
	Night:         "NIGHT",
	NightResult:   "NIGHT_RESULT",
	Day:           "DAY",
	Voting:        "VOTING",
	DayVoteResult: "DAY_VOTE_RESULT",
	Judgement:     "JUDGEMENT",
	VoteResult:    "VOTE_RESULT",
	GameOver:      "GAME_OVER",
}

var transitions = map[Phase][]Phase{
	Setup:         {Night},
	Night:         {NightResult},
	NightResult:   {Day, GameOver},
	Day:           {Voting},
	Voting:        {DayVoteResult},
	DayVoteResult: {Judgement, VoteResult},
	Judgement:     {VoteResult},
	VoteResult:    {Night, GameOver},
	GameOver:      {Setup},
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseToName) {
		return phaseToName[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CanTransitionTo checks if the game may move from p to target.
// Reset is not listed: it is allowed from every phase.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range transitions[p] {
		if phase == target {
			return true
		}
	}
	return false
}
