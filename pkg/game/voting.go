package game

func (e *Engine) startVoting() {
	e.state.VotingResults = make(map[int]int)
	e.state.AccusedID = NoTarget
	e.voted = make(map[int]bool)
	e.active = NoTarget
	e.transition(Voting)
	e.advanceVoting()
}

// Vote casts the active player's vote against targetID
func (e *Engine) Vote(targetID int) error {
	const action = "vote"
	if err := e.checkVoter(action); err != nil {
		return err
	}
	switch {
	case targetID == e.active:
		return e.refuse(action, ErrSelfTarget)
	case !e.targetable(targetID):
		return e.refuse(action, ErrInvalidTarget)
	}

	e.state.VotingResults[targetID]++
	e.log.Debug("vote cast", "player", e.active, "target", targetID)
	e.voted[e.active] = true
	e.advanceVoting()
	e.flush()
	return nil
}

// SkipVote lets the active player abstain
func (e *Engine) SkipVote() error {
	if err := e.checkVoter("skip vote"); err != nil {
		return err
	}

	e.log.Debug("vote skipped", "player", e.active)
	e.voted[e.active] = true
	e.advanceVoting()
	e.flush()
	return nil
}

func (e *Engine) checkVoter(action string) error {
	if e.state.CurrentPhase != Voting {
		return e.refuse(action, ErrWrongPhase)
	}
	voter, ok := e.ActivePlayer()
	switch {
	case !ok:
		return e.refuse(action, ErrNoActivePlayer)
	case !canAct(voter):
		return e.refuse(action, ErrPlayerDying)
	case e.voted[voter.ID]:
		return e.refuse(action, ErrAlreadyVoted)
	}
	return nil
}

func (e *Engine) everyoneVoted() bool {
	return len(e.voted) >= len(e.state.Players.AliveNotDying())
}

func (e *Engine) advanceVoting() {
	if !e.everyoneVoted() {
		next, ok := nextInTurn(e.state.Players, e.active, func(p Player) bool {
			return canAct(p) && !e.voted[p.ID]
		})
		if ok {
			e.active = next
			return
		}
	}
	e.finishVoting()
}

func (e *Engine) finishVoting() {
	e.state.AccusedID = bestCandidate(e.state.VotingResults)
	e.active = NoTarget
	e.log.Info("votes tallied", "results", e.state.VotingResults, "accused", e.state.AccusedID)
	e.transition(DayVoteResult)
}

// bestCandidate returns the single most voted player, NoTarget if nobody
// was voted for or the maximum is shared
func bestCandidate(votingResults map[int]int) int {
	best, cnt := NoTarget, 0
	for id, votes := range votingResults {
		switch {
		case votes > cnt:
			best, cnt = id, votes
		case votes == cnt:
			best = NoTarget
		}
	}
	return best
}
