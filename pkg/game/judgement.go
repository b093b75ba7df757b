package game

// StartJudgement lets the table decide the fate of the accused player
func (e *Engine) StartJudgement() error {
	const action = "start judgement"
	switch {
	case e.state.CurrentPhase != DayVoteResult:
		return e.refuse(action, ErrWrongPhase)
	case e.state.AccusedID == NoTarget:
		return e.refuse(action, ErrNoAccused)
	}
	e.startJudgement()
	e.flush()
	return nil
}

// SkipAccusation goes on without judging anybody
func (e *Engine) SkipAccusation() error {
	if e.state.CurrentPhase != DayVoteResult {
		return e.refuse("skip accusation", ErrWrongPhase)
	}
	e.log.Info("accusation skipped", "accused", e.state.AccusedID)
	e.transition(VoteResult)
	e.flush()
	return nil
}

func (e *Engine) startJudgement() {
	e.state.JudgementVotes = make(map[int]bool)
	e.active = NoTarget
	e.transition(Judgement)
	e.advanceJudgement()
}

func (e *Engine) canJudge(p Player) bool {
	_, judged := e.state.JudgementVotes[p.ID]
	return canAct(p) && p.ID != e.state.AccusedID && !judged
}

// SubmitJudgementVote records the active player's verdict on the accused
func (e *Engine) SubmitJudgementVote(guilty bool) error {
	const action = "submit judgement vote"
	if e.state.CurrentPhase != Judgement {
		return e.refuse(action, ErrWrongPhase)
	}
	judge, ok := e.ActivePlayer()
	switch {
	case !ok:
		return e.refuse(action, ErrNoActivePlayer)
	case !canAct(judge):
		return e.refuse(action, ErrPlayerDying)
	case judge.ID == e.state.AccusedID:
		return e.refuse(action, ErrSelfTarget)
	}
	if _, judged := e.state.JudgementVotes[judge.ID]; judged {
		return e.refuse(action, ErrAlreadyVoted)
	}

	e.state.JudgementVotes[judge.ID] = guilty
	e.log.Debug("judgement vote", "player", judge.ID, "guilty", guilty)
	e.advanceJudgement()
	e.flush()
	return nil
}

func (e *Engine) advanceJudgement() {
	if next, ok := nextInTurn(e.state.Players, e.active, e.canJudge); ok {
		e.active = next
		return
	}
	e.finishJudgement()
}

func (e *Engine) finishJudgement() {
	s := &e.state
	guilty := verdict(s.JudgementVotes)
	if guilty {
		s.Players = s.Players.UpdateStatus(s.AccusedID, false, false)
		s.LastEliminated = s.AccusedID
	}
	e.log.Info("judgement finished", "accused", s.AccusedID, "guilty", guilty)
	e.active = NoTarget
	e.transition(VoteResult)
}

// verdict is guilty only for a strict majority, a tie is innocent
func verdict(votes map[int]bool) bool {
	var guilty int
	for _, v := range votes {
		if v {
			guilty++
		}
	}
	return guilty > len(votes)/2
}
