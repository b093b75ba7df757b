package game

func (e *Engine) startNight() {
	e.state.clearNight()
	e.state.LastNightDeaths = nil
	e.active = NoTarget
	e.transition(Night)
	e.advanceNight()
}

// SelectNightTarget submits the night action of the active player. Every
// living player gets a turn so that nobody can tell roles apart by who
// touches the device; NoTarget skips the action.
func (e *Engine) SelectNightTarget(targetID int) error {
	const action = "select night target"
	if e.state.CurrentPhase != Night {
		return e.refuse(action, ErrWrongPhase)
	}
	actor, ok := e.ActivePlayer()
	switch {
	case !ok:
		return e.refuse(action, ErrNoActivePlayer)
	case targetID == actor.ID:
		return e.refuse(action, ErrSelfTarget)
	case targetID != NoTarget && !e.targetable(targetID):
		return e.refuse(action, ErrInvalidTarget)
	}

	e.act(actor, targetID)
	e.advanceNight()
	e.flush()
	return nil
}

func (e *Engine) targetable(id int) bool {
	player, ok := e.state.Players.FindByID(id)
	return ok && canAct(player)
}

func (e *Engine) act(actor Player, target int) {
	if target == NoTarget {
		e.log.Debug("night action skipped", "player", actor.ID)
		return
	}

	s := &e.state
	switch actor.Role.NightAction() {
	case Bite:
		s.VampireTarget = target // vampires share one target, the last one to choose decides
		e.visit(actor.ID, target)
	case Stab:
		s.SerialKillerTarget = target
		e.visit(actor.ID, target)
	case Investigate:
		s.SheriffTarget = target
		e.visit(actor.ID, target)
		s.SheriffResults = append(s.SheriffResults, e.investigate(actor.ID, target))
	case Watch:
		s.WatcherTarget = target // watching leaves no trace
	case Protect:
		s.DoctorTarget = target
		e.visit(actor.ID, target)
	case Acknowledge:
	}
	e.log.Debug("night action", "player", actor.ID, "role", actor.Role, "target", target)
}

func (e *Engine) visit(visitor, target int) {
	e.state.NightVisits = append(e.state.NightVisits, NightVisit{
		VisitorID: visitor,
		TargetID:  target,
	})
}

// investigate looks at the true role of target at the moment of the visit
func (e *Engine) investigate(sheriff, target int) SheriffInvestigation {
	status := Innocent
	if player, _ := e.state.Players.FindByID(target); player.Role.Guilty() {
		status = Guilty
	}
	return SheriffInvestigation{
		Day:       e.state.CurrentDay,
		SheriffID: sheriff,
		TargetID:  target,
		Status:    status,
	}
}

func (e *Engine) advanceNight() {
	if next, ok := nextInTurn(e.state.Players, e.active, canAct); ok {
		e.active = next
		return
	}
	e.finishNight()
}

func (e *Engine) finishNight() {
	s := &e.state
	if s.WatcherTarget != NoTarget {
		watcher := e.nightActor(Watcher)
		if visitors := observeVisits(s.NightVisits, s.WatcherTarget); len(visitors) > 0 {
			s.WatcherResults = append(s.WatcherResults, WatcherObservation{
				Day:        s.CurrentDay,
				WatcherID:  watcher,
				TargetID:   s.WatcherTarget,
				VisitorIDs: visitors,
			})
		}
	}

	s.Players = processNightKills(s.Players, s.VampireTarget, s.SerialKillerTarget, s.DoctorTarget)
	e.log.Info("night finished", "dying", s.Players.Dying().IDs())

	e.transition(NightResult)
	e.active = NoTarget
	if first, ok := nextInTurn(s.Players, NoTarget, isAlive); ok {
		e.active = first
	}
}

func (e *Engine) nightActor(role Role) int {
	for _, player := range e.state.Players {
		if player.Role == role && player.Alive {
			return player.ID
		}
	}
	return NoTarget
}

// observeVisits returns, in recording order, who visited target. Watching
// records no visit, so the watcher never shows up.
func observeVisits(visits []NightVisit, target int) []int {
	var visitors []int
	for _, v := range visits {
		if v.TargetID == target {
			visitors = append(visitors, v.VisitorID)
		}
	}
	return visitors
}

// processNightKills marks the victims of the vampires and of the serial
// killer as dying. The doctor saves whoever has exactly the protected id,
// from either killer.
func processNightKills(players Roster, vampireTarget, serialKillerTarget, doctorTarget int) Roster {
	for _, victim := range []int{vampireTarget, serialKillerTarget} {
		if victim == NoTarget || victim == doctorTarget {
			continue
		}
		if player, ok := players.FindByID(victim); ok && player.Alive {
			players = players.UpdateStatus(victim, true, true)
		}
	}
	return players
}

func isAlive(p Player) bool {
	return p.Alive
}

// NextNightResult passes the device to the next living player for the
// night result screens. After the last one the day starts.
func (e *Engine) NextNightResult() error {
	if e.state.CurrentPhase != NightResult {
		return e.refuse("next night result", ErrWrongPhase)
	}
	e.advanceNightResult()
	e.flush()
	return nil
}

func (e *Engine) advanceNightResult() {
	if next, ok := nextInTurn(e.state.Players, e.active, isAlive); ok {
		e.active = next
		return
	}
	e.startDay()
}

func (e *Engine) startDay() {
	s := &e.state
	dying := s.Players.Dying().IDs()
	for _, id := range dying {
		s.Players = s.Players.UpdateStatus(id, false, false)
	}
	s.LastNightDeaths = dying
	s.CurrentDay++
	e.active = NoTarget

	if result, over := checkForEnd(s.Players); over {
		e.gameOver(result)
		return
	}
	e.transition(Day)
}
