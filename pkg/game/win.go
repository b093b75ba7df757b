package game

// checkForEnd returns the result of the game if one faction has won.
// A lone serial killer beats everything, then a wiped out village means the
// vampires won, otherwise the village did.
func checkForEnd(players Roster) (GameResult, bool) {
	alive := players.Alive()

	factionToCnt := make(map[Faction]int)
	for _, player := range alive {
		factionToCnt[player.Role.Faction()]++
	}

	noVillageTeam := factionToCnt[VillageFaction] == 0
	noVampire := factionToCnt[VampireFaction] == 0
	serialKillerWin := len(alive) == 1 && alive[0].Role == SerialKiller
	if !noVillageTeam && !noVampire && !serialKillerWin {
		return GameResult{}, false
	}

	var winner Role
	switch {
	case serialKillerWin:
		winner = SerialKiller
	case noVillageTeam:
		winner = Vampire
	default:
		winner = Villager
	}
	return GameResult{
		WinningRole:    winner,
		WinningFaction: winner.Faction(),
		Survivors:      alive,
	}, true
}

func (e *Engine) finishDay() {
	if result, over := checkForEnd(e.state.Players); over {
		e.gameOver(result)
		return
	}
	e.state.CurrentDay++
	e.startNight()
}
