package gameserver

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	game "github.com/jejutic/tg_vampires/pkg/game"
)

const (
	hider = ".\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n.\n"
)

var roleToName = map[game.Role]string{
	game.Villager:     "villager",
	game.Vampire:      "vampire",
	game.Sheriff:      "sheriff",
	game.Watcher:      "watcher",
	game.SerialKiller: "serial killer",
	game.Doctor:       "doctor",
	game.VoteSaboteur: "vote saboteur",
	game.Autopsir:     "autopsir",
	game.Veteran:      "veteran",
	game.Madman:       "madman",
	game.Wizard:       "wizard",
}

var factionToName = map[game.Faction]string{
	game.VillageFaction:      "the village",
	game.VampireFaction:      "the vampires",
	game.SerialKillerFaction: "the serial killer",
}

var actionToHint = map[game.NightAction]string{
	game.Acknowledge: "Nothing to do tonight, just press the button",
	game.Bite:        "Choose whom the vampires bite",
	game.Stab:        "Choose your victim",
	game.Investigate: "Choose whom to investigate",
	game.Watch:       "Choose whose home to watch",
	game.Protect:     "Choose whom to protect",
}

func namesOf(players game.Roster, ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := players.FindByID(id); ok {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

func nameOf(players game.Roster, id int) string {
	return namesOf(players, []int{id})
}

// targetsOf lists whom p may choose, in seating order
func targetsOf(players game.Roster, p game.Player) []string {
	var targets []string
	for _, other := range players.AliveNotDying() {
		if other.ID != p.ID {
			targets = append(targets, other.Name)
		}
	}
	return targets
}

// hide pushes a secret screen out of sight before the device changes hands
func (s *session) hide() {
	secret := s.shown.phase == game.Night || s.shown.phase == game.NightResult
	if secret && s.shown.active != game.NoTarget {
		s.reply(hider, true)
		s.shown.active = game.NoTarget
	}
}

func (s *session) HandlePhaseChanged(e game.PhaseChangedEvent) {
	s.timer.Disarm()
	s.hide()

	state := s.engine.State()
	current := state.CurrentPhase == e.To
	switch e.To {
	case game.Setup:
		s.reply("The game has ended. Send /names to play again with the same roles", true)
	case game.Night:
		s.reply(fmt.Sprintf("Night %d falls. Everybody close your eyes and pass the device around", e.Day), true)
	case game.NightResult:
		s.reply("The sun rises. Pass the device around once more to learn what happened to you", true)
	case game.Day:
		if !current {
			return
		}
		s.ask(s.dayText(state), nextAnswer)
		s.armProceed(s.rules.DayDuration)
	case game.Voting:
		s.reply("Time to vote. Pass the device around", true)
	case game.DayVoteResult:
		if !current {
			return
		}
		if state.AccusedID == game.NoTarget {
			s.ask(tallyText(state), nextAnswer)
		} else {
			s.ask(tallyText(state), judgeAnswer, pardonAnswer)
		}
		s.armProceed(s.rules.VoteResultDuration)
	case game.Judgement:
		s.reply(nameOf(state.Players, state.AccusedID)+" is on trial. Everybody else judges", true)
	case game.VoteResult:
		if current {
			s.ask(voteResultText(state), nextAnswer)
		}
	case game.GameOver:
	}
}

func (s *session) HandleStateChanged(e game.StateChangedEvent) {
	current := screen{
		phase:  e.State.CurrentPhase,
		day:    e.State.CurrentDay,
		active: game.NoTarget,
	}
	if e.Active != nil {
		current.active = e.Active.ID
	}
	if current == s.shown {
		return
	}
	s.hide()
	s.shown = current
	if e.Active == nil {
		return
	}

	player := *e.Active
	switch current.phase {
	case game.Night:
		s.nightScreen(e.State, player)
	case game.NightResult:
		s.nightResultScreen(e.State, player)
	case game.Voting:
		s.ask(player.Name+", whom do you accuse?", append(targetsOf(e.State.Players, player), skipAnswer)...)
	case game.Judgement:
		s.ask(fmt.Sprintf("%s, is %s guilty?", player.Name, nameOf(e.State.Players, e.State.AccusedID)),
			guiltyAnswer, innocentAnswer)
	}
}

func (s *session) nightScreen(state game.GameState, p game.Player) {
	var text strings.Builder
	fmt.Fprintf(&text, "%s, it is your turn. You are the %s.\n", p.Name, roleToName[p.Role])

	switch p.Role {
	case game.Vampire:
		var mates []string
		for _, other := range state.Players.Alive() {
			if other.Role == game.Vampire && other.ID != p.ID {
				mates = append(mates, other.Name)
			}
		}
		if len(mates) > 0 {
			text.WriteString("Your fellow vampires: " + strings.Join(mates, ", ") + "\n")
		}
	case game.Sheriff:
		for _, r := range state.SheriffResults {
			if r.SheriffID == p.ID {
				fmt.Fprintf(&text, "Night %d: %s is %s\n", r.Day, nameOf(state.Players, r.TargetID), strings.ToLower(r.Status.String()))
			}
		}
	case game.Watcher:
		for _, o := range state.WatcherResults {
			if o.WatcherID == p.ID {
				fmt.Fprintf(&text, "Night %d: %s was visited by %s\n", o.Day, nameOf(state.Players, o.TargetID), namesOf(state.Players, o.VisitorIDs))
			}
		}
	}

	action := p.Role.NightAction()
	text.WriteString("\n" + actionToHint[action])
	if action == game.Acknowledge {
		s.ask(text.String(), sleepAnswer)
		return
	}
	s.ask(text.String(), append(targetsOf(state.Players, p), skipAnswer)...)
}

func (s *session) nightResultScreen(state game.GameState, p game.Player) {
	var lines []string
	if p.Dying {
		lines = append(lines, "You were attacked tonight and will not see the morning.")
	}
	for _, r := range state.SheriffResults {
		if r.SheriffID == p.ID && r.Day == state.CurrentDay {
			lines = append(lines, fmt.Sprintf("%s is %s.", nameOf(state.Players, r.TargetID), strings.ToLower(r.Status.String())))
		}
	}
	if p.Role == game.Watcher && state.WatcherTarget != game.NoTarget {
		visitors := "nobody"
		for _, o := range state.WatcherResults {
			if o.WatcherID == p.ID && o.Day == state.CurrentDay {
				visitors = namesOf(state.Players, o.VisitorIDs)
			}
		}
		lines = append(lines, fmt.Sprintf("%s was visited by %s.", nameOf(state.Players, state.WatcherTarget), visitors))
	}
	if len(lines) == 0 {
		lines = append(lines, "Your night was quiet.")
	}

	s.ask(p.Name+", here is your night.\n"+strings.Join(lines, "\n"), nextAnswer)
}

func (s *session) dayText(state game.GameState) string {
	var text strings.Builder
	fmt.Fprintf(&text, "Day %d begins.\n", state.CurrentDay)
	if len(state.LastNightDeaths) == 0 {
		text.WriteString("Nobody died tonight.\n")
	} else {
		text.WriteString("Tonight we lost " + namesOf(state.Players, state.LastNightDeaths) + ".\n")
	}
	if d := s.rules.DayDuration; d > 0 {
		fmt.Fprintf(&text, "Discuss. Voting starts in %s or on %q", d, nextAnswer)
	} else {
		fmt.Fprintf(&text, "Discuss. Voting starts on %q", nextAnswer)
	}
	return text.String()
}

func tallyText(state game.GameState) string {
	type tally struct {
		name  string
		votes int
	}
	var tallies []tally
	for id, votes := range state.VotingResults {
		tallies = append(tallies, tally{nameOf(state.Players, id), votes})
	}
	slices.SortFunc(tallies, func(a, b tally) int {
		if c := cmp.Compare(b.votes, a.votes); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	var text strings.Builder
	for _, t := range tallies {
		fmt.Fprintf(&text, "%s: %d\n", t.name, t.votes)
	}
	if state.AccusedID == game.NoTarget {
		text.WriteString("\nNobody is accused")
	} else {
		fmt.Fprintf(&text, "\n%s is accused. Judge or pardon?", nameOf(state.Players, state.AccusedID))
	}
	return text.String()
}

func voteResultText(state game.GameState) string {
	if state.AccusedID != game.NoTarget {
		if accused, ok := state.Players.FindByID(state.AccusedID); ok && !accused.Alive {
			return fmt.Sprintf("%s was found guilty and eliminated. They were the %s", accused.Name, roleToName[accused.Role])
		}
	}
	return "Nobody was eliminated today"
}

func (s *session) HandleRejected(e game.RejectedEvent) {
	var text string
	switch {
	case errors.Is(e.Err, game.ErrWrongPhase):
		text = "That is not possible right now"
	case errors.Is(e.Err, game.ErrSelfTarget):
		text = "You cannot choose yourself"
	case errors.Is(e.Err, game.ErrInvalidTarget):
		text = "That player cannot be chosen"
	case errors.Is(e.Err, game.ErrAlreadyVoted):
		text = "You have already voted"
	case errors.Is(e.Err, game.ErrNoAccused):
		text = "Nobody is accused"
	case errors.Is(e.Err, game.ErrNotConfigured):
		text = "Set the table up with /create first"
	default:
		text = "Cannot " + e.Action + ": " + e.Err.Error()
	}
	s.reply(text, false)
}

func (s *session) HandleWin(e game.WinEvent) {
	var text strings.Builder
	fmt.Fprintf(&text, "%s won!\n\n", capitalize(factionToName[e.Result.WinningFaction]))
	for _, p := range s.engine.State().Players {
		status := "dead"
		if p.Alive {
			status = "alive"
		}
		fmt.Fprintf(&text, "%s, %s, %s\n", p.Name, roleToName[p.Role], status)
	}
	fmt.Fprintf(&text, "\nSend %q to set up a new game", nextAnswer)
	s.ask(text.String(), nextAnswer)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
