package gameserver

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	game "github.com/jejutic/tg_vampires/pkg/game"
)

func parseRole(token string) (game.Role, error) {
	switch strings.ToLower(token) {
	case "vampire", "vamp", "v":
		return game.Vampire, nil
	case "sheriff", "sher":
		return game.Sheriff, nil
	case "watcher", "watch":
		return game.Watcher, nil
	case "killer", "serialkiller", "sk":
		return game.SerialKiller, nil
	case "doctor", "doc":
		return game.Doctor, nil
	case "villager":
		return game.Villager, nil
	case "saboteur", "votesaboteur":
		return game.VoteSaboteur, nil
	}
	if role, err := game.ParseRole(strings.ToUpper(token)); err == nil {
		return role, nil
	}
	return 0, errors.New("unknown role token: " + token)
}

func parseRoles(tokens []string) (map[game.Role]int, error) {
	counts := make(map[game.Role]int)
	for _, token := range tokens {
		role, err := parseRole(token)
		if err != nil {
			return nil, err
		}
		counts[role]++
	}
	return counts, nil
}

// parseSettings reads "N [roles...]". A table without vampires gets one.
func parseSettings(args []string) (game.Settings, error) {
	if len(args) == 0 {
		return game.Settings{}, errors.New("the number of players is missing")
	}
	playerCount, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Settings{}, fmt.Errorf("%q is not a number of players", args[0])
	}
	counts, err := parseRoles(args[1:])
	if err != nil {
		return game.Settings{}, err
	}
	if counts[game.Vampire] == 0 {
		counts[game.Vampire] = 1
	}
	return game.Settings{
		PlayerCount: playerCount,
		Counts:      counts,
	}, nil
}

func rolesToString(s game.Settings) string {
	var parts []string
	for _, role := range game.AllRoles {
		if cnt := s.Count(role); cnt > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", cnt, roleToName[role]))
		}
	}
	return strings.Join(parts, ", ")
}

//go:embed startText.txt
var startText string

func handleCommand[T any](ctx context.Context, vs vampireServer[T], s *session, msg UserMessage) {
	words := strings.Fields(msg.Text)
	if len(words) == 0 {
		return
	}
	command, _, _ := strings.Cut(strings.TrimPrefix(words[0], "/"), "@") // commands may be addressed to the bot in groups
	args := words[1:]

	switch command {
	case "start", "help":
		s.reply(startText, false)

	case "create":
		s.create(args)

	case "names":
		s.startGame(args)

	case "proceed", "next":
		_ = s.engine.Proceed()

	case "judge":
		_ = s.engine.StartJudgement()

	case "pardon":
		_ = s.engine.SkipAccusation()

	case "stop":
		s.stop()

	case "state":
		s.reply(stateText(s.engine.State()), false)

	case "savegroup":
		vs.saveGroup(ctx, s, args)

	case "group":
		vs.playGroup(ctx, s, args)

	case "groups":
		vs.listGroups(ctx, s)

	default:
		s.reply("Unknown command "+words[0]+", see /help", false)
	}
}

func (s *session) create(args []string) {
	if s.engine.Phase() != game.Setup {
		s.reply("A game is running, /stop it first", false)
		return
	}
	settings, err := parseSettings(args)
	if err != nil {
		s.reply("Could not read the table: "+err.Error(), false)
		return
	}
	settings, err = s.engine.Configure(settings, s.rules.Premium)
	if err != nil {
		s.replyConfigError(err)
		return
	}
	s.reply(fmt.Sprintf("The table is set for %d: %s.\nSend /names with %d names in seating order",
		settings.PlayerCount, rolesToString(settings), settings.PlayerCount), true)
}

func (s *session) startGame(names []string) {
	state, err := s.engine.StartGame(names)
	if err != nil {
		s.replyConfigError(err)
		return
	}
	s.names = make([]string, 0, len(state.Players))
	for _, p := range state.Players {
		s.names = append(s.names, p.Name)
	}
}

// replyConfigError reports errors HandleRejected has not reported already
func (s *session) replyConfigError(err error) {
	if game.IsInvalidAction(err) {
		return
	}
	var configErr *game.ConfigError
	if errors.As(err, &configErr) {
		s.reply("Cannot start like this: "+configErr.Message, false)
		return
	}
	s.reply(err.Error(), false)
}

func stateText(state game.GameState) string {
	if state.CurrentPhase == game.Setup {
		return "No game is running"
	}
	var text strings.Builder
	fmt.Fprintf(&text, "Day %d, %s\n", state.CurrentDay, strings.ToLower(state.CurrentPhase.String()))
	for _, p := range state.Players {
		status := "alive"
		if !p.Alive {
			status = "dead, " + roleToName[p.Role]
		}
		fmt.Fprintf(&text, "%s: %s\n", p.Name, status)
	}
	return text.String()
}

func (vs vampireServer[T]) saveGroup(ctx context.Context, s *session, args []string) {
	if vs.rosters == nil {
		s.reply("Saved groups are not available", false)
		return
	}
	if len(args) < 1 {
		s.reply("You did not name the group", false)
		return
	}
	if len(s.names) == 0 {
		s.reply("Start a game first, its names will be saved", false)
		return
	}

	group := args[0]
	if err := vs.rosters.saveRoster(ctx, s.chat, group, s.names); err != nil {
		vs.log.Error("failed to save roster", "chat", s.chat, "group", group, "error", err)
		s.reply("Could not save the group", false)
		return
	}
	s.reply("Saved "+group+": "+strings.Join(s.names, ", "), false)
}

func (vs vampireServer[T]) playGroup(ctx context.Context, s *session, args []string) {
	if vs.rosters == nil {
		s.reply("Saved groups are not available", false)
		return
	}
	if len(args) < 1 {
		s.reply("You did not name the group", false)
		return
	}

	group := args[0]
	names, err := vs.rosters.loadRoster(ctx, s.chat, group)
	switch {
	case errors.Is(err, errRosterNotFound):
		s.reply("There is no group "+group+", see /groups", false)
		return
	case err != nil:
		vs.log.Error("failed to load roster", "chat", s.chat, "group", group, "error", err)
		s.reply("Could not load the group", false)
		return
	}
	s.startGame(names)
}

func (vs vampireServer[T]) listGroups(ctx context.Context, s *session) {
	if vs.rosters == nil {
		s.reply("Saved groups are not available", false)
		return
	}

	groups, err := vs.rosters.listRosters(ctx, s.chat)
	if err != nil {
		vs.log.Error("failed to list rosters", "chat", s.chat, "error", err)
		s.reply("Could not list the groups", false)
		return
	}
	if len(groups) == 0 {
		s.reply("No groups saved yet, use /savegroup", false)
		return
	}
	s.reply("Saved groups:\n"+strings.Join(groups, "\n"), false)
}
