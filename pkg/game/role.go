package game

import (
	"fmt"
	"strings"
)

// Role represents a role-card dealt to a player
type Role int

const (
	_ Role = iota
	Villager
	Vampire
	Sheriff
	Watcher
	SerialKiller
	Doctor
	VoteSaboteur
	Autopsir
	Veteran
	Madman
	Wizard
)

// Faction represents a group of roles sharing a win condition
type Faction int

const (
	_ Faction = iota
	VillageFaction
	VampireFaction
	SerialKillerFaction
)

// NightAction is what a role does when it is woken up at night
type NightAction int

const (
	Acknowledge NightAction = iota // villagers and roles without a resolved action
	Bite
	Stab
	Investigate
	Watch
	Protect
)

var roleToName = map[Role]string{
	Villager:     "VILLAGER",
	Vampire:      "VAMPIRE",
	Sheriff:      "SHERIFF",
	Watcher:      "WATCHER",
	SerialKiller: "SERIAL_KILLER",
	Doctor:       "DOCTOR",
	VoteSaboteur: "VOTE_SABOTEUR",
	Autopsir:     "AUTOPSIR",
	Veteran:      "VETERAN",
	Madman:       "MADMAN",
	Wizard:       "WIZARD",
}

// extended roles have no resolved mechanics yet and play as villagers
var roleToFaction = map[Role]Faction{
	Villager:     VillageFaction,
	Vampire:      VampireFaction,
	Sheriff:      VillageFaction,
	Watcher:      VillageFaction,
	SerialKiller: SerialKillerFaction,
	Doctor:       VillageFaction,
	VoteSaboteur: VillageFaction,
	Autopsir:     VillageFaction,
	Veteran:      VillageFaction,
	Madman:       VillageFaction,
	Wizard:       VillageFaction,
}

var roleToAction = map[Role]NightAction{
	Vampire:      Bite,
	SerialKiller: Stab,
	Sheriff:      Investigate,
	Watcher:      Watch,
	Doctor:       Protect,
}

// AllRoles lists every role in declaration order
var AllRoles = []Role{
	Villager, Vampire, Sheriff, Watcher, SerialKiller, Doctor,
	VoteSaboteur, Autopsir, Veteran, Madman, Wizard,
}

// Valid iff r is one of the declared roles
func (r Role) Valid() bool {
	_, ok := roleToName[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleToName[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Faction returns the faction whose win condition r shares
func (r Role) Faction() Faction {
	return roleToFaction[r]
}

// NightAction returns the action r performs on its night turn
func (r Role) NightAction() NightAction {
	return roleToAction[r] // Acknowledge is the zero value
}

// Extended iff r belongs to the premium role set
func (r Role) Extended() bool {
	switch r {
	case VoteSaboteur, Autopsir, Veteran, Madman, Wizard:
		return true
	default:
		return false
	}
}

// Guilty iff a sheriff investigating r should see a killer
func (r Role) Guilty() bool {
	return r == Vampire || r == SerialKiller
}

// MarshalText lets roles be used as readable JSON map keys
func (r Role) MarshalText() ([]byte, error) {
	name, ok := roleToName[r]
	if !ok {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(name), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// ParseRole returns the role named s, case-insensitively
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for role, name := range roleToName {
		if name == s {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (f Faction) String() string {
	switch f {
	case VillageFaction:
		return "VILLAGE"
	case VampireFaction:
		return "VAMPIRE"
	case SerialKillerFaction:
		return "SERIAL_KILLER"
	default:
		return fmt.Sprintf("Faction(%d)", int(f))
	}
}

func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// GuiltStatus is the outcome of a sheriff investigation
type GuiltStatus int

const (
	Innocent GuiltStatus = iota
	Guilty
)

func (g GuiltStatus) String() string {
	if g == Guilty {
		return "GUILTY"
	}
	return "INNOCENT"
}

func (g GuiltStatus) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}
