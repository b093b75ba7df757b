package game

const (
	MinPlayers = 4
	MaxPlayers = 15
)

// Settings describes the role-cards of a game. Counts holds special roles
// only; villagers fill whatever remains up to PlayerCount.
type Settings struct {
	PlayerCount int          `json:"player_count"`
	Counts      map[Role]int `json:"counts"`
}

// MaxVampires returns how many vampires a table of playerCount can hold
func MaxVampires(playerCount int) int {
	return max(1, playerCount/3)
}

// Count returns the number of role-cards of role r, villagers included
func (s Settings) Count(r Role) int {
	if r == Villager {
		return s.PlayerCount - s.SpecialCount()
	}
	return s.Counts[r]
}

// SpecialCount returns the number of non-villager role-cards
func (s Settings) SpecialCount() int {
	var sum int
	for role, cnt := range s.Counts {
		if role != Villager {
			sum += cnt
		}
	}
	return sum
}

func (s Settings) clone() Settings {
	counts := make(map[Role]int, len(s.Counts))
	for role, cnt := range s.Counts {
		if cnt != 0 {
			counts[role] = cnt
		}
	}
	return Settings{
		PlayerCount: s.PlayerCount,
		Counts:      counts,
	}
}

// Validate returns nil error iff s can be dealt. Extended roles are only
// allowed when premium is set.
func (s Settings) Validate(premium bool) error {
	if s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers {
		return newConfigError("player_count", "must be between %d and %d, got %d",
			MinPlayers, MaxPlayers, s.PlayerCount)
	}

	if vampires, limit := s.Counts[Vampire], MaxVampires(s.PlayerCount); vampires < 1 || vampires > limit {
		return newConfigError("counts", "vampire count must be between 1 and %d, got %d", limit, vampires)
	}

	for role, cnt := range s.Counts {
		switch {
		case !role.Valid():
			return newConfigError("counts", "unknown role %d", int(role))
		case role == Villager && cnt != 0:
			return newConfigError("counts", "villagers fill the remainder and cannot be counted")
		case cnt < 0:
			return newConfigError("counts", "%s count cannot be negative", role)
		case role != Vampire && cnt > 1:
			return newConfigError("counts", "there cannot be more than one %s", role)
		case role.Extended() && cnt > 0 && !premium:
			return newConfigError("counts", "%s requires premium features", role)
		}
	}

	if special := s.SpecialCount(); special > s.PlayerCount-1 {
		return newConfigError("counts", "%d special roles leave no villager among %d players",
			special, s.PlayerCount)
	}
	return nil
}

// Configure validates s and returns an independent copy of it
func Configure(s Settings, premium bool) (Settings, error) {
	if err := s.Validate(premium); err != nil {
		return Settings{}, err
	}
	return s.clone(), nil
}

// CreateRoles returns exactly PlayerCount role-cards for s, permuted with
// shuffle. A nil shuffle leaves them in deal order: vampires, the other
// specials in declaration order, then villagers.
func CreateRoles(s Settings, shuffle func(n int, swap func(i, j int))) []Role {
	roles := make([]Role, 0, s.PlayerCount)
	for _, role := range AllRoles {
		if role == Villager {
			continue
		}
		for i := 0; i < s.Counts[role]; i++ {
			roles = append(roles, role)
		}
	}
	for len(roles) < s.PlayerCount {
		roles = append(roles, Villager)
	}

	if shuffle != nil {
		shuffle(len(roles), func(i, j int) {
			roles[i], roles[j] = roles[j], roles[i]
		})
	}
	return roles
}
