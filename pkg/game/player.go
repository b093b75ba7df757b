package game

// NoTarget is the reserved id meaning "nobody". It is never a player id.
const NoTarget = -1

// Player represents a seat at the table. Only the status flags change
// after the role is dealt.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Alive    bool   `json:"alive"`
	Dying    bool   `json:"dying"`    // killed tonight, not yet revealed
	Revealed bool   `json:"revealed"` // death is publicly known
}

// Roster is the list of players ordered by id. Players are never removed.
type Roster []Player

// CreateRoster seats names in input order and deals them roles pairwise.
// The shorter of the two slices bounds the roster.
func CreateRoster(names []string, roles []Role) Roster {
	n := min(len(names), len(roles))
	roster := make(Roster, n)
	for i := 0; i < n; i++ {
		roster[i] = Player{
			ID:    i,
			Name:  names[i],
			Role:  roles[i],
			Alive: true,
		}
	}
	return roster
}

// UpdateStatus returns a copy of r with the flags of player id replaced.
func (r Roster) UpdateStatus(id int, alive, dying bool) Roster {
	updated := r.Clone()
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Alive = alive
			updated[i].Dying = dying
			updated[i].Revealed = !alive || dying
		}
	}
	return updated
}

// FindByID returns the player with id, if seated
func (r Roster) FindByID(id int) (Player, bool) {
	for _, player := range r {
		if player.ID == id {
			return player, true
		}
	}
	return Player{}, false
}

func (r Roster) filter(keep func(Player) bool) Roster {
	result := make(Roster, 0, len(r))
	for _, player := range r {
		if keep(player) {
			result = append(result, player)
		}
	}
	return result
}

// Alive returns the living players, dying ones included
func (r Roster) Alive() Roster {
	return r.filter(func(p Player) bool { return p.Alive })
}

// AliveNotDying returns the players that can still act
func (r Roster) AliveNotDying() Roster {
	return r.filter(canAct)
}

// Dying returns the players killed tonight
func (r Roster) Dying() Roster {
	return r.filter(func(p Player) bool { return p.Dying })
}

// IDs returns the ids of r in order
func (r Roster) IDs() []int {
	ids := make([]int, len(r))
	for i, player := range r {
		ids[i] = player.ID
	}
	return ids
}

func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	return append(Roster(nil), r...)
}

func canAct(p Player) bool {
	return p.Alive && !p.Dying
}

// nextInTurn returns the lowest id above cursor among players that pass
// eligible. NoTarget as cursor starts from the beginning.
func nextInTurn(r Roster, cursor int, eligible func(Player) bool) (int, bool) {
	next, found := 0, false
	for _, player := range r {
		if player.ID > cursor && eligible(player) && (!found || player.ID < next) {
			next, found = player.ID, true
		}
	}
	return next, found
}
