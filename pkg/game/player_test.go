package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CreateRoster(t *testing.T) {
	roster := CreateRoster([]string{"a", "b", "c"}, []Role{Vampire, Villager, Doctor})

	assert.Equal(t, Roster{
		{ID: 0, Name: "a", Role: Vampire, Alive: true},
		{ID: 1, Name: "b", Role: Villager, Alive: true},
		{ID: 2, Name: "c", Role: Doctor, Alive: true},
	}, roster)
}

func Test_UpdateStatus(t *testing.T) {
	assert := assert.New(t)
	roster := CreateRoster([]string{"a", "b", "c"}, []Role{Vampire, Villager, Doctor})

	dying := roster.UpdateStatus(1, true, true)
	assert.True(roster[1].Alive && !roster[1].Dying, "original roster must stay untouched")
	assert.Equal(Player{ID: 1, Name: "b", Role: Villager, Alive: true, Dying: true, Revealed: true}, dying[1])

	dead := dying.UpdateStatus(1, false, false)
	assert.Equal(Player{ID: 1, Name: "b", Role: Villager, Alive: false, Dying: false, Revealed: true}, dead[1])
	assert.Len(dead, 3, "players are never removed")

	same := roster.UpdateStatus(7, false, false)
	assert.Equal(roster, same, "unknown id changes nothing")
}

func Test_filters(t *testing.T) {
	assert := assert.New(t)
	roster := CreateRoster([]string{"a", "b", "c", "d"}, []Role{Vampire, Villager, Doctor, Villager}).
		UpdateStatus(1, true, true).
		UpdateStatus(2, false, false)

	assert.Equal([]int{0, 1, 3}, roster.Alive().IDs())
	assert.Equal([]int{0, 3}, roster.AliveNotDying().IDs())
	assert.Equal([]int{1}, roster.Dying().IDs())

	player, ok := roster.FindByID(3)
	assert.True(ok)
	assert.Equal("d", player.Name)
	_, ok = roster.FindByID(NoTarget)
	assert.False(ok)
}

func Test_nextInTurn(t *testing.T) {
	assert := assert.New(t)
	roster := CreateRoster([]string{"a", "b", "c", "d"}, []Role{Vampire, Villager, Doctor, Villager}).
		UpdateStatus(2, false, false)

	next, ok := nextInTurn(roster, NoTarget, canAct)
	assert.True(ok)
	assert.Equal(0, next)

	next, ok = nextInTurn(roster, 1, canAct)
	assert.True(ok)
	assert.Equal(3, next, "dead players are skipped")

	_, ok = nextInTurn(roster, 3, canAct)
	assert.False(ok)
}
