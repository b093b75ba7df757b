package httpapi

import (
	"github.com/google/uuid"

	"github.com/jejutic/tg_vampires/pkg/game"
)

// CreateSessionRequest is the payload of POST /v1/sessions. Counts are keyed
// by role name, e.g. {"VAMPIRE": 2, "DOCTOR": 1}. A table without vampires
// gets a single one.
type CreateSessionRequest struct {
	PlayerCount int               `json:"player_count" binding:"required"`
	Counts      map[game.Role]int `json:"counts"`
}

// StartRequest seats names in order and starts the game
type StartRequest struct {
	Names []string `json:"names" binding:"required"`
}

// TargetRequest names a player by id. A missing target_id skips a night
// action.
type TargetRequest struct {
	TargetID *int `json:"target_id"`
}

// JudgementRequest is the verdict of the active judge
type JudgementRequest struct {
	Guilty *bool `json:"guilty" binding:"required"`
}

type sessionView struct {
	ID       uuid.UUID      `json:"id"`
	Settings *game.Settings `json:"settings,omitempty"`
	State    game.GameState `json:"state"`
	Active   *game.Player   `json:"active_player"`
}

type rejectedView struct {
	Action   string `json:"action"`
	PlayerID int    `json:"player_id"`
	Error    string `json:"error"`
}
