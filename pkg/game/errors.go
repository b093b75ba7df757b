package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is the root of every settings or start-up rejection.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidAction is the root of every rejected in-game action.
	// A rejected action never mutates the game.
	ErrInvalidAction = errors.New("invalid action")
)

// Reasons an action can be rejected for. They are wrapped by ActionError
// together with ErrInvalidAction.
var (
	ErrWrongPhase     = errors.New("not allowed in the current phase")
	ErrNoActivePlayer = errors.New("no active player")
	ErrSelfTarget     = errors.New("player cannot target themselves")
	ErrInvalidTarget  = errors.New("target is not a living player")
	ErrPlayerDying    = errors.New("dying players cannot act")
	ErrAlreadyVoted   = errors.New("player has already voted")
	ErrNoAccused      = errors.New("nobody is accused")
	ErrNotConfigured  = errors.New("settings are not configured")
	ErrStalePhase     = errors.New("phase has already advanced")
)

// ConfigError describes why settings or a roster of names were rejected.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s (field: %s)", ErrInvalidConfig.Error(), e.Message, e.Field)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func newConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ActionError names the rejected action and why it was rejected.
// errors.Is matches both ErrInvalidAction and the reason.
type ActionError struct {
	Action string
	Reason error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidAction.Error(), e.Action, e.Reason.Error())
}

func (e *ActionError) Unwrap() []error {
	return []error{ErrInvalidAction, e.Reason}
}

func reject(action string, reason error) *ActionError {
	return &ActionError{Action: action, Reason: reason}
}

// IsConfigError checks if err rejects settings or names.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsInvalidAction checks if err rejects an in-game action.
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}
