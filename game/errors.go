package game

import "errors"

// Every engine failure is one of these sentinels (possibly wrapped with
// context). The HTTP layer matches with errors.Is and maps each to a
// stable status code.
var (
	// ErrNotFound: the game, or the addressed player, does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: the supplied secret resolves to no player.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: the secret is valid but the player lacks the
	// privilege, e.g. a non-host calling a host-only action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState: the operation is not valid for the game's status.
	ErrInvalidState = errors.New("invalid game state")

	// ErrInvalidInput: empty name, missing identifier, removing the host.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotEnoughPlayers: start requested with fewer than MinReadyPlayers
	// ready players.
	ErrNotEnoughPlayers = errors.New("not enough ready players")

	// ErrCapacityExceeded: no free join code could be drawn.
	ErrCapacityExceeded = errors.New("join code capacity exceeded")
)
