package error

import (
	"errors"
	"fmt"
)

// Category sentinels. Every helper below wraps one of these so the
// api layer can classify a failure without string matching.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation")
)

func ErrRoomNotFound(roomId int) error {
	return fmt.Errorf("%w: room with this id does not exist, id: %d", ErrNotFound, roomId)
}

func ErrRoomFull(roomId int) error {
	return fmt.Errorf("%w: room already has two players, id: %d", ErrConflict, roomId)
}

func ErrGameNotFound(gameId int) error {
	return fmt.Errorf("%w: game with this id does not exist, id: %d", ErrNotFound, gameId)
}

func ErrPlayerNotInGame(playerIdx, gameId int) error {
	return fmt.Errorf("%w: game has no player with this index\tindex: %d\tgame id: %d", ErrNotFound, playerIdx, gameId)
}

func ErrGameNotInPlacingPhase(gameId int) error {
	return fmt.Errorf("%w: ships can only be placed before the game starts, game id: %d", ErrConflict, gameId)
}

func ErrGameNotInProgress(gameId int) error {
	return fmt.Errorf("%w: game is not in progress, game id: %d", ErrConflict, gameId)
}

func ErrNotTurnForAttacker(playerIdx int) error {
	return fmt.Errorf("%w: it is not the turn of this player\tindex: %d", ErrConflict, playerIdx)
}

func ErrXorYOutOfGridBound(x, y uint8) error {
	return fmt.Errorf("%w: incoming x or y is out of grid bound\tx: %d\ty: %d", ErrValidation, x, y)
}

func ErrShipOutOfBounds(originX, originY uint8) error {
	return fmt.Errorf("%w: ship does not fit in the grid\torigin x: %d\torigin y: %d", ErrValidation, originX, originY)
}

func ErrShipsOverlap(x, y uint8) error {
	return fmt.Errorf("%w: position already taken by another ship\tx: %d\ty: %d", ErrValidation, x, y)
}

func ErrInvalidOrientation(orientation string) error {
	return fmt.Errorf("%w: orientation must be horizontal or vertical, got: %s", ErrValidation, orientation)
}

func ErrInvalidShipLength(length uint8) error {
	return fmt.Errorf("%w: ship length must be between 1 and 4, got: %d", ErrValidation, length)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("%w: session with this id does not exist, id: %s", ErrNotFound, sessionId)
}

func ErrPlayerNameTaken(name string) error {
	return fmt.Errorf("%w: player with this name already exists, name: %s", ErrConflict, name)
}

func ErrInvalidCredentials() error {
	return fmt.Errorf("%w: invalid name or password", ErrValidation)
}

func ErrMalformedPayload() error {
	return fmt.Errorf("%w: malformed request payload", ErrValidation)
}

func ErrPlayerNotLoggedIn() error {
	return fmt.Errorf("%w: this connection has no registered player", ErrValidation)
}

func ErrRandomAttackNotImplemented() error {
	return fmt.Errorf("%w: random attack is not implemented", ErrValidation)
}
