package seabattle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return newGame(1, [2]RoomMember{
		{Player: PlayerRef{Name: "alice", Index: 1}, SessionId: "session-a"},
		{Player: PlayerRef{Name: "bob", Index: 2}, SessionId: "session-b"},
	})
}

func smallShipAt(x, y uint8) []Ship {
	return []Ship{{OriginX: x, OriginY: y, Orientation: OrientationHorizontal, Class: ShipClassSmall, Length: 1}}
}

func startTestGame(t *testing.T, firstTurn int) *Game {
	t.Helper()
	g := newTestGame(t)

	started, err := g.PlaceShips(0, []Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	})
	require.NoError(t, err)
	require.False(t, started)

	started, err = g.PlaceShips(1, []Ship{
		{OriginX: 5, OriginY: 5, Orientation: OrientationVertical, Class: ShipClassMedium, Length: 2},
	})
	require.NoError(t, err)
	require.True(t, started)

	g.turnIdx = firstTurn
	return g
}

func TestNewGameStartsPlacing(t *testing.T) {
	g := newTestGame(t)
	require.Equal(t, PhasePlacing, g.Phase())
	require.Contains(t, []int{0, 1}, g.TurnIndex())
	require.Equal(t, [2]string{"session-a", "session-b"}, g.SessionIds())
}

func TestPlaceShipsRejectsUnknownSlot(t *testing.T) {
	g := newTestGame(t)
	_, err := g.PlaceShips(2, smallShipAt(0, 0))
	require.True(t, errors.Is(err, cerr.ErrNotFound))

	_, err = g.PlaceShips(-1, smallShipAt(0, 0))
	require.True(t, errors.Is(err, cerr.ErrNotFound))
}

func TestPlaceShipsRejectedOnceInProgress(t *testing.T) {
	g := startTestGame(t, 0)

	_, err := g.PlaceShips(0, smallShipAt(9, 9))
	require.True(t, errors.Is(err, cerr.ErrConflict))
}

func TestAttackRequiresInProgress(t *testing.T) {
	g := newTestGame(t)
	_, err := g.Attack(g.TurnIndex(), 0, 0)
	require.True(t, errors.Is(err, cerr.ErrConflict))
}

func TestAttackRejectsWrongTurn(t *testing.T) {
	g := startTestGame(t, 0)

	_, err := g.Attack(1, 0, 0)
	require.True(t, errors.Is(err, cerr.ErrConflict))
	require.Equal(t, 0, g.TurnIndex())
}

func TestAttackRejectsOutOfBounds(t *testing.T) {
	g := startTestGame(t, 0)

	_, err := g.Attack(0, 10, 0)
	require.True(t, errors.Is(err, cerr.ErrValidation))

	_, err = g.Attack(0, 0, 255)
	require.True(t, errors.Is(err, cerr.ErrValidation))
}

func TestAttackMissFlipsTurn(t *testing.T) {
	g := startTestGame(t, 0)

	result, err := g.Attack(0, 9, 9)
	require.NoError(t, err)
	require.Equal(t, AttackStatusMiss, result.Status)
	require.True(t, result.TurnChanged)
	require.Equal(t, 1, result.TurnIndex)
	require.Equal(t, 1, g.TurnIndex())
}

func TestAttackHitKeepsTurn(t *testing.T) {
	g := startTestGame(t, 0)

	// player 1 ship occupies (5,5) and (5,6)
	result, err := g.Attack(0, 5, 5)
	require.NoError(t, err)
	require.Equal(t, AttackStatusShot, result.Status)
	require.False(t, result.TurnChanged)
	require.Equal(t, 0, g.TurnIndex())
}

func TestAttackKillFinishesGame(t *testing.T) {
	g := startTestGame(t, 0)

	result, err := g.Attack(0, 5, 5)
	require.NoError(t, err)
	require.Equal(t, AttackStatusShot, result.Status)
	require.False(t, result.Finished)

	result, err = g.Attack(0, 5, 6)
	require.NoError(t, err)
	require.Equal(t, AttackStatusKilled, result.Status)
	require.True(t, result.Finished)
	require.False(t, result.TurnChanged)
	require.Equal(t, PhaseFinished, g.Phase())

	_, err = g.Attack(0, 0, 0)
	require.True(t, errors.Is(err, cerr.ErrConflict))
}

func TestAttackReplayOnResolvedCell(t *testing.T) {
	g := startTestGame(t, 0)

	first, err := g.Attack(0, 5, 5)
	require.NoError(t, err)

	replay, err := g.Attack(0, 5, 5)
	require.NoError(t, err)
	require.Equal(t, first.Status, replay.Status)
	require.Equal(t, 0, g.TurnIndex())
}

func TestShipsOfReturnsCommittedList(t *testing.T) {
	g := newTestGame(t)
	ships := smallShipAt(3, 3)

	_, err := g.PlaceShips(0, ships)
	require.NoError(t, err)

	require.Equal(t, ships, g.ShipsOf(0))
	require.Empty(t, g.ShipsOf(1))
}

func TestSlotOfSession(t *testing.T) {
	g := newTestGame(t)
	require.Equal(t, 0, g.SlotOfSession("session-a"))
	require.Equal(t, 1, g.SlotOfSession("session-b"))
	require.Equal(t, -1, g.SlotOfSession("session-x"))
}
