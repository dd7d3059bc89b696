package seabattle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

func TestPlaceShipsCommitsCells(t *testing.T) {
	b := NewBoard()

	err := b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	})
	require.NoError(t, err)

	require.Equal(t, CellOccupied, b.CellState(NewCoordinates(0, 0)))
	require.Equal(t, CellOccupied, b.CellState(NewCoordinates(1, 0)))
	require.Equal(t, CellEmpty, b.CellState(NewCoordinates(2, 0)))
	require.True(t, b.HasShipsLeft())
}

func TestPlaceShipsOverlapLeavesBoardUnchanged(t *testing.T) {
	b := NewBoard()

	err := b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	})
	require.NoError(t, err)

	// second ship crosses (1,0)
	err = b.PlaceShips([]Ship{
		{OriginX: 1, OriginY: 0, Orientation: OrientationVertical, Class: ShipClassMedium, Length: 2},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, cerr.ErrValidation))

	require.Equal(t, CellEmpty, b.CellState(NewCoordinates(1, 1)))
}

func TestPlaceShipsOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		ship Ship
	}{
		{
			name: "tail past right edge",
			ship: Ship{OriginX: 9, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
		},
		{
			name: "tail past bottom edge",
			ship: Ship{OriginX: 0, OriginY: 8, Orientation: OrientationVertical, Class: ShipClassLarge, Length: 3},
		},
		{
			name: "origin outside grid",
			ship: Ship{OriginX: 10, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassSmall, Length: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := NewBoard()
			err := b.PlaceShips([]Ship{test.ship})
			require.Error(t, err)
			require.True(t, errors.Is(err, cerr.ErrValidation))
			require.False(t, b.HasShipsLeft())
		})
	}
}

func TestPlaceShipsPartiallyInvalidListRollsBack(t *testing.T) {
	b := NewBoard()

	err := b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
		{OriginX: 9, OriginY: 9, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	})
	require.Error(t, err)

	// the valid first ship must not have been committed
	require.Equal(t, CellEmpty, b.CellState(NewCoordinates(0, 0)))
	require.Equal(t, CellEmpty, b.CellState(NewCoordinates(1, 0)))
	require.False(t, b.HasShipsLeft())
}

func TestPlaceShipsInvalidGeometry(t *testing.T) {
	b := NewBoard()

	err := b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: "diagonal", Class: ShipClassSmall, Length: 1},
	})
	require.True(t, errors.Is(err, cerr.ErrValidation))

	err = b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassHuge, Length: 5},
	})
	require.True(t, errors.Is(err, cerr.ErrValidation))
}

func TestReceiveAttackMissAndHit(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	}))

	outcome := b.ReceiveAttack(NewCoordinates(5, 5))
	require.Equal(t, AttackStatusMiss, outcome.Status)
	require.Equal(t, CellMiss, b.CellState(NewCoordinates(5, 5)))

	outcome = b.ReceiveAttack(NewCoordinates(0, 0))
	require.Equal(t, AttackStatusShot, outcome.Status)
	require.Equal(t, CellHit, b.CellState(NewCoordinates(0, 0)))
	require.True(t, b.HasShipsLeft())

	outcome = b.ReceiveAttack(NewCoordinates(1, 0))
	require.Equal(t, AttackStatusKilled, outcome.Status)
	require.False(t, b.HasShipsLeft())
}

func TestReceiveAttackResolvedCellIsIdempotent(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassMedium, Length: 2},
	}))

	first := b.ReceiveAttack(NewCoordinates(0, 0))
	second := b.ReceiveAttack(NewCoordinates(0, 0))
	require.Equal(t, first.Status, second.Status)
	require.True(t, b.HasShipsLeft())

	first = b.ReceiveAttack(NewCoordinates(3, 3))
	second = b.ReceiveAttack(NewCoordinates(3, 3))
	require.Equal(t, AttackStatusMiss, first.Status)
	require.Equal(t, first.Status, second.Status)

	// sinking the ship and replaying the hit cell reports killed both times
	b.ReceiveAttack(NewCoordinates(1, 0))
	replay := b.ReceiveAttack(NewCoordinates(1, 0))
	require.Equal(t, AttackStatusKilled, replay.Status)
	require.Empty(t, replay.Sweep)
}

func TestKillSweepsEmptyNeighbors(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.PlaceShips([]Ship{
		{OriginX: 5, OriginY: 5, Orientation: OrientationHorizontal, Class: ShipClassSmall, Length: 1},
	}))

	outcome := b.ReceiveAttack(NewCoordinates(5, 5))
	require.Equal(t, AttackStatusKilled, outcome.Status)
	require.Len(t, outcome.Sweep, 8)
	for _, c := range outcome.Sweep {
		require.Equal(t, CellMiss, b.CellState(c))
	}
}

func TestKillSweepClippedAtCorner(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.PlaceShips([]Ship{
		{OriginX: 0, OriginY: 0, Orientation: OrientationHorizontal, Class: ShipClassSmall, Length: 1},
	}))

	outcome := b.ReceiveAttack(NewCoordinates(0, 0))
	require.Equal(t, AttackStatusKilled, outcome.Status)
	require.ElementsMatch(t,
		[]Coordinates{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		outcome.Sweep,
	)
}

func TestKillSweepSkipsResolvedCells(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.PlaceShips([]Ship{
		{OriginX: 5, OriginY: 5, Orientation: OrientationHorizontal, Class: ShipClassSmall, Length: 1},
	}))

	// a prior miss next to the ship must not be swept twice
	b.ReceiveAttack(NewCoordinates(4, 5))

	outcome := b.ReceiveAttack(NewCoordinates(5, 5))
	require.Equal(t, AttackStatusKilled, outcome.Status)
	require.Len(t, outcome.Sweep, 7)
	require.NotContains(t, outcome.Sweep, NewCoordinates(4, 5))
}
