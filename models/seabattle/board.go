package seabattle

import (
	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

const GridSize uint8 = 10

const (
	CellEmpty uint8 = iota
	CellOccupied
	CellHit
	CellMiss
)

const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

const (
	ShipClassSmall  = "small"
	ShipClassMedium = "medium"
	ShipClassLarge  = "large"
	ShipClassHuge   = "huge"
)

const (
	AttackStatusMiss   = "miss"
	AttackStatusShot   = "shot"
	AttackStatusKilled = "killed"
)

type Coordinates struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func NewCoordinates(x, y uint8) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Ship is the placement record a player submits. It occupies Length
// contiguous cells starting at the origin extending in Orientation.
type Ship struct {
	OriginX     uint8  `json:"origin_x"`
	OriginY     uint8  `json:"origin_y"`
	Orientation string `json:"orientation"`
	Class       string `json:"class"`
	Length      uint8  `json:"length"`
}

// cells expands the ship into its grid positions, validating its
// geometry along the way.
func (sh Ship) cells() ([]Coordinates, error) {
	if sh.Length < 1 || sh.Length > 4 {
		return nil, cerr.ErrInvalidShipLength(sh.Length)
	}

	coords := make([]Coordinates, 0, sh.Length)
	for i := uint8(0); i < sh.Length; i++ {
		var c Coordinates
		switch sh.Orientation {
		case OrientationHorizontal:
			c = NewCoordinates(sh.OriginX+i, sh.OriginY)
		case OrientationVertical:
			c = NewCoordinates(sh.OriginX, sh.OriginY+i)
		default:
			return nil, cerr.ErrInvalidOrientation(sh.Orientation)
		}

		if c.X >= GridSize || c.Y >= GridSize {
			return nil, cerr.ErrShipOutOfBounds(sh.OriginX, sh.OriginY)
		}
		coords = append(coords, c)
	}

	return coords, nil
}

// deployedShip tracks the hits against one committed ship so a sunk
// ship can be reported as killed, not only the last ship on the board.
type deployedShip struct {
	spec   Ship
	coords []Coordinates
	hits   uint8
}

func (ds *deployedShip) gotHit() {
	ds.hits++
}

func (ds *deployedShip) isSunk() bool {
	return ds.hits == ds.spec.Length
}

func (ds *deployedShip) holds(c Coordinates) bool {
	for _, sc := range ds.coords {
		if sc == c {
			return true
		}
	}
	return false
}

// Board is one player's private 10x10 grid. Built once at placement
// time, mutated only through ReceiveAttack during play.
type Board struct {
	cells     [GridSize][GridSize]uint8
	fleet     []*deployedShip
	remaining int
}

func NewBoard() *Board {
	return &Board{fleet: make([]*deployedShip, 0, 10)}
}

// PlaceShips validates the whole list before committing anything.
// A single out-of-bounds or overlapping ship leaves the board unchanged.
func (b *Board) PlaceShips(ships []Ship) error {
	staged := make([]*deployedShip, 0, len(ships))
	taken := b.cells

	for _, sh := range ships {
		coords, err := sh.cells()
		if err != nil {
			return err
		}

		for _, c := range coords {
			if taken[c.X][c.Y] != CellEmpty {
				return cerr.ErrShipsOverlap(c.X, c.Y)
			}
			taken[c.X][c.Y] = CellOccupied
		}

		staged = append(staged, &deployedShip{spec: sh, coords: coords})
	}

	b.cells = taken
	b.fleet = append(b.fleet, staged...)
	for _, ds := range staged {
		b.remaining += len(ds.coords)
	}

	return nil
}

// AttackOutcome is the result of one attack landing on this board.
// Sweep holds the empty neighbors flooded to miss after a kill.
type AttackOutcome struct {
	Status string
	Sweep  []Coordinates
}

// ReceiveAttack resolves one shot against this board. Re-attacking an
// already resolved cell re-reports the stored outcome without mutating
// any state.
func (b *Board) ReceiveAttack(c Coordinates) AttackOutcome {
	switch b.cells[c.X][c.Y] {
	case CellMiss:
		return AttackOutcome{Status: AttackStatusMiss}

	case CellHit:
		ship := b.shipAt(c)
		if ship != nil && ship.isSunk() {
			return AttackOutcome{Status: AttackStatusKilled}
		}
		return AttackOutcome{Status: AttackStatusShot}

	case CellOccupied:
		b.cells[c.X][c.Y] = CellHit
		b.remaining--

		ship := b.shipAt(c)
		ship.gotHit()
		if ship.isSunk() {
			return AttackOutcome{Status: AttackStatusKilled, Sweep: b.sweepAroundShip(ship)}
		}
		return AttackOutcome{Status: AttackStatusShot}

	default:
		b.cells[c.X][c.Y] = CellMiss
		return AttackOutcome{Status: AttackStatusMiss}
	}
}

// HasShipsLeft reports whether any occupied cell survives.
func (b *Board) HasShipsLeft() bool {
	return b.remaining > 0
}

func (b *Board) CellState(c Coordinates) uint8 {
	return b.cells[c.X][c.Y]
}

func (b *Board) shipAt(c Coordinates) *deployedShip {
	for _, ds := range b.fleet {
		if ds.holds(c) {
			return ds
		}
	}
	return nil
}

// sweepAroundShip marks every still-empty cell bordering the sunken
// ship as a miss. This is a rendering convenience for the clients, not
// a scoring action.
func (b *Board) sweepAroundShip(ship *deployedShip) []Coordinates {
	swept := make([]Coordinates, 0, 2*len(ship.coords)+6)

	for _, c := range ship.coords {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nx, ny := int(c.X)+dx, int(c.Y)+dy
				if nx < 0 || ny < 0 || nx >= int(GridSize) || ny >= int(GridSize) {
					continue
				}
				if b.cells[nx][ny] != CellEmpty {
					continue
				}
				b.cells[nx][ny] = CellMiss
				swept = append(swept, NewCoordinates(uint8(nx), uint8(ny)))
			}
		}
	}

	return swept
}
