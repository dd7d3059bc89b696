package seabattle

import (
	"math/rand"
	"sync"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

const (
	PhasePlacing uint8 = iota
	PhaseInProgress
	PhaseFinished
)

// PlayerRef is the account identity issued by the player store. Games
// and rooms reference it, they never own or mutate it.
type PlayerRef struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

type gameSlot struct {
	player      PlayerRef
	sessionId   string
	board       *Board
	ships       []Ship
	shipsPlaced bool
}

// Game is an active two-player match. All mutations go through the
// mutex so an attack racing a placement on the same game can never
// interleave partial writes. Different games are fully independent.
type Game struct {
	id      int
	slots   [2]gameSlot
	turnIdx int
	phase   uint8
	mu      sync.Mutex
}

func newGame(id int, members [2]RoomMember) *Game {
	g := &Game{
		id:      id,
		turnIdx: rand.Intn(2),
		phase:   PhasePlacing,
	}
	for i, m := range members {
		g.slots[i] = gameSlot{
			player:    m.Player,
			sessionId: m.SessionId,
			board:     NewBoard(),
		}
	}
	return g
}

func (g *Game) Id() int {
	return g.id
}

func (g *Game) Phase() uint8 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) TurnIndex() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turnIdx
}

func (g *Game) PlayerAt(idx int) (PlayerRef, error) {
	if idx != 0 && idx != 1 {
		return PlayerRef{}, cerr.ErrPlayerNotInGame(idx, g.id)
	}
	return g.slots[idx].player, nil
}

// SessionIds returns the connection handles of both slots in index
// order. The gateway resolves them to live transports.
func (g *Game) SessionIds() [2]string {
	return [2]string{g.slots[0].sessionId, g.slots[1].sessionId}
}

// SlotOfSession finds which slot a connection handle occupies.
// Returns -1 when the session is not part of this game.
func (g *Game) SlotOfSession(sessionId string) int {
	for i := range g.slots {
		if g.slots[i].sessionId == sessionId {
			return i
		}
	}
	return -1
}

// PlaceShips materializes the ship list onto the slot's board. The
// returned started flag is true when this call made both slots ready
// and moved the game to in progress.
func (g *Game) PlaceShips(playerIdx int, ships []Ship) (started bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerIdx != 0 && playerIdx != 1 {
		return false, cerr.ErrPlayerNotInGame(playerIdx, g.id)
	}
	if g.phase != PhasePlacing {
		return false, cerr.ErrGameNotInPlacingPhase(g.id)
	}

	if err := g.slots[playerIdx].board.PlaceShips(ships); err != nil {
		return false, err
	}

	g.slots[playerIdx].ships = append(g.slots[playerIdx].ships, ships...)
	g.slots[playerIdx].shipsPlaced = true

	if g.slots[0].shipsPlaced && g.slots[1].shipsPlaced {
		g.phase = PhaseInProgress
		return true, nil
	}
	return false, nil
}

// ShipsOf returns the ship list a slot committed at placement time.
func (g *Game) ShipsOf(playerIdx int) []Ship {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots[playerIdx].ships
}

// AttackResult carries everything the gateway needs to fan out one
// resolved attack: the outcome itself, the sweep cells of a kill, the
// turn index after the attack and whether the game just ended.
type AttackResult struct {
	X             uint8
	Y             uint8
	AttackerIndex int
	Status        string
	Sweep         []Coordinates
	TurnIndex     int
	TurnChanged   bool
	Finished      bool
}

// Attack applies one shot by the attacker against the opponent board.
// A miss hands the turn to the opponent; a shot or kill keeps it with
// the attacker. When the opponent has no occupied cell left the game
// moves to the finished phase.
func (g *Game) Attack(attackerIdx int, x, y uint8) (AttackResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if attackerIdx != 0 && attackerIdx != 1 {
		return AttackResult{}, cerr.ErrPlayerNotInGame(attackerIdx, g.id)
	}
	if g.phase != PhaseInProgress {
		return AttackResult{}, cerr.ErrGameNotInProgress(g.id)
	}
	if attackerIdx != g.turnIdx {
		return AttackResult{}, cerr.ErrNotTurnForAttacker(attackerIdx)
	}
	if x >= GridSize || y >= GridSize {
		return AttackResult{}, cerr.ErrXorYOutOfGridBound(x, y)
	}

	opponent := 1 - attackerIdx
	outcome := g.slots[opponent].board.ReceiveAttack(NewCoordinates(x, y))

	result := AttackResult{
		X:             x,
		Y:             y,
		AttackerIndex: attackerIdx,
		Status:        outcome.Status,
		Sweep:         outcome.Sweep,
	}

	if outcome.Status == AttackStatusMiss {
		g.turnIdx = opponent
		result.TurnChanged = true
	}
	result.TurnIndex = g.turnIdx

	if !g.slots[opponent].board.HasShipsLeft() {
		g.phase = PhaseFinished
		result.Finished = true
		result.TurnChanged = false
	}

	return result, nil
}

// markFinished is the forfeit path for a game abandoned mid-flight.
func (g *Game) markFinished() {
	g.mu.Lock()
	g.phase = PhaseFinished
	g.mu.Unlock()
}
