package seabattle

import (
	"context"
	"log"
	"sync"
	"time"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

const winWriteTimeout = time.Second * 10

// WinRecorder is the external win-counter side channel. The player
// store satisfies it.
type WinRecorder interface {
	IncrementPlayerWins(ctx context.Context, name string) error
}

// GameManager owns the active games. Game ids are monotonic and never
// reused within the process lifetime.
type GameManager struct {
	games  map[int]*Game
	nextId int
	mu     sync.RWMutex
	wins   WinRecorder
}

func NewGameManager(wins WinRecorder) *GameManager {
	return &GameManager{
		games:  make(map[int]*Game, 10),
		nextId: 1,
		wins:   wins,
	}
}

// CreateGame promotes a full room into a new game with two empty
// boards and a uniformly random first turn.
func (gm *GameManager) CreateGame(room *Room) (*Game, error) {
	members := room.Members()
	if len(members) != roomCapacity {
		return nil, cerr.ErrRoomNotFound(room.Id())
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	id := gm.nextId
	gm.nextId++

	game := newGame(id, [2]RoomMember{members[0], members[1]})
	gm.games[id] = game
	return game, nil
}

func (gm *GameManager) GetGame(gameId int) (*Game, error) {
	gm.mu.RLock()
	game, prs := gm.games[gameId]
	gm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotFound(gameId)
	}

	return game, nil
}

// FindGameBySession locates the unfinished game a connection handle is
// part of. Used by the gateway to forfeit on disconnect.
func (gm *GameManager) FindGameBySession(sessionId string) (*Game, int) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	for _, game := range gm.games {
		if idx := game.SlotOfSession(sessionId); idx != -1 {
			return game, idx
		}
	}
	return nil, -1
}

// FinishGame records the win for the winner slot and removes the game
// from the registry. A second call for the same game finds it already
// absent and is a no-op, which is what makes finishing idempotent.
func (gm *GameManager) FinishGame(gameId, winnerIdx int) (*Game, bool) {
	gm.mu.Lock()
	game, prs := gm.games[gameId]
	if prs {
		delete(gm.games, gameId)
	}
	gm.mu.Unlock()

	if !prs {
		return nil, false
	}

	game.markFinished()

	winner, err := game.PlayerAt(winnerIdx)
	if err != nil {
		log.Printf("finish game %d: %v\n", gameId, err)
		return game, true
	}

	// The win write must not fail the state transition. The registry
	// removal above is the source of truth.
	ctx, cancel := context.WithTimeout(context.Background(), winWriteTimeout)
	defer cancel()
	if err := gm.wins.IncrementPlayerWins(ctx, winner.Name); err != nil {
		log.Printf("failed to increment wins for %s: %v\n", winner.Name, err)
	}

	return game, true
}
