package seabattle

import (
	"sync"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

const roomCapacity = 2

// RoomManager owns the pending matchmaking rooms. Ids are monotonic
// and never reused within the process lifetime. A room that reaches
// two members is removed here in the same critical section, so no
// caller ever observes a full room as joinable.
type RoomManager struct {
	rooms  map[int]*Room
	order  []int
	nextId int
	mu     sync.Mutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms:  make(map[int]*Room, 10),
		nextId: 1,
	}
}

func (rm *RoomManager) CreateRoom() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	id := rm.nextId
	rm.nextId++

	rm.rooms[id] = newRoom(id)
	rm.order = append(rm.order, id)
	return id
}

// JoinRoom appends the member to the room. When the join fills the
// room, the room is unregistered and returned with full=true so the
// caller can hand it to the game registry atomically.
func (rm *RoomManager) JoinRoom(roomId int, member RoomMember) (room *Room, full bool, err error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, prs := rm.rooms[roomId]
	if !prs {
		return nil, false, cerr.ErrRoomNotFound(roomId)
	}
	if room.isFull() {
		return nil, false, cerr.ErrRoomFull(roomId)
	}

	room.members = append(room.members, member)

	if room.isFull() {
		delete(rm.rooms, roomId)
		return room, true, nil
	}
	return room, false, nil
}

// ListJoinable snapshots the rooms with a free seat, in creation order.
func (rm *RoomManager) ListJoinable() []RoomSummary {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(rm.rooms))
	for _, id := range rm.order {
		room, prs := rm.rooms[id]
		if !prs {
			continue
		}

		occupants := make([]PlayerRef, 0, len(room.members))
		for _, m := range room.members {
			occupants = append(occupants, m.Player)
		}
		summaries = append(summaries, RoomSummary{RoomId: id, Occupants: occupants})
	}

	return summaries
}
