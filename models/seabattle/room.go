package seabattle

// RoomMember pairs a player identity with the opaque connection
// handle the gateway resolves to a live transport.
type RoomMember struct {
	Player    PlayerRef
	SessionId string
}

// Room is a pre-game matchmaking lobby holding up to two members.
type Room struct {
	id      int
	members []RoomMember
}

func newRoom(id int) *Room {
	return &Room{
		id:      id,
		members: make([]RoomMember, 0, roomCapacity),
	}
}

func (r *Room) Id() int {
	return r.id
}

func (r *Room) Members() []RoomMember {
	return r.members
}

func (r *Room) isFull() bool {
	return len(r.members) == roomCapacity
}

// RoomSummary is the joinable-room snapshot entry broadcast to the lobby.
type RoomSummary struct {
	RoomId    int         `json:"room_id"`
	Occupants []PlayerRef `json:"occupants"`
}
