package seabattle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

func member(name string, index int, sessionId string) RoomMember {
	return RoomMember{Player: PlayerRef{Name: name, Index: index}, SessionId: sessionId}
}

func TestCreateRoomAssignsMonotonicIds(t *testing.T) {
	rm := NewRoomManager()

	first := rm.CreateRoom()
	second := rm.CreateRoom()
	require.Equal(t, first+1, second)

	summaries := rm.ListJoinable()
	require.Len(t, summaries, 2)
	require.Equal(t, first, summaries[0].RoomId)
	require.Equal(t, second, summaries[1].RoomId)
}

func TestJoinRoomNotFound(t *testing.T) {
	rm := NewRoomManager()

	_, _, err := rm.JoinRoom(42, member("alice", 1, "session-a"))
	require.True(t, errors.Is(err, cerr.ErrNotFound))
}

func TestJoinRoomListsOccupants(t *testing.T) {
	rm := NewRoomManager()
	roomId := rm.CreateRoom()

	_, full, err := rm.JoinRoom(roomId, member("alice", 1, "session-a"))
	require.NoError(t, err)
	require.False(t, full)

	summaries := rm.ListJoinable()
	require.Len(t, summaries, 1)
	require.Equal(t, []PlayerRef{{Name: "alice", Index: 1}}, summaries[0].Occupants)
}

func TestSecondJoinPromotesRoom(t *testing.T) {
	rm := NewRoomManager()
	roomId := rm.CreateRoom()

	_, _, err := rm.JoinRoom(roomId, member("alice", 1, "session-a"))
	require.NoError(t, err)

	room, full, err := rm.JoinRoom(roomId, member("bob", 2, "session-b"))
	require.NoError(t, err)
	require.True(t, full)
	require.Len(t, room.Members(), 2)

	// a full room must never be observable as joinable
	require.Empty(t, rm.ListJoinable())

	_, _, err = rm.JoinRoom(roomId, member("eve", 3, "session-c"))
	require.True(t, errors.Is(err, cerr.ErrNotFound))
}

func TestRoomIdsNeverReused(t *testing.T) {
	rm := NewRoomManager()
	roomId := rm.CreateRoom()

	_, _, err := rm.JoinRoom(roomId, member("alice", 1, "session-a"))
	require.NoError(t, err)
	_, _, err = rm.JoinRoom(roomId, member("bob", 2, "session-b"))
	require.NoError(t, err)

	require.Greater(t, rm.CreateRoom(), roomId)
}
