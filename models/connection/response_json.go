package connection

import (
	mb "github.com/saeidalz13/seabattle-backend/models/seabattle"
)

type RespRegister struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

type RespCreateRoom struct {
	RoomId int `json:"room_id"`
}

type RespUpdateRooms struct {
	Rooms []mb.RoomSummary `json:"rooms"`
}

type RespCreateGame struct {
	GameId    int `json:"game_id"`
	YourIndex int `json:"your_index"`
}

type RespStartGame struct {
	Ships       []mb.Ship `json:"ships"`
	CurrentTurn int       `json:"current_turn"`
}

type RespAttack struct {
	X             uint8  `json:"x"`
	Y             uint8  `json:"y"`
	AttackerIndex int    `json:"attacker_index"`
	Status        string `json:"status"`
}

type RespTurn struct {
	CurrentTurn int `json:"current_turn"`
}

type RespFinishGame struct {
	Winner int `json:"winner"`
}

type Winner struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

type RespUpdateWinners struct {
	Winners []Winner `json:"winners"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
