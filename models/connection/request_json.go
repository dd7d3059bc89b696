package connection

import (
	mb "github.com/saeidalz13/seabattle-backend/models/seabattle"
)

type ReqRegister struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ReqJoinRoom struct {
	RoomId int `json:"room_id"`
}

type ReqPlaceShips struct {
	GameId      int       `json:"game_id"`
	PlayerIndex int       `json:"player_index"`
	Ships       []mb.Ship `json:"ships"`
}

type ReqAttack struct {
	GameId      int   `json:"game_id"`
	PlayerIndex int   `json:"player_index"`
	X           uint8 `json:"x"`
	Y           uint8 `json:"y"`
}
