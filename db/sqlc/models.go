package sqlc

import (
	"time"

	"github.com/sqlc-dev/pqtype"
)

type Player struct {
	PlayerIndex int32
	Name        string
	Password    string
	Wins        int64
	CreatedAt   time.Time
}

type GameServerAnalytic struct {
	ServerIp     pqtype.Inet
	GamesCreated int64
}
