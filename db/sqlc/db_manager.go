package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

type DbManager struct {
	Players   *PlayersManager
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{
		Players:   NewPlayersManager(queries),
		Analytics: NewAnalyticsManager(queries),
	}
}
