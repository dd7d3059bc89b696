package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type Querier interface {
	RegisterPlayer(ctx context.Context, arg RegisterPlayerParams) (Player, error)
	GetPlayerByName(ctx context.Context, name string) (Player, error)
	IncrementPlayerWins(ctx context.Context, name string) error
	ListWinners(ctx context.Context) ([]ListWinnersRow, error)
	AnalyticsIncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	AnalyticsGetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
}

var _ Querier = (*Queries)(nil)
