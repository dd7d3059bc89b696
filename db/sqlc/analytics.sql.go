package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const analyticsIncrementGamesCreatedCount = `
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_created = game_server_analytics.games_created + 1
`

func (q *Queries) AnalyticsIncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, analyticsIncrementGamesCreatedCount, serverIp)
	return err
}

const analyticsGetGamesCreatedCount = `
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) AnalyticsGetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, analyticsGetGamesCreatedCount, serverIp)
	var gamesCreated int64
	err := row.Scan(&gamesCreated)
	return gamesCreated, err
}
