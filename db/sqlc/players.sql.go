package sqlc

import (
	"context"
)

const registerPlayer = `
INSERT INTO players (name, password)
VALUES ($1, $2)
RETURNING player_index, name, password, wins, created_at
`

type RegisterPlayerParams struct {
	Name     string
	Password string
}

func (q *Queries) RegisterPlayer(ctx context.Context, arg RegisterPlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, registerPlayer, arg.Name, arg.Password)
	var p Player
	err := row.Scan(&p.PlayerIndex, &p.Name, &p.Password, &p.Wins, &p.CreatedAt)
	return p, err
}

const getPlayerByName = `
SELECT player_index, name, password, wins, created_at
FROM players
WHERE name = $1
`

func (q *Queries) GetPlayerByName(ctx context.Context, name string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayerByName, name)
	var p Player
	err := row.Scan(&p.PlayerIndex, &p.Name, &p.Password, &p.Wins, &p.CreatedAt)
	return p, err
}

const incrementPlayerWins = `
UPDATE players
SET wins = wins + 1
WHERE name = $1
`

func (q *Queries) IncrementPlayerWins(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, incrementPlayerWins, name)
	return err
}

const listWinners = `
SELECT name, wins
FROM players
ORDER BY wins DESC, name ASC
`

type ListWinnersRow struct {
	Name string
	Wins int64
}

func (q *Queries) ListWinners(ctx context.Context) ([]ListWinnersRow, error) {
	rows, err := q.db.QueryContext(ctx, listWinners)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var winners []ListWinnersRow
	for rows.Next() {
		var w ListWinnersRow
		if err := rows.Scan(&w.Name, &w.Wins); err != nil {
			return nil, err
		}
		winners = append(winners, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return winners, nil
}
