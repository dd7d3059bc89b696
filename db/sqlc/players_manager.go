package sqlc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

// postgres unique_violation
const pqCodeUniqueViolation = "23505"

// PlayersManager is the account store. Passwords are stored as-is;
// hardening the credential handling is out of scope for now.
type PlayersManager struct {
	queries Querier
}

func NewPlayersManager(queries Querier) *PlayersManager {
	return &PlayersManager{queries: queries}
}

func (p *PlayersManager) Register(ctx context.Context, name, password string) (Player, error) {
	player, err := p.queries.RegisterPlayer(ctx, RegisterPlayerParams{Name: name, Password: password})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqCodeUniqueViolation {
			return Player{}, cerr.ErrPlayerNameTaken(name)
		}
		return Player{}, err
	}
	return player, nil
}

func (p *PlayersManager) Authenticate(ctx context.Context, name, password string) (Player, error) {
	player, err := p.queries.GetPlayerByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Player{}, cerr.ErrInvalidCredentials()
		}
		return Player{}, err
	}

	if player.Password != password {
		return Player{}, cerr.ErrInvalidCredentials()
	}
	return player, nil
}

func (p *PlayersManager) IncrementPlayerWins(ctx context.Context, name string) error {
	return p.queries.IncrementPlayerWins(ctx, name)
}

func (p *PlayersManager) ListWinners(ctx context.Context) ([]ListWinnersRow, error) {
	return p.queries.ListWinners(ctx)
}
