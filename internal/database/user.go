// internal/database/user.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fuseball/internal/auth"
	"fuseball/internal/models"
)

// CreateUser inserts a registered account with a hashed password.
func CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = models.NewPlayerID()
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO players (id, email, password, name, country_code)
	      VALUES ($1, $2, $3, $4, $5)`

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			user.ID, user.Email, user.Password, user.Name, user.CountryCode)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GetUserByEmail loads an account and its cumulative stats.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	q := `
	SELECT id, email, password, name, country_code,
	       total_wins, total_goals, total_games, xp
	FROM players
	WHERE email=$1
	`
	err := DB.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.CountryCode,
		&u.TotalWins, &u.TotalGoals, &u.TotalGames, &u.XP,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID loads an account and its cumulative stats.
func GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	q := `
	SELECT id, email, password, name, country_code,
	       total_wins, total_goals, total_games, xp
	FROM players
	WHERE id=$1
	`
	err := DB.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.CountryCode,
		&u.TotalWins, &u.TotalGoals, &u.TotalGames, &u.XP,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthenticateUser checks credentials and returns a signed handshake token.
func AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	user, err := GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("user not found or db error: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.Password)
	if err != nil || !match {
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := auth.CreateToken(user.Identity())
	if err != nil {
		return "", fmt.Errorf("failed to create jwt: %w", err)
	}
	return token, nil
}

// StatDelta is one player's increment from a finished match.
type StatDelta struct {
	PlayerID int64
	Wins     int
	Goals    int
	XP       int
}

// RecordMatchResult bumps cumulative stats in one transaction. Guest ids
// without a row are skipped silently.
func RecordMatchResult(ctx context.Context, deltas []StatDelta) error {
	if len(deltas) == 0 {
		return nil
	}
	q := `
	UPDATE players
	SET total_wins = total_wins + $1,
	    total_goals = total_goals + $2,
	    total_games = total_games + 1,
	    xp = xp + $3
	WHERE id = $4
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, d := range deltas {
			if _, err := tx.Exec(ctx, q, d.Wins, d.Goals, d.XP, d.PlayerID); err != nil {
				return err
			}
		}
		return nil
	})
}
