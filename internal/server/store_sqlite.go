package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, correct_total, wrong_total
		FROM players
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		var age sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &age, &p.CorrectTotal, &p.WrongTotal); err != nil {
			return nil, err
		}
		if age.Valid {
			a := int(age.Int64)
			p.Age = &a
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *SQLiteStore) GetPlayer(ctx context.Context, id int64) (Player, error) {
	var p Player
	var age sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, age, correct_total, wrong_total
		FROM players WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &age, &p.CorrectTotal, &p.WrongTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrNotFound
	}
	if err != nil {
		return Player{}, err
	}
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	return p, nil
}

func (s *SQLiteStore) CreatePlayer(ctx context.Context, name string, age *int) (Player, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO players (name, age)
		VALUES (?, ?)
		RETURNING id
	`, name, nullableAge(age)).Scan(&id)
	if isUniqueViolation(err) {
		return Player{}, ErrDuplicateName
	}
	if err != nil {
		return Player{}, err
	}
	return Player{ID: id, Name: name, Age: age}, nil
}

func (s *SQLiteStore) UpdatePlayer(ctx context.Context, id int64, name string, age *int) (Player, error) {
	var correct, wrong int
	err := s.db.QueryRowContext(ctx, `
		UPDATE players SET name = ?, age = ?
		WHERE id = ?
		RETURNING correct_total, wrong_total
	`, name, nullableAge(age), id).Scan(&correct, &wrong)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Player{}, ErrDuplicateName
	}
	if err != nil {
		return Player{}, err
	}
	return Player{ID: id, Name: name, Age: age, CorrectTotal: correct, WrongTotal: wrong}, nil
}

// DeletePlayer removes a player and their history entries in one
// transaction.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_history WHERE player_id = ?`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// RecordResult appends a ledger row and bumps the player's cumulative
// counters atomically.
func (s *SQLiteStore) RecordResult(ctx context.Context, playerID int64, correct, wrong int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO game_history (player_id, correct, wrong)
		VALUES (?, ?, ?)
	`, playerID, correct, wrong); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE players
		SET correct_total = correct_total + ?, wrong_total = wrong_total + ?
		WHERE id = ?
	`, correct, wrong, playerID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("recording result: player %d: %w", playerID, ErrNotFound)
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, h.correct, h.wrong, h.played_at
		FROM game_history h
		JOIN players p ON p.id = h.player_id
		ORDER BY h.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.PlayerName, &e.Correct, &e.Wrong, &e.PlayedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearHistory wipes the ledger but keeps cumulative player counters.
func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM game_history`)
	return err
}

func nullableAge(age *int) any {
	if age == nil {
		return nil
	}
	return *age
}

// isUniqueViolation sniffs the driver error text; libSQL surfaces
// SQLite constraint failures as plain errors without typed codes.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
