package server

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("player name already exists")
)

// Player is a stored player profile with cumulative counters across
// all recorded games.
type Player struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Age          *int   `json:"age,omitempty"`
	CorrectTotal int    `json:"correctTotal"`
	WrongTotal   int    `json:"wrongTotal"`
}

// HistoryEntry is one ledger row, most recent first.
type HistoryEntry struct {
	PlayerName string `json:"playerName"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	PlayedAt   string `json:"playedAt"`
}

// Store is the persistence service consumed by the handlers and the
// game engine's history write path.
type Store interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, id int64) (Player, error)
	CreatePlayer(ctx context.Context, name string, age *int) (Player, error)
	UpdatePlayer(ctx context.Context, id int64, name string, age *int) (Player, error)
	DeletePlayer(ctx context.Context, id int64) error

	RecordResult(ctx context.Context, playerID int64, correct, wrong int) error
	ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}
