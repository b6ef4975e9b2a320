package server

import (
	"errors"
	"net/http"

	"github.com/schartrand77/trivia/internal/game"
	"github.com/schartrand77/trivia/internal/trivia"
)

// NewGameRequest starts a fresh session. CategoryIDs, when given, are
// fetched in order; otherwise CategoryCount random categories are
// drawn from the catalog. PlayerID selects whose history the result is
// recorded against and whose age drives family mode.
type NewGameRequest struct {
	CategoryIDs   []int  `json:"categoryIds,omitempty"`
	CategoryCount int    `json:"categoryCount,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	PlayerID      int64  `json:"playerId,omitempty"`
}

type SelectClueRequest struct {
	ClueID string `json:"clueId"`
}

type AnswerRequest struct {
	Option string `json:"option"`
}

func handleNewGame(engine *game.Engine, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		difficulty := trivia.Difficulty(req.Difficulty)
		if difficulty == "" {
			difficulty = trivia.DifficultyAny
		}
		if !difficulty.Valid() {
			writeError(w, http.StatusBadRequest, "invalid difficulty")
			return
		}

		opts := game.StartOptions{
			CategoryIDs:   req.CategoryIDs,
			CategoryCount: req.CategoryCount,
			Difficulty:    difficulty,
			PlayerID:      req.PlayerID,
		}

		if req.PlayerID > 0 {
			player, err := store.GetPlayer(r.Context(), req.PlayerID)
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "player not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if player.Age != nil {
				opts.PlayerAge = *player.Age
			}
		}

		engine.StartNewGame(opts)
		writeJSON(w, http.StatusAccepted, engine.Snapshot())
	}
}

func handleGameState(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleSelectClue(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectClueRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ClueID == "" {
			writeError(w, http.StatusBadRequest, "clueId is required")
			return
		}

		// Stale selections (answered clue, clue already open) are
		// silently ignored by the engine; the snapshot tells the caller
		// what actually happened.
		engine.SelectClue(req.ClueID)
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleAnswer(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		engine.SubmitAnswer(req.Option)
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handlePause(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Pause()
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleResume(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Resume()
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}

func handleEndGame(engine *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.EndGame(r.Context())
		writeJSON(w, http.StatusOK, engine.Snapshot())
	}
}
