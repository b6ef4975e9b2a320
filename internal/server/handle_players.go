package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// PlayerRequest is the request body for creating or updating a player.
type PlayerRequest struct {
	Name string `json:"name"`
	Age  *int   `json:"age,omitempty"`
}

func handleListPlayers(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := store.ListPlayers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func handleCreatePlayer(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := playerRequest(w, r)
		if !ok {
			return
		}

		player, err := store.CreatePlayer(r.Context(), req.Name, req.Age)
		if errors.Is(err, ErrDuplicateName) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func handleUpdatePlayer(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}
		req, ok := playerRequest(w, r)
		if !ok {
			return
		}

		player, err := store.UpdatePlayer(r.Context(), id, req.Name, req.Age)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		if errors.Is(err, ErrDuplicateName) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func handleDeletePlayer(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := playerID(w, r)
		if !ok {
			return
		}

		err := store.DeletePlayer(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeOK(w)
	}
}

func playerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return 0, false
	}
	return id, true
}

func playerRequest(w http.ResponseWriter, r *http.Request) (PlayerRequest, bool) {
	var req PlayerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return req, false
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		writeError(w, http.StatusBadRequest, "age is out of range")
		return req, false
	}
	return req, true
}
