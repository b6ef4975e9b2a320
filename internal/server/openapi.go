package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/schartrand77/trivia/internal/game"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Trivia Grid API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Local API for the trivia grid game: players, history, and the game session engine.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/categories
	getCategories, _ := r.NewOperationContext(http.MethodGet, "/api/categories")
	getCategories.SetSummary("List categories")
	getCategories.SetDescription("Built-in category catalog, optionally filtered for family mode by ?age=.")
	getCategories.AddRespStructure(CategoryResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCategories)

	// GET /api/players
	getPlayers, _ := r.NewOperationContext(http.MethodGet, "/api/players")
	getPlayers.SetSummary("List players")
	getPlayers.AddRespStructure([]Player{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPlayers)

	// POST /api/players
	postPlayer, _ := r.NewOperationContext(http.MethodPost, "/api/players")
	postPlayer.SetSummary("Create player")
	postPlayer.SetDescription("Creates a player. Names are unique; age is optional and drives family mode.")
	postPlayer.AddReqStructure(PlayerRequest{})
	postPlayer.AddRespStructure(Player{}, openapi.WithHTTPStatus(http.StatusCreated))
	postPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postPlayer)

	// PUT /api/players/{id}
	putPlayer, _ := r.NewOperationContext(http.MethodPut, "/api/players/{id}")
	putPlayer.SetSummary("Update player")
	putPlayer.AddReqStructure(PlayerRequest{})
	putPlayer.AddRespStructure(Player{}, openapi.WithHTTPStatus(http.StatusOK))
	putPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putPlayer)

	// DELETE /api/players/{id}
	delPlayer, _ := r.NewOperationContext(http.MethodDelete, "/api/players/{id}")
	delPlayer.SetSummary("Delete player")
	delPlayer.SetDescription("Removes a player and their history entries.")
	delPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(delPlayer)

	// GET /api/history
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/history")
	getHistory.SetSummary("List recent games")
	getHistory.AddRespStructure([]HistoryEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHistory)

	// POST /api/game/new
	postNew, _ := r.NewOperationContext(http.MethodPost, "/api/game/new")
	postNew.SetSummary("Start a new game")
	postNew.SetDescription("Discards the current session and assembles a new board in the background.")
	postNew.AddReqStructure(NewGameRequest{})
	postNew.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusAccepted))
	_ = r.AddOperation(postNew)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Session snapshot")
	getState.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/game/select
	postSelect, _ := r.NewOperationContext(http.MethodPost, "/api/game/select")
	postSelect.SetSummary("Open a clue")
	postSelect.AddReqStructure(SelectClueRequest{})
	postSelect.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postSelect)

	// POST /api/game/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/game/answer")
	postAnswer.SetSummary("Answer the active clue")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postAnswer)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("Engine event stream")
	getEvents.SetDescription("Server-sent events for session state changes.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(spec)
	}
}
