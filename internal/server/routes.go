package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/schartrand77/trivia/internal/game"
)

// AddRoutes mounts the full API surface.
func AddRoutes(r chi.Router, logger *slog.Logger, engine *game.Engine, store Store, broker *Broker, admin *Admin, db *sql.DB, historyLimit int) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Trivia Grid API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", handleListCategories())

		r.Get("/players", handleListPlayers(store))
		r.Post("/players", handleCreatePlayer(store))
		r.Put("/players/{id}", handleUpdatePlayer(store))
		r.Delete("/players/{id}", handleDeletePlayer(store))

		r.Get("/history", handleListHistory(store, historyLimit))

		r.Route("/game", func(r chi.Router) {
			r.Post("/new", handleNewGame(engine, store))
			r.Get("/state", handleGameState(engine))
			r.Post("/select", handleSelectClue(engine))
			r.Post("/answer", handleAnswer(engine))
			r.Post("/pause", handlePause(engine))
			r.Post("/resume", handleResume(engine))
			r.Post("/end", handleEndGame(engine))
			r.Get("/events", handleEvents(broker))
		})

		// Admin shell: config-backed credential, cookie session.
		r.Post("/admin/login", handleAdminLogin(admin))
		r.Post("/admin/logout", handleAdminLogout(admin))
		r.Get("/admin/me", handleAdminMe(admin))
		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(admin))
			r.Delete("/admin/history", handleClearHistory(store))
		})
	})
}
