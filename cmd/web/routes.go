package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kvanhoutte/oche/internal/config"
	"github.com/kvanhoutte/oche/internal/httputil"
	"github.com/kvanhoutte/oche/internal/service"
	"github.com/kvanhoutte/oche/internal/store"
	"github.com/kvanhoutte/oche/internal/x01"
)

type createPlayerRequest struct {
	Name       string `json:"name"`
	AvatarData string `json:"avatarData,omitempty"`
}

type createGameRequest struct {
	Config    createGameConfig `json:"config"`
	PlayerIDs []uuid.UUID      `json:"playerIds"`
}

// createGameConfig tolerates the client's full config shape; best-of values
// are informational (the client converts them to first-to counts before
// submitting) and mode selects the engine.
type createGameConfig struct {
	Mode          string           `json:"mode,omitempty"`
	StartingScore int              `json:"startingScore"`
	Legs          int              `json:"legs"`
	Sets          int              `json:"sets"`
	DoubleIn      bool             `json:"doubleIn,omitempty"`
	DoubleOut     bool             `json:"doubleOut"`
	Opener        x01.OpenerPolicy `json:"opener,omitempty"`
	Format        string           `json:"format,omitempty"`
	BestOfSets    int              `json:"bestOfSets,omitempty"`
	BestOfLegs    int              `json:"bestOfLegs,omitempty"`
}

type recordVisitRequest struct {
	PlayerID    uuid.UUID `json:"playerId"`
	VisitScore  int       `json:"visitScore"`
	DartsThrown int       `json:"dartsThrown"`
}

func newRouter(database *sqlx.DB, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Serve the SPA build
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// One service set for the process: the match service's per-game lock
	// table only serializes writers if every request goes through the same
	// instance.
	playerStore := store.NewPlayerStore(database)
	gameStore := store.NewGameStore(database)
	playerService := service.NewPlayerService(database, playerStore)
	matchService := service.NewMatchService(database, gameStore, playerStore)
	statsService := service.NewStatsService(database, gameStore, playerStore)

	r.Route("/api", func(r chi.Router) {
		r.Post("/players", func(w http.ResponseWriter, r *http.Request) {
			var req createPlayerRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			p, err := playerService.CreatePlayer(r.Context(), req.Name, req.AvatarData)
			if err != nil {
				if errors.Is(err, service.ErrInvalidInput) {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				httputil.InternalServerError(w, "Failed to create player", err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, p)
		})

		r.Get("/players", func(w http.ResponseWriter, r *http.Request) {
			players, err := playerService.ListPlayers(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list players", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, players)
		})

		r.Get("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid player ID", err)
				return
			}
			p, err := playerService.GetPlayer(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Player not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get player", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, p)
		})

		r.Post("/games", func(w http.ResponseWriter, r *http.Request) {
			var req createGameRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			if req.Config.Mode != "" && req.Config.Mode != "X01" {
				httputil.BadRequest(w, fmt.Sprintf("Unsupported game mode %q", req.Config.Mode), nil)
				return
			}
			engineCfg := x01.Config{
				StartingScore:  req.Config.StartingScore,
				LegsToWinSet:   req.Config.Legs,
				SetsToWinMatch: req.Config.Sets,
				DoubleIn:       req.Config.DoubleIn,
				DoubleOut:      req.Config.DoubleOut,
				Opener:         req.Config.Opener,
			}
			state, err := matchService.CreateMatch(r.Context(), engineCfg, req.PlayerIDs)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Player not found", err)
					return
				}
				// Config and roster problems surface as plain errors from
				// the engine's constructor.
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, state)
		})

		r.Get("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			state, err := matchService.GetMatch(r.Context(), id)
			if err != nil {
				writeGameError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, state)
		})

		r.Post("/games/{id}/throws", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			var req recordVisitRequest
			if err := httputil.DecodeJSON(r, &req); err != nil {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			state, err := matchService.RecordVisit(r.Context(), id, req.PlayerID, req.VisitScore, req.DartsThrown)
			if err != nil {
				writeGameError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, state)
		})

		r.Post("/games/{id}/undo", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid game ID", err)
				return
			}
			state, err := matchService.UndoLastVisit(r.Context(), id)
			if err != nil {
				writeGameError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, state)
		})

		r.Get("/stats/games", func(w http.ResponseWriter, r *http.Request) {
			limit := 50
			if raw := r.URL.Query().Get("limit"); raw != "" {
				if n, err := strconv.Atoi(raw); err == nil {
					limit = n
				}
			}
			games, err := statsService.RecentGames(r.Context(), limit)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list games", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, games)
		})

		r.Get("/stats/players/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid player ID", err)
				return
			}
			stats, err := statsService.PlayerStats(r.Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "Player not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get player stats", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, stats)
		})
	})

	return r
}

// writeGameError maps engine rejections onto the boundary: rule violations
// are 422, state conflicts 409, a missing game 404. Busts and checkouts are
// not errors; they come back as normal game states.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Game not found", err)
	case errors.Is(err, x01.ErrInvalidScore), errors.Is(err, x01.ErrWrongPlayer):
		httputil.UnprocessableEntity(w, err.Error(), err)
	case errors.Is(err, x01.ErrMatchFinished), errors.Is(err, x01.ErrNothingToUndo):
		httputil.Conflict(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, "Failed to update game", err)
	}
}
