package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/weeklisthq/weeklist-api/internal/api"
	"github.com/weeklisthq/weeklist-api/internal/api/middleware"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/service/auth"
)

type routerDeps struct {
	db              *sql.DB
	jwtService      auth.JWTService
	userService     service.UserService
	weeklistService service.WeeklistService
	logger          *slog.Logger
}

// newRouter assembles the route tree. Registration, login and the
// healthcheck are open; everything else sits behind the JWT middleware.
func newRouter(deps routerDeps) http.Handler {
	authHandler := api.NewAuthHandler(deps.userService, deps.logger)
	weeklistHandler := api.NewWeeklistHandler(deps.weeklistService, deps.logger)
	systemHandler := api.NewSystemHandler(deps.db, serverName)
	authMiddleware := middleware.NewAuthMiddleware(deps.jwtService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.Login)
	r.Get("/healthcheck", systemHandler.Healthcheck)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", systemHandler.Root)
		r.Post("/create-weeklist", weeklistHandler.Create)
		r.Get("/display-weeklists", weeklistHandler.List)
		r.Get("/weeklist/{id}", weeklistHandler.Get)
		r.Delete("/delete-weeklist/{id}", weeklistHandler.Delete)
		r.Patch("/add-task/{id}", weeklistHandler.AddTask)
		r.Patch("/delete-task/{id}/{taskId}", weeklistHandler.DeleteTask)
		r.Patch("/edit-task/{id}/{taskId}", weeklistHandler.EditTask)
		r.Patch("/mark-task/{id}/{taskId}", weeklistHandler.ToggleTask)
		r.Get("/feed", weeklistHandler.Feed)
	})

	r.NotFound(systemHandler.NotFound)

	return r
}
