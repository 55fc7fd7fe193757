// Package httpapi exposes the application services over an HTTP JSON API.
// Authentication and role gating happen in middleware, so handler bodies
// receive an already-resolved identity.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	address   string
	logger    logging.Logger
	auth      *services.AuthService
	users     *services.UserService
	items     *services.ItemService
	lists     *services.ListService
	listItems *services.ListItemService
}

func NewServer(address string, logger logging.Logger, auth *services.AuthService,
	users *services.UserService, items *services.ItemService,
	lists *services.ListService, listItems *services.ListItemService) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "http_server"),
		auth:      auth,
		users:     users,
		items:     items,
		lists:     lists,
		listItems: listItems,
	}
}

// Router assembles the route tree. Exposed separately from Run so tests can
// drive it through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)

		// everything below requires a valid bearer token and a live account
		r.Group(func(r chi.Router) {
			r.Use(s.RequireAuth)

			r.Get("/auth/revalidate", s.handleRevalidate)
			r.Get("/profile", s.handleProfile)

			r.Route("/items", func(r chi.Router) {
				r.Post("/", s.handleItemCreate)
				r.Get("/", s.handleItemList)
				r.Get("/{id}", s.handleItemGet)
				r.Patch("/{id}", s.handleItemUpdate)
				r.Delete("/{id}", s.handleItemDelete)
			})

			r.Route("/lists", func(r chi.Router) {
				r.Post("/", s.handleListCreate)
				r.Get("/", s.handleListList)
				r.Get("/{id}", s.handleListGet)
				r.Patch("/{id}", s.handleListUpdate)
				r.Delete("/{id}", s.handleListDelete)
				r.Get("/{id}/items", s.handleListItemsOfList)
			})

			r.Route("/list-items", func(r chi.Router) {
				r.Post("/", s.handleListItemCreate)
				r.Get("/{id}", s.handleListItemGet)
				r.Patch("/{id}", s.handleListItemUpdate)
			})

			r.Route("/users", func(r chi.Router) {
				r.With(RequireRoles(models.RoleAdmin, models.RoleSuperUser)).Get("/", s.handleUserList)
				r.With(RequireRoles(models.RoleAdmin, models.RoleSuperUser)).Get("/{id}", s.handleUserGet)
				r.With(RequireRoles(models.RoleAdmin, models.RoleSuperUser)).Get("/{id}/items", s.handleUserItems)
				r.With(RequireRoles(models.RoleAdmin)).Patch("/{id}", s.handleUserUpdate)
				r.With(RequireRoles(models.RoleAdmin)).Post("/{id}/block", s.handleUserBlock)
			})
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
