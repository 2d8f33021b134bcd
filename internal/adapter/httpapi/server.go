// Package httpapi exposes the reading core as a JSON API for web and mobile
// clients. Callers identify the user with the X-User-ID header.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/escalopa/quran-reader/internal/application"
)

// UserHeader carries the caller's user ID
const UserHeader = "X-User-ID"

type contextKey string

const contextKeyUserID contextKey = "user_id"

type Server struct {
	service  *application.ReaderService
	log      *slog.Logger
	validate *validator.Validate
	router   *chi.Mux
}

func NewServer(service *application.ReaderService, log *slog.Logger) *Server {
	s := &Server{
		service:  service,
		log:      log,
		validate: validator.New(),
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/surahs", s.handleListSurahs)
		r.Get("/surahs/{number}", s.handleGetSurah)
		r.Get("/tajwid", s.handleListTajwid)
		r.Get("/tajwid/{id}", s.handleGetTajwid)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/resume", s.handleResume)

			r.Route("/reader", func(r chi.Router) {
				r.Post("/", s.handleOpenSurah)
				r.Get("/", s.handleGetView)
				r.Delete("/", s.handleCloseView)
				r.Put("/page", s.handleScrollToPage)
				r.Post("/visibility", s.handleVisibility)
			})

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/", s.handleGetPreferences)
				r.Put("/font", s.handleAdjustFont)
				r.Post("/display/{setting}/toggle", s.handleToggleDisplay)
				r.Put("/language", s.handleSetLanguage)
				r.Put("/location", s.handleSetLocation)
			})

			r.Get("/favorites", s.handleListFavorites)
			r.Post("/favorites/{number}/toggle", s.handleToggleFavorite)
			r.Get("/bookmarks", s.handleListBookmarks)
			r.Post("/bookmarks/{surah}/{ayah}/toggle", s.handleToggleBookmark)

			r.Get("/prayer-times", s.handlePrayerTimes)
			r.Post("/feedback", s.handleFeedback)
		})
	})
}

// ServeHTTP makes the server usable as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header", s.log)
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserID(ctx context.Context) string {
	userID, _ := ctx.Value(contextKeyUserID).(string)
	return userID
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
