// Package api is the read-only HTTP surface over the latest snapshot.
// Everything here answers from the feed's replay-1 channel; nothing
// writes.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	coredom "peloton/internal/core/domain"
	"peloton/internal/platform/logger"
	feeddom "peloton/internal/services/feed/domain"
)

// Feed is what the API needs from the feed service
type Feed interface {
	Latest() (*coredom.Snapshot, bool)
	Status() feeddom.Status
}

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	srv  *http.Server
	log  logger.Logger
	feed Feed
	now  func() time.Time
}

// NewServer builds the server with routes mounted
func NewServer(addr string, feed Feed) *Server {
	s := &Server{
		addr: addr,
		log:  *logger.Named("api"),
		feed: feed,
		now:  time.Now,
	}

	m := chi.NewRouter()
	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	m.Get("/healthz", s.health)
	m.Route("/v1", func(r chi.Router) {
		r.Get("/teams", s.listTeams)
		r.Get("/riders", s.listRiders)
		r.Get("/riders/{riderID}/participations", s.riderParticipations)
		r.Get("/riders/{riderID}/results", s.riderResults)
		r.Get("/races", s.listRaces)
		r.Get("/races/{raceID}", s.getRace)
		r.Get("/races/{raceID}/stages/{stage}/results", s.stageResults)
	})

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           m,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the mux, mainly for tests
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run starts the server and blocks until it stops
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shctx)
	}()
	s.log.Info().Str("addr", s.addr).Msg("http listening")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
