// Package server implements the brickgrammar HTTP API: a small REST service
// for storing PCFG grammars and recording the results of generating and
// interpreting sentences from them.
package server

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/dekarrin/brickgrammar/server/api"
	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/dekarrin/brickgrammar/server/middle"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// Server is a configured brickgrammar HTTP server, ready to serve requests.
type Server struct {
	router http.Handler
	db     dao.Store
}

// New builds a Server from cfg. cfg should already have had FillDefaults
// called and Validate checked.
func New(cfg Config) (*Server, error) {
	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassphrase), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin passphrase: %w", err)
	}

	a := api.API{
		DB:                  db,
		Secret:              cfg.TokenSecret,
		AdminPassphraseHash: passHash,
		UnauthDelay:         cfg.UnauthDelay(),
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Post("/login", a.HTTPCreateLogin())
	r.With(middle.OptionalAuth(a.Secret, a.UnauthDelay)).Get("/info", a.HTTPGetInfo())

	r.Route("/grammars", func(r chi.Router) {
		r.Use(middle.RequireAuth(a.Secret, a.UnauthDelay))

		r.Post("/", a.HTTPCreateGrammar())
		r.Get("/", a.HTTPGetAllGrammars())

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.HTTPGetGrammar())
			r.Put("/", a.HTTPUpdateGrammar())
			r.Delete("/", a.HTTPDeleteGrammar())

			r.Post("/runs", a.HTTPCreateRun())
			r.Get("/runs", a.HTTPGetRunsForGrammar())
		})
	})

	r.Route("/runs/{id}", func(r chi.Router) {
		r.Use(middle.RequireAuth(a.Secret, a.UnauthDelay))

		r.Get("/", a.HTTPGetRun())
		r.Delete("/", a.HTTPDeleteRun())
	})

	return &Server{router: r, db: db}, nil
}

// ServeForever starts the HTTP server listening on addr:port, blocking until
// the server is shut down or encounters a fatal error.
func (s *Server) ServeForever(addr string, port int) error {
	listenAddr := net.JoinHostPort(addr, strconv.Itoa(port))
	log.Printf("INFO  listening on %s", listenAddr)
	return http.ListenAndServe(listenAddr, s.router)
}

// Close releases the resources held by the Server's persistence layer.
func (s *Server) Close() error {
	return s.db.Close()
}
