// Package handler implements the HTTP surface of textbus: the inbound SMS
// webhook, the raw REPL interface, the health check, and the admin JSON API.
// All handlers are methods on Server, split into per-surface files, sharing
// one struct so they can reach the same dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tmarsh/textbus/internal/domain"
	"github.com/tmarsh/textbus/internal/middleware"
)

// Bot is the command dispatcher the webhook hands inbound text to.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a stub without real upstream calls.
type Bot interface {
	HandleMessage(ctx context.Context, body string, rider *domain.Rider, messageID *uuid.UUID) (string, error)
}

// RiderStore is the slice of the rider repo the handlers need.
type RiderStore interface {
	GetByNumber(ctx context.Context, number string) (domain.Rider, error)
	Create(ctx context.Context, number string) (domain.Rider, error)
	SetApproved(ctx context.Context, number string, approved bool) error
	List(ctx context.Context) ([]domain.Rider, error)
}

// MessageStore persists the inbound/outbound message log.
type MessageStore interface {
	Insert(ctx context.Context, message domain.Message) (domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
}

// Server implements all HTTP endpoints.
type Server struct {
	bot      Bot
	riders   RiderStore
	messages MessageStore
}

// NewServer constructs the Server with all its dependencies.
func NewServer(bot Bot, riders RiderStore, messages MessageStore) *Server {
	return &Server{bot: bot, riders: riders, messages: messages}
}

// Routes returns the full route tree. The admin surface is wrapped in HTTP
// basic auth with the provided credentials and allows cross-origin requests
// from corsOrigins so a separately-hosted admin front end can call it.
func (s *Server) Routes(adminUsername, adminPassword string, corsOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/twilio", s.GetTwilio)
	r.Get("/raw", s.GetRaw)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCORSHandler(corsOrigins))
		r.Use(chimiddleware.BasicAuth("textbus admin", map[string]string{adminUsername: adminPassword}))

		r.Get("/riders", s.ListRiders)
		r.Post("/riders/{number}/approve", s.ApproveRider)
		r.Post("/riders/{number}/unapprove", s.UnapproveRider)
		r.Get("/messages", s.ListMessages)
	})

	return r
}
