package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/ashstar-ai/mainframe/internal/handler/auth"
	chatHandler "github.com/ashstar-ai/mainframe/internal/handler/chat"
	personaHandler "github.com/ashstar-ai/mainframe/internal/handler/persona"
	reviewHandler "github.com/ashstar-ai/mainframe/internal/handler/review"
	personaModel "github.com/ashstar-ai/mainframe/internal/model/persona"
	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
	"github.com/ashstar-ai/mainframe/internal/service/ai"
	authService "github.com/ashstar-ai/mainframe/internal/service/auth"
	"github.com/ashstar-ai/mainframe/internal/store"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Personas      personaModel.Store
	Conversations chatHandler.ConversationLog
	Resolver      chatHandler.Resolver
	Builder       *ai.Builder
	Offline       *ai.Selector
	Auth          *authService.Service
	Records       *store.Store
	Log           *logger.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	personas := personaHandler.New(deps.Personas)
	chats := chatHandler.New(deps.Conversations, deps.Resolver, deps.Builder, deps.Offline, deps.Personas, deps.Log)
	auth := authHandler.New(deps.Auth)
	reviews := reviewHandler.New(deps.Records)

	r.Route("/api", func(api chi.Router) {
		personas.RegisterRoutes(api)
		chats.RegisterRoutes(api)
		auth.RegisterRoutes(api)
		reviews.RegisterRoutes(api)
		reviews.RegisterAdminRoutes(api)
	})

	return r
}
