package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dtroode/contacts-server/internal/api/http/handler"
	"github.com/dtroode/contacts-server/internal/api/http/middleware"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/service"
)

const (
	loginRateLimit     = 10
	loginRateWindow    = time.Minute
	profileRateLimit   = 10
	profileRateWindow  = time.Minute
	birthdayRateLimit  = 30
	birthdayRateWindow = time.Minute
)

// Router wires services, handlers and middleware into the HTTP route tree.
type Router struct {
	authService    *service.Auth
	userService    *service.User
	contactService *service.Contact
	users          model.UserStore
	tokens         model.TokenManager
	contextManager model.ContextManager
	rateLimit      *middleware.RateLimit
	logger         *logger.Logger
}

// New creates a new Router instance. rateLimit may be nil, which
// disables request rate limiting.
func New(
	authService *service.Auth,
	userService *service.User,
	contactService *service.Contact,
	users model.UserStore,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	rateLimit *middleware.RateLimit,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		contactService: contactService,
		users:          users,
		tokens:         tokens,
		contextManager: contextManager,
		rateLimit:      rateLimit,
		logger:         logger,
	}
}

// Register builds the route tree and returns the root handler.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.users, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	contactHandler := handler.NewContact(r.contactService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(logging.Handle)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Get("/verify/{token}", authHandler.VerifyEmail)
			auth.Post("/request-verification", authHandler.RequestVerification)
			auth.Post("/refresh", authHandler.Refresh)

			auth.Group(func(limited chi.Router) {
				if r.rateLimit != nil {
					limited.Use(r.rateLimit.Limit(loginRateLimit, loginRateWindow, "login"))
				}
				limited.Post("/login", authHandler.Login)
			})
		})

		api.Group(func(private chi.Router) {
			private.Use(authenticate.Handle)

			private.Route("/users", func(users chi.Router) {
				users.Group(func(limited chi.Router) {
					if r.rateLimit != nil {
						limited.Use(r.rateLimit.Limit(profileRateLimit, profileRateWindow, "profile"))
					}
					limited.Get("/me", userHandler.Me)
				})
				users.Patch("/avatar", userHandler.UpdateAvatar)
			})

			private.Route("/contacts", func(contacts chi.Router) {
				contacts.Post("/", contactHandler.Create)
				contacts.Get("/", contactHandler.List)

				contacts.Group(func(limited chi.Router) {
					if r.rateLimit != nil {
						limited.Use(r.rateLimit.Limit(birthdayRateLimit, birthdayRateWindow, "birthdays"))
					}
					limited.Get("/birthdays", contactHandler.UpcomingBirthdays)
				})

				contacts.Get("/{id}", contactHandler.Get)
				contacts.Put("/{id}", contactHandler.Update)
				contacts.Delete("/{id}", contactHandler.Delete)
			})
		})
	})

	return mux
}
