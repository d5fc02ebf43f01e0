package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type Handlers struct {
	Auth     AuthHandler
	Company  CompanyHandler
	Employee EmployeeHandler
	Role     RoleHandler
	Invite   InviteHandler
	Team     TeamHandler
	Document DocumentHandler
	Chat     ChatHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
	// Logger overrides the ECS request logger, mostly for tests.
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(false)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       opts.LogLevel,
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", "teamspace"),
			slog.String("version", "v1.0.0"),
			slog.String("env", opts.Env),
		)
	}

	r.Use(opts.Metrics.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Gatherer != nil {
		r.Method("GET", "/metrics", metrics.Handler(opts.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/me", h.Auth.Me)

			r.Route("/companies", func(r chi.Router) {
				r.Post("/", h.Company.Create)

				r.Route("/{companyId}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("companyId"))

					r.Get("/", h.Company.GetByID)
					r.Delete("/", h.Company.Delete)
					r.Get("/employees", h.Company.ListEmployees)
					r.Get("/teams", h.Team.ListByCompany)

					r.Route("/roles", func(r chi.Router) {
						r.Get("/", h.Role.List)
						r.With(middleware.UUIDParams("employeeId")).Get("/{employeeId}", h.Role.Get)
						r.With(middleware.UUIDParams("employeeId")).Patch("/{employeeId}", h.Role.Assign)
					})

					r.Route("/invites", func(r chi.Router) {
						r.Post("/", h.Invite.Issue)
						r.Get("/", h.Invite.List)
					})
				})
			})

			r.Post("/invites/consume", h.Invite.Consume)

			r.With(middleware.UUIDParams("employeeId")).Get("/employees/{employeeId}", h.Employee.GetEmployee)

			r.Route("/teams", func(r chi.Router) {
				r.Post("/", h.Team.Create)

				r.Route("/{teamId}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("teamId"))

					r.Get("/", h.Team.GetByID)
					r.Get("/members", h.Team.ListMembers)
					r.Post("/members", h.Team.AddMember)
					r.With(middleware.UUIDParams("employeeId")).Delete("/members/{employeeId}", h.Team.RemoveMember)
				})
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", h.Document.Create)
				r.Get("/", h.Document.List)

				r.Route("/{documentId}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("documentId"))

					r.Get("/", h.Document.GetByID)
					r.Patch("/", h.Document.Update)
					r.Get("/versions", h.Document.ListVersions)
					r.Get("/diff", h.Document.Diff)

					r.Route("/versions/{versionId}", func(r chi.Router) {
						r.Use(middleware.UUIDParams("versionId"))

						r.Get("/", h.Document.GetVersion)
						r.Post("/restore", h.Document.Restore)
					})
				})
			})

			r.Route("/chats", func(r chi.Router) {
				r.Route("/team/{teamId}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("teamId"))
					r.Post("/", h.Chat.CreateTeamChat)
					r.Get("/", h.Chat.ListTeamChats)
				})

				r.Route("/company/{companyId}", func(r chi.Router) {
					r.Use(middleware.UUIDParams("companyId"))
					r.Post("/", h.Chat.CreateCompanyChat)
					r.Get("/", h.Chat.ListCompanyChats)
				})

				r.Route("/{chatId}/messages", func(r chi.Router) {
					r.Use(middleware.UUIDParams("chatId"))
					r.Post("/", h.Chat.SendMessage)
					r.Get("/", h.Chat.ListMessages)
				})
			})

			r.Route("/messages/{messageId}", func(r chi.Router) {
				r.Use(middleware.UUIDParams("messageId"))
				r.Patch("/", h.Chat.EditMessage)
				r.Delete("/", h.Chat.DeleteMessage)
			})
		})
	})

	return r
}
