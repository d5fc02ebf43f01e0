package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/config"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	appHTTP "github.com/cmlabs-hris/teamspace-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/repository/postgresql"
	accessService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/access"
	serviceAuth "github.com/cmlabs-hris/teamspace-backend-go/internal/service/auth"
	chatService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/chat"
	serviceCompany "github.com/cmlabs-hris/teamspace-backend-go/internal/service/company"
	documentService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/employee"
	inviteService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/invite"
	roleService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/role"
	teamService "github.com/cmlabs-hris/teamspace-backend-go/internal/service/team"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type repositories struct {
	tx        database.Transactor
	employees employee.EmployeeRepository
	companies company.CompanyRepository
	roles     role.RoleRepository
	teams     team.TeamRepository
	invites   invite.InviteRepository
	documents document.DocumentRepository
	versions  document.VersionRepository
	chats     chat.ChatRepository
	messages  chat.MessageRepository
	close     func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(registry)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	evaluator := accessService.NewEvaluator(
		repos.employees, repos.companies, repos.teams, repos.roles,
		repos.documents, repos.chats, repos.messages, appMetrics,
	)

	authService := serviceAuth.NewAuthService(repos.employees, JWTService)
	companyService := serviceCompany.NewCompanyService(repos.tx, repos.companies, repos.employees, repos.roles, evaluator)
	employeeSvc := employeeService.NewEmployeeService(repos.employees)
	roleSvc := roleService.NewRoleService(repos.tx, repos.roles, repos.employees, evaluator)
	inviteSvc := inviteService.NewInviteService(
		repos.tx, repos.invites, repos.employees, repos.roles, evaluator, appMetrics, cfg.Invite.TTL,
	)
	teamSvc := teamService.NewTeamService(repos.tx, repos.teams, repos.employees, evaluator, cfg.Team.CreatorTitles)
	ledger := documentService.NewLedger(repos.tx, repos.documents, repos.versions, appMetrics)
	documentSvc := documentService.NewDocumentService(repos.tx, repos.documents, repos.teams, ledger, evaluator)
	chatSvc := chatService.NewChatService(
		repos.chats, repos.messages, repos.teams, repos.employees, evaluator, appMetrics,
		chatService.MessageLimits{Default: cfg.Chat.DefaultMessageLimit, Max: cfg.Chat.MaxMessageLimit},
	)

	router := appHTTP.NewRouter(JWTService, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		Metrics:        appMetrics,
		Gatherer:       registry,
	}, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authService),
		Company:  appHTTP.NewCompanyHandler(companyService),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		Role:     appHTTP.NewRoleHandler(roleSvc),
		Invite:   appHTTP.NewInviteHandler(inviteSvc),
		Team:     appHTTP.NewTeamHandler(teamSvc),
		Document: appHTTP.NewDocumentHandler(documentSvc),
		Chat:     appHTTP.NewChatHandler(chatSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewInviteJobs(inviteSvc, cfg.Invite.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Database.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Store == config.StoreMemory {
		slog.Warn("using in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			tx:        memory.NewTransactor(store),
			employees: memory.NewEmployeeRepository(store),
			companies: memory.NewCompanyRepository(store),
			roles:     memory.NewRoleRepository(store),
			teams:     memory.NewTeamRepository(store),
			invites:   memory.NewInviteRepository(store),
			documents: memory.NewDocumentRepository(store),
			versions:  memory.NewVersionRepository(store),
			chats:     memory.NewChatRepository(store),
			messages:  memory.NewMessageRepository(store),
			close:     func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	return &repositories{
		tx:        postgresql.NewTransactor(db),
		employees: postgresql.NewEmployeeRepository(db),
		companies: postgresql.NewCompanyRepository(db),
		roles:     postgresql.NewRoleRepository(db),
		teams:     postgresql.NewTeamRepository(db),
		invites:   postgresql.NewInviteRepository(db),
		documents: postgresql.NewDocumentRepository(db),
		versions:  postgresql.NewVersionRepository(db),
		chats:     postgresql.NewChatRepository(db),
		messages:  postgresql.NewMessageRepository(db),
		close:     db.Close,
	}, nil
}
