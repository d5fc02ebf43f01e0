// Package fixtures seeds in-memory workspaces for service and handler tests.
package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/repository/memory"
	accesssvc "github.com/cmlabs-hris/teamspace-backend-go/internal/service/access"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func StrPtr(s string) *string { return &s }
func BoolPtr(b bool) *bool    { return &b }

var emailSeq atomic.Int64

// ==========================================
// WORKSPACE
// ==========================================

// Env bundles a fresh in-memory store with every repository, a real access
// evaluator and an isolated metrics registry.
type Env struct {
	Store    *memory.Store
	Tx       database.Transactor
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Employees employee.EmployeeRepository
	Companies company.CompanyRepository
	Roles     role.RoleRepository
	Teams     team.TeamRepository
	Invites   invite.InviteRepository
	Documents document.DocumentRepository
	Versions  document.VersionRepository
	Chats     chat.ChatRepository
	Messages  chat.MessageRepository

	Evaluator *accesssvc.EvaluatorImpl
}

func NewEnv() *Env {
	store := memory.NewStore()
	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	env := &Env{
		Store:     store,
		Tx:        memory.NewTransactor(store),
		Registry:  registry,
		Metrics:   m,
		Employees: memory.NewEmployeeRepository(store),
		Companies: memory.NewCompanyRepository(store),
		Roles:     memory.NewRoleRepository(store),
		Teams:     memory.NewTeamRepository(store),
		Invites:   memory.NewInviteRepository(store),
		Documents: memory.NewDocumentRepository(store),
		Versions:  memory.NewVersionRepository(store),
		Chats:     memory.NewChatRepository(store),
		Messages:  memory.NewMessageRepository(store),
	}
	env.Evaluator = accesssvc.NewEvaluator(
		env.Employees, env.Companies, env.Teams, env.Roles,
		env.Documents, env.Chats, env.Messages, m,
	)
	return env
}

// CounterValue reads a counter sample from the env's registry; zero when the
// series has not been created yet.
func (e *Env) CounterValue(t testing.TB, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := e.Registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metricLoop:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metricLoop
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

// Employee registers an employee without a company. The password hash is a
// placeholder; tests that log in create their own accounts.
func (e *Env) Employee(t testing.TB, name, jobTitle string) employee.Employee {
	t.Helper()
	created, err := e.Employees.Create(context.Background(), employee.Employee{
		Name:         name,
		Email:        fmt.Sprintf("employee-%d@teamspace.test", emailSeq.Add(1)),
		JobTitle:     jobTitle,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return created
}

// Company creates a company owned by owner, the same way company creation
// does: company row, owner binding and owner admin role.
func (e *Env) Company(t testing.TB, owner employee.Employee, name string) company.Company {
	t.Helper()
	ctx := context.Background()

	var created company.Company
	err := e.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = e.Companies.Create(txCtx, company.Company{Name: name, CreatedBy: owner.ID})
		if err != nil {
			return err
		}
		if err := e.Employees.AssignCompany(txCtx, owner.ID, created.ID); err != nil {
			return err
		}
		_, err = e.Roles.CreateOwner(txCtx, created.ID, owner.ID)
		return err
	})
	require.NoError(t, err)
	return created
}

// Join binds emp to the company with the given role.
func (e *Env) Join(t testing.TB, emp employee.Employee, companyID string, r role.Role) employee.Employee {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.Employees.AssignCompany(ctx, emp.ID, companyID))
	_, err := e.Roles.Upsert(ctx, role.Assignment{CompanyID: companyID, EmployeeID: emp.ID, Role: r})
	require.NoError(t, err)

	joined, err := e.Employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	return joined
}

// Team creates a team in companyID with creator and members as members.
func (e *Env) Team(t testing.TB, companyID string, creator employee.Employee, members ...employee.Employee) team.Team {
	t.Helper()
	ctx := context.Background()

	created, err := e.Teams.Create(ctx, team.Team{Name: "Team " + creator.Name, CompanyID: companyID, CreatedBy: creator.ID})
	require.NoError(t, err)
	for _, m := range append([]employee.Employee{creator}, members...) {
		_, err := e.Teams.AddMember(ctx, created.ID, m.ID)
		require.NoError(t, err)
	}
	return created
}
