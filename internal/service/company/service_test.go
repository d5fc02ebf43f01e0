package company

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(env *fixtures.Env) company.CompanyService {
	return NewCompanyService(env.Tx, env.Companies, env.Employees, env.Roles, env.Evaluator)
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creator becomes the single owner admin", func(t *testing.T) {
		env := fixtures.NewEnv()
		svc := newTestService(env)
		creator := env.Employee(t, "Ayu", "Founder")

		created, err := svc.Create(ctx, creator.ID, company.CreateCompanyRequest{Name: "  Acme  "})
		require.NoError(t, err)
		assert.Equal(t, "Acme", created.Name)
		assert.Equal(t, creator.ID, created.CreatedBy)

		assignments, err := env.Roles.ListByCompany(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, creator.ID, assignments[0].EmployeeID)
		assert.Equal(t, role.RoleAdmin, assignments[0].Role)
		assert.True(t, assignments[0].IsOwner)

		reloaded, err := env.Employees.GetByID(ctx, creator.ID)
		require.NoError(t, err)
		assert.True(t, reloaded.BelongsTo(created.ID))
	})

	t.Run("creator already in a company", func(t *testing.T) {
		env := fixtures.NewEnv()
		svc := newTestService(env)
		creator := env.Employee(t, "Budi", "CEO")
		env.Company(t, creator, "First")

		_, err := svc.Create(ctx, creator.ID, company.CreateCompanyRequest{Name: "Second"})
		assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInCompany)
	})

	t.Run("validation error", func(t *testing.T) {
		env := fixtures.NewEnv()
		svc := newTestService(env)
		creator := env.Employee(t, "Citra", "CEO")

		_, err := svc.Create(ctx, creator.ID, company.CreateCompanyRequest{Name: " "})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "company_name")
	})
}

func TestCompanyService_Delete(t *testing.T) {
	ctx := context.Background()
	env := fixtures.NewEnv()
	svc := newTestService(env)

	owner := env.Employee(t, "Owner", "CEO")
	acme := env.Company(t, owner, "Acme")
	member := env.Join(t, env.Employee(t, "Member", "Engineer"), acme.ID, role.RoleMember)
	env.Team(t, acme.ID, member)

	err := svc.Delete(ctx, member.ID, acme.ID)
	require.ErrorIs(t, err, access.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID, acme.ID))

	_, err = env.Companies.GetByID(ctx, acme.ID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	detached, err := env.Employees.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.CompanyID)

	teams, err := env.Teams.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, teams)

	err = svc.Delete(ctx, owner.ID, acme.ID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_ReadAccess(t *testing.T) {
	ctx := context.Background()
	env := fixtures.NewEnv()
	svc := newTestService(env)

	owner := env.Employee(t, "Owner", "CEO")
	acme := env.Company(t, owner, "Acme")
	member := env.Join(t, env.Employee(t, "Member", "Engineer"), acme.ID, role.RoleMember)
	outsider := env.Employee(t, "Outsider", "Engineer")

	got, err := svc.GetByID(ctx, member.ID, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	employees, err := svc.ListEmployees(ctx, member.ID, acme.ID)
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	_, err = svc.GetByID(ctx, outsider.ID, acme.ID)
	assert.ErrorIs(t, err, access.ErrNotCompanyMember)

	_, err = svc.ListEmployees(ctx, outsider.ID, acme.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)
}
