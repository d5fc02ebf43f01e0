package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	env := fixtures.NewEnv()
	svc := NewEmployeeService(env.Employees)

	owner := env.Employee(t, "Owner", "CEO")
	acme := env.Company(t, owner, "Acme")
	colleague := env.Join(t, env.Employee(t, "Colleague", "Engineer"), acme.ID, role.RoleMember)
	loner := env.Employee(t, "Loner", "Freelancer")

	got, err := svc.GetByID(ctx, owner.ID, colleague.ID)
	require.NoError(t, err)
	assert.Equal(t, "Colleague", got.Name)

	self, err := svc.GetByID(ctx, loner.ID, loner.ID)
	require.NoError(t, err)
	assert.Equal(t, loner.ID, self.ID)

	_, err = svc.GetByID(ctx, loner.ID, colleague.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.GetByID(ctx, owner.ID, loner.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = svc.GetByID(ctx, owner.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
