package role

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleService_Assign(t *testing.T) {
	ctx := context.Background()
	env := fixtures.NewEnv()
	svc := NewRoleService(env.Tx, env.Roles, env.Employees, env.Evaluator)

	owner := env.Employee(t, "Owner", "CEO")
	acme := env.Company(t, owner, "Acme")
	member := env.Join(t, env.Employee(t, "Member", "Engineer"), acme.ID, role.RoleMember)
	other := env.Join(t, env.Employee(t, "Other", "Designer"), acme.ID, role.RoleMember)
	outsider := env.Employee(t, "Outsider", "Engineer")

	t.Run("admin promotes a member", func(t *testing.T) {
		got, err := svc.Assign(ctx, owner.ID, acme.ID, member.ID, role.AssignRoleRequest{Role: "admin"})
		require.NoError(t, err)
		assert.Equal(t, role.RoleAdmin, got.Role)

		stored, err := env.Roles.Get(ctx, acme.ID, member.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsAdmin())
		require.NotNil(t, stored.AssignedBy)
		assert.Equal(t, owner.ID, *stored.AssignedBy)
	})

	t.Run("promoted admin can demote back", func(t *testing.T) {
		_, err := svc.Assign(ctx, member.ID, acme.ID, member.ID, role.AssignRoleRequest{Role: "member"})
		require.NoError(t, err)
	})

	t.Run("member cannot assign", func(t *testing.T) {
		_, err := svc.Assign(ctx, other.ID, acme.ID, member.ID, role.AssignRoleRequest{Role: "admin"})
		assert.ErrorIs(t, err, access.ErrAdminRequired)
	})

	t.Run("owner role is immutable", func(t *testing.T) {
		_, err := svc.Assign(ctx, owner.ID, acme.ID, owner.ID, role.AssignRoleRequest{Role: "member"})
		assert.ErrorIs(t, err, role.ErrOwnerRoleImmutable)

		stored, err := env.Roles.Get(ctx, acme.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsAdmin())
		assert.True(t, stored.IsOwner)
	})

	t.Run("target outside the company", func(t *testing.T) {
		_, err := svc.Assign(ctx, owner.ID, acme.ID, outsider.ID, role.AssignRoleRequest{Role: "member"})
		assert.ErrorIs(t, err, role.ErrTargetNotInCompany)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Assign(ctx, owner.ID, acme.ID, other.ID, role.AssignRoleRequest{Role: "superuser"})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestRoleService_List(t *testing.T) {
	ctx := context.Background()
	env := fixtures.NewEnv()
	svc := NewRoleService(env.Tx, env.Roles, env.Employees, env.Evaluator)

	owner := env.Employee(t, "Owner", "CEO")
	acme := env.Company(t, owner, "Acme")
	member := env.Join(t, env.Employee(t, "Member", "Engineer"), acme.ID, role.RoleMember)

	list, err := svc.List(ctx, owner.ID, acme.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, owner.ID, list[0].EmployeeID)

	_, err = svc.List(ctx, member.ID, acme.ID)
	assert.ErrorIs(t, err, access.ErrForbidden)

	own, err := svc.Get(ctx, member.ID, acme.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, role.RoleMember, own.Role)
}
