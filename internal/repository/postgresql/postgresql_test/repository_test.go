//go:build integration

package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/chat"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/invite"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/team"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var emailSeq atomic.Int64

func createEmployee(t *testing.T, db *database.DB, name string) employee.Employee {
	t.Helper()
	created, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		Name:         name,
		Email:        fmt.Sprintf("pg-%d@teamspace.test", emailSeq.Add(1)),
		JobTitle:     "Manager",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return created
}

func createCompany(t *testing.T, db *database.DB, owner employee.Employee) company.Company {
	t.Helper()
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)

	var created company.Company
	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = postgresql.NewCompanyRepository(db).Create(txCtx, company.Company{Name: "Acme", CreatedBy: owner.ID})
		if err != nil {
			return err
		}
		if err := postgresql.NewEmployeeRepository(db).AssignCompany(txCtx, owner.ID, created.ID); err != nil {
			return err
		}
		_, err = postgresql.NewRoleRepository(db).CreateOwner(txCtx, created.ID, owner.ID)
		return err
	})
	require.NoError(t, err)
	return created
}

func TestTransactor_RollbackAndNesting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)
	employees := postgresql.NewEmployeeRepository(db)
	owner := createEmployee(t, db, "Ayu")

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := postgresql.NewCompanyRepository(db).Create(txCtx, company.Company{Name: "Ghost", CreatedBy: owner.ID})
		require.NoError(t, err)
		require.NoError(t, employees.AssignCompany(txCtx, owner.ID, created.ID))

		// A nested call joins the outer transaction.
		return tx.WithinTransaction(txCtx, func(context.Context) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	reloaded, err := employees.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CompanyID, "assignment rolled back with the transaction")
}

func TestEmployeeRepository_AssignCompanyOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(db)

	owner := createEmployee(t, db, "Budi")
	acme := createCompany(t, db, owner)

	err := employees.AssignCompany(ctx, owner.ID, acme.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeAlreadyInCompany)

	_, err = employees.Create(ctx, employee.Employee{Name: "Dup", Email: owner.Email, JobTitle: "x", PasswordHash: "x"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestRoleRepository_OwnerImmutable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	roles := postgresql.NewRoleRepository(db)

	owner := createEmployee(t, db, "Citra")
	acme := createCompany(t, db, owner)

	_, err := roles.Upsert(ctx, role.Assignment{CompanyID: acme.ID, EmployeeID: owner.ID, Role: role.RoleMember})
	assert.ErrorIs(t, err, role.ErrOwnerRoleImmutable)

	got, err := roles.Get(ctx, acme.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOwner)
	assert.Equal(t, role.RoleAdmin, got.Role)
}

func TestInviteRepository_ConcurrentConsume(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	invites := postgresql.NewInviteRepository(db)

	owner := createEmployee(t, db, "Dewi")
	acme := createCompany(t, db, owner)
	now := time.Now().UTC()

	code, err := invites.Create(ctx, invite.InviteCode{
		Token: "INV123", CompanyID: acme.ID, CreatedBy: owner.ID,
		ExpiresAt: now.Add(time.Hour), IsActive: true,
	})
	require.NoError(t, err)

	const contenders = 6
	consumers := make([]employee.Employee, contenders)
	for i := range consumers {
		consumers[i] = createEmployee(t, db, fmt.Sprintf("c%d", i))
	}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for _, c := range consumers {
		wg.Add(1)
		go func(consumerID string) {
			defer wg.Done()
			_, err := invites.MarkConsumed(ctx, code.ID, consumerID, now)
			if err == nil {
				wins.Add(1)
				return
			}
			assert.ErrorIs(t, err, invite.ErrInviteAlreadyUsed)
		}(c.ID)
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())

	expired, err := invites.Create(ctx, invite.InviteCode{
		Token: "OLD999", CompanyID: acme.ID, CreatedBy: owner.ID,
		ExpiresAt: now.Add(-time.Minute), IsActive: true,
	})
	require.NoError(t, err)

	swept, err := invites.DeactivateExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	reloaded, err := invites.GetByToken(ctx, expired.Token)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestDocumentRepository_Versions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	documents := postgresql.NewDocumentRepository(db)
	versions := postgresql.NewVersionRepository(db)

	owner := createEmployee(t, db, "Eka")
	acme := createCompany(t, db, owner)

	doc, err := documents.Create(ctx, document.Document{
		Title: "Roadmap", Content: "v1", Kind: document.KindAuthored,
		CompanyID: acme.ID, AuthorID: owner.ID, Status: document.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)

	_, changed, err := documents.IncrementVersionIfChanged(ctx, doc.ID, "v1")
	require.NoError(t, err)
	assert.False(t, changed)

	version, changed, err := documents.IncrementVersionIfChanged(ctx, doc.ID, "v2")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, version)

	for i, content := range []string{"v1", "v2"} {
		_, err := versions.Create(ctx, document.Version{DocumentID: doc.ID, Version: i + 1, Content: content, AuthorID: owner.ID})
		require.NoError(t, err)
	}
	_, err = versions.Create(ctx, document.Version{DocumentID: doc.ID, Version: 2, Content: "dup", AuthorID: owner.ID})
	assert.Error(t, err, "version numbers are unique per document")

	listed, err := versions.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].Version)
	assert.Equal(t, 2, listed[1].Version)
}

func TestChatRepositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	chats := postgresql.NewChatRepository(db)
	messages := postgresql.NewMessageRepository(db)
	teams := postgresql.NewTeamRepository(db)

	owner := createEmployee(t, db, "Fajar")
	acme := createCompany(t, db, owner)

	squad, err := teams.Create(ctx, team.Team{Name: "Core", CompanyID: acme.ID, CreatedBy: owner.ID})
	require.NoError(t, err)
	added, err := teams.AddMember(ctx, squad.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = teams.AddMember(ctx, squad.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = chats.Create(ctx, chat.Chat{Scope: chat.ScopeCompany, CompanyID: acme.ID, Name: "hidden", CreatedBy: owner.ID, IsActive: true})
	require.NoError(t, err)
	public, err := chats.Create(ctx, chat.Chat{Scope: chat.ScopeCompany, CompanyID: acme.ID, Name: "general", CreatedBy: owner.ID, IsActive: true, IsPublic: true})
	require.NoError(t, err)

	visible, err := chats.ListVisibleByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID, visible[0].ID)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := range 5 {
		_, err := messages.Create(ctx, chat.Message{
			ChatID: public.ID, Scope: chat.ScopeCompany, Content: fmt.Sprintf("m%d", i),
			AuthorID: owner.ID, AuthorName: owner.Name, SentAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	recent, err := messages.ListRecent(ctx, public.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "m4", recent[0].Content)
	assert.Equal(t, "m3", recent[1].Content)

	edited, err := messages.UpdateContent(ctx, recent[0].ID, "changed", base.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, edited.Edited)

	require.NoError(t, messages.Delete(ctx, recent[1].ID))
	_, err = messages.GetByID(ctx, recent[1].ID)
	assert.ErrorIs(t, err, chat.ErrMessageNotFound)
}

func TestCompanyRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createEmployee(t, db, "Gita")
	acme := createCompany(t, db, owner)
	squad, err := postgresql.NewTeamRepository(db).Create(ctx, team.Team{Name: "Core", CompanyID: acme.ID, CreatedBy: owner.ID})
	require.NoError(t, err)

	require.NoError(t, postgresql.NewCompanyRepository(db).Delete(ctx, acme.ID))

	_, err = postgresql.NewTeamRepository(db).GetByID(ctx, squad.ID)
	assert.ErrorIs(t, err, team.ErrTeamNotFound)

	reloaded, err := postgresql.NewEmployeeRepository(db).GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CompanyID)
}
