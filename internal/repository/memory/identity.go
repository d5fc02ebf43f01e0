package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	e.Email = strings.ToLower(e.Email)
	for _, existing := range d.employees {
		if existing.Email == e.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}

	e.ID = d.nextID()
	e.CreatedAt = r.store.timestamp()
	e.UpdatedAt = e.CreatedAt
	d.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.store.acquire(ctx)()

	e, ok := r.store.data.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	defer r.store.acquire(ctx)()

	email = strings.ToLower(email)
	for _, e := range r.store.data.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) AssignCompany(ctx context.Context, employeeID, companyID string) error {
	defer r.store.acquire(ctx)()
	d := r.store.data

	e, ok := d.employees[employeeID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if e.CompanyID != nil {
		return employee.ErrEmployeeAlreadyInCompany
	}
	if _, ok := d.companies[companyID]; !ok {
		return company.ErrCompanyNotFound
	}

	e.CompanyID = &companyID
	e.UpdatedAt = r.store.timestamp()
	d.employees[employeeID] = e
	return nil
}

func (r *employeeRepository) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	defer r.store.acquire(ctx)()

	var out []employee.Employee
	for _, e := range r.store.data.employees {
		if e.BelongsTo(companyID) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type companyRepository struct {
	store *Store
}

func NewCompanyRepository(store *Store) company.CompanyRepository {
	return &companyRepository{store: store}
}

func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.employees[c.CreatedBy]; !ok {
		return company.Company{}, employee.ErrEmployeeNotFound
	}

	c.ID = d.nextID()
	c.CreatedAt = r.store.timestamp()
	c.UpdatedAt = c.CreatedAt
	d.companies[c.ID] = c
	return c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	defer r.store.acquire(ctx)()

	c, ok := r.store.data.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

// Delete mirrors the schema's cascades: owned rows go, employees are
// detached.
func (r *companyRepository) Delete(ctx context.Context, id string) error {
	defer r.store.acquire(ctx)()
	d := r.store.data

	if _, ok := d.companies[id]; !ok {
		return company.ErrCompanyNotFound
	}
	delete(d.companies, id)

	for eid, e := range d.employees {
		if e.BelongsTo(id) {
			e.CompanyID = nil
			d.employees[eid] = e
		}
	}
	for k, a := range d.roles {
		if a.CompanyID == id {
			delete(d.roles, k)
		}
	}
	for iid, c := range d.invites {
		if c.CompanyID == id {
			delete(d.invites, iid)
		}
	}
	for tid, t := range d.teams {
		if t.CompanyID == id {
			d.deleteTeam(tid)
		}
	}
	for docID, doc := range d.documents {
		if doc.CompanyID == id {
			d.deleteDocument(docID)
		}
	}
	for cid, c := range d.chats {
		if c.CompanyID == id {
			d.deleteChat(cid)
		}
	}
	return nil
}

type roleRepository struct {
	store *Store
}

func NewRoleRepository(store *Store) role.RoleRepository {
	return &roleRepository{store: store}
}

func (r *roleRepository) CreateOwner(ctx context.Context, companyID, employeeID string) (role.Assignment, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	key := pairKey{companyID, employeeID}
	if _, exists := d.roles[key]; exists {
		return role.Assignment{}, role.ErrOwnerRoleImmutable
	}
	for _, a := range d.roles {
		if a.CompanyID == companyID && a.IsOwner {
			return role.Assignment{}, role.ErrOwnerRoleImmutable
		}
	}

	now := r.store.timestamp()
	a := role.Assignment{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Role:       role.RoleAdmin,
		IsOwner:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	d.roles[key] = a
	return a, nil
}

func (r *roleRepository) Upsert(ctx context.Context, a role.Assignment) (role.Assignment, error) {
	defer r.store.acquire(ctx)()
	d := r.store.data

	now := r.store.timestamp()
	key := pairKey{a.CompanyID, a.EmployeeID}
	if existing, ok := d.roles[key]; ok {
		if existing.IsOwner {
			return role.Assignment{}, role.ErrOwnerRoleImmutable
		}
		existing.Role = a.Role
		existing.AssignedBy = a.AssignedBy
		existing.UpdatedAt = now
		d.roles[key] = existing
		return existing, nil
	}

	a.IsOwner = false
	a.CreatedAt = now
	a.UpdatedAt = now
	d.roles[key] = a
	return a, nil
}

func (r *roleRepository) Get(ctx context.Context, companyID, employeeID string) (role.Assignment, error) {
	defer r.store.acquire(ctx)()

	a, ok := r.store.data.roles[pairKey{companyID, employeeID}]
	if !ok {
		return role.Assignment{}, role.ErrAssignmentNotFound
	}
	return a, nil
}

func (r *roleRepository) ListByCompany(ctx context.Context, companyID string) ([]role.Assignment, error) {
	defer r.store.acquire(ctx)()

	var out []role.Assignment
	for _, a := range r.store.data.roles {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsOwner != out[j].IsOwner {
			return out[i].IsOwner
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}
