package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/teamspace-backend-go/internal/pkg/database"
)

type CompanyServiceImpl struct {
	tx           database.Transactor
	companyRepo  company.CompanyRepository
	employeeRepo employee.EmployeeRepository
	roleRepo     role.RoleRepository
	evaluator    access.Evaluator
}

func NewCompanyService(
	tx database.Transactor,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	roleRepo role.RoleRepository,
	evaluator access.Evaluator,
) company.CompanyService {
	return &CompanyServiceImpl{
		tx:           tx,
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		evaluator:    evaluator,
	}
}

// Create implements company.CompanyService. The company row, the creator's
// company binding and the owner admin assignment commit together.
func (c *CompanyServiceImpl) Create(ctx context.Context, actorID string, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	var created company.Company
	err := c.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		creator, err := c.employeeRepo.GetByID(txCtx, actorID)
		if err != nil {
			return err
		}
		if creator.CompanyID != nil {
			return employee.ErrEmployeeAlreadyInCompany
		}

		created, err = c.companyRepo.Create(txCtx, company.Company{
			Name:         strings.TrimSpace(req.Name),
			TaxID:        req.TaxID,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			Address:      req.Address,
			CreatedBy:    creator.ID,
		})
		if err != nil {
			return err
		}

		if err := c.employeeRepo.AssignCompany(txCtx, creator.ID, created.ID); err != nil {
			return err
		}

		if _, err := c.roleRepo.CreateOwner(txCtx, created.ID, creator.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("company created", "company_id", created.ID, "owner_id", actorID)
	return company.ToResponse(created), nil
}

// GetByID implements company.CompanyService.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, actorID, id string) (company.CompanyResponse, error) {
	if err := c.evaluator.Authorize(ctx, actorID, access.Company(id), access.ActionCompanyRead); err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := c.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.ToResponse(found), nil
}

// Delete implements company.CompanyService.
func (c *CompanyServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	if err := c.evaluator.Authorize(ctx, actorID, access.Company(id), access.ActionCompanyDelete); err != nil {
		return err
	}

	if err := c.companyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	slog.Info("company deleted", "company_id", id, "actor_id", actorID)
	return nil
}

// ListEmployees implements company.CompanyService.
func (c *CompanyServiceImpl) ListEmployees(ctx context.Context, actorID, companyID string) ([]employee.EmployeeResponse, error) {
	if err := c.evaluator.Authorize(ctx, actorID, access.Company(companyID), access.ActionEmployeeList); err != nil {
		return nil, err
	}

	employees, err := c.employeeRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return employee.ToResponses(employees), nil
}
