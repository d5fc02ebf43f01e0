package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, newCompany Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	// Delete removes the company. Teams, chats, documents, invites and role
	// assignments cascade; employees are detached.
	Delete(ctx context.Context, id string) error
}
