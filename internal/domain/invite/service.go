package invite

import "context"

type InviteService interface {
	Issue(ctx context.Context, actorID, companyID string) (InviteResponse, error)
	Consume(ctx context.Context, consumerID string, req ConsumeInviteRequest) (ConsumeInviteResponse, error)
	List(ctx context.Context, actorID, companyID string) ([]InviteResponse, error)
	SweepExpired(ctx context.Context) (int64, error)
}
