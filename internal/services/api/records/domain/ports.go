package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ListMine(ctx context.Context, userID string, year *int) (ListOut, error)
	Submit(ctx context.Context, userID string, in SubmitIn) (SubmitOut, error)
	Delete(ctx context.Context, userID string, recordID int64) error
}
