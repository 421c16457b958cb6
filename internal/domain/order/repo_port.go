package order

import "context"

//go:generate mockgen -source=repo_port.go -destination=mock_repo_test.go -package=order

// Repo reads and updates order rows.
type Repo interface {
	GetOrders(ctx context.Context, query *OrdersQuery) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
}
