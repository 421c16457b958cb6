package order

import (
	"context"
	"fmt"
)

// Service serves the order read/update API. It is a thin pass-through over
// the repository; order state transitions driven by payment callbacks live
// in the callback pipeline.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (Order, error) {
	orders, err := s.repo.GetOrders(ctx, &OrdersQuery{IDs: []int64{id}})
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	if len(orders) == 0 {
		return Order{}, ErrNotFound
	}
	return orders[0], nil
}

func (s *Service) GetOrders(ctx context.Context, query OrdersQuery) ([]Order, error) {
	orders, err := s.repo.GetOrders(ctx, &query)
	if err != nil {
		return nil, fmt.Errorf("filter orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus applies a manually requested status change.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (Status, error) {
	status, err := NewStatus(rawStatus)
	if err != nil {
		return "", fmt.Errorf("parse status: %w", err)
	}
	if status == StatusUnknown {
		return "", fmt.Errorf("parse status: unknown is not assignable")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return "", fmt.Errorf("update order %d: %w", orderID, err)
	}
	return status, nil
}
