package order

import (
	"context"
	"time"

	"petshop-be/internal/auth"
	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetOrderDetail(ctx context.Context, session auth.Session, orderID string) (*Order, error)
	ListMine(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status Status) (*Order, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// GetOrderDetail returns the order to its owner or an admin.
func (s *service) GetOrderDetail(ctx context.Context, session auth.Session, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() && o.UserID != session.UserID {
		// do not reveal other users' orders
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.ListAll(ctx, filter)
}

func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(status) {
		log.Warn("rejected status transition", zap.String("from", string(o.Status)))
		return nil, ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, o.Status, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated", zap.String("from", string(o.Status)))
	o.Status = status
	o.UpdatedAt = s.now()
	return o, nil
}
