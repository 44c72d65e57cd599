package service

import (
	"context"
	"errors"

	"github.com/mmeshcher/cafe-order-system/internal/model"
	"github.com/mmeshcher/cafe-order-system/internal/repository"
	"github.com/mmeshcher/cafe-order-system/internal/validation"
)

// GetOrdersByUser возвращает заказы пользователя, новые первыми.
func (s *Service) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

// GetAllOrders возвращает все заказы, новые первыми. Админская операция.
func (s *Service) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.repo.ListOrders(ctx)
}

// GetOrder возвращает заказ, проверяя право доступа: владелец или админ.
func (s *Service) GetOrder(ctx context.Context, orderID, userID int64, role model.Role) (*model.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && order.UserID != userID {
		return nil, ErrAccessDenied
	}
	return order, nil
}

// UpdateOrderStatus переводит заказ в новый статус с проверкой машины
// состояний: Pending → Processing → Completed, Cancelled из Pending и
// Processing. Админская операция.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, next model.OrderStatus) error {
	if !validation.IsValidStatus(next) {
		return ErrInvalidStatus
	}

	allowedFrom := legalPredecessors(next)
	if len(allowedFrom) == 0 {
		return ErrIllegalTransition
	}

	updated, err := s.repo.UpdateOrderStatus(ctx, orderID, next, allowedFrom)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	// Перевод не применился: либо заказа нет, либо текущий статус не
	// допускает переход.
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return repository.ErrOrderNotFound
		}
		return err
	}
	return ErrIllegalTransition
}

func legalPredecessors(next model.OrderStatus) []model.OrderStatus {
	all := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	}

	var from []model.OrderStatus
	for _, s := range all {
		if s.CanTransitionTo(next) {
			from = append(from, s)
		}
	}
	return from
}
