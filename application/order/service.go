/*
Package order orchestrates the order lifecycle.

The application service owns process logic only: it parses inbound
values into typed domain inputs, runs the domain operations inside a
unit of work, and maps aggregates back to response views. All state
rules live in the domain; all persistence details live behind the
repository interfaces.

Delivery is the one transition with side effects. When an order enters
DELIVERED for the first time, the same transaction records the sale
snapshot and updates product stock, so a crash or a conflict can never
leave a delivered order without its sale or a sale without its stock
movement.
*/
package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	saleapp "huerto/application/sale"
	"huerto/domain/order"
	"huerto/domain/shared"
	"huerto/pkg/errors"
	"huerto/pkg/logger"
)

// ApplicationService coordinates order business processes.
type ApplicationService struct {
	orderRepo   order.Repository
	saleCreator *saleapp.Creator
	uow         shared.UnitOfWork
}

func NewApplicationService(
	orderRepo order.Repository,
	saleCreator *saleapp.Creator,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:   orderRepo,
		saleCreator: saleCreator,
		uow:         uow,
	}
}

// CreateOrder places a new order owned by the authenticated principal.
func (s *ApplicationService) CreateOrder(ctx context.Context, req CreateOrderRequest, principal shared.Principal) (*OrderResponse, error) {
	if principal.IsZero() {
		return nil, errors.Unauthorized("authentication required")
	}
	if req.Total == nil {
		return nil, errors.Validation("order total is required")
	}

	currency := currencyOrDefault(req.Currency)
	o, err := order.NewOrder(
		principal.UserID,
		toItemRequests(req.Items, currency),
		toTotals(req, currency),
		toCustomer(req.Customer),
		req.PaymentMethod,
		principal.Actor(),
	)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order created",
		zap.String("order_id", o.ID()),
		zap.String("user_id", o.UserID()),
		zap.Int("items", len(req.Items)),
	)
	return ToOrderResponse(o), nil
}

// UpdateOrderStatus moves an order to the requested status. The status
// string is parsed into a typed value before anything else happens, so
// an unknown status is rejected with no state change at all.
//
// On the first transition into DELIVERED the closure also registers
// the purchase against each referenced product and records the sale.
// The closure is retried once on a concurrency conflict; the retry
// reloads the order, so a delivery that already happened is observed
// and the side effects are not repeated.
func (s *ApplicationService) UpdateOrderStatus(ctx context.Context, orderID, statusValue string, principal shared.Principal) (*OrderResponse, error) {
	if principal.IsZero() {
		return nil, errors.Unauthorized("authentication required")
	}

	newStatus, err := order.ParseStatus(statusValue)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	var o *order.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		oldStatus := o.Status()
		if err := o.ApplyStatusChange(newStatus, principal.Actor()); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		if newStatus == order.StatusDelivered && oldStatus != order.StatusDelivered {
			if err := s.saleCreator.RecordDelivery(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(newStatus)),
		zap.String("changed_by", principal.Actor()),
	)
	return ToOrderResponse(o), nil
}

// GetOrder returns one order by id.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return ToOrderResponse(o), nil
}

// GetAllOrders returns every order, newest first.
func (s *ApplicationService) GetAllOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toOrderResponses(orders), nil
}

// GetUserOrders returns the orders owned by one user, newest first.
func (s *ApplicationService) GetUserOrders(ctx context.Context, userID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toOrderResponses(orders), nil
}

// GetOrdersByStatus returns the orders currently in the given status.
func (s *ApplicationService) GetOrdersByStatus(ctx context.Context, statusValue string) ([]*OrderResponse, error) {
	status, err := order.ParseStatus(statusValue)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	orders, err := s.orderRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toOrderResponses(orders), nil
}

// GetOrdersByDateRange returns the orders created inside the window.
func (s *ApplicationService) GetOrdersByDateRange(ctx context.Context, start, end time.Time) ([]*OrderResponse, error) {
	if end.Before(start) {
		return nil, errors.Validation("end date must not be before start date")
	}
	orders, err := s.orderRepo.FindByCreatedAtBetween(ctx, start, end)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toOrderResponses(orders), nil
}

// DeleteOrder physically removes an order. Administrative operation:
// the order's sale, if any, is left untouched because sales record
// completed commerce and never roll back.
func (s *ApplicationService) DeleteOrder(ctx context.Context, orderID string, principal shared.Principal) error {
	if principal.IsZero() {
		return errors.Unauthorized("authentication required")
	}

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.orderRepo.Delete(ctx, orderID)
	})
	if err != nil {
		return errors.FromDomainError(err)
	}

	logger.Info("order deleted",
		zap.String("order_id", orderID),
		zap.String("deleted_by", principal.Actor()),
	)
	return nil
}
