package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.81

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop-be/internal/graph/model"
	"petshop-be/internal/notification"
	"petshop-be/internal/order"
)

// PlaceOrder is the resolver for the placeOrder field.
func (r *mutationResolver) PlaceOrder(ctx context.Context, input model.PlaceOrderInput) (*model.PlaceOrderPayload, error) {
	if err := r.allowStrict(ctx); err != nil {
		return nil, err
	}
	info, err := r.customerInfo(input)
	if err != nil {
		return nil, err
	}

	ledger, err := r.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	o, err := r.Workflow.Submit(ctx, info, snap)
	if err != nil {
		return nil, err
	}

	// the order exists now; a client disconnect must not skip the notifications
	results := []notification.Result{}
	if r.Notifier != nil {
		results = r.Notifier.Dispatch(context.WithoutCancel(ctx), o)
	}

	return &model.PlaceOrderPayload{
		Order:         toGraphQLOrder(o),
		Notifications: toGraphQLNotifications(results),
	}, nil
}

// UpdateOrderStatus is the resolver for the updateOrderStatus field.
func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	st, err := order.ParseStatus(status.String())
	if err != nil {
		return nil, err
	}

	o, err := r.OrderSvc.UpdateOrderStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrder(o), nil
}

// MyOrders is the resolver for the myOrders field.
func (r *queryResolver) MyOrders(ctx context.Context) ([]*model.Order, error) {
	orders, err := r.OrderSvc.ListMine(ctx, sessionFrom(ctx).UserID)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrders(orders), nil
}

// Order is the resolver for the order field.
func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	o, err := r.OrderSvc.GetOrderDetail(ctx, sessionFrom(ctx), id)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrder(o), nil
}

// AdminOrders is the resolver for the adminOrders field.
func (r *queryResolver) AdminOrders(ctx context.Context, filter *model.OrderFilter) ([]*model.Order, error) {
	var f order.ListFilter
	if filter != nil {
		if filter.Status != nil {
			st, err := order.ParseStatus(filter.Status.String())
			if err != nil {
				return nil, err
			}
			f.Status = &st
		}
		if filter.Limit != nil {
			f.Limit = *filter.Limit
		}
		if filter.Page != nil {
			f.Page = *filter.Page
		}
	}

	orders, err := r.OrderSvc.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrders(orders), nil
}

// customerInfo reads the delivery date as a calendar day in the shop's zone.
func (r *Resolver) customerInfo(input model.PlaceOrderInput) (order.CustomerInfo, error) {
	delivery, err := time.ParseInLocation(deliveryDateLayout, strings.TrimSpace(input.DeliveryDate), r.location())
	if err != nil {
		return order.CustomerInfo{}, fmt.Errorf("%w: expected YYYY-MM-DD", order.ErrInvalidDeliveryDate)
	}
	return order.CustomerInfo{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		PaymentMethod: order.PaymentMethod(strings.ToLower(input.PaymentMethod.String())),
		DeliveryDate:  delivery,
		Notes:         input.Notes,
	}, nil
}
