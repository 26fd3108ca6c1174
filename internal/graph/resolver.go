package graph

import (
	"context"
	"time"

	"petshop-be/internal/cart"
	"petshop-be/internal/middleware"
	"petshop-be/internal/notification"
	"petshop-be/internal/order"
	"petshop-be/internal/product"
	"petshop-be/internal/transport"
	"petshop-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
)

// This file will not be regenerated automatically.
//
// It serves as dependency injection for your app, add any dependencies you require here.

type Resolver struct {
	ProductSvc   product.Service
	Catalog      cart.ProductReader
	Carts        cart.Repository
	Workflow     *order.Workflow
	OrderSvc     order.Service
	Notifier     *notification.Dispatcher
	UserSvc      user.Service
	Limiter      *middleware.RateLimiter
	Location     *time.Location
	EnforceStock bool
}

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return NewExecutableSchema(Config{
		Resolvers: r,
		Directives: DirectiveRoot{
			Auth: AuthDirective,
		},
	})
}

// NewServer is the /query handler with the shop's error presentation.
func NewServer(r *Resolver) *handler.Server {
	srv := handler.NewDefaultServer(NewSchema(r))
	srv.SetErrorPresenter(ErrorPresenter)
	srv.SetRecoverFunc(RecoverFunc)
	return srv
}

func (r *Resolver) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// allowStrict applies the strict rate limit tier to the current request.
// Resolvers invoked without an HTTP request, as in tests, are not limited.
func (r *Resolver) allowStrict(ctx context.Context) error {
	if r.Limiter == nil {
		return nil
	}
	req := transport.GetRequest(ctx)
	if req == nil {
		return nil
	}
	if !r.Limiter.AllowStrict(req) {
		return ErrRateLimited
	}
	return nil
}
