package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.81

import (
	"context"

	"petshop-be/internal/graph/model"
	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

// RestockProduct is the resolver for the restockProduct field.
func (r *mutationResolver) RestockProduct(ctx context.Context, id string, quantity int) (*model.Product, error) {
	p, err := r.ProductSvc.Restock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product restocked",
		zap.String("product_id", p.ID),
		zap.Int("added", quantity),
		zap.Int("stock", p.Stock),
	)
	return toGraphQLProduct(p), nil
}

// Products is the resolver for the products field.
func (r *queryResolver) Products(ctx context.Context, filter *model.ProductFilter) ([]*model.Product, error) {
	products, err := r.ProductSvc.List(ctx, toProductQuery(filter))
	if err != nil {
		return nil, err
	}

	result := make([]*model.Product, 0, len(products))
	for _, p := range products {
		result = append(result, toGraphQLProduct(p))
	}
	return result, nil
}

// Product is the resolver for the product field.
func (r *queryResolver) Product(ctx context.Context, id string) (*model.Product, error) {
	p, err := r.ProductSvc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGraphQLProduct(p), nil
}
