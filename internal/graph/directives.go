package graph

import (
	"context"

	"petshop-be/internal/auth"
	"petshop-be/internal/graph/model"

	"github.com/99designs/gqlgen/graphql"
)

func AuthDirective(ctx context.Context, obj interface{}, next graphql.Resolver, role *model.Role) (res interface{}, err error) {
	session, ok := auth.SessionFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	requiredRole := model.RoleUser
	if role != nil {
		requiredRole = *role
	}
	if requiredRole == model.RoleAdmin && !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return next(ctx)
}

// sessionFrom is only called from fields guarded by @auth.
func sessionFrom(ctx context.Context) auth.Session {
	s, _ := auth.SessionFrom(ctx)
	return s
}
