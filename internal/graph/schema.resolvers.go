package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.81

import (
	"context"
	"net/http"

	"petshop-be/internal/auth"
	"petshop-be/internal/graph/model"
	"petshop-be/internal/logger"
	"petshop-be/internal/transport"
	"petshop-be/internal/user"

	"go.uber.org/zap"
)

// Register is the resolver for the register field.
func (r *mutationResolver) Register(ctx context.Context, input model.RegisterInput) (*model.AuthPayload, error) {
	if err := r.allowStrict(ctx); err != nil {
		return nil, err
	}
	log := logger.FromCtx(ctx)

	token, p, err := r.UserSvc.Register(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		log.Warn("register failed", zap.String("email", input.Email), zap.Error(err))
		return nil, err
	}

	log.Info("user registered successfully", zap.String("user_id", p.ID))
	setAccessCookie(ctx, token)
	return &model.AuthPayload{Token: token, Profile: toGraphQLProfile(p)}, nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error) {
	if err := r.allowStrict(ctx); err != nil {
		return nil, err
	}

	token, p, err := r.UserSvc.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	setAccessCookie(ctx, token)
	return &model.AuthPayload{Token: token, Profile: toGraphQLProfile(p)}, nil
}

// UpdateProfile is the resolver for the updateProfile field.
func (r *mutationResolver) UpdateProfile(ctx context.Context, input model.UpdateProfileInput) (*model.Profile, error) {
	p, err := r.UserSvc.UpdateProfile(ctx, user.UpdateProfileParams{
		UserID:  sessionFrom(ctx).UserID,
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		return nil, err
	}
	return toGraphQLProfile(p), nil
}

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*model.Profile, error) {
	p, err := r.UserSvc.GetProfile(ctx, sessionFrom(ctx).UserID)
	if err != nil {
		return nil, err
	}
	return toGraphQLProfile(p), nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }

// setAccessCookie mirrors the token into the cookie the storefront reads.
func setAccessCookie(ctx context.Context, token string) {
	w := transport.GetResponseWriter(ctx)
	if w == nil {
		return
	}
	secure := false
	if req := transport.GetRequest(ctx); req != nil {
		secure = req.TLS != nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
