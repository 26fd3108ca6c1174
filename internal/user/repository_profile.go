package user

import (
	"context"
	"database/sql"
	"errors"

	"petshop-be/internal/logger"

	"go.uber.org/zap"
)

const profileColumns = `p.id, u.email, p.name, p.phone, p.address, u.role, p.created_at, p.updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	var p Profile
	var phone, address sql.NullString
	if err := row.Scan(
		&p.ID, &p.Email, &p.Name, &phone, &address, &p.Role, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if address.Valid {
		p.Address = &address.String
	}
	return &p, nil
}

// GetProfile fetches a user's profile by user ID.
func (r *repository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProfile"),
		zap.String("user_id", userID),
	)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		INNER JOIN users u ON p.id = u.id
		WHERE p.id = $1
	`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("profile not found")
			return nil, ErrProfileNotFound
		}
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	log.Debug("profile fetched successfully")
	return p, nil
}

// CreateProfile creates the profile row for an existing user.
func (r *repository) CreateProfile(ctx context.Context, p *Profile) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProfile"),
		zap.String("user_id", p.ID),
	)

	query := `
		INSERT INTO profiles (id, name, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Phone, p.Address).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile created successfully")
	return p, nil
}

// UpdateProfile changes the non-nil fields of params.
func (r *repository) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", params.UserID),
	)

	query := `
		UPDATE profiles
		SET
			name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			address = COALESCE($3, address),
			updated_at = NOW()
		WHERE id = $4
	`
	res, err := r.db.ExecContext(ctx, query, params.Name, params.Phone, params.Address, params.UserID)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProfileNotFound
	}

	log.Info("profile updated successfully")
	return r.GetProfile(ctx, params.UserID)
}
