package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, rt *models.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes tokens past their expiry or already revoked;
	// returns the number of rows cleaned up.
	DeleteExpired(ctx context.Context) (int64, error)
}

type refreshTokenRepo struct {
	db DB
}

func NewRefreshTokenRepository(db DB) RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Create(ctx context.Context, rt *models.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO refresh_tokens (
            id, user_id, token, ip_address, expires_at, created_at, revoked
        ) VALUES ($1,$2,$3,$4,$5, NOW(), false)
    `,
		rt.ID, rt.UserID, rt.Token, rt.IPAddress, rt.ExpiresAt,
	)
	return err
}

func (r *refreshTokenRepo) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, user_id, token, ip_address, expires_at, created_at, revoked
        FROM refresh_tokens WHERE token=$1
    `, token)

	var rt models.RefreshToken
	err := row.Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.IPAddress,
		&rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepo) Revoke(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked=true WHERE token=$1`, token)
	return err
}

func (r *refreshTokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked=true WHERE user_id=$1`, userID)
	return err
}

func (r *refreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW() OR revoked`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
