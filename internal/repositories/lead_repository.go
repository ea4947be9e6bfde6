package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/vistaimoveis/brokerage-service/internal/models"
)

// LeadFilter narrows a dashboard lead listing.
type LeadFilter struct {
	Status         *models.LeadStatus
	AssignedUserID *uuid.UUID
}

type LeadRepository interface {
	Create(ctx context.Context, l *models.Lead) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	List(ctx context.Context, f LeadFilter) ([]*models.Lead, error)

	UpdateIfVersion(ctx context.Context, l *models.Lead, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lead) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type leadRepo struct {
	*BaseVersionedRepo[*models.Lead]
	db DB
}

func NewLeadRepository(db DB) LeadRepository {
	r := &leadRepo{db: db}
	selectStmt := baseSelectLead() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanLead)
	return r
}

func (r *leadRepo) Create(ctx context.Context, l *models.Lead) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO leads (
            id, name, email, phone, message, property_id,
            status, assigned_user_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		l.ID,
		l.Name,
		l.Email,
		l.Phone,
		l.Message,
		l.PropertyID,
		l.Status.String(),
		l.AssignedUserID,
	)
	return err
}

func (r *leadRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *leadRepo) List(ctx context.Context, f LeadFilter) ([]*models.Lead, error) {
	var conds []string
	var args []interface{}

	if f.Status != nil {
		args = append(args, f.Status.String())
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.AssignedUserID != nil {
		args = append(args, *f.AssignedUserID)
		conds = append(conds, fmt.Sprintf("assigned_user_id=$%d", len(args)))
	}

	sql := baseSelectLead()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leadRepo) UpdateIfVersion(ctx context.Context, l *models.Lead, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE leads SET
            name=$1, email=$2, phone=$3, message=$4, property_id=$5,
            status=$6, assigned_user_id=$7,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$8 AND row_version=$9
    `,
		l.Name, l.Email, l.Phone, l.Message, l.PropertyID,
		l.Status.String(), l.AssignedUserID,
		l.ID, expected,
	)
}

func (r *leadRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Lead) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *leadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectLead() string {
	return `
        SELECT
            id, name, email, phone, message, property_id,
            status, assigned_user_id,
            created_at, updated_at, row_version
        FROM leads
    `
}

func scanLead(row pgx.Row) (*models.Lead, error) {
	var l models.Lead
	var statusStr string
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Message,
		&l.PropertyID,
		&statusStr,
		&l.AssignedUserID,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if l.Status, err = models.ParseLeadStatus(statusStr); err != nil {
		return nil, err
	}
	return &l, nil
}
