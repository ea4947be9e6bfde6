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

// VisitFilter narrows a dashboard visit listing.
type VisitFilter struct {
	Status         *models.VisitStatus
	PropertyID     *uuid.UUID
	AssignedUserID *uuid.UUID
}

type VisitRepository interface {
	Create(ctx context.Context, v *models.Visit) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error)
	List(ctx context.Context, f VisitFilter) ([]*models.Visit, error)

	UpdateIfVersion(ctx context.Context, v *models.Visit, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Visit) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type visitRepo struct {
	*BaseVersionedRepo[*models.Visit]
	db DB
}

func NewVisitRepository(db DB) VisitRepository {
	r := &visitRepo{db: db}
	selectStmt := baseSelectVisit() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanVisit)
	return r
}

func (r *visitRepo) Create(ctx context.Context, v *models.Visit) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO visits (
            id, property_id, visitor_name, visitor_email, visitor_phone,
            scheduled_date, time_slot, status, assigned_user_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW(), 1)
    `,
		v.ID,
		v.PropertyID,
		v.VisitorName,
		v.VisitorEmail,
		v.VisitorPhone,
		v.ScheduledDate,
		v.TimeSlot.String(),
		v.Status.String(),
		v.AssignedUserID,
	)
	return err
}

func (r *visitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *visitRepo) List(ctx context.Context, f VisitFilter) ([]*models.Visit, error) {
	var conds []string
	var args []interface{}

	if f.Status != nil {
		args = append(args, f.Status.String())
		conds = append(conds, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.PropertyID != nil {
		args = append(args, *f.PropertyID)
		conds = append(conds, fmt.Sprintf("property_id=$%d", len(args)))
	}
	if f.AssignedUserID != nil {
		args = append(args, *f.AssignedUserID)
		conds = append(conds, fmt.Sprintf("assigned_user_id=$%d", len(args)))
	}

	sql := baseSelectVisit()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY scheduled_date, created_at"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *visitRepo) UpdateIfVersion(ctx context.Context, v *models.Visit, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE visits SET
            visitor_name=$1, visitor_email=$2, visitor_phone=$3,
            scheduled_date=$4, time_slot=$5, status=$6, assigned_user_id=$7,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$8 AND row_version=$9
    `,
		v.VisitorName, v.VisitorEmail, v.VisitorPhone,
		v.ScheduledDate, v.TimeSlot.String(), v.Status.String(), v.AssignedUserID,
		v.ID, expected,
	)
}

func (r *visitRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Visit) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *visitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM visits WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectVisit() string {
	return `
        SELECT
            id, property_id, visitor_name, visitor_email, visitor_phone,
            scheduled_date, time_slot, status, assigned_user_id,
            created_at, updated_at, row_version
        FROM visits
    `
}

func scanVisit(row pgx.Row) (*models.Visit, error) {
	var v models.Visit
	var slotStr, statusStr string
	err := row.Scan(
		&v.ID,
		&v.PropertyID,
		&v.VisitorName,
		&v.VisitorEmail,
		&v.VisitorPhone,
		&v.ScheduledDate,
		&slotStr,
		&statusStr,
		&v.AssignedUserID,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if v.TimeSlot, err = models.ParseTimeSlot(slotStr); err != nil {
		return nil, err
	}
	if v.Status, err = models.ParseVisitStatus(statusStr); err != nil {
		return nil, err
	}
	return &v, nil
}
