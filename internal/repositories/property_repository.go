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

// PropertyFilter narrows a listing query. Zero values mean "no constraint";
// numeric filters are inclusive lower bounds. Price windows are applied by
// the service layer, because the comparison target depends on the search's
// purpose (sale vs rent price).
type PropertyFilter struct {
	Status         *models.PropertyStatus
	OwnerID        *uuid.UUID
	City           string
	Purpose        *models.Purpose
	MinBedrooms    int
	MinGarageSpots int
}

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Search(ctx context.Context, f PropertyFilter) ([]*models.Property, error)

	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, owner_id, title, description, address, city, state, zip_code,
            latitude, longitude, bedrooms, bathrooms, garage_spots, area_m2,
            price_sale, price_rent, purpose, status,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18, NOW(), NOW(), 1)
    `,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Latitude,
		p.Longitude,
		p.Bedrooms,
		p.Bathrooms,
		p.GarageSpots,
		p.AreaM2,
		p.PriceSale,
		p.PriceRent,
		p.Purpose.String(),
		p.Status.String(),
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) Search(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != nil {
		add("status=$%d", f.Status.String())
	}
	if f.OwnerID != nil {
		add("owner_id=$%d", *f.OwnerID)
	}
	if f.City != "" {
		add("LOWER(city)=LOWER($%d)", f.City)
	}
	if f.Purpose != nil {
		// A SALE_AND_RENT listing satisfies both single-purpose searches.
		if *f.Purpose == models.PurposeSaleAndRent {
			add("purpose=$%d", f.Purpose.String())
		} else {
			add("(purpose=$%d OR purpose='SALE_AND_RENT')", f.Purpose.String())
		}
	}
	if f.MinBedrooms > 0 {
		add("bedrooms>=$%d", f.MinBedrooms)
	}
	if f.MinGarageSpots > 0 {
		add("garage_spots>=$%d", f.MinGarageSpots)
	}

	sql := baseSelectProperty()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE properties SET
            title=$1, description=$2, address=$3, city=$4, state=$5,
            zip_code=$6, latitude=$7, longitude=$8, bedrooms=$9,
            bathrooms=$10, garage_spots=$11, area_m2=$12,
            price_sale=$13, price_rent=$14, purpose=$15, status=$16,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$17 AND row_version=$18
    `,
		p.Title, p.Description, p.Address, p.City, p.State,
		p.ZipCode, p.Latitude, p.Longitude, p.Bedrooms,
		p.Bathrooms, p.GarageSpots, p.AreaM2,
		p.PriceSale, p.PriceRent, p.Purpose.String(), p.Status.String(),
		p.ID, expected,
	)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, owner_id, title, description, address, city, state, zip_code,
            latitude, longitude, bedrooms, bathrooms, garage_spots, area_m2,
            price_sale, price_rent, purpose, status,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	var purposeStr, statusStr string
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Latitude,
		&p.Longitude,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.GarageSpots,
		&p.AreaM2,
		&p.PriceSale,
		&p.PriceRent,
		&purposeStr,
		&statusStr,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if p.Purpose, err = models.ParsePurpose(purposeStr); err != nil {
		return nil, err
	}
	if p.Status, err = models.ParsePropertyStatus(statusStr); err != nil {
		return nil, err
	}
	return &p, nil
}
