package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	ListAll(ctx context.Context) ([]*models.Lease, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	rent, err := jsonbArg(l.RentSchedule)
	if err != nil {
		return err
	}
	cam, err := jsonbArg(l.CamitSchedule)
	if err != nil {
		return err
	}
	source := l.Source
	if source == "" {
		source = models.LeaseSourceManual
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO leases (
            id, property_id, unit_id, tenant_id, start_date, end_date,
            rent_schedule, camit_schedule, source,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9, NOW(), NOW())
    `,
		l.ID, l.PropertyID, l.UnitID, l.TenantID, l.StartDate, l.EndDate,
		rent, cam, source,
	)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE id=$1", id)
	return scanLease(row)
}

func (r *leaseRepo) ListAll(ctx context.Context) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+" ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanLease)
}

func (r *leaseRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, `SELECT id FROM leases`)
}

func (r *leaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM leases WHERE id=$1`, id)
	return err
}

func baseSelectLease() string {
	return `
        SELECT
            id, property_id, unit_id, tenant_id, start_date, end_date,
            rent_schedule, camit_schedule, source,
            created_at, updated_at
        FROM leases
    `
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var (
		l         models.Lease
		rent, cam []byte
	)
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.UnitID,
		&l.TenantID,
		&l.StartDate,
		&l.EndDate,
		&rent,
		&cam,
		&l.Source,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := scanJSONB(rent, &l.RentSchedule); err != nil {
		return nil, err
	}
	if err := scanJSONB(cam, &l.CamitSchedule); err != nil {
		return nil, err
	}
	return &l, nil
}
