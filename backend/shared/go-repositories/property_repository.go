package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	if err := p.ValidateUnits(); err != nil {
		return err
	}
	args, err := propertyDocArgs(p)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, property_code, entity_name, name, county, type,
            address, units, tax_details, insurance,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
    `,
		append([]any{p.ID, p.PropertyCode, p.EntityName, p.Name, p.County, p.Type}, args...)...,
	)
	return err
}

// Update rewrites the whole property document. Unit ids are re-validated.
func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	if err := p.ValidateUnits(); err != nil {
		return err
	}
	args, err := propertyDocArgs(p)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET
            property_code=$2, entity_name=$3, name=$4, county=$5, type=$6,
            address=$7, units=$8, tax_details=$9, insurance=$10,
            updated_at=NOW()
        WHERE id=$1
    `,
		append([]any{p.ID, p.PropertyCode, p.EntityName, p.Name, p.County, p.Type}, args...)...,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProperty)
}

func (r *propertyRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, `SELECT id FROM properties`)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

func propertyDocArgs(p *models.Property) ([]any, error) {
	out := make([]any, 0, 4)
	for _, v := range []any{p.Address, p.Units, p.TaxDetails, p.Insurance} {
		a, err := jsonbArg(v)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, property_code, entity_name, name, county, type,
            address, units, tax_details, insurance,
            created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p                                 models.Property
		entityName, name, county          *string
		address, units, taxDetails, insur []byte
	)
	err := row.Scan(
		&p.ID,
		&p.PropertyCode,
		&entityName,
		&name,
		&county,
		&p.Type,
		&address,
		&units,
		&taxDetails,
		&insur,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.EntityName = derefString(entityName)
	p.Name = derefString(name)
	p.County = derefString(county)

	if err := scanJSONB(address, &p.Address); err != nil {
		return nil, err
	}
	if err := scanJSONB(units, &p.Units); err != nil {
		return nil, err
	}
	if err := scanJSONB(taxDetails, &p.TaxDetails); err != nil {
		return nil, err
	}
	if err := scanJSONB(insur, &p.Insurance); err != nil {
		return nil, err
	}
	return &p, nil
}

func listIDs(ctx context.Context, db DB, sql string) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
