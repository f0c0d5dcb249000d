package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
)

type RentRollRepository interface {
	// ReplaceForSourceFile deletes every record imported from sourceFile and
	// inserts records in their place, atomically.
	ReplaceForSourceFile(ctx context.Context, sourceFile string, records []*models.RentRollImportRecord) error
	ListBySourceFile(ctx context.Context, sourceFile string) ([]*models.RentRollImportRecord, error)
	MonthlyTotals(ctx context.Context) ([]models.MonthlyReceivable, error)
}

type rentRollRepo struct {
	db DB
}

func NewRentRollRepository(db DB) RentRollRepository {
	return &rentRollRepo{db: db}
}

const insertRentRollSQL = `
    INSERT INTO rent_roll_import_records (
        id, property_id, unit_id, tenant_id, amount_receivable,
        last_payment_date, month, source_file, import_date
    ) VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9)
`

func (r *rentRollRepo) ReplaceForSourceFile(
	ctx context.Context,
	sourceFile string,
	records []*models.RentRollImportRecord,
) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = cerr
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM rent_roll_import_records WHERE source_file=$1`, sourceFile); err != nil {
		return fmt.Errorf("delete previous import: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		batch.Queue(insertRentRollSQL,
			rec.ID, rec.PropertyID, rec.UnitID, rec.TenantID, rec.AmountReceivable.String(),
			rec.LastPaymentDate, rec.Month, sourceFile, rec.ImportDate,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range records {
		if _, err = br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert import record %d: %w", i, err)
		}
	}
	err = br.Close()
	return err
}

func (r *rentRollRepo) ListBySourceFile(ctx context.Context, sourceFile string) ([]*models.RentRollImportRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT
            id, property_id, unit_id, tenant_id, amount_receivable::text,
            last_payment_date, month, source_file, import_date
        FROM rent_roll_import_records
        WHERE source_file=$1
        ORDER BY month, last_payment_date
    `, sourceFile)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanRentRollRecord)
}

func (r *rentRollRepo) MonthlyTotals(ctx context.Context) ([]models.MonthlyReceivable, error) {
	rows, err := r.db.Query(ctx, `
        SELECT month, SUM(amount_receivable)::text
        FROM rent_roll_import_records
        GROUP BY month
        ORDER BY month ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthlyReceivable
	for rows.Next() {
		var (
			m     models.MonthlyReceivable
			total string
		)
		if err := rows.Scan(&m.Month, &total); err != nil {
			return nil, err
		}
		if m.TotalReceivable, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total for %s: %w", m.Month, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanRentRollRecord(row pgx.Row) (*models.RentRollImportRecord, error) {
	var (
		rec    models.RentRollImportRecord
		amount string
	)
	err := row.Scan(
		&rec.ID,
		&rec.PropertyID,
		&rec.UnitID,
		&rec.TenantID,
		&amount,
		&rec.LastPaymentDate,
		&rec.Month,
		&rec.SourceFile,
		&rec.ImportDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if rec.AmountReceivable, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}
	return &rec, nil
}
