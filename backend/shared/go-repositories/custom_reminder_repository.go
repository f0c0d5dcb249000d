package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type CustomReminderRepository interface {
	Create(ctx context.Context, r *models.CustomReminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomReminder, error)
	ListAll(ctx context.Context) ([]*models.CustomReminder, error)
	UpdateIfVersion(ctx context.Context, r *models.CustomReminder, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.CustomReminder) error) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// WithTx returns a repository bound to q, usually a transaction.
	WithTx(q DB) CustomReminderRepository
}

type customReminderRepo struct {
	db       DB
	versions versionedReader[*models.CustomReminder]
}

func NewCustomReminderRepository(db DB) CustomReminderRepository {
	return &customReminderRepo{
		db: db,
		versions: versionedReader[*models.CustomReminder]{
			db:         db,
			selectByID: baseSelectReminder() + " WHERE id=$1",
			scan:       scanReminder,
		},
	}
}

func (r *customReminderRepo) WithTx(q DB) CustomReminderRepository {
	return NewCustomReminderRepository(q)
}

func (r *customReminderRepo) Create(ctx context.Context, rem *models.CustomReminder) error {
	rec, err := jsonbArg(rem.Recurrence)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO custom_reminders (
            id, title, start_date, color, notes, recurrence, is_completed,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		rem.ID, rem.Title, rem.StartDate, rem.Color, rem.Notes, rec, rem.IsCompleted,
	)
	if err == nil {
		rem.RowVersion = 1
	}
	return err
}

func (r *customReminderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomReminder, error) {
	return r.versions.getByID(ctx, id)
}

func (r *customReminderRepo) ListAll(ctx context.Context) ([]*models.CustomReminder, error) {
	rows, err := r.db.Query(ctx, baseSelectReminder()+" ORDER BY start_date")
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanReminder)
}

func (r *customReminderRepo) UpdateIfVersion(ctx context.Context, rem *models.CustomReminder, expected int64) (pgconn.CommandTag, error) {
	rec, err := jsonbArg(rem.Recurrence)
	if err != nil {
		return nil, err
	}
	return r.db.Exec(ctx, `
        UPDATE custom_reminders SET
            title=$1, start_date=$2, color=$3, notes=$4, recurrence=$5, is_completed=$6,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$7 AND row_version=$8
    `,
		rem.Title, rem.StartDate, rem.Color, rem.Notes, rec, rem.IsCompleted,
		rem.ID, expected,
	)
}

func (r *customReminderRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.CustomReminder) error) error {
	return r.versions.updateWithRetry(ctx, id, mutate, r.UpdateIfVersion)
}

func (r *customReminderRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM custom_reminders WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectReminder() string {
	return `
        SELECT
            id, title, start_date, color, notes, recurrence, is_completed,
            created_at, updated_at, row_version
        FROM custom_reminders
    `
}

func scanReminder(row pgx.Row) (*models.CustomReminder, error) {
	var (
		rem models.CustomReminder
		rec []byte
	)
	err := row.Scan(
		&rem.ID,
		&rem.Title,
		&rem.StartDate,
		&rem.Color,
		&rem.Notes,
		&rec,
		&rem.IsCompleted,
		&rem.CreatedAt,
		&rem.UpdatedAt,
		&rem.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := scanJSONB(rec, &rem.Recurrence); err != nil {
		return nil, err
	}
	return &rem, nil
}
