package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

// updateAttempts bounds the optimistic-locking loop for versioned rows.
const updateAttempts = 3

// EntityWithVersion is any comparable entity carrying a row_version column.
type EntityWithVersion interface {
	comparable
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

type GetByIDFunc[T EntityWithVersion] func(ctx context.Context, id uuid.UUID) (T, error)

/*
WithRetry runs a read-mutate-update loop. A zero RowsAffected means another
writer bumped row_version first; the entity is re-read and mutate re-applied.
A missing row surfaces as pgx.ErrNoRows.
*/
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxAttempts int,
	id uuid.UUID,
	getByID GetByIDFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		current, err := getByID(ctx, id)
		if err != nil {
			return err
		}

		var zero T
		if current == zero {
			return pgx.ErrNoRows
		}

		oldVersion := current.GetRowVersion()
		if err := mutate(current); err != nil {
			return err
		}

		tag, err := updateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			current.SetRowVersion(oldVersion + 1)
			return nil
		}
		utils.Logger.WithFields(logrus.Fields{
			"id":      id,
			"attempt": attempt + 1,
		}).Debug("row_version moved during update, retrying")
	}
	return utils.ErrRowVersionConflict
}

// versionedReader loads one versioned row by id for the retry loop.
type versionedReader[T EntityWithVersion] struct {
	db         DB
	selectByID string
	scan       func(pgx.Row) (T, error)
}

func (v versionedReader[T]) getByID(ctx context.Context, id uuid.UUID) (T, error) {
	return v.scan(v.db.QueryRow(ctx, v.selectByID, id))
}

func (v versionedReader[T]) updateWithRetry(
	ctx context.Context,
	id uuid.UUID,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
) error {
	return WithRetry(ctx, updateAttempts, id, v.getByID, updateIfVersion, mutate)
}
