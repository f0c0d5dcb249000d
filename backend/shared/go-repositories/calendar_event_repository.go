package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/jackc/pgx/v4"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type CalendarEventRepository interface {
	// Upsert inserts or refreshes events keyed by source_signature. Derived
	// fields are overwritten; is_done and deleted_at are left as they are.
	Upsert(ctx context.Context, events ...*models.CalendarEvent) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.CalendarEvent, error)
	ListAll(ctx context.Context) ([]*models.CalendarEvent, error)
	ListActive(ctx context.Context) ([]*models.CalendarEvent, error)
	ListActiveBetween(ctx context.Context, from, to time.Time, limit int) ([]*models.CalendarEvent, error)

	SetDone(ctx context.Context, id uuid.UUID, done bool) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)

	DeleteBySignatures(ctx context.Context, signatures []string) (int64, error)
	DeleteBySource(ctx context.Context, sourceType models.EventSourceType, sourceID string) (int64, error)
	// DeleteStaleReminderOccurrences removes recurring occurrences of one
	// reminder starting on or after from whose signature is not in keep.
	DeleteStaleReminderOccurrences(ctx context.Context, reminderID string, keep []string, from time.Time) (int64, error)
	// DeleteOrphaned hard-deletes events of the given source types whose
	// source_id is not in liveIDs.
	DeleteOrphaned(ctx context.Context, sourceTypes []models.EventSourceType, liveIDs []string) (int64, error)

	WithTx(q DB) CalendarEventRepository
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type calendarEventRepo struct {
	db DB
}

func NewCalendarEventRepository(db DB) CalendarEventRepository {
	return &calendarEventRepo{db: db}
}

func (r *calendarEventRepo) WithTx(q DB) CalendarEventRepository {
	return &calendarEventRepo{db: q}
}

const upsertCalendarEventSQL = `
    INSERT INTO calendar_events (
        id, title, start_date, end_date, all_day, color,
        source_id, source_type, source_signature, url,
        is_done, created_at, updated_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, FALSE, NOW(), NOW())
    ON CONFLICT (source_signature) DO UPDATE SET
        title       = EXCLUDED.title,
        start_date  = EXCLUDED.start_date,
        end_date    = EXCLUDED.end_date,
        all_day     = EXCLUDED.all_day,
        color       = EXCLUDED.color,
        source_id   = EXCLUDED.source_id,
        source_type = EXCLUDED.source_type,
        url         = EXCLUDED.url,
        updated_at  = NOW()
`

func (r *calendarEventRepo) Upsert(ctx context.Context, events ...*models.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		color, err := jsonbArg(e.Color)
		if err != nil {
			return err
		}
		batch.Queue(upsertCalendarEventSQL,
			e.ID, e.Title, e.StartDate, e.EndDate, e.AllDay, color,
			e.SourceID, e.SourceType, e.SourceSignature, e.URL,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	for range events {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

func (r *calendarEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CalendarEvent, error) {
	row := r.db.QueryRow(ctx, baseSelectCalendarEvent()+" WHERE id=$1", id)
	return scanCalendarEvent(row)
}

func (r *calendarEventRepo) ListAll(ctx context.Context) ([]*models.CalendarEvent, error) {
	return r.list(ctx, baseSelectCalendarEvent()+" ORDER BY start_date, source_signature")
}

func (r *calendarEventRepo) ListActive(ctx context.Context) ([]*models.CalendarEvent, error) {
	return r.list(ctx, baseSelectCalendarEvent()+
		" WHERE deleted_at IS NULL ORDER BY start_date, source_signature")
}

func (r *calendarEventRepo) ListActiveBetween(ctx context.Context, from, to time.Time, limit int) ([]*models.CalendarEvent, error) {
	return r.list(ctx, baseSelectCalendarEvent()+`
        WHERE deleted_at IS NULL AND start_date >= $1 AND start_date <= $2
        ORDER BY start_date, source_signature
        LIMIT $3`, from, to, limit)
}

func (r *calendarEventRepo) list(ctx context.Context, sql string, args ...any) ([]*models.CalendarEvent, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanCalendarEvent)
}

func (r *calendarEventRepo) SetDone(ctx context.Context, id uuid.UUID, done bool) (int64, error) {
	return r.exec(ctx, `
        UPDATE calendar_events SET is_done=$2, updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL
    `, id, done)
}

func (r *calendarEventRepo) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.exec(ctx, `
        UPDATE calendar_events SET deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL
    `, id)
}

func (r *calendarEventRepo) DeleteBySignatures(ctx context.Context, signatures []string) (int64, error) {
	if len(signatures) == 0 {
		return 0, nil
	}
	return r.exec(ctx, `DELETE FROM calendar_events WHERE source_signature = ANY($1)`, signatures)
}

func (r *calendarEventRepo) DeleteBySource(ctx context.Context, sourceType models.EventSourceType, sourceID string) (int64, error) {
	return r.exec(ctx, `
        DELETE FROM calendar_events WHERE source_type=$1 AND source_id=$2
    `, sourceType, sourceID)
}

func (r *calendarEventRepo) DeleteStaleReminderOccurrences(
	ctx context.Context,
	reminderID string,
	keep []string,
	from time.Time,
) (int64, error) {
	if keep == nil {
		keep = []string{}
	}
	return r.exec(ctx, `
        DELETE FROM calendar_events
        WHERE source_type=$1
          AND source_id=$2
          AND source_signature LIKE 'reminder-recurring-%'
          AND start_date >= $3
          AND NOT (source_signature = ANY($4))
    `, models.EventSourceCustomReminder, reminderID, from, keep)
}

func (r *calendarEventRepo) DeleteOrphaned(
	ctx context.Context,
	sourceTypes []models.EventSourceType,
	liveIDs []string,
) (int64, error) {
	if len(sourceTypes) == 0 {
		return 0, nil
	}
	types := make([]string, len(sourceTypes))
	for i, t := range sourceTypes {
		types[i] = string(t)
	}
	if liveIDs == nil {
		liveIDs = []string{}
	}
	return r.exec(ctx, `
        DELETE FROM calendar_events
        WHERE source_type = ANY($1) AND NOT (source_id = ANY($2))
    `, types, liveIDs)
}

func (r *calendarEventRepo) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectCalendarEvent() string {
	return `
        SELECT
            id, title, start_date, end_date, all_day, color,
            source_id, source_type, source_signature, COALESCE(url, ''),
            is_done, deleted_at, created_at, updated_at
        FROM calendar_events
    `
}

func scanCalendarEvent(row pgx.Row) (*models.CalendarEvent, error) {
	var (
		e     models.CalendarEvent
		color []byte
	)
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.StartDate,
		&e.EndDate,
		&e.AllDay,
		&color,
		&e.SourceID,
		&e.SourceType,
		&e.SourceSignature,
		&e.URL,
		&e.IsDone,
		&e.DeletedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := scanJSONB(color, &e.Color); err != nil {
		return nil, err
	}
	return &e, nil
}
