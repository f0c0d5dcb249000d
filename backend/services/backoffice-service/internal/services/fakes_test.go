package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
)

var (
	fixedNow  = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	fixedDay  = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	errBoom   = errors.New("boom")
	fixedTime = func() time.Time { return fixedNow }
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayRef(t time.Time) *time.Time { return &t }

func dateRef(t time.Time) *models.Date {
	d := models.NewDate(t)
	return &d
}

/* ------------------------------------------------------------------
   Calendar events
------------------------------------------------------------------ */

type fakeEventRepo struct {
	mu    sync.Mutex
	bySig map[string]*models.CalendarEvent

	upsertErr         error
	deleteOrphanedErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{bySig: map[string]*models.CalendarEvent{}}
}

func (f *fakeEventRepo) WithTx(repositories.DB) repositories.CalendarEventRepository { return f }

func (f *fakeEventRepo) snapshot() map[string]models.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.CalendarEvent, len(f.bySig))
	for k, v := range f.bySig {
		out[k] = *v
	}
	return out
}

func (f *fakeEventRepo) restore(snap map[string]models.CalendarEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bySig = make(map[string]*models.CalendarEvent, len(snap))
	for k, v := range snap {
		e := v
		f.bySig[k] = &e
	}
}

// put stores an event as-is, bypassing upsert semantics.
func (f *fakeEventRepo) put(e models.CalendarEvent) *models.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.bySig[e.SourceSignature] = &e
	return &e
}

func (f *fakeEventRepo) get(sig string) (models.CalendarEvent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.bySig[sig]
	if !ok {
		return models.CalendarEvent{}, false
	}
	return *e, true
}

func (f *fakeEventRepo) signatures() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.bySig))
	for k := range f.bySig {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *fakeEventRepo) Upsert(_ context.Context, events ...*models.CalendarEvent) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range events {
		if cur, ok := f.bySig[e.SourceSignature]; ok {
			cur.Title = e.Title
			cur.StartDate = e.StartDate
			cur.EndDate = e.EndDate
			cur.AllDay = e.AllDay
			cur.Color = e.Color
			cur.SourceID = e.SourceID
			cur.SourceType = e.SourceType
			cur.URL = e.URL
			cur.UpdatedAt = fixedNow
			continue
		}
		cp := *e
		if cp.ID == uuid.Nil {
			cp.ID = uuid.New()
		}
		cp.CreatedAt, cp.UpdatedAt = fixedNow, fixedNow
		f.bySig[cp.SourceSignature] = &cp
	}
	return nil
}

func (f *fakeEventRepo) sorted(keep func(*models.CalendarEvent) bool) []*models.CalendarEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.CalendarEvent
	for _, e := range f.bySig {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].SourceSignature < out[j].SourceSignature
	})
	return out
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*models.CalendarEvent, error) {
	out := f.sorted(func(e *models.CalendarEvent) bool { return e.ID == id })
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (f *fakeEventRepo) ListAll(context.Context) ([]*models.CalendarEvent, error) {
	return f.sorted(func(*models.CalendarEvent) bool { return true }), nil
}

func (f *fakeEventRepo) ListActive(context.Context) ([]*models.CalendarEvent, error) {
	return f.sorted(func(e *models.CalendarEvent) bool { return e.DeletedAt == nil }), nil
}

func (f *fakeEventRepo) ListActiveBetween(_ context.Context, from, to time.Time, limit int) ([]*models.CalendarEvent, error) {
	out := f.sorted(func(e *models.CalendarEvent) bool {
		return e.DeletedAt == nil && !e.StartDate.Before(from) && !e.StartDate.After(to)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) mutateByID(id uuid.UUID, fn func(*models.CalendarEvent)) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.bySig {
		if e.ID == id && e.DeletedAt == nil {
			fn(e)
			return 1
		}
	}
	return 0
}

func (f *fakeEventRepo) SetDone(_ context.Context, id uuid.UUID, done bool) (int64, error) {
	return f.mutateByID(id, func(e *models.CalendarEvent) { e.IsDone = done }), nil
}

func (f *fakeEventRepo) SoftDelete(_ context.Context, id uuid.UUID) (int64, error) {
	return f.mutateByID(id, func(e *models.CalendarEvent) { e.DeletedAt = dayRef(fixedNow) }), nil
}

func (f *fakeEventRepo) deleteWhere(match func(*models.CalendarEvent) bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for sig, e := range f.bySig {
		if match(e) {
			delete(f.bySig, sig)
			n++
		}
	}
	return n
}

func (f *fakeEventRepo) DeleteBySignatures(_ context.Context, signatures []string) (int64, error) {
	set := make(map[string]bool, len(signatures))
	for _, s := range signatures {
		set[s] = true
	}
	return f.deleteWhere(func(e *models.CalendarEvent) bool { return set[e.SourceSignature] }), nil
}

func (f *fakeEventRepo) DeleteBySource(_ context.Context, sourceType models.EventSourceType, sourceID string) (int64, error) {
	return f.deleteWhere(func(e *models.CalendarEvent) bool {
		return e.SourceType == sourceType && e.SourceID == sourceID
	}), nil
}

func (f *fakeEventRepo) DeleteStaleReminderOccurrences(_ context.Context, reminderID string, keep []string, from time.Time) (int64, error) {
	kept := make(map[string]bool, len(keep))
	for _, s := range keep {
		kept[s] = true
	}
	return f.deleteWhere(func(e *models.CalendarEvent) bool {
		return e.SourceType == models.EventSourceCustomReminder &&
			e.SourceID == reminderID &&
			strings.HasPrefix(e.SourceSignature, "reminder-recurring-") &&
			!e.StartDate.Before(from) &&
			!kept[e.SourceSignature]
	}), nil
}

func (f *fakeEventRepo) DeleteOrphaned(_ context.Context, sourceTypes []models.EventSourceType, liveIDs []string) (int64, error) {
	if f.deleteOrphanedErr != nil {
		return 0, f.deleteOrphanedErr
	}
	types := make(map[models.EventSourceType]bool, len(sourceTypes))
	for _, t := range sourceTypes {
		types[t] = true
	}
	live := make(map[string]bool, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = true
	}
	return f.deleteWhere(func(e *models.CalendarEvent) bool {
		return types[e.SourceType] && !live[e.SourceID]
	}), nil
}

/* ------------------------------------------------------------------
   Transactions
------------------------------------------------------------------ */

// fakeTransactor restores the event and reminder stores when fn fails or
// commitErr is set.
type fakeTransactor struct {
	events    *fakeEventRepo
	reminders *fakeReminderRepo
	commitErr error
	calls     int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, q repositories.DB) error) error {
	t.calls++
	evSnap := t.events.snapshot()
	remSnap := t.reminders.snapshot()
	rollback := func() {
		t.events.restore(evSnap)
		t.reminders.restore(remSnap)
	}
	if err := fn(ctx, nil); err != nil {
		rollback()
		return err
	}
	if t.commitErr != nil {
		rollback()
		return t.commitErr
	}
	return nil
}

/* ------------------------------------------------------------------
   Custom reminders
------------------------------------------------------------------ */

type fakeReminderRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*models.CustomReminder

	listErr error
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{byID: map[uuid.UUID]*models.CustomReminder{}}
}

func (f *fakeReminderRepo) WithTx(repositories.DB) repositories.CustomReminderRepository { return f }

func (f *fakeReminderRepo) snapshot() map[uuid.UUID]models.CustomReminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]models.CustomReminder, len(f.byID))
	for k, v := range f.byID {
		out[k] = *v
	}
	return out
}

func (f *fakeReminderRepo) restore(snap map[uuid.UUID]models.CustomReminder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID = make(map[uuid.UUID]*models.CustomReminder, len(snap))
	for k, v := range snap {
		r := v
		f.byID[k] = &r
	}
}

func (f *fakeReminderRepo) Create(_ context.Context, r *models.CustomReminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.byID[r.ID]; dup {
		return errors.New("duplicate reminder id")
	}
	r.RowVersion = 1
	r.CreatedAt, r.UpdatedAt = fixedNow, fixedNow
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeReminderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.CustomReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReminderRepo) ListAll(context.Context) ([]*models.CustomReminder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.CustomReminder, 0, len(f.byID))
	for _, r := range f.byID {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeReminderRepo) UpdateIfVersion(_ context.Context, r *models.CustomReminder, expected int64) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[r.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *r
	cp.RowVersion = expected + 1
	f.byID[r.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeReminderRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.CustomReminder) error) error {
	return repositories.WithRetry(ctx, 3, id, f.GetByID, f.UpdateIfVersion, mutate)
}

func (f *fakeReminderRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return 0, nil
	}
	delete(f.byID, id)
	return 1, nil
}

/* ------------------------------------------------------------------
   Source entities
------------------------------------------------------------------ */

type fakeProjectRepo struct {
	items   []*models.Project
	listErr error
}

func (f *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) ListAll(context.Context) ([]*models.Project, error) {
	return f.items, f.listErr
}

func (f *fakeProjectRepo) ListIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(f.items))
	for i, p := range f.items {
		ids[i] = p.ID
	}
	return ids, f.listErr
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeLeaseRepo struct {
	items   []*models.Lease
	listErr error
}

func (f *fakeLeaseRepo) Create(_ context.Context, l *models.Lease) error {
	f.items = append(f.items, l)
	return nil
}

func (f *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	for _, l := range f.items {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaseRepo) ListAll(context.Context) ([]*models.Lease, error) {
	out := make([]*models.Lease, len(f.items))
	copy(out, f.items)
	return out, f.listErr
}

func (f *fakeLeaseRepo) ListIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(f.items))
	for i, l := range f.items {
		ids[i] = l.ID
	}
	return ids, f.listErr
}

func (f *fakeLeaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, l := range f.items {
		if l.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakePropertyRepo struct {
	items   []*models.Property
	listErr error
}

func (f *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	if err := p.ValidateUnits(); err != nil {
		return err
	}
	f.items = append(f.items, p)
	return nil
}

func (f *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	for i, cur := range f.items {
		if cur.ID == p.ID {
			f.items[i] = p
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePropertyRepo) ListAll(context.Context) ([]*models.Property, error) {
	return f.items, f.listErr
}

func (f *fakePropertyRepo) ListIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(f.items))
	for i, p := range f.items {
		ids[i] = p.ID
	}
	return ids, f.listErr
}

func (f *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeTenantRepo struct {
	items   []*models.Tenant
	listErr error
}

func (f *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	f.items = append(f.items, t)
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	for _, t := range f.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) ListAll(context.Context) ([]*models.Tenant, error) {
	return f.items, f.listErr
}

func (f *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.items {
		if t.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

/* ------------------------------------------------------------------
   Rent roll, inquiries, mail, generator
------------------------------------------------------------------ */

type fakeRentRollRepo struct {
	byFile     map[string][]*models.RentRollImportRecord
	replaceErr error
	replaces   int
}

func newFakeRentRollRepo() *fakeRentRollRepo {
	return &fakeRentRollRepo{byFile: map[string][]*models.RentRollImportRecord{}}
}

func (f *fakeRentRollRepo) ReplaceForSourceFile(_ context.Context, sourceFile string, records []*models.RentRollImportRecord) error {
	f.replaces++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	for _, r := range records {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
	}
	f.byFile[sourceFile] = records
	return nil
}

func (f *fakeRentRollRepo) ListBySourceFile(_ context.Context, sourceFile string) ([]*models.RentRollImportRecord, error) {
	return f.byFile[sourceFile], nil
}

func (f *fakeRentRollRepo) MonthlyTotals(context.Context) ([]models.MonthlyReceivable, error) {
	sums := map[string]models.MonthlyReceivable{}
	for _, recs := range f.byFile {
		for _, r := range recs {
			cur := sums[r.Month]
			cur.Month = r.Month
			cur.TotalReceivable = cur.TotalReceivable.Add(r.AmountReceivable)
			sums[r.Month] = cur
		}
	}
	out := make([]models.MonthlyReceivable, 0, len(sums))
	for _, v := range sums {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

type fakeInquiryRepo struct {
	items     []*models.Inquiry
	createErr error
}

func (f *fakeInquiryRepo) Create(_ context.Context, i *models.Inquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	i.CreatedAt = fixedNow
	f.items = append(f.items, i)
	return nil
}

func (f *fakeInquiryRepo) ListAll(context.Context) ([]*models.Inquiry, error) {
	return f.items, nil
}

type fakeMailer struct {
	sent    []*mail.SGMailV3
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg *mail.SGMailV3) error {
	f.sent = append(f.sent, msg)
	return f.sendErr
}

type fakeGenerator struct {
	calls   int
	err     error
	ctxErrs []error
}

func (f *fakeGenerator) GenerateAllCalendarEvents(ctx context.Context) error {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	return f.err
}
