package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	internal_utils "github.com/insightventures/backoffice/backend/services/backoffice-service/internal/utils"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// CalendarGenerator rebuilds the derived calendar from source entities.
type CalendarGenerator interface {
	GenerateAllCalendarEvents(ctx context.Context) error
}

// CalendarGenerationService derives calendar events from projects, leases,
// properties and custom reminders. Runs are idempotent: every event is keyed
// by its source signature.
type CalendarGenerationService struct {
	projectRepo  repositories.ProjectRepository
	leaseRepo    repositories.LeaseRepository
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.TenantRepository
	reminderRepo repositories.CustomReminderRepository
	eventRepo    repositories.CalendarEventRepository
	tx           repositories.Transactor

	now func() time.Time
}

func NewCalendarGenerationService(
	projectRepo repositories.ProjectRepository,
	leaseRepo repositories.LeaseRepository,
	propertyRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	reminderRepo repositories.CustomReminderRepository,
	eventRepo repositories.CalendarEventRepository,
	tx repositories.Transactor,
) *CalendarGenerationService {
	return &CalendarGenerationService{
		projectRepo:  projectRepo,
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		reminderRepo: reminderRepo,
		eventRepo:    eventRepo,
		tx:           tx,
		now:          time.Now,
	}
}

type entitySnapshot struct {
	projects   []*models.Project
	leases     []*models.Lease
	properties []*models.Property
	tenants    []*models.Tenant
}

func (s *CalendarGenerationService) snapshot(ctx context.Context) (*entitySnapshot, error) {
	var snap entitySnapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.projects, err = s.projectRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.leases, err = s.leaseRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.properties, err = s.propertyRepo.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.tenants, err = s.tenantRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GenerateAllCalendarEvents upserts every derived event and every reminder
// occurrence in one transaction, then prunes events whose source is gone.
// Pruning runs after commit; its failures are logged only.
func (s *CalendarGenerationService) GenerateAllCalendarEvents(ctx context.Context) error {
	started := s.now()
	utils.Logger.Info("Starting calendar event generation")

	snap, err := s.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load calendar sources: %w", err)
	}
	drafts := TransformAll(snap.projects, snap.leases, snap.properties, snap.tenants)

	var reminderEvents int
	err = s.tx.WithinTx(ctx, func(ctx context.Context, q repositories.DB) error {
		events := s.eventRepo.WithTx(q)
		if err := events.Upsert(ctx, draftsToEvents(drafts)...); err != nil {
			return fmt.Errorf("upsert entity events: %w", err)
		}
		n, err := s.syncReminderEvents(ctx, s.reminderRepo.WithTx(q), events, started)
		reminderEvents = n
		return err
	})
	if err != nil {
		utils.Logger.WithError(err).Error("Calendar generation rolled back")
		return err
	}

	utils.Logger.WithFields(logrus.Fields{
		"entityEvents":   len(drafts),
		"reminderEvents": reminderEvents,
	}).Info("Upserted calendar events")

	s.pruneOrphanedEvents(ctx)

	utils.Logger.WithField("elapsed", s.now().Sub(started).String()).Info("Finished calendar event generation")
	return nil
}

func (s *CalendarGenerationService) syncReminderEvents(
	ctx context.Context,
	reminders repositories.CustomReminderRepository,
	events repositories.CalendarEventRepository,
	now time.Time,
) (int, error) {
	all, err := reminders.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list reminders: %w", err)
	}

	today, _ := ExpansionWindow(now)
	var (
		upserted     int
		staleSingles []string
	)
	for _, rem := range all {
		exp, err := ExpandReminder(rem, now)
		if err != nil {
			if errors.Is(err, internal_utils.ErrUnknownFrequency) {
				utils.Logger.WithError(err).WithField("reminderId", rem.ID).Warn("Skipping reminder with unknown recurrence")
				continue
			}
			return upserted, fmt.Errorf("expand reminder %s: %w", rem.ID, err)
		}

		if err := events.Upsert(ctx, draftsToEvents(exp.Drafts)...); err != nil {
			return upserted, fmt.Errorf("upsert reminder %s events: %w", rem.ID, err)
		}
		upserted += len(exp.Drafts)

		if exp.SingleSignature != "" {
			staleSingles = append(staleSingles, exp.SingleSignature)
		}
		if _, err := events.DeleteStaleReminderOccurrences(ctx, rem.ID.String(), exp.RecurringSignatures, today); err != nil {
			return upserted, fmt.Errorf("delete stale occurrences of %s: %w", rem.ID, err)
		}
	}

	if _, err := events.DeleteBySignatures(ctx, staleSingles); err != nil {
		return upserted, fmt.Errorf("delete orphaned single reminders: %w", err)
	}
	return upserted, nil
}

// pruneOrphanedEvents hard-deletes derived events whose source row no longer
// exists. Custom reminder events are never touched here.
func (s *CalendarGenerationService) pruneOrphanedEvents(ctx context.Context) {
	var projectIDs, leaseIDs, propertyIDs []uuid.UUID
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projectIDs, err = s.projectRepo.ListIDs(gctx)
		return err
	})
	g.Go(func() (err error) {
		leaseIDs, err = s.leaseRepo.ListIDs(gctx)
		return err
	})
	g.Go(func() (err error) {
		propertyIDs, err = s.propertyRepo.ListIDs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.Logger.WithError(err).Error("Pruning skipped: could not load live source ids")
		return
	}

	groups := []struct {
		types []models.EventSourceType
		live  []uuid.UUID
	}{
		{[]models.EventSourceType{models.EventSourceProject}, projectIDs},
		{[]models.EventSourceType{models.EventSourceLeaseExpiration}, leaseIDs},
		{[]models.EventSourceType{models.EventSourceTaxDeadline, models.EventSourceInsuranceRenewal}, propertyIDs},
	}

	var pruned int64
	for _, grp := range groups {
		n, err := s.eventRepo.DeleteOrphaned(ctx, grp.types, uuidStrings(grp.live))
		if err != nil {
			utils.Logger.WithError(err).WithField("sourceTypes", grp.types).Error("Failed to prune orphaned calendar events")
			continue
		}
		pruned += n
	}
	if pruned > 0 {
		utils.Logger.WithField("count", pruned).Info("Pruned orphaned calendar events")
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
