package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/constants"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// ReminderService manages custom reminders. Every mutation is followed by a
// full calendar regeneration.
type ReminderService struct {
	reminderRepo repositories.CustomReminderRepository
	eventRepo    repositories.CalendarEventRepository
	tx           repositories.Transactor
	generator    CalendarGenerator
}

func NewReminderService(
	reminderRepo repositories.CustomReminderRepository,
	eventRepo repositories.CalendarEventRepository,
	tx repositories.Transactor,
	generator CalendarGenerator,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		eventRepo:    eventRepo,
		tx:           tx,
		generator:    generator,
	}
}

// Save creates a reminder, or overwrites the one named by req.ID. created
// reports which happened.
func (s *ReminderService) Save(ctx context.Context, req dtos.SaveReminderRequest) (rem *models.CustomReminder, created bool, err error) {
	if req.ID != nil {
		existing, err := s.reminderRepo.GetByID(ctx, *req.ID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			err = s.reminderRepo.UpdateWithRetry(ctx, *req.ID, func(r *models.CustomReminder) error {
				replaceReminder(r, req)
				rem = r
				return nil
			})
			if err != nil {
				return nil, false, err
			}
			s.regenerate(ctx, rem.ID)
			return rem, false, nil
		}
	}

	rem = &models.CustomReminder{ID: uuid.New()}
	if req.ID != nil {
		rem.ID = *req.ID
	}
	replaceReminder(rem, req)
	if err := s.reminderRepo.Create(ctx, rem); err != nil {
		return nil, false, err
	}
	s.regenerate(ctx, rem.ID)
	return rem, true, nil
}

func (s *ReminderService) List(ctx context.Context) ([]*models.CustomReminder, error) {
	out, err := s.reminderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*models.CustomReminder{}
	}
	return out, nil
}

func (s *ReminderService) Get(ctx context.Context, id uuid.UUID) (*models.CustomReminder, error) {
	rem, err := s.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rem == nil {
		return nil, utils.ErrReminderNotFound
	}
	return rem, nil
}

// Update applies only the fields present in req.
func (s *ReminderService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateReminderRequest) (*models.CustomReminder, error) {
	var updated *models.CustomReminder
	err := s.reminderRepo.UpdateWithRetry(ctx, id, func(r *models.CustomReminder) error {
		applyReminderUpdate(r, req)
		updated = r
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrReminderNotFound
		}
		return nil, err
	}
	s.regenerate(ctx, id)
	return updated, nil
}

// Delete removes the reminder and every calendar event it produced.
func (s *ReminderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, q repositories.DB) error {
		removed, err := s.reminderRepo.WithTx(q).Delete(ctx, id)
		if err != nil {
			return err
		}
		events, err := s.eventRepo.WithTx(q).DeleteBySource(ctx, models.EventSourceCustomReminder, id.String())
		if err != nil {
			return err
		}
		if removed == 0 && events == 0 {
			return utils.ErrReminderNotFound
		}
		return nil
	})
}

// regenerate rebuilds the calendar after a reminder change. The reminder is
// already saved, so the run is detached from request cancellation and a
// failure is logged and left to the nightly run.
func (s *ReminderService) regenerate(ctx context.Context, reminderID uuid.UUID) {
	if err := s.generator.GenerateAllCalendarEvents(context.WithoutCancel(ctx)); err != nil {
		utils.Logger.WithError(err).WithField("reminderId", reminderID).Error("Calendar regeneration after reminder change failed")
	}
}

// replaceReminder overwrites every user-editable field from a save request.
func replaceReminder(r *models.CustomReminder, req dtos.SaveReminderRequest) {
	r.Title = strings.TrimSpace(req.Title)
	if req.StartDate != nil {
		r.StartDate = utils.DateOnly(req.StartDate.Time)
	}
	r.Color = req.Color
	if r.Color == "" {
		r.Color = constants.ColorPurple
	}
	r.Notes = req.Notes
	r.Recurrence = toRecurrenceRule(req.Recurrence)
	r.IsCompleted = req.IsCompleted
}

// applyReminderUpdate copies each supplied field onto r; nil fields are left
// alone.
func applyReminderUpdate(r *models.CustomReminder, req dtos.UpdateReminderRequest) {
	if req.Title != nil {
		r.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartDate != nil {
		r.StartDate = utils.DateOnly(req.StartDate.Time)
	}
	if req.Color != nil {
		r.Color = *req.Color
	}
	if req.Notes != nil {
		r.Notes = req.Notes
	}
	if req.ClearRecurrence {
		r.Recurrence = nil
	} else if req.Recurrence != nil {
		r.Recurrence = toRecurrenceRule(req.Recurrence)
	}
	if req.IsCompleted != nil {
		r.IsCompleted = *req.IsCompleted
	}
}

func toRecurrenceRule(req *dtos.RecurrenceRequest) *models.RecurrenceRule {
	if req == nil {
		return nil
	}
	rule := &models.RecurrenceRule{
		Frequency: req.Frequency,
		Interval:  utils.Val(req.Interval),
		EndDate:   req.EndDate,
	}
	for _, d := range req.ByDay {
		rule.ByDay = append(rule.ByDay, strings.ToUpper(d))
	}
	return rule
}
