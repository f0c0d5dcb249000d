package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/constants"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	internal_utils "github.com/insightventures/backoffice/backend/services/backoffice-service/internal/utils"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-repositories"
	"github.com/insightventures/backoffice/backend/shared/go-utils"
)

// CalendarService is the read and user-state side of the calendar.
type CalendarService struct {
	eventRepo repositories.CalendarEventRepository
	now       func() time.Time
}

func NewCalendarService(eventRepo repositories.CalendarEventRepository) *CalendarService {
	return &CalendarService{eventRepo: eventRepo, now: time.Now}
}

// ListEvents returns every non-deleted event in calendar-widget shape.
func (s *CalendarService) ListEvents(ctx context.Context) ([]dtos.CalendarEventResponse, error) {
	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.CalendarEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toCalendarEventResponse(e))
	}
	return out, nil
}

func toCalendarEventResponse(e *models.CalendarEvent) dtos.CalendarEventResponse {
	resp := dtos.CalendarEventResponse{
		ID:     e.ID.String(),
		Start:  e.StartDate,
		Title:  e.Title,
		Color:  e.Color,
		AllDay: e.AllDay,
		IsDone: e.IsDone,
		Meta: dtos.CalendarEventMeta{
			ID:   e.SourceID,
			Type: e.SourceType,
			URL:  e.URL,
		},
	}
	resp.Meta.HolidayName, resp.Meta.FederalHoliday = internal_utils.FederalHoliday(e.StartDate)
	if !e.EndDate.IsZero() {
		end := e.EndDate
		resp.End = &end
	}
	return resp
}

// DashboardAlerts lists the soonest non-deleted events starting within the
// next ten days, today included.
func (s *CalendarService) DashboardAlerts(ctx context.Context) ([]*models.CalendarEvent, error) {
	today := utils.DateOnly(s.now())
	until := today.AddDate(0, 0, constants.DashboardAlertDays)
	events, err := s.eventRepo.ListActiveBetween(ctx, today, until, constants.DashboardAlertLimit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.CalendarEvent{}
	}
	return events, nil
}

func (s *CalendarService) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	n, err := s.eventRepo.SetDone(ctx, id, done)
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrEventNotFound
	}
	return nil
}

// DeleteEvent soft-deletes an event. Regeneration keeps it hidden.
func (s *CalendarService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	n, err := s.eventRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrEventNotFound
	}
	return nil
}
