//go:build (dev_test || staging_test) && integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/routes"
	"github.com/insightventures/backoffice/backend/shared/go-models"
)

func TestReminders_Lifecycle(t *testing.T) {
	h.T = t
	ctx := h.Ctx
	client := h.NewHTTPClient()

	create := map[string]any{
		"title":     "Integration boiler check",
		"startDate": h.Today().Format(models.DateLayout),
		"color":     "green",
		"recurrence": map[string]any{
			"frequency": "week",
			"interval":  1,
		},
	}
	resp := h.DoRequest(h.BuildRequest(http.MethodPost, routes.Reminders, create), client)
	require.Equal(t, http.StatusCreated, resp.StatusCode, h.ReadBody(resp))
	var rem models.CustomReminder
	h.DecodeJSON(resp, &rem)
	path := fmt.Sprintf("/api/v1/reminders/%s", rem.ID)
	t.Cleanup(func() {
		r := h.DoRequest(h.BuildRequest(http.MethodDelete, path, nil), h.NewHTTPClient())
		r.Body.Close()
	})

	assert.GreaterOrEqual(t, h.CountEventsBySource(ctx, models.EventSourceCustomReminder, rem.ID.String()), 52)

	resp = h.DoRequest(h.BuildRequest(http.MethodPut, path, map[string]any{"clearRecurrence": true}), client)
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	var updated models.CustomReminder
	h.DecodeJSON(resp, &updated)
	assert.Nil(t, updated.Recurrence)
	assert.Equal(t, "Integration boiler check", updated.Title)
	assert.Greater(t, updated.RowVersion, rem.RowVersion)

	// Occurrences from today on are replaced by the single event.
	assert.Equal(t, 1, h.CountEventsBySource(ctx, models.EventSourceCustomReminder, rem.ID.String()))

	resp = h.DoRequest(h.BuildRequest(http.MethodGet, path, nil), client)
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	resp.Body.Close()

	resp = h.DoRequest(h.BuildRequest(http.MethodDelete, path, nil), client)
	require.Equal(t, http.StatusNoContent, resp.StatusCode, h.ReadBody(resp))
	resp.Body.Close()
	assert.Zero(t, h.CountEventsBySource(ctx, models.EventSourceCustomReminder, rem.ID.String()))

	resp = h.DoRequest(h.BuildRequest(http.MethodDelete, path, nil), client)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, h.ReadBody(resp))
	resp.Body.Close()
}

func TestReminders_Validation(t *testing.T) {
	h.T = t
	resp := h.DoRequest(h.BuildRequest(http.MethodPost, routes.Reminders, map[string]any{"title": ""}), h.NewHTTPClient())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, h.ReadBody(resp))
	resp.Body.Close()
}
