//go:build (dev_test || staging_test) && integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/dtos"
	"github.com/insightventures/backoffice/backend/services/backoffice-service/internal/routes"
	"github.com/insightventures/backoffice/backend/shared/go-models"
	"github.com/insightventures/backoffice/backend/shared/go-testhelpers"
)

func TestRentRollImport_ReplacesPerFile(t *testing.T) {
	h.T = t
	ctx := h.Ctx
	client := h.NewHTTPClient()

	prop := h.CreateTestProperty(ctx, testhelpers.UniqueCode("Rent Roll Holdings"), nil, nil)
	h.CreateTestTenant(ctx, "Rent Roll Tenant Inc.")
	fileName := testhelpers.UniqueCode("rent-roll") + ".csv"
	t.Cleanup(func() {
		_, _ = h.DB.Exec(ctx, `DELETE FROM rent_roll_import_records WHERE source_file = $1`, fileName)
	})

	header := []string{"Date", "Tenant", "Ref", "Description", "Memo", "Amount", "Unit"}
	req := dtos.RentRollImportRequest{
		FileName: fileName,
		Data: [][]string{
			header,
			{"-> " + prop.PropertyCode},
			{"2024-05-01", "Rent Roll Tenant", "", "Rent", "", "$1,500.00", "Unit 1"},
			{"2024-05-02", "Nobody", "", "Rent", "", "10", "Unit 1"},
		},
	}
	resp := h.DoRequest(h.BuildRequest(http.MethodPost, routes.RentRollImport, req), client)
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	var out dtos.RentRollImportResponse
	h.DecodeJSON(resp, &out)
	assert.Equal(t, 1, out.CreatedCount)
	assert.Equal(t, 1, out.ErrorCount)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 4, out.Errors[0].Row)

	req.Data = req.Data[:2]
	req.Data = append(req.Data,
		[]string{"2024-06-01", "Rent Roll Tenant", "", "Rent", "", "1600", "Unit 2"},
		[]string{"2024-06-02", "Rent Roll Tenant", "", "Rent", "", "100", "Unit 1"},
	)
	resp = h.DoRequest(h.BuildRequest(http.MethodPost, routes.RentRollImport, req), client)
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	h.DecodeJSON(resp, &out)
	assert.Equal(t, 2, out.CreatedCount)

	recs, err := h.RentRollRepo.ListBySourceFile(ctx, fileName)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "2024-06", r.Month)
	}

	resp = h.DoRequest(h.BuildRequest(http.MethodGet, routes.RentRollImport, nil), client)
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	var totals []models.MonthlyReceivable
	h.DecodeJSON(resp, &totals)
	assert.NotEmpty(t, totals)
}

func TestRentRollImport_NothingReconciled(t *testing.T) {
	h.T = t
	req := dtos.RentRollImportRequest{
		FileName: testhelpers.UniqueCode("empty") + ".csv",
		Data: [][]string{
			{"Date", "Tenant", "Ref", "Description", "Memo", "Amount", "Unit"},
			{"2024-05-01", "Nobody", "", "", "", "10", "Unit 1"},
		},
	}
	resp := h.DoRequest(h.BuildRequest(http.MethodPost, routes.RentRollImport, req), h.NewHTTPClient())
	require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	var out dtos.RentRollImportResponse
	h.DecodeJSON(resp, &out)
	assert.Zero(t, out.CreatedCount)
	assert.Equal(t, 1, out.ErrorCount)
}
