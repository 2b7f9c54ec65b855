package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/services"
	"rentflow-backend/internal/timeutil"
)

func previewRequest(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	handler := NewProrationHandler(services.NewProrationService(nil, nil))
	req := httptest.NewRequest(http.MethodPost, "/api/proration/preview", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)
	return rec
}

func TestProrationPreview(t *testing.T) {
	daysInMonth := 30
	rec := previewRequest(t, models.ProrationPreviewRequest{
		MonthlyRent:    100000,
		EffectiveStart: timeutil.ToMillis(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)),
		PeriodStart:    timeutil.ToMillis(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		PeriodEnd:      timeutil.ToMillis(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		Method:         models.ProrationMethodDaily,
		DaysInMonth:    &daysInMonth,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProrationPreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(53333), resp.ProratedAmount)
	assert.Equal(t, 16, resp.OccupiedDays)
	assert.Equal(t, 30, resp.DaysInMonth)
}

func TestProrationPreview_InvalidMethod(t *testing.T) {
	rec := previewRequest(t, models.ProrationPreviewRequest{
		MonthlyRent:    100000,
		EffectiveStart: timeutil.ToMillis(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)),
		PeriodStart:    timeutil.ToMillis(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		PeriodEnd:      timeutil.ToMillis(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		Method:         "weekly",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "method")
}

func TestProrationPreview_MalformedBody(t *testing.T) {
	handler := NewProrationHandler(services.NewProrationService(nil, nil))
	req := httptest.NewRequest(http.MethodPost, "/api/proration/preview", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
