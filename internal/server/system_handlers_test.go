package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restodash/restodash/internal/clients/forecast"
	staffingclient "github.com/restodash/restodash/internal/clients/staffing"
	"github.com/restodash/restodash/internal/modules/charts"
	"github.com/restodash/restodash/internal/modules/orders"
	"github.com/restodash/restodash/internal/modules/staffing"
)

type fakeOrdersClient struct {
	daily []forecast.DailyPrediction
	err   error
}

func (f *fakeOrdersClient) PredictHourly(timestamps []string, context []forecast.ContextRow) ([]forecast.HourlyPrediction, error) {
	return nil, f.err
}

func (f *fakeOrdersClient) PredictDaily(dates []string, context []forecast.ContextRow) ([]forecast.DailyPrediction, error) {
	return f.daily, f.err
}

func (f *fakeOrdersClient) PredictWeekly(weeks []string) ([]forecast.WeeklyPrediction, error) {
	return nil, f.err
}

type fakePlanner struct {
	assignment *staffingclient.Assignment
	err        error
}

func (f *fakePlanner) GetAssignment() (*staffingclient.Assignment, error) {
	return f.assignment, f.err
}

func (f *fakePlanner) GetConfig() (*staffingclient.Config, error) {
	return nil, f.err
}

type fakePredictor struct {
	predictions []forecast.IngredientPrediction
	err         error
}

func (f *fakePredictor) PredictIngredients(dates []string) ([]forecast.IngredientPrediction, error) {
	return f.predictions, f.err
}

type fakeRefreshJob struct {
	err  error
	runs int
}

func (f *fakeRefreshJob) Name() string { return "refresh" }

func (f *fakeRefreshJob) Run() error {
	f.runs++
	return f.err
}

func newTestHandlers(ordersClient *fakeOrdersClient, planner *fakePlanner, predictor *fakePredictor, job *fakeRefreshJob) *SystemHandlers {
	log := zerolog.Nop()
	ordersSvc := orders.NewService(ordersClient, charts.NewService(log), nil, log)
	staffingSvc := staffing.NewService(planner, nil, log)

	h := NewSystemHandlers(log, nil, "/tmp", job, ordersSvc, staffingSvc, predictor, nil)
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func TestHandleSummary(t *testing.T) {
	h := newTestHandlers(
		&fakeOrdersClient{daily: []forecast.DailyPrediction{{Date: "2025-06-01", PredictedOrders: 340}}},
		&fakePlanner{assignment: &staffingclient.Assignment{TotalDailyCost: 31000}},
		&fakePredictor{predictions: []forecast.IngredientPrediction{
			{Date: "2025-06-02", Predictions: map[string]float64{"Mozzarella": 18.5, "Sauce Tomate": 12.0}},
		}},
		&fakeRefreshJob{},
	)

	rec := httptest.NewRecorder()
	h.HandleSummary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 340.0, body["today_orders"])
	assert.Equal(t, 31000.0, body["staffing_daily_cost"])

	top, ok := body["tomorrow_top_ingredient"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Mozzarella", top["name"])
	assert.Equal(t, 18.5, top["quantity"])
}

func TestHandleSummary_UpstreamsDown(t *testing.T) {
	down := errors.New("upstream down")
	h := newTestHandlers(
		&fakeOrdersClient{err: down},
		&fakePlanner{err: down},
		&fakePredictor{err: down},
		&fakeRefreshJob{},
	)

	rec := httptest.NewRecorder()
	h.HandleSummary(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code, "summary degrades instead of failing")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["today_orders"])
	assert.Nil(t, body["tomorrow_top_ingredient"])
	assert.Nil(t, body["staffing_daily_cost"])
}

func TestHandleRefresh(t *testing.T) {
	job := &fakeRefreshJob{}
	h := newTestHandlers(&fakeOrdersClient{}, &fakePlanner{}, &fakePredictor{}, job)

	rec := httptest.NewRecorder()
	h.HandleRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/system/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, job.runs)
	assert.Contains(t, rec.Body.String(), "refreshed")
}

func TestHandleRefresh_Partial(t *testing.T) {
	job := &fakeRefreshJob{err: errors.New("staffing: upstream down")}
	h := newTestHandlers(&fakeOrdersClient{}, &fakePlanner{}, &fakePredictor{}, job)

	rec := httptest.NewRecorder()
	h.HandleRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/system/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "partial")
}

func TestHandleStatus(t *testing.T) {
	h := newTestHandlers(&fakeOrdersClient{}, &fakePlanner{}, &fakePredictor{}, &fakeRefreshJob{})

	rec := httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/system/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotNil(t, body["goroutines"])
}
