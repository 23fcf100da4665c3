package forecast

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/restodash/restodash/internal/clientdata"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupCacheRepo(t *testing.T) *clientdata.Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := clientdata.NewRepository(db)
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://127.0.0.1:8000/", nil, zerolog.Nop())
	assert.NotNil(t, client)
	assert.Equal(t, "http://127.0.0.1:8000", client.baseURL)
}

func TestPredictDaily_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/predict_daily", r.URL.Path)

		var req struct {
			Dates   []string     `json:"dates"`
			Context []ContextRow `json:"context"`
		}
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, req.Dates)
		assert.NotNil(t, req.Context)

		resp := []DailyPrediction{
			{Date: "2025-06-01T00:00:00", PredictedOrders: 142.7},
			{Date: "2025-06-02T00:00:00", PredictedOrders: 118.2},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())

	result, err := client.PredictDaily([]string{"2025-06-01", "2025-06-02"}, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.InDelta(t, 142.7, result[0].PredictedOrders, 0.001)
}

func TestPredictDaily_CacheHit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]DailyPrediction{{Date: "2025-06-01", PredictedOrders: 100}})
	}))
	defer server.Close()

	repo := setupCacheRepo(t)
	client := NewClient(server.URL, repo, zerolog.Nop())

	_, err := client.PredictDaily([]string{"2025-06-01"}, nil)
	require.NoError(t, err)

	result, err := client.PredictDaily([]string{"2025-06-01"}, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int32(1), calls.Load(), "second call should be served from cache")
}

func TestPredictWeekly_StaleFallback(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]WeeklyPrediction{{Week: "2025-06-02", PredictedOrders: 850}})
	}))
	defer server.Close()

	repo := setupCacheRepo(t)
	client := NewClient(server.URL, repo, zerolog.Nop())

	// Seed an already-expired cache entry, then make the upstream fail
	stale := []WeeklyPrediction{{Week: "2025-06-02", PredictedOrders: 850}}
	require.NoError(t, repo.Store("forecast_weekly", "2025-06-02", stale, -time.Minute))
	fail.Store(true)

	result, err := client.PredictWeekly([]string{"2025-06-02"})
	require.NoError(t, err, "stale cache should mask upstream failure")
	require.Len(t, result, 1)
	assert.InDelta(t, 850, result[0].PredictedOrders, 0.001)
}

func TestPredictWeekly_FailureNoCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())

	_, err := client.PredictWeekly([]string{"2025-06-02"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestPredictIngredients_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict_ingredients", r.URL.Path)

		resp := []IngredientPrediction{
			{
				Date: "2025-06-01",
				Predictions: map[string]float64{
					"Mozzarella":   24.5,
					"Sauce Tomate": 18.0,
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())

	result, err := client.PredictIngredients([]string{"2025-06-01"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.InDelta(t, 24.5, result[0].Predictions["Mozzarella"], 0.001)
}
