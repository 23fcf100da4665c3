package staffing

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

func testAssignment() Assignment {
	return Assignment{
		ForecastInfo: ForecastInfo{
			ForecastDate: "2025-06-02",
			ForecastDay:  "Monday",
			GeneratedAt:  "2025-06-01T18:00:00",
		},
		MorningShift: ShiftAssignment{
			ShiftHours:      "08:00 - 16:00",
			PredictedOrders: 120,
			StaffingNeeds:   map[string]float64{"cook": 2, "server": 3},
			StaffAssignment: map[string][]string{"cook": {"Alice", "Bob"}},
			EstimatedCost:   640,
		},
		NightShift: ShiftAssignment{
			ShiftHours:      "17:00 - 00:00",
			PredictedOrders: 180,
			StaffingNeeds:   map[string]float64{"cook": 3, "server": 4},
			EstimatedCost:   890,
		},
		TotalDailyCost: 1530,
	}
}

func TestGetAssignment_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/staff-assignment", r.URL.Path)
		json.NewEncoder(w).Encode(testAssignment())
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())

	result, err := client.GetAssignment()
	require.NoError(t, err)
	assert.Equal(t, "Monday", result.ForecastInfo.ForecastDay)
	assert.InDelta(t, 1530, result.TotalDailyCost, 0.001)
	assert.Equal(t, []string{"Alice", "Bob"}, result.MorningShift.StaffAssignment["cook"])
}

func TestGetAssignment_CacheHit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(testAssignment())
	}))
	defer server.Close()

	repo := setupCacheRepo(t)
	client := NewClient(server.URL, repo, zerolog.Nop())

	_, err := client.GetAssignment()
	require.NoError(t, err)
	_, err = client.GetAssignment()
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second call should be served from cache")
}

func TestGetConfig_StaleFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	repo := setupCacheRepo(t)
	stale := Config{
		MorningShift: ShiftConfig{
			PredictedOrders: 95,
			StaffingConfig:  map[string]float64{"cook": 2},
			ShiftHours:      "08:00 - 16:00",
		},
	}
	require.NoError(t, repo.Store("staffing_config", "config", stale, -time.Minute))

	client := NewClient(server.URL, repo, zerolog.Nop())

	result, err := client.GetConfig()
	require.NoError(t, err, "stale cache should mask upstream failure")
	assert.InDelta(t, 95, result.MorningShift.PredictedOrders, 0.001)
}

func TestGetConfig_FailureNoCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, zerolog.Nop())

	_, err := client.GetConfig()
	assert.Error(t, err)
}
