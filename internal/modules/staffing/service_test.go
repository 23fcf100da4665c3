package staffing

import (
	"errors"
	"testing"

	staffingclient "github.com/restodash/restodash/internal/clients/staffing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlannerClient struct {
	assignment *staffingclient.Assignment
	config     *staffingclient.Config
	err        error
}

func (f *fakePlannerClient) GetAssignment() (*staffingclient.Assignment, error) {
	return f.assignment, f.err
}

func (f *fakePlannerClient) GetConfig() (*staffingclient.Config, error) {
	return f.config, f.err
}

func TestAssignment(t *testing.T) {
	client := &fakePlannerClient{
		assignment: &staffingclient.Assignment{
			ForecastInfo: staffingclient.ForecastInfo{ForecastDate: "2025-06-02"},
			MorningShift: staffingclient.ShiftAssignment{
				ShiftHours:      "11:00-16:00",
				PredictedOrders: 120,
				StaffAssignment: map[string][]string{"cuisine": {"Amine", "Sarah"}},
				EstimatedCost:   14000,
			},
			TotalDailyCost: 31000,
		},
	}

	svc := NewService(client, nil, zerolog.Nop())
	assignment, err := svc.Assignment()
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", assignment.ForecastInfo.ForecastDate)
	assert.Equal(t, 31000.0, assignment.TotalDailyCost)
	assert.Equal(t, []string{"Amine", "Sarah"}, assignment.MorningShift.StaffAssignment["cuisine"])
}

func TestAssignment_Error(t *testing.T) {
	svc := NewService(&fakePlannerClient{err: errors.New("planner down")}, nil, zerolog.Nop())

	_, err := svc.Assignment()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planner down")
}

func TestConfig(t *testing.T) {
	client := &fakePlannerClient{
		config: &staffingclient.Config{
			MorningShift: staffingclient.ShiftConfig{
				PredictedOrders: 120,
				StaffingConfig:  map[string]float64{"cuisine": 2, "salle": 3},
				ShiftHours:      "11:00-16:00",
			},
		},
	}

	svc := NewService(client, nil, zerolog.Nop())
	config, err := svc.Config()
	require.NoError(t, err)
	assert.Equal(t, 3.0, config.MorningShift.StaffingConfig["salle"])
}

func TestConfig_Error(t *testing.T) {
	svc := NewService(&fakePlannerClient{err: errors.New("planner down")}, nil, zerolog.Nop())

	_, err := svc.Config()
	require.Error(t, err)
}
