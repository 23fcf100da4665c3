package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	var received []*Event
	bus.Subscribe(ForecastRefreshed, func(e *Event) {
		received = append(received, e)
	})

	bus.Emit(ForecastRefreshed, "orders", map[string]interface{}{"window": "daily"})
	bus.Emit(MenuRebuilt, "menu", nil)

	require.Len(t, received, 1, "handler must only see its subscribed type")
	assert.Equal(t, ForecastRefreshed, received[0].Type)
	assert.Equal(t, "orders", received[0].Module)
	assert.Equal(t, "daily", received[0].Data["window"])
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe(ScenarioEvaluated, func(e *Event) { count++ })
	bus.Subscribe(ScenarioEvaluated, func(e *Event) { count++ })

	bus.Emit(ScenarioEvaluated, "scenario", nil)
	assert.Equal(t, 2, count)
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var types []EventType
	unsubscribe := bus.SubscribeAll(func(e *Event) { types = append(types, e.Type) })

	bus.Emit(ForecastRefreshed, "orders", nil)
	bus.Emit(MenuRebuilt, "menu", nil)

	assert.Equal(t, []EventType{ForecastRefreshed, MenuRebuilt}, types)

	// Emissions after unsubscribe no longer reach the handler.
	unsubscribe()
	bus.Emit(StaffingRefreshed, "staffing", nil)
	assert.Len(t, types, 2)
}

func TestBus_UnsubscribeLeavesOtherHandlers(t *testing.T) {
	bus := NewBus()

	first, second := 0, 0
	unsubscribeFirst := bus.SubscribeAll(func(e *Event) { first++ })
	bus.SubscribeAll(func(e *Event) { second++ })

	bus.Emit(MenuRebuilt, "menu", nil)
	unsubscribeFirst()
	bus.Emit(MenuRebuilt, "menu", nil)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestManager_EmitTyped(t *testing.T) {
	bus := NewBus()
	manager := NewManager(bus, zerolog.Nop())

	var got *Event
	bus.Subscribe(StaffingRefreshed, func(e *Event) { got = e })

	manager.EmitTyped(StaffingRefreshed, "staffing", &StaffingRefreshedData{
		ForecastDate:   "2025-06-02",
		TotalDailyCost: 1530,
	})

	require.NotNil(t, got)
	assert.Equal(t, "2025-06-02", got.Data["forecast_date"])
	assert.InDelta(t, 1530, got.Data["total_daily_cost"].(float64), 0.001)
}

func TestManager_EmitError(t *testing.T) {
	bus := NewBus()
	manager := NewManager(bus, zerolog.Nop())

	var got *Event
	bus.Subscribe(ErrorOccurred, func(e *Event) { got = e })

	manager.EmitError("menu", assert.AnError, map[string]interface{}{"window": "daily"})

	require.NotNil(t, got)
	assert.Equal(t, assert.AnError.Error(), got.Data["error"])
}
