package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/restodash/restodash/internal/events"
)

// EventsStreamHandler pushes system events to dashboard clients over a
// websocket connection.
type EventsStreamHandler struct {
	eventBus *events.Bus
	log      zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler.
func NewEventsStreamHandler(eventBus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		eventBus: eventBus,
		log:      log.With().Str("component", "events_stream").Logger(),
	}
}

// streamEvent is the wire form of one pushed event.
type streamEvent struct {
	Type      string                 `json:"type"`
	Module    string                 `json:"module,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// ServeHTTP handles GET /api/events/ws. An optional "types" query parameter
// holds a comma-separated list of event types to receive; absent means all.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var allowedTypes map[events.EventType]bool
	if typesFilter := r.URL.Query().Get("types"); typesFilter != "" {
		allowedTypes = make(map[events.EventType]bool)
		for _, t := range strings.Split(typesFilter, ",") {
			allowedTypes[events.EventType(strings.TrimSpace(t))] = true
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The dashboard is served from a different origin in dev mode.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.CloseNow()

	h.log.Info().Msg("Client connected to event stream")

	// Buffered so a slow client drops events instead of blocking emitters.
	eventChan := make(chan *events.Event, 100)
	done := r.Context().Done()
	disconnected := make(chan struct{})

	unsubscribe := h.eventBus.SubscribeAll(func(event *events.Event) {
		if allowedTypes != nil && !allowedTypes[event.Type] {
			return
		}
		select {
		case <-disconnected:
		case eventChan <- event:
		default:
			h.log.Warn().Str("event_type", string(event.Type)).Msg("Event channel full, dropping event")
		}
	})
	defer unsubscribe()

	ctx := r.Context()
	if err := wsjson.Write(ctx, conn, streamEvent{
		Type:      "connected",
		Timestamp: time.Now().Format(time.RFC3339),
	}); err != nil {
		close(disconnected)
		return
	}

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			close(disconnected)
			h.log.Info().Msg("Client disconnected from event stream")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case event := <-eventChan:
			if err := h.write(ctx, conn, streamEvent{
				Type:      string(event.Type),
				Module:    event.Module,
				Timestamp: event.Timestamp.Format(time.RFC3339),
				Data:      event.Data,
			}); err != nil {
				close(disconnected)
				return
			}

		case <-heartbeat.C:
			if err := h.write(ctx, conn, streamEvent{
				Type:      "heartbeat",
				Timestamp: time.Now().Format(time.RFC3339),
			}); err != nil {
				close(disconnected)
				return
			}
		}
	}
}

func (h *EventsStreamHandler) write(ctx context.Context, conn *websocket.Conn, event streamEvent) error {
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, event); err != nil {
		h.log.Debug().Err(err).Msg("Websocket write failed, closing stream")
		return err
	}
	return nil
}
