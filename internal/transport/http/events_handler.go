package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/list_events"
)

// EventsHandler exposes the outbox for operational inspection.
type EventsHandler struct {
	listEvents *list_events.Query
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
	}
}

// eventJSON is the wire shape for an outbox event.
type eventJSON struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	AggregateID string  `json:"aggregate_id"`
	Payload     string  `json:"payload"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

type listEventsResponse struct {
	Events     []eventJSON `json:"events"`
	TotalCount int64       `json:"total_count"`
}

// ServeHTTP handles GET /api/v1/events requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &contracts.EventFilter{
		EventType:   query.Get("event_type"),
		AggregateID: query.Get("aggregate_id"),
		Status:      query.Get("status"),
		Limit:       100,
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.listEvents.Execute(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	events := make([]eventJSON, 0, len(result.Events))
	for _, dto := range result.Events {
		event := eventJSON{
			EventID:     dto.EventID,
			EventType:   dto.EventType,
			AggregateID: dto.AggregateID,
			Payload:     dto.Payload,
			Status:      dto.Status,
			CreatedAt:   dto.CreatedAt.Format(time.RFC3339),
		}
		if dto.ProcessedAt != nil {
			processedAt := dto.ProcessedAt.Format(time.RFC3339)
			event.ProcessedAt = &processedAt
		}
		events = append(events, event)
	}

	respondJSON(w, http.StatusOK, listEventsResponse{
		Events:     events,
		TotalCount: result.TotalCount,
	})
}
