package repo

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/models/m_outbox"
)

// EventsReadModel implements EventReadModel for Spanner.
type EventsReadModel struct {
	client *spanner.Client
}

// NewEventsReadModel creates a new EventsReadModel.
func NewEventsReadModel(client *spanner.Client) contracts.EventReadModel {
	return &EventsReadModel{
		client: client,
	}
}

// ListEvents retrieves events from the outbox_events table with filtering.
func (r *EventsReadModel) ListEvents(ctx context.Context, filter *contracts.EventFilter) (*contracts.EventList, error) {
	query := "SELECT event_id, event_type, aggregate_id, payload, status, created_at, processed_at FROM outbox_events WHERE 1=1"
	params := make(map[string]interface{})

	if filter.EventType != "" {
		query += " AND event_type = @eventType"
		params["eventType"] = filter.EventType
	}

	if filter.AggregateID != "" {
		query += " AND aggregate_id = @aggregateID"
		params["aggregateID"] = filter.AggregateID
	}

	if filter.Status != "" {
		query += " AND status = @status"
		params["status"] = filter.Status
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " ORDER BY created_at DESC LIMIT @limit"
	params["limit"] = int64(limit)

	stmt := spanner.Statement{
		SQL:    query,
		Params: params,
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*contracts.EventDTO, 0, limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate events")
		}

		var data m_outbox.Data
		if err := row.Columns(
			&data.EventID,
			&data.EventType,
			&data.AggregateID,
			&data.Payload,
			&data.Status,
			&data.CreatedAt,
			&data.ProcessedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan event")
		}

		events = append(events, dataToEventDTO(&data))
	}

	return &contracts.EventList{
		Events:     events,
		TotalCount: int64(len(events)),
	}, nil
}

func dataToEventDTO(data *m_outbox.Data) *contracts.EventDTO {
	dto := &contracts.EventDTO{
		EventID:     data.EventID,
		EventType:   data.EventType,
		AggregateID: data.AggregateID,
		Status:      data.Status,
		CreatedAt:   data.CreatedAt,
	}

	if data.Payload.Valid {
		if s, ok := data.Payload.Value.(string); ok {
			dto.Payload = s
		} else {
			dto.Payload = data.Payload.String()
		}
	}

	if data.ProcessedAt.Valid {
		processedAt := data.ProcessedAt.Time
		dto.ProcessedAt = &processedAt
	}

	return dto
}
