// Package amqpevents consumes external change events (facility closures,
// weather alerts, event cancellations) and triggers replanning.
package amqpevents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/safarino/trip-planner-core/internal/app/planner"
	"github.com/safarino/trip-planner-core/internal/domain"
)

// QueueName is the durable queue change events arrive on.
const QueueName = "trip.change-events"

// Replanner is the slice of the orchestrator the listener needs.
type Replanner interface {
	Replan(ctx context.Context, tripID domain.TripID, trigger domain.ChangeTrigger) (planner.Result, error)
}

// TripLister finds the trips a broadcast event applies to.
type TripLister interface {
	ListByStatus(ctx context.Context, status domain.TripStatus) ([]domain.Trip, error)
}

// changeEvent is the wire shape of one queued event. An event without a
// trip_id is a broadcast: it applies to every trip currently PLANNED.
type changeEvent struct {
	TripID      string     `json:"trip_id"`
	Kind        string     `json:"kind"`
	FacilityID  int64      `json:"facility_id,omitempty"`
	WindowStart *time.Time `json:"window_start,omitempty"`
	WindowEnd   *time.Time `json:"window_end,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

type Listener struct {
	conn      *amqp.Connection
	replanner Replanner
	trips     TripLister
	log       *zap.Logger
}

func NewListener(conn *amqp.Connection, replanner Replanner, trips TripLister, log *zap.Logger) *Listener {
	return &Listener{conn: conn, replanner: replanner, trips: trips, log: log}
}

// Run consumes the queue until the context is canceled or the channel
// closes. Malformed messages are rejected; replanning failures are logged
// and acked so a poison event cannot wedge the queue.
func (l *Listener) Run(ctx context.Context) error {
	ch, err := l.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", QueueName, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueName, err)
	}

	l.log.Info("change-event listener started", zap.String("queue", QueueName))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			l.handle(ctx, d)
		}
	}
}

func (l *Listener) handle(ctx context.Context, d amqp.Delivery) {
	var ev changeEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		l.log.Error("malformed change event", zap.Error(err))
		_ = d.Reject(false)
		return
	}
	if ev.Kind == "" {
		l.log.Error("change event missing kind")
		_ = d.Reject(false)
		return
	}

	trigger := domain.ChangeTrigger{
		Kind:       domain.TriggerKind(ev.Kind),
		FacilityID: domain.FacilityID(ev.FacilityID),
		Reason:     ev.Reason,
	}
	if ev.WindowStart != nil {
		trigger.WindowStart = *ev.WindowStart
	}
	if ev.WindowEnd != nil {
		trigger.WindowEnd = *ev.WindowEnd
	}

	tripIDs, err := l.targets(ctx, ev)
	if err != nil {
		l.log.Error("resolve broadcast targets",
			zap.String("kind", ev.Kind),
			zap.Bool("redelivered", d.Redelivered),
			zap.Error(err),
		)
		// One requeue on a store error; a redelivered failure is dropped so
		// an outage cannot spin the queue.
		_ = d.Reject(!d.Redelivered)
		return
	}

	for _, tripID := range tripIDs {
		l.replanOne(ctx, tripID, ev.Kind, trigger)
	}
	_ = d.Ack(false)
}

// targets resolves the trip ids an event applies to: the addressed trip, or
// every PLANNED trip for a broadcast.
func (l *Listener) targets(ctx context.Context, ev changeEvent) ([]domain.TripID, error) {
	if ev.TripID != "" {
		return []domain.TripID{domain.TripID(ev.TripID)}, nil
	}
	trips, err := l.trips.ListByStatus(ctx, domain.TripStatusPlanned)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.TripID, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (l *Listener) replanOne(ctx context.Context, tripID domain.TripID, kind string, trigger domain.ChangeTrigger) {
	res, err := l.replanner.Replan(ctx, tripID, trigger)
	if err != nil {
		l.log.Error("replan failed",
			zap.String("trip_id", string(tripID)),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return
	}
	l.log.Info("replan applied",
		zap.String("trip_id", string(tripID)),
		zap.String("kind", kind),
		zap.Int("daily_plans", len(res.Trip.DailyPlans)),
		zap.Int("violations", len(res.Violations)),
	)
}
