package notify

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// RecomputeSubject is the NATS subject carrying recompute events.
const RecomputeSubject = "scheduler.recompute"

// NATSPublisher publishes recompute events over a NATS connection, the
// second fan-out target alongside Redis for subscribers that run in a
// separate deployment.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher wraps an existing NATS connection.
func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal recompute event: %w", err)
	}
	if err := p.conn.Publish(RecomputeSubject, data); err != nil {
		return fmt.Errorf("publish to nats: %w", err)
	}
	return nil
}

// Subscribe registers handler for every recompute event on RecomputeSubject
// until unsubscribed or the connection closes.
func (p *NATSPublisher) Subscribe(handler func(Event) error) (*nats.Subscription, error) {
	return p.conn.Subscribe(RecomputeSubject, func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return
		}
		_ = handler(event)
	})
}
