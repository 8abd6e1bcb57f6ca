package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"log"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes planned routes to a durable topic exchange with
// routing key "route.result.<trip_id>".
type RabbitPublisher struct {
	conn     *amqp091.Connection
	ch       *amqp091.Channel
	exchange string

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// ResultMessage is the JSON body of a published route.
type ResultMessage struct {
	InputTripID   int64     `json:"input_trip_id"`
	LoadIDs       []int64   `json:"load_ids"`
	MoneyEarned   float64   `json:"money_earned"`
	DistanceMiles float64   `json:"distance_miles"`
	NetProfit     float64   `json:"net_profit"`
	ArriveAt      time.Time `json:"arrive_at"`
	Truncated     bool      `json:"truncated"`
	Error         string    `json:"error,omitempty"`
}

func DialRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	if url == "" || exchange == "" {
		return nil, errors.New("dial rabbitmq: url and exchange must be non-empty")
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("dial rabbitmq: open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("dial rabbitmq: declare exchange %s: %w", exchange, err)
	}

	log.Printf("Connected to RabbitMQ exchange=%s", exchange)
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func RoutingKey(tripID int64) string {
	return fmt.Sprintf("route.result.%d", tripID)
}

func NewResultMessage(r domain.RouteResult) ResultMessage {
	ids := r.LoadIDs
	if ids == nil {
		ids = []int64{}
	}
	return ResultMessage{
		InputTripID:   r.TripID,
		LoadIDs:       ids,
		MoneyEarned:   r.MoneyEarned,
		DistanceMiles: r.DistanceMiles,
		NetProfit:     r.NetProfit,
		ArriveAt:      r.ArriveAt,
		Truncated:     r.Truncated,
		Error:         r.Error,
	}
}

func (p *RabbitPublisher) Publish(ctx context.Context, r domain.RouteResult) (err error) {
	defer obs.Time(ctx, "results.broker.Publish")(&err)

	body, err := json.Marshal(NewResultMessage(r))
	if err != nil {
		return fmt.Errorf("publish result trip_id=%d: marshal: %w", r.TripID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,           // exchange
		RoutingKey(r.TripID), // routing key
		false,                // mandatory
		false,                // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp091.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish result trip_id=%d: %w", r.TripID, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("close rabbitmq channel: %w", err)
	}
	return p.conn.Close()
}
