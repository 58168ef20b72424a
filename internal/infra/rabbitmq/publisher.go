package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EltonMdeLima/EngenhariaDados-ProjetoPoses/internal/domain/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const outcomeRoutingKey = "video.outcome"

// OutcomePublisher emits one persistent JSON event per finished video job.
type OutcomePublisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewOutcomePublisher(conn *amqp.Connection, exchange string) (*OutcomePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &OutcomePublisher{channel: ch, exchange: exchange}, nil
}

func (p *OutcomePublisher) PublishOutcome(ctx context.Context, outcome entity.VideoOutcome) error {
	body, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		outcomeRoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}

func (p *OutcomePublisher) Close() error {
	return p.channel.Close()
}
