package services

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"kodjobs/talent-matcher/internal/config"
	"kodjobs/talent-matcher/internal/models"
)

type NotificationPublisher interface {
	Publish(ctx context.Context, match *models.Match) error
	Close() error
}

type rabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewNotificationPublisher connects to RabbitMQ and declares a durable
// queue. Delivery is at-least-once; consumers must tolerate duplicates.
func NewNotificationPublisher(cfg config.RabbitMQConfig) (NotificationPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &rabbitPublisher{conn: conn, channel: ch, queue: q}, nil
}

// Publish sends one denormalized evaluation onto the queue. No ack is
// awaited; the match row stays the authoritative record either way.
func (r *rabbitPublisher) Publish(ctx context.Context, match *models.Match) error {
	notification := models.MatchNotification{
		UserID:      match.UserID,
		EmployerID:  match.EmployerID,
		Requirement: match.Requirement,
		Score:       match.Score,
		Match:       match.IsMatch,
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		"",           // exchange
		r.queue.Name, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

func (r *rabbitPublisher) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return r.conn.Close()
}
