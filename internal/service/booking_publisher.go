// Package service holds outbound integrations used by the handlers.
// Publishing failures are logged and returned so callers can ignore them
// without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/matchday-tickets/internal/queue"
)

// BookingPublisher publishes booking.confirmed messages to RabbitMQ.  It
// dials per message, so a broker outage never blocks server start.
type BookingPublisher struct {
	url string
}

// NewBookingPublisher returns a publisher for the broker at url.
func NewBookingPublisher(url string) *BookingPublisher {
	return &BookingPublisher{url: url}
}

// PublishBookingConfirmed sends event as a persistent JSON message on the
// booking.confirmed queue.
func (p *BookingPublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.BookingConfirmedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
