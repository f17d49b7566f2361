package bookingqueue

import (
	"context"
	"fmt"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	NotificationQueueName = "appointment_notification_queue"
	DeadLetterQueueName   = "appointment_notification_dlq"
)

// Service publishes booking lifecycle events to RabbitMQ. Both queues are
// durable and every publish waits for a broker confirm, so a confirmed
// booking is never silently dropped on the way to the notification system.
// Consumption is the external notification system's job; messages it rejects
// or lets expire are dead-lettered by the broker.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService opens a channel, declares the durable queues and enables
// publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		NotificationQueueName,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": DeadLetterQueueName,
		},
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

var _ contracts.BookingEventPublisher = (*Service)(nil)

// Publish sends a booking event to the notification queue and waits for the
// broker confirm.
func (s *Service) Publish(ctx context.Context, event contracts.BookingEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("BookingQueue.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.String(constvars.LoggingQueueNameKey, NotificationQueueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishConfirmed(ctx, NotificationQueueName, body)
}

func (s *Service) publishConfirmed(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
