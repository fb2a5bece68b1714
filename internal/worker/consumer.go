package worker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/you/excursion-booking/internal/events"
	"github.com/you/excursion-booking/internal/notifier"
	"github.com/you/excursion-booking/pkg/mq"
)

const consumerName = "notification-worker"

// Consumer drains booking events and hands human-readable summaries to the
// notifier. Undecodable or undeliverable messages are Nacked to the DLQ.
type Consumer struct {
	cons *mq.Consumer
	n    notifier.Notifier
	log  *zap.Logger
}

func NewConsumer(cons *mq.Consumer, n notifier.Notifier, log *zap.Logger) *Consumer {
	return &Consumer{cons: cons, n: n, log: log}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.cons.Deliveries(ctx, consumerName)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handle(d); err != nil {
				c.log.Warn("delivery failed", zap.String("key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingConfirmed:
		ev, err := events.Decode[events.BookingConfirmed](d.Body)
		if err != nil {
			return err
		}
		subject, message := notifier.Summary(ev)
		return c.n.Notify(subject, message)
	default:
		c.log.Info("skip unknown key", zap.String("key", d.RoutingKey))
		return nil
	}
}
