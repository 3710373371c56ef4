package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
)

// MaxInFlight максимальное число одновременно обрабатываемых сообщений.
const MaxInFlight = 10

// Handler обрабатывает тело сообщения. Ошибка приводит к Nack с возвратом в очередь.
type Handler func(ctx context.Context, body []byte) error

// ConsumeMessages подписывается на очередь и обрабатывает сообщения до отмены ctx.
func ConsumeMessages(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler Handler) error {
	const op = "rabbitmq.ConsumeMessages"
	deliveries, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	Serve(ctx, deliveries, log, handler)
	return nil
}

// Serve обрабатывает доставки с ограничением MaxInFlight и возвращается,
// когда ctx отменён или канал доставок закрыт, дождавшись начатых обработчиков.
func Serve(ctx context.Context, deliveries <-chan amqp.Delivery, log *slog.Logger, handler Handler) {
	sem := make(chan struct{}, MaxInFlight)
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				if err := d.Nack(false, true); err != nil {
					log.Error("failed to nack message", sl.Err(err))
				}
				return
			}
			wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				if err := handler(ctx, delivery.Body); err != nil {
					log.Error("failed to handle message", sl.Err(err))
					if nackErr := delivery.Nack(false, true); nackErr != nil {
						log.Error("failed to nack message", sl.Err(nackErr))
					}
					return
				}
				if ackErr := delivery.Ack(false); ackErr != nil {
					log.Error("failed to ack message", sl.Err(ackErr))
				}
			}(d)
		case <-ctx.Done():
			return
		}
	}
}
