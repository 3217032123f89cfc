package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	models "github.com/glkeru/loyalty/daily/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Уведомления боту о начислениях через сайт
type RabbitPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex // amqp.Channel не безопасен для параллельной публикации
	ch    *amqp.Channel
	queue string
}

func NewRabbitPublisher(url string, queue string) (rabbit *RabbitPublisher, err error) {
	if url == "" {
		return nil, fmt.Errorf("env DAILY_RABBIT_URL is not set")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (r *RabbitPublisher) PublishClaim(ctx context.Context, event models.ClaimEvent) error {
	msg, err := ClaimPublishing(event)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ch.PublishWithContext(ctx,
		"",      // exchange
		r.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg)
}

// MessageId совпадает с ID события
func ClaimPublishing(event models.ClaimEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.ClaimedAt,
		Body:         body,
	}, nil
}

func (r *RabbitPublisher) Close() {
	r.ch.Close()
	r.conn.Close()
}
