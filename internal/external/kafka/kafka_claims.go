package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/segmentio/kafka-go"
)

// Публикация событий начисления
type KafkaClaims struct {
	writer *kafka.Writer
}

func NewWriter(brokers []string, topic string) (writer *KafkaClaims, err error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("env DAILY_KAFKA_BROKERS is not set")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaClaims{w}, nil
}

// Ключ - ID пользователя: события одного пользователя идут в одну партицию
func (k *KafkaClaims) PublishClaim(ctx context.Context, event models.ClaimEvent) error {
	msg, err := EncodeClaim(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, msg)
}

func (k *KafkaClaims) Close() error {
	return k.writer.Close()
}

func EncodeClaim(event models.ClaimEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
		Time:  event.ClaimedAt,
	}, nil
}

// Чтение событий (job ledger)
type KafkaReader struct {
	reader *kafka.Reader
}

func NewReader(brokers []string, topic string, group string) (reader *KafkaReader, err error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("env DAILY_KAFKA_BROKERS is not set")
	}
	kafkaconfig := kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	}
	return &KafkaReader{kafka.NewReader(kafkaconfig)}, nil
}

// Сообщение коммитится только после обработки
func (k *KafkaReader) Fetch(ctx context.Context) (kafka.Message, error) {
	return k.reader.FetchMessage(ctx)
}

func (k *KafkaReader) Commit(ctx context.Context, msg kafka.Message) error {
	return k.reader.CommitMessages(ctx, msg)
}

func (k *KafkaReader) CloseReader() {
	k.reader.Close()
}

func DecodeClaim(msg kafka.Message) (event models.ClaimEvent, err error) {
	err = json.Unmarshal(msg.Value, &event)
	if err != nil {
		return event, fmt.Errorf("decode claim event: %w", err)
	}
	if event.UserID == 0 {
		return event, fmt.Errorf("invalid claim event: userId is required")
	}
	return event, nil
}
