package daily

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	claims "github.com/glkeru/loyalty/daily/internal/external/kafka"
	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ClaimReader interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, msg kafka.Message) error
}

// Копирование событий начисления из Kafka в журнал.
// Коммит в Kafka покрывает все предыдущие offset партиции, поэтому
// сообщение не коммитится и следующее не читается, пока текущее не сохранено
type LedgerConsumer struct {
	reader  ClaimReader
	storage interf.LedgerStorage
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

func NewLedgerConsumer(reader ClaimReader, storage interf.LedgerStorage, logger *zap.Logger) *LedgerConsumer {
	return &LedgerConsumer{
		reader:  reader,
		storage: storage,
		logger:  logger,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 30 * time.Second
			return b
		},
	}
}

// для тестов
func (c *LedgerConsumer) WithBackOff(f func() backoff.BackOff) *LedgerConsumer {
	c.backoff = f
	return c
}

// Работает до отмены ctx. Несохраненное сообщение остается незакоммиченным
func (c *LedgerConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		event, err := claims.DecodeClaim(msg)
		if err != nil {
			// битое сообщение пропускаем
			c.logger.Error("Claim event",
				zap.String("service", "DecodeClaim"),
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
		} else {
			_, err = backoff.Retry(ctx, func() (struct{}, error) {
				err := c.storage.SaveClaim(ctx, event)
				if err != nil {
					c.logger.Error("Ledger save", zap.String("id", event.ID.String()), zap.Error(err))
				}
				return struct{}{}, err
			}, c.retryOptions()...)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}

		err = c.reader.Commit(ctx, msg)
		if err != nil {
			// следующий коммит партиции покроет и это сообщение
			c.logger.Error("Commit", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *LedgerConsumer) fetch(ctx context.Context) (kafka.Message, error) {
	return backoff.Retry(ctx, func() (kafka.Message, error) {
		msg, err := c.reader.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return msg, backoff.Permanent(err)
			}
			c.logger.Error("Kafka read", zap.Error(err))
		}
		return msg, err
	}, c.retryOptions()...)
}

// без ограничения по времени: выход только по отмене ctx
func (c *LedgerConsumer) retryOptions() []backoff.RetryOption {
	return []backoff.RetryOption{
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxElapsedTime(0),
	}
}
