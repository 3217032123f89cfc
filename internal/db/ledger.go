package daily

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const ledgerSchema = `CREATE TABLE IF NOT EXISTS claim_ledger (
	id         uuid PRIMARY KEY,
	user_id    bigint      NOT NULL,
	amount     integer     NOT NULL,
	balance    bigint      NOT NULL,
	claimed_at timestamptz NOT NULL,
	source     text        NOT NULL
)`

// Журнал начислений в PostgreSQL (копия событий из Kafka)
type LedgerDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewLedgerDB(ctx context.Context, dsn string, logger *zap.Logger) (db *LedgerDB, err error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	_, err = pool.Exec(ctx, ledgerSchema)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &LedgerDB{pool, logger}, nil
}

func (p *LedgerDB) Close() {
	p.pool.Close()
}

// Повторная доставка того же события ничего не меняет
func (p *LedgerDB) SaveClaim(ctx context.Context, event models.ClaimEvent) error {
	sql, args, err := ledgerInsert(event)
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return err
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		p.logger.Error("Get connection error", zap.Error(err), zap.String("service", "SaveClaim"))
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		p.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return err
	}
	return nil
}

func ledgerInsert(event models.ClaimEvent) (string, []any, error) {
	return sq.Insert("claim_ledger").
		Columns("id", "user_id", "amount", "balance", "claimed_at", "source").
		Values(event.ID, event.UserID, event.Amount, event.Balance, event.ClaimedAt, event.Source).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
