package daily

import (
	"context"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
)

//go:generate mockgen -destination=./../services/mock_daily_test.go -package=daily . UserStore,StatusCache,ClaimPublisher

type UserStore interface {
	GetBotConfig(ctx context.Context) (models.BotConfig, error)
	// создание аккаунта, если его нет (upsert по user_id)
	EnsureUser(ctx context.Context, userID int64, displayName string, now time.Time) (models.UserAccount, error)
	GetUser(ctx context.Context, userID int64) (models.UserAccount, error)
	ClearExpiredBlacklist(ctx context.Context, userID int64, now time.Time) error
	// атомарное начисление: только если daily_claimed пустой или <= cutoff
	// ok=false, если условие не выполнено
	ClaimDaily(ctx context.Context, userID int64, reward int64, now time.Time, cutoff time.Time) (user models.UserAccount, ok bool, err error)
	InsertTransaction(ctx context.Context, tnx models.TransactionRecord) error
	IncrementStats(ctx context.Context, points int64, now time.Time) error

	// статус
	CountUsers(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	SumTotalEarned(ctx context.Context) (int64, error)
	CountClaims(ctx context.Context) (int64, error)
	TopUsers(ctx context.Context, limit int) ([]models.UserAccount, error)
	GetGlobalStats(ctx context.Context) (models.GlobalStatistics, error)
	SaveStatusCounters(ctx context.Context, users int64, active int64, now time.Time) error
	Ping(ctx context.Context) error
}

type StatusCache interface {
	GetStatus(ctx context.Context) (status models.Status, err error)
	SetStatus(ctx context.Context, status models.Status) error
	InvalidateStatus(ctx context.Context) error
}

type ClaimPublisher interface {
	PublishClaim(ctx context.Context, event models.ClaimEvent) error
}

type LedgerStorage interface {
	SaveClaim(ctx context.Context, event models.ClaimEvent) error
}
