package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	claimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_claims_total",
			Help: "Кол-во попыток получить ежедневные баллы по результату",
		},
		[]string{"result"},
	)

	pointsAwardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_points_awarded_total",
			Help: "Кол-во начисленных через сайт баллов",
		},
	)
)

const sideEffectsTimeout = 5 * time.Second

type ClaimService struct {
	logger    *zap.Logger
	db        interf.UserStore
	cache     interf.StatusCache
	publisher interf.ClaimPublisher
	policy    models.ClaimPolicy
	timeout   time.Duration
	now       func() time.Time
}

// cache и publisher могут быть nil
func NewClaimService(logger *zap.Logger, db interf.UserStore, cache interf.StatusCache, publisher interf.ClaimPublisher, policy models.ClaimPolicy, timeout time.Duration) *ClaimService {
	if policy.Reward <= 0 {
		policy.Reward = models.DefaultDaily
	}
	if policy.Cooldown <= 0 {
		policy.Cooldown = models.DefaultCooldown
	}
	return &ClaimService{
		logger:    logger,
		db:        db,
		cache:     cache,
		publisher: publisher,
		policy:    policy,
		timeout:   timeout,
		now:       time.Now,
	}
}

// часы для тестов
func (s *ClaimService) WithClock(now func() time.Time) *ClaimService {
	s.now = now
	return s
}

func (s *ClaimService) Log(msg string, service string, err error) {
	s.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// Ежедневное начисление баллов
func (s *ClaimService) AttemptDailyClaim(ctx context.Context, identity string, displayName string) (result models.ClaimResult, err error) {
	defer func() {
		if err != nil {
			claimsTotal.WithLabelValues(string(models.KindOf(err))).Inc()
			return
		}
		claimsTotal.WithLabelValues("success").Inc()
		pointsAwardedTotal.Add(float64(result.PointsAwarded))
	}()

	// валидация до обращения к БД
	userID, err := ParseIdentity(identity)
	if err != nil {
		return result, err
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return result, err
	}

	now := s.now()

	// техработы
	cfg, err := s.botConfig(ctx)
	if err != nil {
		return result, s.storeError(err, "GetBotConfig")
	}
	if cfg.MaintenanceMode {
		return result, models.NewClaimError(models.ServiceUnavailable, "Bot is under maintenance. Try again later.")
	}
	policy := cfg.Policy(s.policy)

	// аккаунт
	user, err := s.ensureUser(ctx, userID, displayName, now)
	if err != nil {
		return result, s.storeError(err, "EnsureUser")
	}

	// блокировка
	if user.BlacklistActive(now) {
		return result, blacklistedError(user, now)
	}
	if user.BlacklistExpired(now) {
		err = s.clearBlacklist(ctx, userID, now)
		if err != nil {
			return result, s.storeError(err, "ClearExpiredBlacklist")
		}
		s.logger.Info("blacklist expired", zap.Int64("user", userID))
	}

	// кулдаун, без записи в БД
	cutoff := now.Add(-policy.Cooldown)
	if user.LastDailyClaimAt != nil && user.LastDailyClaimAt.After(cutoff) {
		return result, alreadyClaimedError(user, policy, now)
	}

	// начисление
	updated, ok, err := s.claim(ctx, userID, policy.Reward, now, cutoff)
	if err != nil {
		return result, s.storeError(err, "ClaimDaily")
	}
	if !ok {
		// проиграли гонку: перечитываем аккаунт
		return result, s.conflict(ctx, userID, policy, now)
	}

	result = models.ClaimResult{
		UserID:         userID,
		PointsAwarded:  policy.Reward,
		Balance:        updated.PointBalance,
		TotalEarned:    updated.TotalEarned,
		ClaimedAt:      now,
		NextEligibleAt: now.Add(policy.Cooldown),
	}
	s.logger.Info("daily claimed",
		zap.Int64("user", userID),
		zap.Int64("points", policy.Reward),
		zap.Int64("balance", updated.PointBalance),
	)

	s.afterClaim(ctx, result)
	return result, nil
}

// Транзакция, статистика, события. Ошибки только логируются
func (s *ClaimService) afterClaim(ctx context.Context, result models.ClaimResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectsTimeout)
	defer cancel()

	tnx := models.TransactionRecord{
		ID:          uuid.New(),
		UserID:      result.UserID,
		Type:        models.TypeDailyClaim,
		Amount:      result.PointsAwarded,
		Description: fmt.Sprintf("Web daily - %dpts", result.PointsAwarded),
		Timestamp:   result.ClaimedAt,
		Source:      models.SourceWebsite,
	}
	if err := s.db.InsertTransaction(ctx, tnx); err != nil {
		s.Log("Transaction log", "InsertTransaction", err)
	}
	if err := s.db.IncrementStats(ctx, result.PointsAwarded, result.ClaimedAt); err != nil {
		s.Log("Global stats", "IncrementStats", err)
	}

	if s.publisher != nil {
		event := models.ClaimEvent{
			ID:        tnx.ID,
			UserID:    result.UserID,
			Amount:    result.PointsAwarded,
			Balance:   result.Balance,
			ClaimedAt: result.ClaimedAt,
			Source:    models.SourceWebsite,
		}
		if err := s.publisher.PublishClaim(ctx, event); err != nil {
			s.Log("Claim event", "PublishClaim", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateStatus(ctx); err != nil {
			s.Log("Status cache", "InvalidateStatus", err)
		}
	}
}

// Условие начисления не выполнено: причина по свежим данным
func (s *ClaimService) conflict(ctx context.Context, userID int64, policy models.ClaimPolicy, now time.Time) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return s.storeError(err, "GetUser")
	}
	if user.BlacklistActive(now) {
		return blacklistedError(user, now)
	}
	if user.LastDailyClaimAt != nil && user.LastDailyClaimAt.After(now.Add(-policy.Cooldown)) {
		return alreadyClaimedError(user, policy, now)
	}
	return models.NewClaimError(models.ServiceUnavailable, "Claim is being processed. Try again later.")
}

func alreadyClaimedError(user models.UserAccount, policy models.ClaimPolicy, now time.Time) error {
	next := user.LastDailyClaimAt.Add(policy.Cooldown)
	e := models.NewClaimError(models.AlreadyClaimed, "Already claimed!")
	e.TimeLeft = FormatTimeLeft(next.Sub(now))
	e.NextClaim = next
	e.Balance = user.PointBalance
	return e
}

func blacklistedError(user models.UserAccount, now time.Time) error {
	e := models.NewClaimError(models.Blacklisted, "Account blacklisted.")
	if user.BlacklistExpiresAt != nil {
		e.Remaining = user.BlacklistExpiresAt.Sub(now)
		e.ExpiresAt = user.BlacklistExpiresAt
		e.Message = "Account blacklisted for " + FormatTimeLeft(e.Remaining) + "."
	}
	return e
}

// Ошибки БД: недоступность -> ServiceUnavailable, остальное -> Internal
func (s *ClaimService) storeError(err error, op string) error {
	s.Log("Store error", op, err)
	if errors.Is(err, models.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return models.WrapClaimError(models.ServiceUnavailable, "Service unavailable. Try again later.", err)
	}
	return models.WrapClaimError(models.Internal, "Internal error. Try again later.", err)
}

// вызовы БД с таймаутом

func (s *ClaimService) botConfig(ctx context.Context) (models.BotConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	cfg, err := s.db.GetBotConfig(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return models.BotConfig{}, nil
	}
	return cfg, err
}

func (s *ClaimService) ensureUser(ctx context.Context, userID int64, name string, now time.Time) (models.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.EnsureUser(ctx, userID, name, now)
}

func (s *ClaimService) getUser(ctx context.Context, userID int64) (models.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.GetUser(ctx, userID)
}

func (s *ClaimService) clearBlacklist(ctx context.Context, userID int64, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.ClearExpiredBlacklist(ctx, userID, now)
}

func (s *ClaimService) claim(ctx context.Context, userID int64, reward int64, now time.Time, cutoff time.Time) (models.UserAccount, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.ClaimDaily(ctx, userID, reward, now, cutoff)
}
