package daily

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceWebsite   = "website"
	TypeDailyClaim  = "daily_claim"
	GlobalStatsID   = "global_stats"
	BotConfigID     = "bot_config"
	DefaultDaily    = 2
	DefaultCooldown = 24 * time.Hour
)

// Аккаунт пользователя (общая схема с Discord ботом)
type UserAccount struct {
	ID                 int64      `bson:"user_id" json:"userId,string"`
	DisplayName        string     `bson:"username" json:"username"`
	PointBalance       int64      `bson:"points" json:"points"`
	TotalEarned        int64      `bson:"total_earned" json:"totalEarned"`
	TotalClaims        int64      `bson:"total_claims" json:"totalClaims"`
	LastDailyClaimAt   *time.Time `bson:"daily_claimed" json:"lastDailyClaimAt"`
	IsBlacklisted      bool       `bson:"blacklisted" json:"isBlacklisted"`
	BlacklistExpiresAt *time.Time `bson:"blacklist_expires" json:"blacklistExpiresAt"`
	CreatedAt          time.Time  `bson:"account_created" json:"createdAt"`
	LastActiveAt       time.Time  `bson:"last_active" json:"lastActiveAt"`
	CreatedVia         string     `bson:"created_via,omitempty" json:"createdVia,omitempty"`
}

// Блокировка действует на момент now
func (u UserAccount) BlacklistActive(now time.Time) bool {
	if !u.IsBlacklisted {
		return false
	}
	return u.BlacklistExpiresAt == nil || u.BlacklistExpiresAt.After(now)
}

// Блокировка истекла, но еще не снята
func (u UserAccount) BlacklistExpired(now time.Time) bool {
	return u.IsBlacklisted && u.BlacklistExpiresAt != nil && !u.BlacklistExpiresAt.After(now)
}

// Транзакция начисления (только добавление)
type TransactionRecord struct {
	ID          uuid.UUID `bson:"tx_id" json:"id"`
	UserID      int64     `bson:"user_id" json:"userId,string"`
	Type        string    `bson:"type" json:"type"`
	Amount      int64     `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Source      string    `bson:"source" json:"source"`
}

// Глобальная статистика
type GlobalStatistics struct {
	TotalPointsDistributed int64     `bson:"total_points_distributed"`
	WebClaimsTotal         int64     `bson:"web_claims_total"`
	AllTimeClaims          int64     `bson:"all_time_claims"`
	TotalUsers             int64     `bson:"total_users"`
	TotalServers           int64     `bson:"total_servers"`
	ActiveToday            int64     `bson:"active_today"`
	LastUpdated            time.Time `bson:"last_updated"`
}

type PointRates struct {
	Daily int64 `bson:"daily"`
}

// Конфигурация бота, ее владелец - бот
type BotConfig struct {
	MaintenanceMode    bool       `bson:"maintenance_mode"`
	PointRates         PointRates `bson:"point_rates"`
	DailyCooldownHours int64      `bson:"daily_cooldown_hours"`
	LastActivity       *time.Time `bson:"last_activity"`
}

// Параметры начисления с учетом конфигурации
type ClaimPolicy struct {
	Reward   int64
	Cooldown time.Duration
}

// Награда и кулдаун: конфигурация бота, иначе значения по умолчанию
func (c BotConfig) Policy(fallback ClaimPolicy) ClaimPolicy {
	policy := fallback
	if c.PointRates.Daily > 0 {
		policy.Reward = c.PointRates.Daily
	}
	if c.DailyCooldownHours > 0 {
		policy.Cooldown = time.Duration(c.DailyCooldownHours) * time.Hour
	}
	return policy
}

// Успешное начисление
type ClaimResult struct {
	UserID         int64     `json:"userId,string"`
	PointsAwarded  int64     `json:"pointsAwarded"`
	Balance        int64     `json:"balance"`
	TotalEarned    int64     `json:"totalEarned"`
	ClaimedAt      time.Time `json:"claimedAt"`
	NextEligibleAt time.Time `json:"nextEligibleAt"`
}

// Событие начисления для Kafka / RabbitMQ
type ClaimEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId,string"`
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
	ClaimedAt time.Time `json:"claimedAt"`
	Source    string    `json:"source"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int64  `json:"points"`
}

type StatusStats struct {
	Users   int64 `json:"users"`
	Servers int64 `json:"servers"`
	Points  int64 `json:"points"`
	Cookies int64 `json:"cookies"`
	Active  int64 `json:"active"`
}

// Ответ /api/status
type Status struct {
	Online      bool               `json:"online"`
	Stats       StatusStats        `json:"stats"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Timestamp   time.Time          `json:"timestamp"`
}
