package daily

import (
	"context"
	"sort"
	"sync"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
)

// Хранилище в памяти процесса: локальный запуск (DAILY_STORE=memory) и тесты.
// Все операции атомарны под одной блокировкой
type MemoryDB struct {
	mu     sync.Mutex
	users  map[int64]*models.UserAccount
	order  []int64
	tnx    []models.TransactionRecord
	stats  *models.GlobalStatistics
	config *models.BotConfig
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{users: make(map[int64]*models.UserAccount)}
}

// Конфигурация бота (в памяти ее пишет только код запуска и тесты)
func (m *MemoryDB) SetBotConfig(cfg models.BotConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = &cfg
}

// Запись аккаунта целиком
func (m *MemoryDB) PutUser(user models.UserAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		m.order = append(m.order, user.ID)
	}
	m.users[user.ID] = &user
}

func (m *MemoryDB) Transactions() []models.TransactionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.TransactionRecord(nil), m.tnx...)
}

func (m *MemoryDB) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryDB) GetBotConfig(ctx context.Context) (models.BotConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		return models.BotConfig{}, models.ErrNotFound
	}
	return *m.config, nil
}

func (m *MemoryDB) EnsureUser(ctx context.Context, userID int64, displayName string, now time.Time) (models.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return models.UserAccount{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		user = &models.UserAccount{
			ID:           userID,
			DisplayName:  displayName,
			CreatedAt:    now,
			LastActiveAt: now,
			CreatedVia:   models.SourceWebsite,
		}
		m.users[userID] = user
		m.order = append(m.order, userID)
	}
	if user.DisplayName == "" && displayName != "" {
		user.DisplayName = displayName
	}
	return copyUser(user), nil
}

func (m *MemoryDB) GetUser(ctx context.Context, userID int64) (models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return models.UserAccount{}, models.ErrNotFound
	}
	return copyUser(user), nil
}

func (m *MemoryDB) ClearExpiredBlacklist(ctx context.Context, userID int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if ok && user.BlacklistExpired(now) {
		user.IsBlacklisted = false
		user.BlacklistExpiresAt = nil
	}
	return nil
}

func (m *MemoryDB) ClaimDaily(ctx context.Context, userID int64, reward int64, now time.Time, cutoff time.Time) (models.UserAccount, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.UserAccount{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok || user.IsBlacklisted {
		return models.UserAccount{}, false, nil
	}
	if user.LastDailyClaimAt != nil && user.LastDailyClaimAt.After(cutoff) {
		return models.UserAccount{}, false, nil
	}
	claimed := now
	user.LastDailyClaimAt = &claimed
	user.LastActiveAt = now
	user.PointBalance += reward
	user.TotalEarned += reward
	user.TotalClaims++
	return copyUser(user), true, nil
}

func (m *MemoryDB) InsertTransaction(ctx context.Context, tnx models.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tnx = append(m.tnx, tnx)
	return nil
}

func (m *MemoryDB) IncrementStats(ctx context.Context, points int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		m.stats = &models.GlobalStatistics{}
	}
	m.stats.TotalPointsDistributed += points
	m.stats.WebClaimsTotal++
	m.stats.AllTimeClaims++
	m.stats.LastUpdated = now
	return nil
}

func (m *MemoryDB) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *MemoryDB) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if !u.LastActiveAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryDB) SumTotalEarned(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, u := range m.users {
		total += u.TotalEarned
	}
	return total, nil
}

func (m *MemoryDB) CountClaims(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tnx {
		if t.Type == models.TypeDailyClaim {
			n++
		}
	}
	return n, nil
}

func (m *MemoryDB) TopUsers(ctx context.Context, limit int) ([]models.UserAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.UserAccount, 0, len(m.order))
	for _, id := range m.order {
		u := m.users[id]
		if u.IsBlacklisted {
			continue
		}
		users = append(users, copyUser(u))
	}
	// порядок вставки сохраняется при равных баллах
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].PointBalance > users[j].PointBalance
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (m *MemoryDB) GetGlobalStats(ctx context.Context) (models.GlobalStatistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		return models.GlobalStatistics{}, models.ErrNotFound
	}
	return *m.stats, nil
}

func (m *MemoryDB) SaveStatusCounters(ctx context.Context, users int64, active int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats == nil {
		m.stats = &models.GlobalStatistics{}
	}
	m.stats.TotalUsers = users
	m.stats.ActiveToday = active
	m.stats.LastUpdated = now
	return nil
}

func copyUser(u *models.UserAccount) models.UserAccount {
	c := *u
	if u.LastDailyClaimAt != nil {
		t := *u.LastDailyClaimAt
		c.LastDailyClaimAt = &t
	}
	if u.BlacklistExpiresAt != nil {
		t := *u.BlacklistExpiresAt
		c.BlacklistExpiresAt = &t
	}
	return c
}
