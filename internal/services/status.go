package daily

import (
	"context"
	"errors"
	"sync"
	"time"

	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	models "github.com/glkeru/loyalty/daily/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StatusOptions struct {
	CacheTTL        time.Duration
	HeartbeatWindow time.Duration
	LeaderboardSize int
	Timeout         time.Duration
}

type StatusService struct {
	logger *zap.Logger
	db     interf.UserStore
	cache  interf.StatusCache
	opts   StatusOptions
	now    func() time.Time

	// локальный кэш, если redis не настроен
	mu      sync.Mutex
	local   *models.Status
	localAt time.Time
}

func NewStatusService(logger *zap.Logger, db interf.UserStore, cache interf.StatusCache, opts StatusOptions) *StatusService {
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = 10
	}
	if opts.HeartbeatWindow <= 0 {
		opts.HeartbeatWindow = 5 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &StatusService{logger: logger, db: db, cache: cache, opts: opts, now: time.Now}
}

func (s *StatusService) WithClock(now func() time.Time) *StatusService {
	s.now = now
	return s
}

// Статус бота, статистика и лидерборд. Ошибки БД не возвращаются:
// в этом случае отдается пустой статус с online=false
func (s *StatusService) GetStatus(ctx context.Context) models.Status {
	if status, ok := s.cached(ctx); ok {
		return status
	}
	status, err := s.Refresh(ctx)
	if err != nil {
		s.logger.Error("Status", zap.String("service", "GetStatus"), zap.Error(err))
		return s.offline()
	}
	return status
}

// Пересчет статуса и запись в кэш
func (s *StatusService) Refresh(ctx context.Context) (models.Status, error) {
	status, err := s.build(ctx)
	if err != nil {
		return models.Status{}, err
	}

	if s.cache != nil {
		err = s.cache.SetStatus(ctx, status)
		if err != nil {
			s.logger.Error("Status cache", zap.String("service", "SetStatus"), zap.Error(err))
		}
	} else if s.opts.CacheTTL > 0 {
		s.mu.Lock()
		s.local = &status
		s.localAt = s.now()
		s.mu.Unlock()
	}
	return status, nil
}

func (s *StatusService) cached(ctx context.Context) (models.Status, bool) {
	if s.cache != nil {
		status, err := s.cache.GetStatus(ctx)
		if err == nil {
			return status, true
		}
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("Status cache", zap.String("service", "GetStatus"), zap.Error(err))
		}
		return models.Status{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.local != nil && s.now().Sub(s.localAt) < s.opts.CacheTTL {
		return *s.local, true
	}
	return models.Status{}, false
}

func (s *StatusService) build(ctx context.Context) (models.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	now := s.now()
	dayStart := now.UTC().Truncate(24 * time.Hour)

	var (
		users, active, earned, claims int64
		cfg                           models.BotConfig
		leaders                       []models.UserAccount
		global                        models.GlobalStatistics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.db.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.db.CountActiveSince(gctx, dayStart)
		return err
	})
	g.Go(func() (err error) {
		earned, err = s.db.SumTotalEarned(gctx)
		return err
	})
	g.Go(func() (err error) {
		claims, err = s.db.CountClaims(gctx)
		return err
	})
	g.Go(func() (err error) {
		cfg, err = s.db.GetBotConfig(gctx)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() (err error) {
		leaders, err = s.db.TopUsers(gctx, s.opts.LeaderboardSize)
		return err
	})
	g.Go(func() (err error) {
		global, err = s.db.GetGlobalStats(gctx)
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Status{}, err
	}

	// если агрегаты пустые, берем сохраненную статистику
	if earned == 0 {
		earned = global.TotalPointsDistributed
	}
	if claims == 0 {
		claims = global.AllTimeClaims
	}

	err := s.db.SaveStatusCounters(ctx, users, active, now)
	if err != nil {
		s.logger.Error("Global stats", zap.String("service", "SaveStatusCounters"), zap.Error(err))
	}

	online := cfg.LastActivity != nil &&
		now.Sub(*cfg.LastActivity) < s.opts.HeartbeatWindow &&
		!cfg.MaintenanceMode

	board := make([]models.LeaderboardEntry, 0, len(leaders))
	for i, u := range leaders {
		name := u.DisplayName
		if name == "" {
			name = "Anonymous"
		}
		board = append(board, models.LeaderboardEntry{Rank: i + 1, Name: name, Points: u.PointBalance})
	}

	return models.Status{
		Online: online,
		Stats: models.StatusStats{
			Users:   users,
			Servers: global.TotalServers,
			Points:  earned,
			Cookies: claims,
			Active:  active,
		},
		Leaderboard: board,
		Timestamp:   now,
	}, nil
}

func (s *StatusService) offline() models.Status {
	return models.Status{
		Online:      false,
		Leaderboard: []models.LeaderboardEntry{},
		Timestamp:   s.now(),
	}
}
