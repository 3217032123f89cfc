// Фоновые задачи: очистка лимитеров и прогрев кэша статуса
package daily

import (
	"context"
	"time"

	limiter "github.com/glkeru/loyalty/daily/internal/limiter"
	models "github.com/glkeru/loyalty/daily/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type StatusRefresher interface {
	Refresh(ctx context.Context) (models.Status, error)
}

type Scheduler struct {
	cron     *cron.Cron
	logger   *zap.Logger
	limiters []*limiter.Limiter
	status   StatusRefresher
	timeout  time.Duration
}

// status может быть nil
func NewScheduler(logger *zap.Logger, status StatusRefresher, timeout time.Duration, limiters ...*limiter.Limiter) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		logger:   logger,
		limiters: limiters,
		status:   status,
		timeout:  timeout,
	}
}

func (s *Scheduler) Start(sweepSpec string, refreshSpec string) error {
	_, err := s.cron.AddFunc(sweepSpec, s.SweepLimiters)
	if err != nil {
		return err
	}
	if s.status != nil && refreshSpec != "" {
		_, err = s.cron.AddFunc(refreshSpec, s.RefreshStatus)
		if err != nil {
			return err
		}
	}
	s.cron.Start()
	return nil
}

// Ждет завершения выполняющихся задач
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) SweepLimiters() {
	removed := 0
	for _, l := range s.limiters {
		removed += l.Sweep()
	}
	if removed > 0 {
		s.logger.Debug("rate limiter sweep", zap.Int("removed", removed))
	}
}

func (s *Scheduler) RefreshStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, err := s.status.Refresh(ctx)
	if err != nil {
		s.logger.Error("Status refresh", zap.String("service", "RefreshStatus"), zap.Error(err))
	}
}
