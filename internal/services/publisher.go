package daily

import (
	"context"
	"errors"

	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	models "github.com/glkeru/loyalty/daily/internal/models"
)

// Публикация во все настроенные брокеры, ошибки объединяются
type MultiPublisher []interf.ClaimPublisher

func (m MultiPublisher) PublishClaim(ctx context.Context, event models.ClaimEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.PublishClaim(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
