package service

import (
	"context"
	"errors"
	"time"

	"github.com/you/excursion-booking/internal/domain"
)

// opCtx bounds a storage-facing call. Callers must defer cancel.
func opCtx(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// mapTimeout turns a storage deadline into Unavailable so it is never
// mistaken for a ledger conflict.
func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrUnavailable
	}
	return err
}
