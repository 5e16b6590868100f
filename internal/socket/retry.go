package socket

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"vehicle_dashboard/internal/logger"
)

var retrySleep = time.Second

// Retryable is a connection that can be reopened after it fails.
type Retryable interface {
	Open() error
	Close() error
	Start(ctx context.Context) error
	Name() string
}

// retry keeps r running until ctx is done. Start returning (with or without
// an error) closes r, waits retrySleep and opens it again.
func retry(ctx context.Context, r Retryable, log *logger.Logger) error {
	errStarting := errors.New("starting")
	err := errStarting
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			if err != errStarting {
				log.Errorw("reconnecting", "conn", r.Name(), "err", err)
				if cerr := r.Close(); cerr != nil {
					log.Warnw("close_failed", "conn", r.Name(), "err", cerr)
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retrySleep):
				}
			}
			err = r.Open()
			if err != nil {
				continue
			}
		}
		err = r.Start(ctx)
		if err == nil {
			err = errors.New("connection ended")
		}
	}
}
