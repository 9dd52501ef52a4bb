package app

import (
	"context"
	"fmt"

	"github.com/faithguard/faithguard/internal/logging"
)

// Guard runs fn and converts a panic into a logged, recoverable error, so a
// single failing operation cannot take the whole app down.
func Guard(ctx context.Context, logger logging.Logger, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "recovered from panic", "panic", p)
			err = fmt.Errorf("recovered from panic: %v", p)
		}
	}()
	return fn()
}
