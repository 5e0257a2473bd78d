package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an application error through the context logger. Used for
// best-effort side work, such as reputation point awards, where the
// operation itself must not fail.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	logger.Error("application error", "error", err)
}
