package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

const slowQueryThreshold = 250 * time.Millisecond

type collectionKey struct{}

// withCollection tags ctx with the collection a statement works on, so the
// query log can be filtered per record kind.
func withCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, collectionKey{}, collection)
}

func collectionFromContext(ctx context.Context) string {
	c, _ := ctx.Value(collectionKey{}).(string)
	return c
}

// QueryHook logs every document statement issued by the postgres backend.
// Statements slower than slowQueryThreshold are logged as warnings.
type QueryHook struct {
	logger *slog.Logger
}

func NewQueryHook(logger *slog.Logger) *QueryHook {
	return &QueryHook{
		logger: logger,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	collection := collectionFromContext(ctx)

	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.Error("failed to format query", "error", err, "collection", collection)
		return nil
	}

	duration := time.Since(event.StartTime)
	attrs := []any{
		"collection", collection,
		"query", string(query),
		"duration", duration,
	}
	if event.Result != nil {
		attrs = append(attrs, "rows", event.Result.RowsReturned())
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err)
	}

	if duration > slowQueryThreshold {
		h.logger.Warn("slow document query", attrs...)
		return nil
	}

	h.logger.Debug("document query executed", attrs...)

	return nil
}
