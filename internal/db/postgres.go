package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
)

// PostgresStore keeps every collection in the single "documents" table,
// with the record fields in a jsonb column.
type PostgresStore struct {
	db  pg.DBI
	log *slog.Logger
}

// NewPostgresStore connects with go-pg, applies migrations and verifies the connection.
func NewPostgresStore(ctx context.Context, opts Options, logger *slog.Logger) (*PostgresStore, error) {
	opt, err := pg.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	opt.MaxRetries = 3
	if opts.MaxConns > 0 {
		opt.PoolSize = opts.MaxConns
	}
	if opts.MaxConnLifetime > 0 {
		opt.MaxConnAge = opts.MaxConnLifetime
	}

	database := pg.Connect(opt)

	if opts.LogQueries {
		database.AddQueryHook(NewQueryHook(logger))
		logger.Info("SQL query logging enabled")
	}

	if err := database.Ping(ctx); err != nil {
		database.Close()
		return nil, classify(ErrUnavailable, err)
	}

	if err := MigratePostgres(ctx, opts.URL); err != nil {
		database.Close()
		return nil, err
	}

	return NewPostgres(database, logger), nil
}

// NewPostgres wraps an existing connection or transaction.
func NewPostgres(db pg.DBI, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: logger,
	}
}

func (r *PostgresStore) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return classify(ErrUnavailable, err)
		}
	}

	return nil
}

func (r *PostgresStore) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		r.log.Info("closing database connection pool")
		return db.Close()
	}

	return nil
}

func (r *PostgresStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	row := &DocumentRow{
		ID:         uuid.NewString(),
		Collection: collection,
		Data:       fields,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := r.db.ModelContext(withCollection(ctx, collection), row).Insert(); err != nil {
		r.log.Error("failed to insert document", "error", err, "collection", collection)
		return "", classify(ErrWriteFailed, fmt.Errorf("insert into %s: %w", collection, err))
	}

	r.log.Debug("document inserted", "collection", collection, "id", row.ID)

	return row.ID, nil
}

// Find matches the filter with jsonb containment, which is exact equality for scalar values.
func (r *PostgresStore) Find(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error) {
	if limit < 1 {
		return emptyResult(), nil
	}

	var rows []DocumentRow
	query := r.db.ModelContext(withCollection(ctx, collection), &rows).
		Where("? = ?", pg.Ident(Columns.Document.Collection), collection)

	if len(filter) > 0 {
		b, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("%w: encode filter: %w", ErrReadFailed, err)
		}
		query = query.Where("? @> CAST(? AS jsonb)", pg.Ident(Columns.Document.Data), string(b))
	}

	err := query.
		OrderExpr("? ASC", pg.Ident(Columns.Document.CreatedAt)).
		Limit(limit).
		Select()
	if err != nil {
		r.log.Error("failed to query documents", "error", err, "collection", collection, "limit", limit)
		return nil, classify(ErrReadFailed, fmt.Errorf("query %s: %w", collection, err))
	}

	docs := make([]Document, len(rows))
	for i := range rows {
		docs[i] = rows[i].document()
	}

	return docs, nil
}

func (r *PostgresStore) Collections(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.ModelContext(ctx, (*DocumentRow)(nil)).
		ColumnExpr("DISTINCT ?", pg.Ident(Columns.Document.Collection)).
		OrderExpr("? ASC", pg.Ident(Columns.Document.Collection)).
		Select(&names)
	if err != nil {
		return nil, classify(ErrReadFailed, fmt.Errorf("list collections: %w", err))
	}

	return names, nil
}
