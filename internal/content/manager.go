package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daniilsolovey/taltos-portal/internal/db"
)

const (
	DefaultMaxLimit = 100

	DefaultNewsLimit    = 4
	DefaultHorsesLimit  = 50
	DefaultReviewsLimit = 10

	// BookingConfirmation is returned to visitors after a booking request is stored.
	BookingConfirmation = "Köszönjük! 48 órán belül válaszolunk."
)

// Manager is the generic document-access layer shared by every record kind.
type Manager struct {
	store    db.Store
	maxLimit int
	log      *slog.Logger
	now      func() time.Time
}

// NewManager builds a Manager over store. A nil store makes every storage
// operation fail with db.ErrUnavailable. maxLimit < 1 selects DefaultMaxLimit.
func NewManager(store db.Store, maxLimit int, logger *slog.Logger) *Manager {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}

	return &Manager{
		store:    store,
		maxLimit: maxLimit,
		log:      logger,
		now:      time.Now,
	}
}

// CreateOne validates rec and inserts it into its kind's collection.
// created_at and updated_at are stamped on the stored document.
func (m *Manager) CreateOne(ctx context.Context, rec Record) (string, error) {
	if err := Validate(rec); err != nil {
		return "", err
	}

	if m.store == nil {
		return "", fmt.Errorf("create %s: %w", rec.Kind(), db.ErrUnavailable)
	}

	fields := rec.Fields()
	now := m.now().UTC()
	fields["created_at"] = now
	fields["updated_at"] = now

	id, err := m.store.Insert(ctx, rec.Kind().Collection(), fields)
	if err != nil {
		m.log.Error("failed to create document", "error", err, "kind", rec.Kind())
		return "", fmt.Errorf("create %s: %w", rec.Kind(), err)
	}

	m.log.Info("document created", "kind", rec.Kind(), "id", id)

	return id, nil
}

// FetchMany returns up to limit documents of kind k matching filter, each
// carrying a public "id". limit is clamped to the manager's maximum and a
// limit below 1 yields an empty result.
func (m *Manager) FetchMany(ctx context.Context, k Kind, filter db.Filter, limit int) ([]db.Document, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("fetch: unknown record kind: %s", k)
	}

	limit = m.clampLimit(limit)
	if limit == 0 {
		return []db.Document{}, nil
	}

	if m.store == nil {
		return nil, fmt.Errorf("fetch %s: %w", k, db.ErrUnavailable)
	}

	docs, err := m.store.Find(ctx, k.Collection(), filter, limit)
	if err != nil {
		m.log.Error("failed to fetch documents", "error", err, "kind", k, "limit", limit)
		return nil, fmt.Errorf("fetch %s: %w", k, err)
	}

	if docs == nil {
		docs = []db.Document{}
	}

	return PublicDocuments(docs), nil
}

func (m *Manager) clampLimit(limit int) int {
	switch {
	case limit < 1:
		return 0
	case limit > m.maxLimit:
		return m.maxLimit
	default:
		return limit
	}
}

// News lists news posts, optionally only those in lang.
func (m *Manager) News(ctx context.Context, lang string, limit int) ([]db.Document, error) {
	return m.FetchMany(ctx, KindNewsPost, langFilter(lang), limit)
}

// Reviews lists reviews, optionally only those in lang.
func (m *Manager) Reviews(ctx context.Context, lang string, limit int) ([]db.Document, error) {
	return m.FetchMany(ctx, KindReview, langFilter(lang), limit)
}

func (m *Manager) Horses(ctx context.Context, limit int) ([]db.Document, error) {
	return m.FetchMany(ctx, KindHorse, nil, limit)
}

func (m *Manager) SubmitContact(ctx context.Context, msg *ContactMessage) (string, error) {
	return m.CreateOne(ctx, msg)
}

func (m *Manager) SubmitBooking(ctx context.Context, req *BookingRequest) (string, error) {
	return m.CreateOne(ctx, req)
}

// Collections lists the collections that currently hold documents.
func (m *Manager) Collections(ctx context.Context) ([]string, error) {
	if m.store == nil {
		return nil, fmt.Errorf("collections: %w", db.ErrUnavailable)
	}

	names, err := m.store.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("collections: %w", err)
	}
	if names == nil {
		names = []string{}
	}

	return names, nil
}

func langFilter(lang string) db.Filter {
	if lang == "" {
		return nil
	}
	return db.Filter{"lang": lang}
}
