package content

import (
	"context"
	"errors"

	"github.com/daniilsolovey/taltos-portal/internal/db"
)

const (
	maxDiagnosticCollections = 20
	maxDiagnosticErrorLen    = 120
)

type DatabaseStatus string

const (
	StatusOK            DatabaseStatus = "ok"
	StatusNotConfigured DatabaseStatus = "not_configured"
	StatusUnavailable   DatabaseStatus = "unavailable"
	StatusReadFailed    DatabaseStatus = "read_failed"
)

// Diagnostics is the best-effort health report served on the diagnostic route.
type Diagnostics struct {
	Backend        string         `json:"backend"`
	Database       string         `json:"database"`
	DatabaseURL    string         `json:"database_url"`
	DatabaseName   string         `json:"database_name"`
	Collections    []string       `json:"collections"`
	DatabaseStatus DatabaseStatus `json:"database_status"`
}

// Diagnose never fails: every storage problem is reported inside the result.
// getenv is used to report whether DATABASE_URL and DATABASE_NAME are set.
func (m *Manager) Diagnose(ctx context.Context, getenv func(string) string) Diagnostics {
	d := Diagnostics{
		Backend:        "✅ Running",
		Database:       "❌ Not Available",
		DatabaseURL:    "❌ Not Set",
		DatabaseName:   "❌ Not Set",
		Collections:    []string{},
		DatabaseStatus: StatusNotConfigured,
	}

	if m.store == nil {
		return d
	}

	d.Database = "✅ Connected"
	if getenv("DATABASE_URL") != "" {
		d.DatabaseURL = "✅ Set"
	}
	if getenv("DATABASE_NAME") != "" {
		d.DatabaseName = "✅ Set"
	}

	if err := m.store.Ping(ctx); err != nil {
		m.log.Warn("diagnostic ping failed", "error", err)
		d.Database = "❌ Error: " + truncate(err.Error(), maxDiagnosticErrorLen)
		d.DatabaseStatus = StatusUnavailable
		return d
	}

	names, err := m.store.Collections(ctx)
	if err != nil {
		m.log.Warn("diagnostic collection listing failed", "error", err)
		if errors.Is(err, db.ErrUnavailable) {
			d.Database = "❌ Error: " + truncate(err.Error(), maxDiagnosticErrorLen)
			d.DatabaseStatus = StatusUnavailable
		} else {
			d.Database = "⚠️ Connected but Error: " + truncate(err.Error(), maxDiagnosticErrorLen)
			d.DatabaseStatus = StatusReadFailed
		}
		return d
	}

	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	if names != nil {
		d.Collections = names
	}
	d.Database = "✅ Connected & Working"
	d.DatabaseStatus = StatusOK

	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
