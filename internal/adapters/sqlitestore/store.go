// Package sqlitestore keeps guest responses in a local SQLite file. It mirrors
// the table the hosted guest endpoint writes to, so a dump from either side
// reads the same.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
	"github.com/jsamuelsen/wedding-rsvp/internal/platform/logging"
)

// ServiceName identifies the store in errors and health checks.
const ServiceName = "guests-sqlite"

// timeLayout has a fixed-width fraction so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS wedding_guests (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	guest_name        TEXT NOT NULL,
	food_preferences  TEXT NOT NULL DEFAULT '[]',
	allergy_text      TEXT NOT NULL DEFAULT '',
	drink_preferences TEXT NOT NULL DEFAULT '[]',
	color_preferences TEXT NOT NULL DEFAULT '[]',
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_wedding_guests_created_at ON wedding_guests (created_at);
`

// Store is a ports.GuestStore backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("opening guest database: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying guest schema: %w", err)
	}

	logging.FromContext(ctx).Info("guest database ready", slog.String("path", path))

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListGuests returns every response, newest first.
// Implements ports.GuestStore.
func (s *Store) ListGuests(ctx context.Context) ([]domain.GuestResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guest_name, food_preferences, allergy_text, drink_preferences, created_at
		FROM wedding_guests
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, domain.WrapUnavailable(ServiceName, err)
	}
	defer func() { _ = rows.Close() }()

	guests := make([]domain.GuestResponse, 0)

	for rows.Next() {
		guest, err := scanGuest(rows)
		if err != nil {
			logging.FromContext(ctx).Warn("skipping unreadable guest row", slog.Any("error", err))
			continue
		}

		guests = append(guests, guest)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.WrapUnavailable(ServiceName, err)
	}

	return guests, nil
}

func scanGuest(rows *sql.Rows) (domain.GuestResponse, error) {
	var (
		g                   domain.GuestResponse
		food, drinks, stamp string
	)

	if err := rows.Scan(&g.ID, &g.GuestName, &food, &g.AllergyText, &drinks, &stamp); err != nil {
		return domain.GuestResponse{}, err
	}

	var err error

	if g.FoodPreferences, err = decodeTags(food); err != nil {
		return domain.GuestResponse{}, fmt.Errorf("guest %d food preferences: %w", g.ID, err)
	}

	if g.DrinkPreferences, err = decodeTags(drinks); err != nil {
		return domain.GuestResponse{}, fmt.Errorf("guest %d drink preferences: %w", g.ID, err)
	}

	if stamp != "" {
		if g.CreatedAt, err = time.Parse(timeLayout, stamp); err != nil {
			return domain.GuestResponse{}, fmt.Errorf("guest %d created_at: %w", g.ID, err)
		}
	}

	return g, nil
}

// SubmitGuest inserts a response and returns its row id.
// Implements ports.GuestStore.
func (s *Store) SubmitGuest(ctx context.Context, sub domain.GuestSubmission) (int64, error) {
	if err := sub.Validate(); err != nil {
		return 0, err
	}

	food, err := encodeTags(sub.FoodPreferences)
	if err != nil {
		return 0, err
	}

	drinks, err := encodeTags(sub.DrinkPreferences)
	if err != nil {
		return 0, err
	}

	colors, err := encodeTags(sub.ColorPreferences)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO wedding_guests
			(guest_name, food_preferences, allergy_text, drink_preferences, color_preferences, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sub.GuestName, food, sub.AllergyText, drinks, colors, s.now().UTC().Format(timeLayout))
	if err != nil {
		return 0, domain.WrapUnavailable(ServiceName, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.WrapUnavailable(ServiceName, err)
	}

	return id, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}

	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}

	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}

	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}

	if tags == nil {
		return []string{}, nil
	}

	return tags, nil
}
